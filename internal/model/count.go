package model

// ViewCount is the JSON shape returned by the page server's count endpoint.
type ViewCount struct {
	Count     int64  `json:"count"`
	Formatted string `json:"formatted"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
