package viewcounter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ErrUnparsableCount is returned when a response carries no usable number.
var ErrUnparsableCount = errors.New("unable to parse view count from response")

// Field names checked, in order, before falling back to any numeric field.
var countFields = []string{"count", "view_count"}

// ParseCount extracts the view count from a response body. JSON bodies may be
// a bare number, an object with "count" or "view_count", or otherwise any
// object whose first numeric field (in document order) is taken. A JSON body
// that is malformed, has no number, or whose number does not fit an int64 is
// rejected. Other bodies are read as a leading integer.
func ParseCount(contentType string, body []byte) (int64, error) {
	if strings.Contains(strings.ToLower(contentType), "application/json") {
		return parseJSONCount(body)
	}
	return parseLeadingInt(string(body))
}

// ReadCount reads and parses resp, closing its body.
func ReadCount(resp *Response) (int64, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	return ParseCount(resp.ContentType, body)
}

type jsonField struct {
	name  string
	value any
}

func parseJSONCount(body []byte) (int64, error) {
	if !json.Valid(body) {
		return 0, fmt.Errorf("%w: malformed JSON", ErrUnparsableCount)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return 0, errors.Join(ErrUnparsableCount, err)
	}

	switch v := tok.(type) {
	case json.Number:
		return numberToInt(v)

	case json.Delim:
		switch v {
		case '{':
			fields, err := readObjectFields(dec)
			if err != nil {
				return 0, errors.Join(ErrUnparsableCount, err)
			}
			if num, ok := pickCount(fields); ok {
				return numberToInt(num)
			}
		case '[':
			// Arrays are indexed objects; the first numeric element wins.
			for dec.More() {
				var elem any
				if err := dec.Decode(&elem); err != nil {
					return 0, errors.Join(ErrUnparsableCount, err)
				}
				if num, ok := elem.(json.Number); ok {
					return numberToInt(num)
				}
			}
		}
	}
	return 0, fmt.Errorf("%w: no numeric value", ErrUnparsableCount)
}

// readObjectFields reads the remaining members of an object whose opening
// brace was already consumed, keeping declaration order.
func readObjectFields(dec *json.Decoder) ([]jsonField, error) {
	var fields []jsonField
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		fields = append(fields, jsonField{name: key, value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return fields, nil
}

func pickCount(fields []jsonField) (json.Number, bool) {
	for _, name := range countFields {
		for _, f := range fields {
			if f.name != name {
				continue
			}
			if num, ok := f.value.(json.Number); ok {
				return num, true
			}
		}
	}
	for _, f := range fields {
		if num, ok := f.value.(json.Number); ok {
			return num, true
		}
	}
	return "", false
}

// numberToInt truncates non-integral values toward zero. Values outside the
// int64 range are an error, never a wrapped or clamped count.
func numberToInt(num json.Number) (int64, error) {
	if n, err := num.Int64(); err == nil {
		return n, nil
	}
	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || f >= 1<<63 || f < -(1<<63) {
		return 0, fmt.Errorf("%w: %s does not fit an int64", ErrUnparsableCount, num)
	}
	return int64(f), nil
}

// parseLeadingInt accepts leading whitespace, an optional sign and at least
// one decimal digit. Anything after the digits is ignored.
func parseLeadingInt(s string) (int64, error) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, ErrUnparsableCount
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, errors.Join(ErrUnparsableCount, err)
	}
	return n, nil
}
