package viewcounter

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display texts other than the count itself.
const (
	LoadingText     = "..."
	UnavailableText = "N/A"
)

// FormatCount renders n with the digit grouping of tag, e.g. "1,234" for
// en-US and "1.234" for de-DE.
func FormatCount(n int64, tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}
