package viewcounter

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var errRelativeWithoutOrigin = errors.New("relative API path needs a page origin")

// placeholderBases are documentation values that must never be used as a
// real endpoint. "null" is what browsers report as the origin of file:// pages.
var placeholderBases = map[string]struct{}{
	"https://your-backend-domain.com": {},
	"http://your-backend-domain.com":  {},
	"https://example.com":             {},
	"http://example.com":              {},
	"null":                            {},
}

// IsPlaceholder reports whether v is a known documentation placeholder,
// ignoring surrounding whitespace and trailing slashes.
func IsPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	if _, ok := placeholderBases[v]; ok {
		return true
	}
	_, ok := placeholderBases[normalizeBase(v)]
	return ok
}

// Sources holds every place a counting API base can be configured, resolved
// once at startup. Fields are listed in priority order.
type Sources struct {
	// ScriptAttr is the data-api-base attribute of the hosting script tag.
	ScriptAttr string
	// Global is the process-wide configured base.
	Global string
	// Origin is the origin the host page is served from.
	Origin string
	// Meta is the content of the ossprey-view-counter-api-base meta tag.
	Meta string
}

// Bases is the ordered, deduplicated list of API bases to try. The last entry
// is always "", meaning "relative to the page origin".
type Bases struct {
	list   []string
	origin string
}

// ResolveBases builds the candidate list from src. Candidates are trimmed,
// placeholders and empty values dropped, and duplicates removed keeping the
// first occurrence.
func ResolveBases(src Sources) Bases {
	var list []string
	for _, candidate := range []string{src.ScriptAttr, src.Global, src.Origin, src.Meta} {
		if IsPlaceholder(candidate) {
			continue
		}
		base := normalizeBase(candidate)
		if base == "" || slices.Contains(list, base) {
			continue
		}
		list = append(list, base)
	}
	list = append(list, "")

	origin := ""
	if !IsPlaceholder(src.Origin) {
		origin = normalizeBase(src.Origin)
	}
	return Bases{list: list, origin: origin}
}

// List returns a copy of the candidate bases in the order they are tried.
func (b Bases) List() []string {
	if len(b.list) == 0 {
		return []string{""}
	}
	return slices.Clone(b.list)
}

// Len returns the number of candidates, never less than one.
func (b Bases) Len() int {
	return max(len(b.list), 1)
}

// Origin returns the page origin used to resolve the relative fallback.
func (b Bases) Origin() string {
	return b.origin
}

// URL joins base and path and makes the result absolute. The empty base is
// resolved against the page origin.
func (b Bases) URL(base, path string) (string, error) {
	joined := JoinURL(base, path)
	if base != "" {
		return joined, nil
	}
	if b.origin == "" {
		return "", fmt.Errorf("%w: %s", errRelativeWithoutOrigin, joined)
	}

	origin, err := url.Parse(b.origin + "/")
	if err != nil {
		return "", fmt.Errorf("invalid page origin %q: %w", b.origin, err)
	}
	ref, err := url.Parse(joined)
	if err != nil {
		return "", err
	}
	return origin.ResolveReference(ref).String(), nil
}

// JoinURL concatenates base and path with exactly one slash between them.
// An empty base returns path as-is.
func JoinURL(base, path string) string {
	if base == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + path
}

func normalizeBase(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/")
}
