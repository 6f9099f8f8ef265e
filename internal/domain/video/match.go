package video

import "strings"

// Matches reports whether keyword occurs, ignoring case, in the entry's
// title, description or thumbnail URL. Thumbnail URLs are searched because
// keyword fragments sometimes show up in asset names.
func Matches(e Entry, keyword string) bool {
	keyword = strings.ToLower(keyword)
	if keyword == "" {
		return false
	}
	text := strings.ToLower(e.Title + " " + e.Description + " " + e.Thumbnail)
	return strings.Contains(text, keyword)
}

// Matcher binds a keyword to the matching options read from settings.
type Matcher struct {
	Keyword string
	// OCR is reserved for matching text rendered inside thumbnails.
	// It is accepted from configuration but has no effect yet.
	OCR bool
}

// Match applies the keyword test to e.
func (m Matcher) Match(e Entry) bool {
	return Matches(e, m.Keyword)
}
