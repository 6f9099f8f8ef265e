package feed

import "fmt"

// NetworkError reports a feed request that did not complete or returned a
// non-success status.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports feed markup that could not be turned into entries.
// Index is -1 when the document itself is unreadable.
type ParseError struct {
	Index int
	ID    string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Index < 0:
		return fmt.Sprintf("parse feed: %v", e.Err)
	case e.ID != "":
		return fmt.Sprintf("parse feed: entry %d (%s): missing %s", e.Index, e.ID, e.Field)
	default:
		return fmt.Sprintf("parse feed: entry %d: missing %s", e.Index, e.Field)
	}
}

func (e *ParseError) Unwrap() error { return e.Err }
