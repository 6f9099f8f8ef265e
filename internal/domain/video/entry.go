// Package video defines the core channel-watch models.
package video

import (
	"fmt"
	"strings"
	"time"
)

// Entry represents a single upload taken from a channel feed.
type Entry struct {
	ID          string
	Title       string
	Link        string
	Published   time.Time
	Description string
	Thumbnail   string
}

// Notification renders the chat message announcing a matched entry.
// The keyword is shown as configured, not lowercased.
func Notification(keyword string, e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 New %s video detected!\n\n", strings.TrimSpace(keyword))
	b.WriteString(e.Title)
	b.WriteString("\n")
	b.WriteString(e.Link)
	b.WriteString("\n\nPublished: ")
	b.WriteString(e.Published.UTC().Format(time.RFC3339))
	return b.String()
}
