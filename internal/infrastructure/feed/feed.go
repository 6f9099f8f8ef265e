// Package feed fetches a channel feed and turns it into video entries.
package feed

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/tesso57/ytnotify/internal/domain/video"
)

const feedAcceptHeader = "application/atom+xml, application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

// DefaultTimeout bounds a single feed request.
const DefaultTimeout = 20 * time.Second

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// Fetcher retrieves and normalizes channel feeds.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
	Timeout   time.Duration
}

// NewFetcher creates a Fetcher whose requests give up after timeout.
// A non-positive timeout uses DefaultTimeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		Client:    &http.Client{Transport: acceptTransport{base: http.DefaultTransport}},
		UserAgent: "ytnotify/1.0",
		Timeout:   timeout,
	}
}

// Fetch downloads the feed at feedURL and returns its entries oldest first.
// Transport failures and non-2xx responses are *NetworkError; bad markup
// or entries lacking a required field are *ParseError.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]video.Entry, error) {
	feedURL = strings.TrimSpace(feedURL)
	if feedURL == "" {
		return nil, &NetworkError{URL: feedURL, Err: errors.New("feed url is empty")}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	fp := gofeed.NewParser()
	fp.UserAgent = f.UserAgent
	if f.Client != nil {
		fp.Client = f.Client
	}

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, classify(ctx, feedURL, err)
	}
	return Entries(parsed)
}

func classify(ctx context.Context, feedURL string, err error) error {
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return &NetworkError{URL: feedURL, StatusCode: httpErr.StatusCode, Err: err}
	}
	var urlErr *url.Error
	var netErr net.Error
	if ctx.Err() != nil || errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return &NetworkError{URL: feedURL, Err: err}
	}
	return &ParseError{Index: -1, Err: err}
}

// Entries maps a parsed feed to video entries sorted by published time.
func Entries(parsed *gofeed.Feed) ([]video.Entry, error) {
	if parsed == nil {
		return nil, &ParseError{Index: -1, Err: errors.New("no feed document")}
	}

	entries := make([]video.Entry, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		e, err := toEntry(i, item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Published.Before(entries[j].Published)
	})
	return entries, nil
}

func toEntry(i int, item *gofeed.Item) (video.Entry, error) {
	if item == nil {
		return video.Entry{}, &ParseError{Index: i, Field: "entry"}
	}

	e := video.Entry{
		ID:    strings.TrimSpace(extensionValue(item, "yt", "videoId")),
		Title: item.Title,
		Link:  strings.TrimSpace(item.Link),
	}
	switch {
	case e.ID == "":
		return e, &ParseError{Index: i, Field: "yt:videoId"}
	case e.Title == "":
		return e, &ParseError{Index: i, ID: e.ID, Field: "title"}
	case e.Link == "":
		return e, &ParseError{Index: i, ID: e.ID, Field: "link"}
	case item.PublishedParsed == nil:
		return e, &ParseError{Index: i, ID: e.ID, Field: "published"}
	}

	e.Published = *item.PublishedParsed
	if desc, ok := media(item, "description"); ok {
		e.Description = desc.Value
	}
	if thumb, ok := media(item, "thumbnail"); ok {
		e.Thumbnail = thumb.Attrs["url"]
	}
	return e, nil
}
