// Package usecase contains application-level services.
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tesso57/ytnotify/internal/domain/video"
)

// FeedFetcher abstracts channel feed retrieval.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]video.Entry, error)
}

// SeenRepository abstracts seen-set persistence.
type SeenRepository interface {
	Load() (*video.SeenSet, error)
	Save(set *video.SeenSet) error
}

// Ack confirms a delivered notification.
type Ack struct {
	MessageID int64
	ChatID    int64
}

// Notifier delivers a text message.
type Notifier interface {
	Send(ctx context.Context, text string) (Ack, error)
}

// RunReport summarizes one watch pass.
type RunReport struct {
	Fetched  int
	Skipped  int
	Matched  int
	Notified int
	Failed   int
	Marked   int
}

// Verdict describes how a run would treat one entry.
type Verdict struct {
	Entry video.Entry
	Seen  bool
	Match bool
}

// WatchService runs the fetch, match, notify and persist pass.
type WatchService struct {
	Fetcher  FeedFetcher
	Seen     SeenRepository
	Notifier Notifier
	FeedURL  string
	Matcher  video.Matcher
	Logger   *slog.Logger
	// DryRun logs matches instead of sending them and skips saving.
	DryRun bool
}

// NewWatchService constructs a WatchService.
func NewWatchService(fetcher FeedFetcher, seen SeenRepository, notifier Notifier, feedURL string, matcher video.Matcher, logger *slog.Logger) WatchService {
	return WatchService{
		Fetcher:  fetcher,
		Seen:     seen,
		Notifier: notifier,
		FeedURL:  feedURL,
		Matcher:  matcher,
		Logger:   logger,
	}
}

// Run performs one pass over the feed. A fetch failure aborts the run
// before anything is marked or saved. Notification failures are logged
// and the entry is still marked seen.
func (s WatchService) Run(ctx context.Context) (RunReport, error) {
	var report RunReport
	log := s.logger()

	seen := s.loadSeen(log)

	entries, err := s.Fetcher.Fetch(ctx, s.FeedURL)
	if err != nil {
		return report, fmt.Errorf("fetch feed: %w", err)
	}
	report.Fetched = len(entries)

	updated := seen.Clone()
	for _, e := range entries {
		if updated.Has(e.ID) {
			report.Skipped++
			continue
		}
		if s.Matcher.Match(e) {
			report.Matched++
			s.notify(ctx, log, e, &report)
		}
		updated.Add(e.ID)
		report.Marked++
	}

	if s.DryRun {
		log.Info("dry run complete, seen set not saved", reportAttrs(report)...)
		return report, nil
	}
	if err := s.Seen.Save(updated); err != nil {
		return report, fmt.Errorf("save seen set: %w", err)
	}

	log.Info("run complete", reportAttrs(report)...)
	return report, nil
}

func (s WatchService) notify(ctx context.Context, log *slog.Logger, e video.Entry, report *RunReport) {
	if s.DryRun {
		log.Info("would notify", "id", e.ID, "title", e.Title)
		return
	}
	ack, err := s.Notifier.Send(ctx, video.Notification(s.Matcher.Keyword, e))
	if err != nil {
		report.Failed++
		log.Error("notify failed", "id", e.ID, "err", err)
		return
	}
	report.Notified++
	log.Info("notified", "id", e.ID, "message_id", ack.MessageID)
}

// Preview fetches the feed and reports, without side effects, which
// entries are already seen and which would trigger a notification.
func (s WatchService) Preview(ctx context.Context) ([]Verdict, error) {
	seen := s.loadSeen(s.logger())

	entries, err := s.Fetcher.Fetch(ctx, s.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	verdicts := make([]Verdict, 0, len(entries))
	for _, e := range entries {
		verdicts = append(verdicts, Verdict{
			Entry: e,
			Seen:  seen.Has(e.ID),
			Match: s.Matcher.Match(e),
		})
	}
	return verdicts, nil
}

// loadSeen returns an empty set when the store cannot be read.
func (s WatchService) loadSeen(log *slog.Logger) *video.SeenSet {
	seen, err := s.Seen.Load()
	if err != nil {
		log.Warn("seen set unreadable, starting empty", "err", err)
		return video.NewSeenSet()
	}
	if seen == nil {
		return video.NewSeenSet()
	}
	return seen
}

func (s WatchService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func reportAttrs(r RunReport) []any {
	return []any{
		"fetched", r.Fetched,
		"skipped", r.Skipped,
		"matched", r.Matched,
		"notified", r.Notified,
		"failed", r.Failed,
		"marked", r.Marked,
	}
}
