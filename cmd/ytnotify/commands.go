package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/tesso57/ytnotify/internal/application/settings"
	"github.com/tesso57/ytnotify/internal/application/usecase"
	"github.com/tesso57/ytnotify/internal/domain/video"
	"github.com/tesso57/ytnotify/internal/infrastructure/config"
	"github.com/tesso57/ytnotify/internal/infrastructure/feed"
	"github.com/tesso57/ytnotify/internal/infrastructure/seen"
	"github.com/tesso57/ytnotify/internal/infrastructure/telegram"
)

type runCmd struct {
	DryRun bool `help:"Log matches instead of sending them and leave the seen set untouched."`
}

func (r *runCmd) Run(a *app) error {
	cfg, err := loadValid(a.configPath)
	if err != nil {
		return err
	}

	store, err := seen.Open(cfg.SeenFile)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if cfg.OCREnabled() {
		a.logger.Debug("thumbnail OCR requested; not supported yet, using text match only")
	}

	notifier := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.ChatID, cfg.Timeout)
	notifier.BaseURL = cfg.Telegram.APIURL

	svc := usecase.NewWatchService(
		feed.NewFetcher(cfg.Timeout),
		store,
		notifier,
		cfg.FeedURL,
		video.Matcher{Keyword: cfg.MatchKeyword(), OCR: cfg.OCREnabled()},
		a.logger,
	)
	svc.DryRun = r.DryRun

	report, err := svc.Run(a.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Done. Total entries processed: %d\n", report.Fetched)
	return nil
}

type checkCmd struct{}

func (checkCmd) Run(a *app) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cfg.FeedURL == "" {
		return &settings.ConfigError{Missing: []string{"CHANNEL_RSS_URL"}}
	}

	store, err := seen.Open(cfg.SeenFile)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := usecase.NewWatchService(
		feed.NewFetcher(cfg.Timeout), store, nil, cfg.FeedURL,
		video.Matcher{Keyword: cfg.MatchKeyword(), OCR: cfg.OCREnabled()}, a.logger,
	)
	verdicts, err := svc.Preview(a.ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPUBLISHED\tSEEN\tMATCH\tTITLE")
	for _, v := range verdicts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			v.Entry.ID, v.Entry.Published.UTC().Format(time.RFC3339), yesNo(v.Seen), yesNo(v.Match), v.Entry.Title)
	}
	return w.Flush()
}

type seenCmd struct {
	List   seenListCmd   `cmd:"" help:"Print stored ids."`
	Forget seenForgetCmd `cmd:"" help:"Remove ids so they are evaluated again."`
}

type seenListCmd struct{}

func (seenListCmd) Run(a *app) error {
	svc, closeStore, err := openSeen(a.configPath)
	if err != nil {
		return err
	}
	defer closeStore()

	ids, err := svc.List()
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(a.stdout, id)
	}
	return nil
}

type seenForgetCmd struct {
	IDs []string `arg:"" name:"id" help:"Entry ids to forget."`
}

func (f *seenForgetCmd) Run(a *app) error {
	svc, closeStore, err := openSeen(a.configPath)
	if err != nil {
		return err
	}
	defer closeStore()

	removed, err := svc.Forget(f.IDs...)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Forgot %d of %d ids.\n", removed, len(f.IDs))
	return nil
}

type configCmd struct{}

func (configCmd) Run(a *app) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	return config.Write(a.stdout, cfg)
}

func loadValid(path string) (settings.Settings, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.RequireWatch()
}

func openSeen(configPath string) (usecase.SeenService, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return usecase.SeenService{}, nil, err
	}
	store, err := seen.Open(cfg.SeenFile)
	if err != nil {
		return usecase.SeenService{}, nil, err
	}
	return usecase.NewSeenService(store), func() { _ = store.Close() }, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
