// Command ytnotify watches a video channel feed and sends a Telegram
// message for every new upload that mentions a keyword.
//
// It performs a single pass per invocation; schedule it with cron or a
// systemd timer.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
)

type cli struct {
	Config   string `help:"YAML config file. Defaults to $XDG_CONFIG_HOME/ytnotify/config.yaml when present." type:"path" env:"YTNOTIFY_CONFIG"`
	LogLevel string `help:"Log level." default:"info" enum:"debug,info,warn,error" env:"LOG_LEVEL"`
	LogJSON  bool   `help:"Write logs as JSON." name:"log-json"`

	Run        runCmd    `cmd:"" default:"1" help:"Check the feed once and notify on new matches."`
	Check      checkCmd  `cmd:"" help:"List feed entries with their seen and match status. Sends and saves nothing."`
	Seen       seenCmd   `cmd:"" help:"Inspect or edit the seen set."`
	ShowConfig configCmd `cmd:"" name:"config" help:"Print the effective configuration with secrets redacted."`
}

// app carries what every command needs.
type app struct {
	ctx        context.Context
	configPath string
	logger     *slog.Logger
	stdout     io.Writer
}

func main() {
	var c cli
	parser := kong.Must(&c,
		kong.Name("ytnotify"),
		kong.Description("Notify a Telegram chat about new channel uploads that mention a keyword."),
		kong.UsageOnError(),
	)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		ctx:        ctx,
		configPath: c.Config,
		logger:     newLogger(os.Stderr, c.LogLevel, c.LogJSON).With("run", uuid.NewString()),
		stdout:     os.Stdout,
	}
	err = kctx.Run(a)
	stop()
	kctx.FatalIfErrorf(err)
}

func newLogger(w io.Writer, level string, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
