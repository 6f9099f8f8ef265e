// Package config handles configuration loading.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/tesso57/ytnotify/internal/application/settings"
	"gopkg.in/yaml.v3"
)

// Load builds Settings from the environment, a YAML file and defaults, in that order.
// An empty configPath falls back to the default location, which may be absent.
// An explicit configPath must exist.
func Load(configPath string) (settings.Settings, error) {
	cfg := settings.Settings{}

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultPath()
	}

	var options []kong.Option
	if _, err := os.Stat(configPath); err == nil {
		options = append(options, kong.Configuration(yamlKongLoader, configPath))
	} else if explicit {
		return cfg, fmt.Errorf("config file %s: %w", configPath, err)
	}

	parser, err := kong.New(&cfg, options...)
	if err != nil {
		return cfg, err
	}
	if _, err := parser.Parse([]string{}); err != nil {
		return cfg, err
	}

	cfg.FeedURL = strings.TrimSpace(cfg.FeedURL)
	cfg.Telegram.Token = strings.TrimSpace(cfg.Telegram.Token)
	cfg.Telegram.ChatID = strings.TrimSpace(cfg.Telegram.ChatID)
	cfg.SeenFile = strings.TrimSpace(cfg.SeenFile)
	return cfg, nil
}

// DefaultPath returns the config file consulted when none is given.
func DefaultPath() string {
	return filepath.Join(defaultConfigHome(), "ytnotify", "config.yaml")
}

func defaultConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config")
}

// Write encodes cfg as YAML with the bot token redacted.
func Write(w io.Writer, cfg settings.Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg.Redacted()); err != nil {
		return err
	}
	return enc.Close()
}

func yamlKongLoader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, err
		}
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		if envSet(flag) {
			return nil, nil
		}
		return lookup(values, flag.Name), nil
	}
	return f, nil
}

// envSet reports whether one of the flag's environment variables is non-empty.
// The environment takes precedence over the config file.
func envSet(flag *kong.Flag) bool {
	for _, name := range flag.Envs {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

func lookup(values map[string]any, flagName string) any {
	names := []string{flagName, strings.ReplaceAll(flagName, "-", "_")}
	for _, name := range names {
		if v, ok := values[name]; ok {
			return scalar(v)
		}

		// telegram.chat_id style keys live in nested maps
		parts := strings.Split(name, ".")
		if len(parts) < 2 {
			continue
		}
		curr := values
		for i, part := range parts {
			if i == len(parts)-1 {
				if v, ok := curr[part]; ok {
					return scalar(v)
				}
				break
			}
			next, ok := curr[part].(map[string]any)
			if !ok {
				break
			}
			curr = next
		}
	}
	return nil
}

// scalar turns YAML numbers and booleans into strings so that
// values such as a numeric chat id decode into string fields.
func scalar(v any) any {
	switch v.(type) {
	case nil, string:
		return v
	case bool, int, int64, uint64, float64:
		return fmt.Sprint(v)
	default:
		return v
	}
}
