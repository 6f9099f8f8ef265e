// Package settings defines application-level configuration data.
package settings

import (
	"fmt"
	"strings"
	"time"
)

// DefaultKeyword is matched when no keyword is configured.
const DefaultKeyword = "Ankit Agrawal"

// TelegramConfig holds the bot credentials used for notifications.
type TelegramConfig struct {
	Token  string `yaml:"token" kong:"help='Telegram bot token',env='TELEGRAM_BOT_TOKEN'"`
	ChatID string `yaml:"chat_id" kong:"help='Telegram chat id',env='TELEGRAM_CHAT_ID'"`
	APIURL string `yaml:"api_url" kong:"name='api-url',help='Bot API base URL',default='https://api.telegram.org',env='TELEGRAM_API_URL'"`
}

// Settings represents the watcher configuration.
type Settings struct {
	FeedURL   string         `yaml:"feed_url" kong:"help='Channel feed URL',env='CHANNEL_RSS_URL'"`
	Telegram  TelegramConfig `yaml:"telegram" kong:"embed,prefix='telegram.'"`
	Keyword   string         `yaml:"keyword" kong:"help='Keyword to look for',default='Ankit Agrawal',env='KEYWORD'"`
	EnableOCR string         `yaml:"enable_ocr" kong:"help='Reserved: match text inside thumbnails (true/false)',default='false',env='ENABLE_OCR'"`
	SeenFile  string         `yaml:"seen_file" kong:"help='Seen-set file (.json, or .db for SQLite)',default='seen.json',env='SEEN_FILE'"`
	Timeout   time.Duration  `yaml:"timeout" kong:"help='Per-request network timeout',default='20s',env='HTTP_TIMEOUT'"`
}

// OCREnabled reports whether the reserved OCR flag is switched on.
// Only a case-insensitive "true" enables it.
func (s Settings) OCREnabled() bool {
	return strings.EqualFold(strings.TrimSpace(s.EnableOCR), "true")
}

// MatchKeyword returns the configured keyword, or DefaultKeyword when blank.
func (s Settings) MatchKeyword() string {
	if s.Keyword == "" {
		return DefaultKeyword
	}
	return s.Keyword
}

// RequireWatch checks that every setting needed for a watch run is present.
// Commands that only read the seen set or the feed do not call it.
func (s Settings) RequireWatch() error {
	var missing []string
	if strings.TrimSpace(s.FeedURL) == "" {
		missing = append(missing, "CHANNEL_RSS_URL")
	}
	if strings.TrimSpace(s.Telegram.Token) == "" {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if strings.TrimSpace(s.Telegram.ChatID) == "" {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	if s.Timeout < 0 {
		return &ConfigError{Invalid: fmt.Sprintf("timeout must not be negative, got %s", s.Timeout)}
	}
	return nil
}

// Redacted returns a copy safe to print.
func (s Settings) Redacted() Settings {
	if s.Telegram.Token != "" {
		s.Telegram.Token = "<redacted>"
	}
	return s
}

// ConfigError reports missing or invalid configuration.
type ConfigError struct {
	Missing []string
	Invalid string
}

func (e *ConfigError) Error() string {
	if len(e.Missing) > 0 {
		return "missing required configuration: " + strings.Join(e.Missing, ", ")
	}
	return "invalid configuration: " + e.Invalid
}
