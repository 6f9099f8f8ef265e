package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tesso57/ytnotify/internal/application/settings"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Keyword != settings.DefaultKeyword {
		t.Errorf("Expected default keyword %q, got %q", settings.DefaultKeyword, cfg.Keyword)
	}
	if cfg.EnableOCR != "false" {
		t.Errorf("Expected EnableOCR 'false', got %q", cfg.EnableOCR)
	}
	if cfg.SeenFile != "seen.json" {
		t.Errorf("Expected default seen file, got %q", cfg.SeenFile)
	}
	if cfg.Timeout != 20*time.Second {
		t.Errorf("Expected default timeout 20s, got %s", cfg.Timeout)
	}
	if cfg.Telegram.APIURL != "https://api.telegram.org" {
		t.Errorf("Expected default Bot API URL, got %q", cfg.Telegram.APIURL)
	}
	if err := cfg.RequireWatch(); err == nil {
		t.Error("Expected validation error without required settings")
	}
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("CHANNEL_RSS_URL", " https://www.youtube.com/feeds/videos.xml?channel_id=UC1 ")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("KEYWORD", "golang")
	t.Setenv("ENABLE_OCR", "True")
	t.Setenv("HTTP_TIMEOUT", "5s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FeedURL != "https://www.youtube.com/feeds/videos.xml?channel_id=UC1" {
		t.Errorf("FeedURL not trimmed: %q", cfg.FeedURL)
	}
	if cfg.Telegram.Token != "123:abc" || cfg.Telegram.ChatID != "42" {
		t.Errorf("Unexpected telegram config: %+v", cfg.Telegram)
	}
	if cfg.Keyword != "golang" {
		t.Errorf("Expected keyword 'golang', got %q", cfg.Keyword)
	}
	if !cfg.OCREnabled() {
		t.Error("Expected OCR flag to be enabled")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %s", cfg.Timeout)
	}
	if err := cfg.RequireWatch(); err != nil {
		t.Errorf("Expected valid settings, got %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "watch.yaml")
	content := `feed_url: https://example.com/feed.xml
telegram:
  token: "999:xyz"
  chat_id: -100123
keyword: Rust
seen_file: /tmp/seen.db
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FeedURL != "https://example.com/feed.xml" {
		t.Errorf("Unexpected FeedURL %q", cfg.FeedURL)
	}
	if cfg.Telegram.Token != "999:xyz" {
		t.Errorf("Unexpected token %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.ChatID != "-100123" {
		t.Errorf("Expected numeric chat id as string, got %q", cfg.Telegram.ChatID)
	}
	if cfg.Keyword != "Rust" {
		t.Errorf("Unexpected keyword %q", cfg.Keyword)
	}
	if cfg.SeenFile != "/tmp/seen.db" {
		t.Errorf("Unexpected seen file %q", cfg.SeenFile)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "watch.yaml")
	content := `feed_url: https://file.example.com/feed.xml
keyword: fromfile
seen_file: from-file.json
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("CHANNEL_RSS_URL", "https://env.example.com/feed.xml")
	t.Setenv("KEYWORD", "fromenv")
	t.Setenv("SEEN_FILE", "")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FeedURL != "https://env.example.com/feed.xml" {
		t.Errorf("Expected env feed URL to win, got %q", cfg.FeedURL)
	}
	if cfg.Keyword != "fromenv" {
		t.Errorf("Expected env keyword to win, got %q", cfg.Keyword)
	}
	if cfg.SeenFile != "from-file.json" {
		t.Errorf("Expected empty env to fall through to file, got %q", cfg.SeenFile)
	}
}

func TestLoad_DefaultPathFile(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(filepath.Join(dir, "ytnotify"), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(DefaultPath(), []byte("keyword: from-default\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Keyword != "from-default" {
		t.Errorf("Expected keyword from default config, got %q", cfg.Keyword)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestLoad_Corrupt(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	_ = os.WriteFile(configPath, []byte("invalid_yaml: ["), 0600)

	if _, err := Load(configPath); err == nil {
		t.Error("Expected error for corrupt config read, got nil")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := isolate(t)
	configPath := filepath.Join(dir, "config.yaml")
	_ = os.WriteFile(configPath, nil, 0600)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Keyword != settings.DefaultKeyword {
		t.Errorf("Expected default keyword, got %q", cfg.Keyword)
	}
}

func TestWrite_RedactsToken(t *testing.T) {
	cfg := settings.Settings{
		FeedURL:  "https://example.com/feed.xml",
		Telegram: settings.TelegramConfig{Token: "secret", ChatID: "1"},
	}
	var buf bytes.Buffer
	if err := Write(&buf, cfg); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	if bytes.Contains(buf.Bytes(), []byte("secret")) {
		t.Fatalf("token leaked into output:\n%s", out)
	}
	if !bytes.Contains(buf.Bytes(), []byte("feed_url: https://example.com/feed.xml")) {
		t.Fatalf("expected feed_url in output:\n%s", out)
	}
}
