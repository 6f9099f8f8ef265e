// Package telegram delivers notifications through the Telegram Bot API.
package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tesso57/ytnotify/internal/application/usecase"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Bot API endpoint.
const DefaultBaseURL = "https://api.telegram.org"

// DefaultTimeout bounds a single sendMessage call.
const DefaultTimeout = 20 * time.Second

// Client posts messages to one chat.
type Client struct {
	BaseURL    string
	Token      string
	ChatID     string
	HTTPClient *http.Client
	// Limiter paces sends; nil disables pacing.
	Limiter *rate.Limiter
}

// NewClient creates a client for the given bot and chat.
// Sends are limited to one per second, Telegram's per-chat ceiling.
func NewClient(token, chatID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		ChatID:     chatID,
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	ErrorCode   int    `json:"error_code"`
	Result      struct {
		MessageID int64 `json:"message_id"`
		Chat      struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"result"`
}

// Send posts text to the configured chat. Link previews stay enabled.
func (c *Client) Send(ctx context.Context, text string) (usecase.Ack, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return usecase.Ack{}, &NotifyError{Err: err}
		}
	}

	form := url.Values{}
	form.Set("chat_id", c.ChatID)
	form.Set("text", text)
	form.Set("disable_web_page_preview", "false")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), strings.NewReader(form.Encode()))
	if err != nil {
		return usecase.Ack{}, &NotifyError{Err: stripURL(err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return usecase.Ack{}, &NotifyError{Err: stripURL(err)}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return usecase.Ack{}, &NotifyError{StatusCode: resp.StatusCode, Err: err}
	}

	var decoded apiResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return usecase.Ack{}, &NotifyError{StatusCode: resp.StatusCode, Description: decoded.Description}
	}
	if decodeErr != nil {
		return usecase.Ack{}, &NotifyError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if !decoded.OK {
		return usecase.Ack{}, &NotifyError{StatusCode: resp.StatusCode, Description: decoded.Description}
	}

	return usecase.Ack{
		MessageID: decoded.Result.MessageID,
		ChatID:    decoded.Result.Chat.ID,
	}, nil
}

func (c *Client) endpoint() string {
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base + "/bot" + c.Token + "/sendMessage"
}

// stripURL drops the request URL, which embeds the bot token.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// NotifyError reports a message that was not delivered.
type NotifyError struct {
	StatusCode  int
	Description string
	Err         error
}

func (e *NotifyError) Error() string {
	msg := "telegram sendMessage"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP %d", e.StatusCode)
	}
	if e.Description != "" {
		msg += ": " + e.Description
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NotifyError) Unwrap() error { return e.Err }
