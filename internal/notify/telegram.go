package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// TelegramSender delivers slate summaries via the Telegram Bot API.
type TelegramSender struct {
	token  string
	chatID string
	client *http.Client
}

func NewTelegramSender(token, chatID string) *TelegramSender {
	return &TelegramSender{
		token:  token,
		chatID: chatID,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts a sendMessage call with Markdown formatting so the pick table's
// code block renders monospaced. Team names and provider labels can contain
// characters Telegram's Markdown parser rejects with a 400; on that status
// the message is retried once as plain text rather than dropped.
func (t *TelegramSender) Send(ctx context.Context, title, message string) error {
	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.token)

	formatted := map[string]string{
		"chat_id":    t.chatID,
		"text":       fmt.Sprintf("*%s*\n%s", title, message),
		"parse_mode": "Markdown",
	}
	status, err := postJSON(ctx, t.client, "telegram", url, formatted)
	if err == nil {
		return nil
	}
	if status != http.StatusBadRequest {
		return err
	}

	plain := map[string]string{
		"chat_id": t.chatID,
		"text":    fmt.Sprintf("%s\n%s", title, message),
	}
	if _, err := postJSON(ctx, t.client, "telegram", url, plain); err != nil {
		return fmt.Errorf("telegram: plain-text retry: %w", err)
	}
	return nil
}

func (t *TelegramSender) Name() string {
	return "telegram"
}
