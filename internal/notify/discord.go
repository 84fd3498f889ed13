package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// discordContentLimit is Discord's hard cap on message content. A full
// sixteen-row pick table fits comfortably; the truncation guard is for
// whatever the site or provider labels grow into.
const discordContentLimit = 2000

// DiscordSender delivers slate summaries via a Discord webhook.
type DiscordSender struct {
	webhookURL string
	client     *http.Client
}

func NewDiscordSender(webhookURL string) *DiscordSender {
	return &DiscordSender{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts to the webhook with the title in bold. Discord replies 204 on
// success.
func (d *DiscordSender) Send(ctx context.Context, title, message string) error {
	content := fmt.Sprintf("**%s**\n%s", title, message)
	if len(content) > discordContentLimit {
		content = content[:discordContentLimit-1] + "…"
	}

	payload := map[string]string{"content": content}
	if _, err := postJSON(ctx, d.client, "discord", d.webhookURL, payload); err != nil {
		return err
	}
	return nil
}

func (d *DiscordSender) Name() string {
	return "discord"
}
