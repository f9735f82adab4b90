// Package telegram wraps the Bot API for the one-shot fetch/send/pin calls
// the orchestrator needs.
package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ostapenco/domovyk/internal/common"
	"github.com/ostapenco/domovyk/internal/model"
)

// fetchTimeout is the long-poll timeout passed to getUpdates, in seconds.
const fetchTimeout = 10

// Client talks to one monitored chat. Announcements go into the configured
// thread when one is set; the v5 library does not expose topic ids on
// incoming messages, so scanning filters by chat only.
type Client struct {
	api      *tgbotapi.BotAPI
	chatID   int64
	threadID int
}

// New authenticates against the Bot API and binds the client to the
// monitored chat.
func New(token string, chatID int64, threadID int) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate bot: %w", err)
	}
	slog.Debug("authenticated", "bot", api.Self.UserName)
	return &Client{api: api, chatID: chatID, threadID: threadID}, nil
}

// FetchMessages pulls one bounded batch of updates starting at offset and
// returns the messages belonging to the monitored chat, oldest first,
// together with the highest update id seen.
func (c *Client) FetchMessages(ctx context.Context, offset, limit int) ([]model.Message, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	updates, err := c.api.GetUpdates(tgbotapi.UpdateConfig{
		Offset:  offset,
		Limit:   limit,
		Timeout: fetchTimeout,
	})
	if err != nil {
		return nil, 0, &common.RetryableError{
			Err:       fmt.Errorf("%w: getUpdates: %v", common.ErrChatUnavailable, err),
			Retryable: true,
		}
	}

	var messages []model.Message
	lastID := 0
	for _, u := range updates {
		if u.UpdateID > lastID {
			lastID = u.UpdateID
		}
		if u.Message == nil || u.Message.Chat == nil || u.Message.Chat.ID != c.chatID {
			continue
		}
		messages = append(messages, model.Message{
			ChatID:   u.Message.Chat.ID,
			Text:     u.Message.Text,
			SentAt:   time.Unix(int64(u.Message.Date), 0),
			UpdateID: u.UpdateID,
		})
	}
	return messages, lastID, nil
}

// SendMessage posts Markdown text into the monitored chat (and thread,
// when configured) and returns the new message id.
func (c *Client) SendMessage(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// MessageConfig has no thread field in v5.5.1, so the request is
	// assembled by hand.
	params := tgbotapi.Params{}
	params.AddNonZero64("chat_id", c.chatID)
	params["text"] = text
	params.AddNonEmpty("parse_mode", tgbotapi.ModeMarkdown)
	params.AddNonZero("message_thread_id", c.threadID)

	resp, err := c.api.MakeRequest("sendMessage", params)
	if err != nil {
		return 0, fmt.Errorf("%w: sendMessage: %v", common.ErrSendFailed, err)
	}

	var sent tgbotapi.Message
	if err := json.Unmarshal(resp.Result, &sent); err != nil {
		return 0, fmt.Errorf("%w: decoding sendMessage response: %v", common.ErrSendFailed, err)
	}
	return sent.MessageID, nil
}

// PinMessage pins a message in the monitored chat without notifying.
func (c *Client) PinMessage(ctx context.Context, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.api.Request(tgbotapi.PinChatMessageConfig{
		ChatID:              c.chatID,
		MessageID:           messageID,
		DisableNotification: true,
	})
	if err != nil {
		return fmt.Errorf("%w: pinChatMessage: %v", common.ErrSendFailed, err)
	}
	return nil
}

// UnpinAll removes every pinned message from the monitored chat.
func (c *Client) UnpinAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.api.Request(tgbotapi.UnpinAllChatMessagesConfig{ChatID: c.chatID})
	if err != nil {
		return fmt.Errorf("%w: unpinAllChatMessages: %v", common.ErrSendFailed, err)
	}
	return nil
}
