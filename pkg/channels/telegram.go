package channels

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/mymmrac/telego"

	"github.com/tinyland-inc/idbot/pkg/bus"
	"github.com/tinyland-inc/idbot/pkg/commands"
	"github.com/tinyland-inc/idbot/pkg/config"
	"github.com/tinyland-inc/idbot/pkg/logger"
	"github.com/tinyland-inc/idbot/pkg/telegram"
)

// API is the part of the Bot API the channel uses. *telegram.Client implements it.
type API interface {
	commands.Sender
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]telego.Update, error)
	DeleteWebhook(ctx context.Context) error
	GetMe(ctx context.Context) (*telego.User, error)
}

// PollState is owned by one polling loop. Offset is the next update_id to fetch.
type PollState struct {
	Offset int64
}

var _ Channel = (*TelegramChannel)(nil)

type TelegramChannel struct {
	*BaseChannel
	api           API
	dispatcher    *commands.Dispatcher
	pollTimeout   int
	pollInterval  time.Duration
	webhookSecret string
}

func NewTelegramChannel(cfg *config.Config, api API) *TelegramChannel {
	return &TelegramChannel{
		BaseChannel:   NewBaseChannel("telegram", cfg.Telegram.AllowFrom),
		api:           api,
		dispatcher:    commands.NewDispatcher(api, cfg.Telegram.BotUsername),
		pollTimeout:   cfg.Polling.Timeout,
		pollInterval:  time.Duration(cfg.Polling.Interval) * time.Second,
		webhookSecret: cfg.Webhook.SecretToken,
	}
}

// EventFromUpdate converts a decoded update. Updates without a message
// (edits, channel posts, callbacks, ...) yield telegram.ErrUnrecognizedInput.
func EventFromUpdate(u telego.Update) (bus.InboundEvent, error) {
	msg := u.Message
	if msg == nil {
		return bus.InboundEvent{}, telegram.ErrUnrecognizedInput
	}

	ev := bus.InboundEvent{
		UpdateID: int64(u.UpdateID),
		Chat: bus.Chat{
			ID:    msg.Chat.ID,
			Type:  msg.Chat.Type,
			Title: msg.Chat.Title,
		},
		Text: msg.Text,
	}
	if msg.From != nil {
		ev.User = bus.User{
			ID:        msg.From.ID,
			Username:  msg.From.Username,
			FirstName: msg.From.FirstName,
			LastName:  msg.From.LastName,
		}
	}
	return ev, nil
}

// HandleUpdate dispatches one update. Unrecognized updates and senders
// outside the allow list are dropped without a reply.
func (c *TelegramChannel) HandleUpdate(ctx context.Context, u telego.Update) error {
	ev, err := EventFromUpdate(u)
	if err != nil {
		logger.DebugCF("telegram", "Ignoring update", map[string]any{
			"update_id": u.UpdateID,
			"reason":    err.Error(),
		})
		return err
	}

	if !c.IsAllowed(ev.User) {
		logger.DebugCF("telegram", "Message rejected by allowlist", map[string]any{
			"user_id":  ev.User.ID,
			"username": ev.User.Username,
		})
		return nil
	}

	if err := c.dispatcher.Dispatch(ctx, ev); err != nil {
		logger.WarnCF("telegram", "Failed to send reply", map[string]any{
			"update_id": ev.UpdateID,
			"chat_id":   ev.Chat.ID,
			"error":     err.Error(),
		})
		return err
	}
	return nil
}

// HandleBody decodes one webhook payload and dispatches it.
func (c *TelegramChannel) HandleBody(ctx context.Context, body []byte) error {
	var u telego.Update
	if err := json.Unmarshal(body, &u); err != nil {
		return &telegram.DecodeError{What: "update", Err: err}
	}
	return c.HandleUpdate(ctx, u)
}

// ResolveBotUsername asks Telegram for the bot's username when none is
// configured, so commands addressed to other bots can be ignored.
func (c *TelegramChannel) ResolveBotUsername(ctx context.Context) {
	if c.dispatcher.BotUsername() != "" {
		return
	}

	me, err := c.api.GetMe(ctx)
	if err != nil {
		logger.WarnCF("telegram", "Could not resolve bot username; accepting any /cmd@name suffix", map[string]any{
			"error": err.Error(),
		})
		return
	}

	c.dispatcher.SetBotUsername(me.Username)
	logger.InfoCF("telegram", "Telegram bot connected", map[string]any{
		"username": me.Username,
	})
}

// PollOnce fetches one batch starting at state.Offset, dispatches it in
// order and advances state.Offset past the highest update_id seen.
func (c *TelegramChannel) PollOnce(ctx context.Context, state *PollState) error {
	updates, err := c.api.GetUpdates(ctx, state.Offset, c.pollTimeout)
	if err != nil {
		return err
	}

	for _, u := range updates {
		c.HandleUpdate(ctx, u)
		if next := int64(u.UpdateID) + 1; next > state.Offset {
			state.Offset = next
		}
	}
	return nil
}

// Start runs the polling loop until ctx is cancelled. The offset starts at
// zero on every start; it is not persisted.
func (c *TelegramChannel) Start(ctx context.Context) error {
	logger.InfoC("telegram", "Starting Telegram bot (polling mode)...")

	// getUpdates is refused while a webhook is registered
	if err := c.api.DeleteWebhook(ctx); err != nil {
		logger.WarnCF("telegram", "Failed to remove webhook", map[string]any{
			"error": err.Error(),
		})
	}
	c.ResolveBotUsername(ctx)

	c.SetRunning(true)
	defer c.SetRunning(false)

	state := &PollState{}
	for {
		if ctx.Err() != nil {
			logger.InfoC("telegram", "Telegram bot stopped")
			return nil
		}

		if err := c.PollOnce(ctx, state); err != nil && !errors.Is(err, context.Canceled) {
			logger.WarnCF("telegram", "Poll failed", map[string]any{
				"offset": state.Offset,
				"error":  err.Error(),
			})
		}

		select {
		case <-ctx.Done():
		case <-time.After(c.pollInterval):
		}
	}
}
