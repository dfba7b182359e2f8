package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/mymmrac/telego"

	"github.com/tinyland-inc/idbot/pkg/bus"
	"github.com/tinyland-inc/idbot/pkg/logger"
)

// Sender delivers one reply. *telegram.Client implements it.
type Sender interface {
	SendMessage(ctx context.Context, reply bus.OutboundReply) error
}

// HandlerFunc renders the reply text for an event.
type HandlerFunc func(ev bus.InboundEvent) string

// Dispatcher routes inbound events to the fixed set of handlers.
type Dispatcher struct {
	sender   Sender
	handlers map[Route]HandlerFunc

	mu          sync.RWMutex
	botUsername string
}

func NewDispatcher(sender Sender, botUsername string) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		handlers: map[Route]HandlerFunc{
			RouteStart:   startReply,
			RouteID:      idReply,
			RouteHelp:    helpReply,
			RouteMessage: messageReply,
		},
		botUsername: botUsername,
	}
}

// SetBotUsername sets the name used to filter "/cmd@name" commands.
func (d *Dispatcher) SetBotUsername(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.botUsername = name
}

func (d *Dispatcher) BotUsername() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.botUsername
}

// Render returns the reply for ev, or false when ev gets no reply.
func (d *Dispatcher) Render(ev bus.InboundEvent) (bus.OutboundReply, Route, bool) {
	route := Classify(ev.Text, d.BotUsername())
	handler, ok := d.handlers[route]
	if !ok {
		return bus.OutboundReply{}, route, false
	}
	return bus.OutboundReply{
		ChatID:    ev.Chat.ID,
		Text:      handler(ev),
		ParseMode: telego.ModeMarkdown,
	}, route, true
}

// Dispatch sends at most one reply for ev. Events without a route are a no-op.
func (d *Dispatcher) Dispatch(ctx context.Context, ev bus.InboundEvent) error {
	reply, route, ok := d.Render(ev)
	if !ok {
		logger.DebugCF("dispatch", "No route for message", map[string]any{
			"update_id": ev.UpdateID,
			"chat_id":   ev.Chat.ID,
		})
		return nil
	}

	logger.DebugCF("dispatch", "Routing message", map[string]any{
		"update_id": ev.UpdateID,
		"chat_id":   ev.Chat.ID,
		"route":     route.String(),
	})

	if err := d.sender.SendMessage(ctx, reply); err != nil {
		return fmt.Errorf("reply to %s: %w", route, err)
	}
	return nil
}
