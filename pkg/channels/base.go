package channels

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/tinyland-inc/idbot/pkg/bus"
)

type Channel interface {
	Name() string
	Start(ctx context.Context) error
	IsRunning() bool
	IsAllowed(user bus.User) bool
}

type BaseChannel struct {
	name      string
	allowList []string
	running   atomic.Bool
}

func NewBaseChannel(name string, allowList []string) *BaseChannel {
	return &BaseChannel{
		name:      name,
		allowList: allowList,
	}
}

func (c *BaseChannel) Name() string {
	return c.name
}

func (c *BaseChannel) IsRunning() bool {
	return c.running.Load()
}

func (c *BaseChannel) SetRunning(running bool) {
	c.running.Store(running)
}

// IsAllowed reports whether user may talk to the bot. An empty allow list
// admits everyone. Entries are a numeric user id, a username (with or
// without "@"), or the compound "id|username" form.
func (c *BaseChannel) IsAllowed(user bus.User) bool {
	if len(c.allowList) == 0 {
		return true
	}

	id := strconv.FormatInt(user.ID, 10)
	for _, allowed := range c.allowList {
		trimmed := strings.TrimPrefix(strings.TrimSpace(allowed), "@")
		allowedID, allowedUser, compound := strings.Cut(trimmed, "|")
		if !compound {
			allowedUser = trimmed
		}

		if allowedID == id {
			return true
		}
		if user.Username != "" && allowedUser != "" && strings.EqualFold(allowedUser, user.Username) {
			return true
		}
	}

	return false
}
