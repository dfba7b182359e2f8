package bus

import "github.com/mymmrac/telego"

// User is the sender of an inbound event. Optional strings are empty when Telegram omitted them.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type Chat struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"` // private | group | supergroup | channel
	Title string `json:"title,omitempty"`
}

// IsShared reports whether the chat has more than one participant
// (group, supergroup or channel).
func (c Chat) IsShared() bool {
	switch c.Type {
	case telego.ChatTypeGroup, telego.ChatTypeSupergroup, telego.ChatTypeChannel:
		return true
	}
	return false
}

// InboundEvent is one message received from Telegram.
type InboundEvent struct {
	UpdateID int64  `json:"update_id"`
	User     User   `json:"user"`
	Chat     Chat   `json:"chat"`
	Text     string `json:"text,omitempty"`
}

// OutboundReply is one sendMessage call.
type OutboundReply struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}
