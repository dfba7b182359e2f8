package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyland-inc/idbot/pkg/bus"
)

func privateEvent(text string) bus.InboundEvent {
	return bus.InboundEvent{
		UpdateID: 1,
		User:     bus.User{ID: 42, FirstName: "Ann"},
		Chat:     bus.Chat{ID: 42, Type: "private"},
		Text:     text,
	}
}

func groupEvent(text, title string) bus.InboundEvent {
	return bus.InboundEvent{
		UpdateID: 2,
		User:     bus.User{ID: 7, Username: "bob", FirstName: "Bob"},
		Chat:     bus.Chat{ID: -100123, Type: "group", Title: title},
		Text:     text,
	}
}

func TestStartReply(t *testing.T) {
	want := "👋 Hello Ann!\n\n" +
		"🆔 Your Telegram ID: `42`\n" +
		"💬 Chat ID: `42`\n\n" +
		"You can copy these IDs by tapping on them.\n\n" +
		"Commands:\n" +
		"/start - Show your IDs\n" +
		"/id - Show your IDs\n" +
		"/help - Show help message"
	assert.Equal(t, want, startReply(privateEvent("/start")))
}

func TestStartReply_DefaultName(t *testing.T) {
	ev := privateEvent("/start")
	ev.User.FirstName = ""
	assert.Contains(t, startReply(ev), "👋 Hello User!\n")
}

func TestStartReply_ListsAllCommands(t *testing.T) {
	out := startReply(groupEvent("/start", "Team"))
	for _, want := range []string{"`7`", "`-100123`", "/start", "/id", "/help"} {
		assert.Contains(t, out, want)
	}
}

func TestIDReply_Private(t *testing.T) {
	want := "🆔 **Your Telegram ID:** `42`\n" +
		"👤 **Username:** @None\n" +
		"📝 **First Name:** Ann\n" +
		"📝 **Last Name:** None"
	out := idReply(privateEvent("/id"))
	assert.Equal(t, want, out)
	assert.NotContains(t, out, "Chat Type")
}

func TestIDReply_PrivateAllFields(t *testing.T) {
	ev := privateEvent("/id")
	ev.User.Username = "ann"
	ev.User.LastName = "Lee"
	out := idReply(ev)
	assert.Contains(t, out, "👤 **Username:** @ann\n")
	assert.Contains(t, out, "📝 **Last Name:** Lee")
}

func TestIDReply_Group(t *testing.T) {
	want := "🆔 **Your User ID:** `7`\n" +
		"👥 **Group/Channel ID:** `-100123`\n" +
		"📝 **Group/Channel Title:** Team\n" +
		"📊 **Chat Type:** group"
	assert.Equal(t, want, idReply(groupEvent("/id", "Team")))
}

func TestIDReply_GroupWithoutTitle(t *testing.T) {
	out := idReply(groupEvent("/id", ""))
	assert.Contains(t, out, "📝 **Group/Channel Title:** Unknown\n")
	assert.Contains(t, out, "📊 **Chat Type:** group")
}

func TestIDReply_SupergroupAndChannel(t *testing.T) {
	for _, typ := range []string{"supergroup", "channel"} {
		ev := groupEvent("/id", "News")
		ev.Chat.Type = typ
		assert.Contains(t, idReply(ev), "📊 **Chat Type:** "+typ, typ)
	}
}

func TestHelpReply(t *testing.T) {
	out := helpReply(privateEvent("/help"))
	assert.Equal(t, helpText, out)
	assert.Contains(t, out, "🤖 **Telegram ID Bot Help**\n\n")
	assert.Contains(t, out, "/id - Show your user ID and chat information\n")
	assert.Contains(t, out, "• IDs are formatted for easy copying\n\n")
}

func TestMessageReply(t *testing.T) {
	want := "🆔 Your ID: `42`\n💬 Chat ID: `42`\n\nUse /id for more detailed information!"
	assert.Equal(t, want, messageReply(privateEvent("hi")))
}

func TestUserValuesAreEscaped(t *testing.T) {
	ev := privateEvent("/id")
	ev.User.Username = "ann_lee"
	ev.User.FirstName = "*Ann*"
	ev.User.LastName = "[x]`y`"
	out := idReply(ev)
	assert.Contains(t, out, `@ann\_lee`)
	assert.Contains(t, out, `\*Ann\*`)
	assert.Contains(t, out, "\\[x]\\`y\\`")

	group := groupEvent("/id", "dev_team")
	assert.Contains(t, idReply(group), `dev\_team`)
}
