package commands

import (
	"fmt"
	"strings"

	"github.com/tinyland-inc/idbot/pkg/bus"
)

const helpText = "🤖 **Telegram ID Bot Help**\n\n" +
	"This bot helps you find your Telegram ID and chat IDs.\n\n" +
	"**Commands:**\n" +
	"/start - Welcome message with your ID\n" +
	"/id - Show your user ID and chat information\n" +
	"/help - Show this help message\n\n" +
	"**Features:**\n" +
	"• Works in private chats\n" +
	"• Works in groups and channels\n" +
	"• Shows user ID, chat ID, and additional info\n" +
	"• IDs are formatted for easy copying\n\n" +
	"Just send any of these commands to get your information!"

var markdownEscaper = strings.NewReplacer(
	`_`, `\_`,
	`*`, `\*`,
	"`", "\\`",
	`[`, `\[`,
)

// escapeMarkdown escapes user-supplied text for the legacy Markdown parse mode.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// orDefault returns def when s is empty, otherwise s escaped for Markdown.
func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return escapeMarkdown(s)
}

func startReply(ev bus.InboundEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "👋 Hello %s!\n\n", orDefault(ev.User.FirstName, "User"))
	fmt.Fprintf(&b, "🆔 Your Telegram ID: `%d`\n", ev.User.ID)
	fmt.Fprintf(&b, "💬 Chat ID: `%d`\n\n", ev.Chat.ID)
	b.WriteString("You can copy these IDs by tapping on them.\n\n")
	b.WriteString("Commands:\n")
	b.WriteString("/start - Show your IDs\n")
	b.WriteString("/id - Show your IDs\n")
	b.WriteString("/help - Show help message")
	return b.String()
}

func idReply(ev bus.InboundEvent) string {
	var b strings.Builder
	if ev.Chat.IsShared() {
		fmt.Fprintf(&b, "🆔 **Your User ID:** `%d`\n", ev.User.ID)
		fmt.Fprintf(&b, "👥 **Group/Channel ID:** `%d`\n", ev.Chat.ID)
		fmt.Fprintf(&b, "📝 **Group/Channel Title:** %s\n", orDefault(ev.Chat.Title, "Unknown"))
		fmt.Fprintf(&b, "📊 **Chat Type:** %s", ev.Chat.Type)
		return b.String()
	}

	fmt.Fprintf(&b, "🆔 **Your Telegram ID:** `%d`\n", ev.User.ID)
	fmt.Fprintf(&b, "👤 **Username:** @%s\n", orDefault(ev.User.Username, "None"))
	fmt.Fprintf(&b, "📝 **First Name:** %s\n", orDefault(ev.User.FirstName, "None"))
	fmt.Fprintf(&b, "📝 **Last Name:** %s", orDefault(ev.User.LastName, "None"))
	return b.String()
}

func helpReply(bus.InboundEvent) string {
	return helpText
}

func messageReply(ev bus.InboundEvent) string {
	return fmt.Sprintf("🆔 Your ID: `%d`\n💬 Chat ID: `%d`\n\nUse /id for more detailed information!",
		ev.User.ID, ev.Chat.ID)
}
