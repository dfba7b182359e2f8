package commands

import "strings"

// Route is the handler an inbound text is sent to.
type Route int

const (
	RouteNone Route = iota
	RouteStart
	RouteID
	RouteHelp
	RouteMessage
)

func (r Route) String() string {
	switch r {
	case RouteStart:
		return "start"
	case RouteID:
		return "id"
	case RouteHelp:
		return "help"
	case RouteMessage:
		return "message"
	default:
		return "none"
	}
}

var knownCommands = map[string]Route{
	"/start": RouteStart,
	"/id":    RouteID,
	"/help":  RouteHelp,
}

// Classify picks the route for text.
//
// Commands are matched on the whole first token, so "/idfoo" is not "/id".
// A "/cmd@name" suffix is accepted when botUsername is empty or equal to name;
// commands addressed to another bot are ignored. Unknown commands are ignored.
// Any other non-empty text goes to RouteMessage.
func Classify(text, botUsername string) Route {
	if text == "" {
		return RouteNone
	}
	if !strings.HasPrefix(text, "/") {
		return RouteMessage
	}

	token := strings.Fields(text)[0]
	name, target, _ := strings.Cut(token, "@")
	if target != "" && botUsername != "" &&
		!strings.EqualFold(target, strings.TrimPrefix(botUsername, "@")) {
		return RouteNone
	}

	return knownCommands[name]
}
