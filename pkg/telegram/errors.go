package telegram

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrUnrecognizedInput marks an update that carries nothing this bot handles.
// Callers drop it silently.
var ErrUnrecognizedInput = errors.New("unrecognized input")

// TransportError is a failed Bot API call: network failure, timeout,
// non-200 status, or a response with ok=false.
type TransportError struct {
	Method      string
	StatusCode  int    // 0 when no response was received
	Description string // Telegram's description, when it sent one
	Err         error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("telegram %s: %v", e.Method, e.Err)
	case e.Description != "":
		return fmt.Sprintf("telegram %s: status %d: %s", e.Method, e.StatusCode, e.Description)
	default:
		return fmt.Sprintf("telegram %s: status %d", e.Method, e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is a JSON payload that could not be decoded.
type DecodeError struct {
	What string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.What, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// redact drops the request URL from net/http errors; it embeds the bot token.
func redact(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}
