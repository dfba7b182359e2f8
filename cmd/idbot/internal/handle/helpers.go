package handle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/tinyland-inc/idbot/pkg/channels"
	"github.com/tinyland-inc/idbot/pkg/logger"
	"github.com/tinyland-inc/idbot/pkg/telegram"
)

const maxInput = 1 << 20

type bodyHandler interface {
	HandleBody(ctx context.Context, body []byte) error
}

var _ bodyHandler = (*channels.TelegramChannel)(nil)

// handleInput dispatches the update in r. Undecodable or unrecognized input
// and failed sends are logged; none of them make the command fail.
func handleInput(ctx context.Context, h bodyHandler, r io.Reader, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	body, err := io.ReadAll(io.LimitReader(r, maxInput))
	if err != nil {
		return fmt.Errorf("error reading update: %w", err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		_, err := io.WriteString(w, channels.StatusText)
		return err
	}

	err = h.HandleBody(ctx, body)
	var decodeErr *telegram.DecodeError
	switch {
	case err == nil:
	case errors.As(err, &decodeErr):
		logger.WarnCF("handle", "Input is not a Telegram update", map[string]any{
			"error": err.Error(),
		})
	case errors.Is(err, telegram.ErrUnrecognizedInput):
		logger.InfoC("handle", "Update carries no message; nothing to answer")
	default:
		logger.DebugCF("handle", "Update not answered", map[string]any{
			"error": err.Error(),
		})
	}
	return nil
}
