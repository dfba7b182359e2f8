package handle

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyland-inc/idbot/pkg/channels"
	"github.com/tinyland-inc/idbot/pkg/telegram"
)

func TestNewHandleCommand(t *testing.T) {
	cmd := NewHandleCommand()

	require.NotNil(t, cmd)

	assert.Equal(t, "handle", cmd.Use)
	assert.Equal(t, "Dispatch one webhook update read from stdin", cmd.Short)
	assert.Empty(t, cmd.Aliases)

	assert.True(t, cmd.HasExample())
	assert.False(t, cmd.HasSubCommands())
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("debug"))
}

type recordingHandler struct {
	bodies [][]byte
	err    error
}

func (h *recordingHandler) HandleBody(_ context.Context, body []byte) error {
	h.bodies = append(h.bodies, body)
	return h.err
}

func TestHandleInput_EmptyPrintsStatus(t *testing.T) {
	for _, in := range []string{"", "  \n"} {
		h := &recordingHandler{}
		var out bytes.Buffer

		require.NoError(t, handleInput(context.Background(), h, strings.NewReader(in), &out))
		assert.Equal(t, channels.StatusText, out.String())
		assert.Empty(t, h.bodies)
	}
}

func TestHandleInput_DispatchesOnce(t *testing.T) {
	h := &recordingHandler{}
	var out bytes.Buffer

	require.NoError(t, handleInput(context.Background(), h, strings.NewReader(`{"update_id":1}`+"\n"), &out))
	require.Len(t, h.bodies, 1)
	assert.Equal(t, `{"update_id":1}`, string(h.bodies[0]))
	assert.Empty(t, out.String())
}

func TestHandleInput_FailuresAreNotFatal(t *testing.T) {
	for _, err := range []error{
		&telegram.DecodeError{What: "update", Err: errors.New("bad")},
		telegram.ErrUnrecognizedInput,
		errors.New("send failed"),
	} {
		h := &recordingHandler{err: err}
		assert.NoError(t, handleInput(context.Background(), h, strings.NewReader("x"), &bytes.Buffer{}))
	}
}
