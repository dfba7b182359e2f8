package token

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/tinyland-inc/idbot/pkg/keychain"
)

func TestNewTokenCommand(t *testing.T) {
	cmd := NewTokenCommand()

	require.NotNil(t, cmd)

	assert.Equal(t, "token", cmd.Use)
	assert.Equal(t, "Manage the bot token in the system keychain", cmd.Short)
	assert.True(t, cmd.HasExample())
	assert.True(t, cmd.HasSubCommands())

	for _, name := range []string{"set", "status", "delete"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Use)
	}
}

func TestTokenLifecycle(t *testing.T) {
	keyring.MockInit()

	var out bytes.Buffer
	require.NoError(t, tokenStatus(&out))
	assert.Contains(t, out.String(), "not stored")

	out.Reset()
	require.NoError(t, setToken(strings.NewReader("123:abc\n"), &out))
	assert.Contains(t, out.String(), "Token stored")

	stored, err := keychain.Get(keychain.TokenAccount)
	require.NoError(t, err)
	assert.Equal(t, "123:abc", stored)

	out.Reset()
	require.NoError(t, tokenStatus(&out))
	assert.Contains(t, out.String(), "stored in system keychain")
	assert.NotContains(t, out.String(), "123:abc")

	out.Reset()
	require.NoError(t, deleteToken(&out))
	_, err = keychain.Get(keychain.TokenAccount)
	assert.ErrorIs(t, err, keychain.ErrNotFound)
}

func TestSetToken_RejectsBadInput(t *testing.T) {
	keyring.MockInit()

	for _, in := range []string{"", "   \n", "not-a-token"} {
		assert.Error(t, setToken(strings.NewReader(in), &bytes.Buffer{}), in)
	}
}
