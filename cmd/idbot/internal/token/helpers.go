package token

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tinyland-inc/idbot/pkg/keychain"
)

// setToken reads the first line of r. The token is never taken from argv,
// which would leave it in shell history and process listings.
func setToken(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading token: %w", err)
		}
		return errors.New("no token on stdin")
	}

	token := strings.TrimSpace(scanner.Text())
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if !strings.Contains(token, ":") {
		return errors.New("token does not look like a bot token (<id>:<secret>)")
	}

	if err := keychain.Set(keychain.TokenAccount, token); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	fmt.Fprintln(w, "✓ Token stored in system keychain")
	return nil
}

func tokenStatus(w io.Writer) error {
	_, err := keychain.Get(keychain.TokenAccount)
	switch {
	case err == nil:
		fmt.Fprintln(w, "Token: stored in system keychain")
	case errors.Is(err, keychain.ErrNotFound):
		fmt.Fprintln(w, "Token: not stored")
	default:
		return fmt.Errorf("reading keychain: %w", err)
	}
	return nil
}

func deleteToken(w io.Writer) error {
	if err := keychain.Delete(keychain.TokenAccount); err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	fmt.Fprintln(w, "✓ Token removed from system keychain")
	return nil
}
