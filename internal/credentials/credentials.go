// Package credentials implements the secret sources a backup run can ask
// when an account has no cached secret.
package credentials

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Provider supplies the secret for one account identity.
type Provider interface {
	RequestSecret(ctx context.Context, accountIdentity string) (string, error)
}

// Env looks up MAILBACKUP_PASSWORD_<ACCOUNT> (account mangled to an env-safe
// name), then the generic MAILBACKUP_PASSWORD.
type Env struct{}

func (Env) RequestSecret(_ context.Context, accountIdentity string) (string, error) {
	if v := os.Getenv("MAILBACKUP_PASSWORD_" + envKey(accountIdentity)); v != "" {
		return v, nil
	}
	return os.Getenv("MAILBACKUP_PASSWORD"), nil
}

func envKey(identity string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(identity) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Terminal prompts on stderr and reads the secret with echo disabled.
type Terminal struct{}

func (Terminal) RequestSecret(_ context.Context, accountIdentity string) (string, error) {
	fmt.Fprintf(os.Stderr, "Enter password for %s: ", accountIdentity)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(pw), nil
}

// Chain tries each provider in order and returns the first non-empty secret.
type Chain []Provider

func (c Chain) RequestSecret(ctx context.Context, accountIdentity string) (string, error) {
	for _, p := range c {
		secret, err := p.RequestSecret(ctx, accountIdentity)
		if err != nil {
			return "", err
		}
		if secret != "" {
			return secret, nil
		}
	}
	return "", nil
}
