// Package auth supplies and persists chat credentials.
//
// Tokens are fetched through a Provider at connect time rather than fixed
// at construction, so sessions started after a token refresh pick up the
// new value automatically.
package auth

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Environment variables read by Env when none are configured.
const (
	DefaultLoginVar = "CHATWIRE_LOGIN"
	DefaultTokenVar = "CHATWIRE_TOKEN"
)

// Provider supplies the login and token used to register a session. An
// empty token registers without a PASS line.
type Provider interface {
	Credentials(ctx context.Context) (login, token string, err error)
}

// Static always returns the same login and token.
type Static struct {
	Login string
	Token string
}

// Credentials returns the configured pair.
func (s Static) Credentials(_ context.Context) (string, string, error) {
	if s.Login == "" {
		return "", "", ErrNoCredentials
	}
	return s.Login, s.Token, nil
}

// Env reads the login and token from environment variables on every call.
type Env struct {
	// LoginVar defaults to DefaultLoginVar.
	LoginVar string
	// TokenVar defaults to DefaultTokenVar.
	TokenVar string
}

// Credentials reads the configured variables.
func (e Env) Credentials(_ context.Context) (string, string, error) {
	loginVar := e.LoginVar
	if loginVar == "" {
		loginVar = DefaultLoginVar
	}
	tokenVar := e.TokenVar
	if tokenVar == "" {
		tokenVar = DefaultTokenVar
	}

	login := os.Getenv(loginVar)
	if login == "" {
		return "", "", fmt.Errorf("%w: %s not set", ErrNoCredentials, loginVar)
	}
	return login, os.Getenv(tokenVar), nil
}

type anonymous struct{}

// Anonymous returns a provider that generates a fresh justinfan login per
// session. Anonymous sessions can read chat but not send.
func Anonymous() Provider {
	return anonymous{}
}

// Credentials returns a random read-only login and no token.
func (anonymous) Credentials(_ context.Context) (string, string, error) {
	u := uuid.New()
	n := binary.BigEndian.Uint32(u[:4]) % 100000000
	return fmt.Sprintf("justinfan%d", n), "", nil
}
