// Package auth guards scan invocation with a shared bearer token.
package auth

import (
	"context"
	"crypto/subtle"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/vigil/internal/core/ports"
)

// TokenAuthorizer compares callers' tokens against a configured secret.
// An empty secret disables the check.
type TokenAuthorizer struct {
	token []byte
}

var _ ports.Authorizer = (*TokenAuthorizer)(nil)

// NewTokenAuthorizer creates a TokenAuthorizer for token.
func NewTokenAuthorizer(token string) *TokenAuthorizer {
	return &TokenAuthorizer{token: []byte(token)}
}

// Authorize returns domain.ErrUnauthorized unless token matches the configured secret.
func (a *TokenAuthorizer) Authorize(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(a.token) == 0 {
		return nil
	}
	if subtle.ConstantTimeCompare(a.token, []byte(token)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}
