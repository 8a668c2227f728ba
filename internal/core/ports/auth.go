package ports

import "context"

// Authorizer guards scan invocation.
//
//go:generate mockgen -source=auth.go -destination=mocks/mock_auth.go -package=mocks
type Authorizer interface {
	// Authorize returns domain.ErrUnauthorized when token does not grant access.
	Authorize(ctx context.Context, token string) error
}
