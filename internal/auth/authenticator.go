package auth

import (
	"context"
	"net/http"

	"github.com/happythoughts/thoughts-service/internal/model"
	"github.com/happythoughts/thoughts-service/internal/store"
)

// Authenticator resolves a request's bearer credential to a user identity.
// It is pure verification plus a lookup; it never mutates state.
type Authenticator interface {
	// Authenticate extracts, verifies and resolves the credential.
	// Any failure maps to HTTP 401 at the transport layer.
	Authenticate(ctx context.Context, r *http.Request) (*model.User, error)
}

// TokenAuthenticator verifies signed tokens and resolves them against the
// user store.
type TokenAuthenticator struct {
	tokens *TokenManager
	users  store.Users
}

func NewTokenAuthenticator(tokens *TokenManager, users store.Users) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens, users: users}
}

func (a *TokenAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*model.User, error) {
	token, err := ExtractBearerToken(r)
	if err != nil {
		return nil, err
	}

	claims, err := a.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	// A token may outlive its identity (account removed out-of-band);
	// resolve it on every request.
	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}
