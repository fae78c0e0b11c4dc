package services

import (
	"context"
	"errors"

	"github.com/happythoughts/thoughts-service/internal/auth"
	"github.com/happythoughts/thoughts-service/internal/model"
	"github.com/happythoughts/thoughts-service/internal/store"
)

// ErrInvalidCredentials is returned for any login failure. It deliberately
// does not reveal whether the username exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Profile is the identity summary returned by Me.
type Profile struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	LikedIDs []string `json:"likedIds"`
}

// LoginResult carries a fresh token plus the public identity fields.
type LoginResult struct {
	Token    string `json:"token"`
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserService implements registration, login and the "who am I" lookup.
type UserService struct {
	store      store.Store
	tokens     *auth.TokenManager
	bcryptCost int
}

func NewUserService(s store.Store, tokens *auth.TokenManager, bcryptCost int) *UserService {
	return &UserService{store: s, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates an account. Uniqueness of username and email is enforced
// by the store's constraints, not by a separate read, so two racing
// registrations cannot both win.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	return s.store.Users().Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
}

// Login verifies the credentials and issues a token bound to the user id.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.store.Users().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.UserID, user.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ID: user.UserID, Username: user.Username}, nil
}

// Me returns the caller's identity plus the authoritative list of thought
// ids they have liked. Clients reconcile any local cache against this.
func (s *UserService) Me(ctx context.Context, user *model.User) (*Profile, error) {
	likedIDs, err := s.store.Thoughts().LikedThoughtIDs(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	return &Profile{ID: user.UserID, Username: user.Username, LikedIDs: likedIDs}, nil
}
