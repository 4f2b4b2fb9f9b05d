package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned by SignIn for an unknown user or a wrong password.
var ErrInvalidCredentials = errors.New("identity: invalid username or password")

// UserRepo stores users.
type UserRepo interface {
	SaveUser(u *User) error
	UserByUsername(username string) (*User, error)
	UserByID(id uuid.UUID) (*User, error)
}

// Claims identifies the player behind a verified token.
type Claims struct {
	UserID   uuid.UUID
	Username string
}

const (
	claimUserID   = "userID"
	claimUsername = "username"
)

// Auth registers players and exchanges credentials for tokens.
type Auth struct {
	userRepo  UserRepo
	tokenizer Tokenizer
	tokenTTL  time.Duration
}

// NewAuth creates the auth service.
func NewAuth(repo UserRepo, tokenizer Tokenizer, tokenTTL time.Duration) *Auth {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &Auth{
		userRepo:  repo,
		tokenizer: tokenizer,
		tokenTTL:  tokenTTL,
	}
}

// Register validates and stores a new user.
func (a *Auth) Register(username, password string) (*User, error) {
	if _, err := a.userRepo.UserByUsername(username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	user, err := NewUser(UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return nil, err
	}

	if err := a.userRepo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// SignIn checks credentials and returns the user with a fresh token.
func (a *Auth) SignIn(username, password string) (*User, string, error) {
	user, err := a.userRepo.UserByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.VerifyPassword(password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		claimUserID:   user.ID.String(),
		claimUsername: user.Username,
	}, a.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("identity: sign token: %w", err)
	}
	return user, token, nil
}

// Verify decodes a token into the player's claims.
func (a *Auth) Verify(token string) (Claims, error) {
	raw, err := a.tokenizer.Decode(token)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	idStr, _ := raw[claimUserID].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	name, _ := raw[claimUsername].(string)
	if name == "" {
		return Claims{}, ErrInvalidToken
	}
	return Claims{UserID: id, Username: name}, nil
}

// Me loads the user a verified token belongs to.
func (a *Auth) Me(claims Claims) (*User, error) {
	return a.userRepo.UserByID(claims.UserID)
}
