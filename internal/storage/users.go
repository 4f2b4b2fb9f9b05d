package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/echo-arcade/internal/identity"
)

var _ identity.UserRepo = (*Store)(nil)

// SaveUser inserts a new user. A taken username yields identity.ErrUserExists.
func (s *Store) SaveUser(u *identity.User) error {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		"INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)",
		u.ID.String(), u.Username, u.PasswordHash, createdAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return identity.ErrUserExists
		}
		return fmt.Errorf("storage: cannot save user: %w", err)
	}
	return nil
}

// UserByUsername looks a user up by name.
func (s *Store) UserByUsername(username string) (*identity.User, error) {
	return s.queryUser("SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
}

// UserByID looks a user up by ID.
func (s *Store) UserByID(id uuid.UUID) (*identity.User, error) {
	return s.queryUser("SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id.String())
}

func (s *Store) queryUser(query string, arg any) (*identity.User, error) {
	var (
		u         identity.User
		id        string
		createdAt any
	)
	err := s.db.QueryRow(query, arg).Scan(&id, &u.Username, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, identity.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user: %w", err)
	}

	u.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("storage: corrupt user id %q: %w", id, err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}
