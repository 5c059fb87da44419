package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/waxca059-max/MyNotes/internal/apperr"
	"github.com/waxca059-max/MyNotes/internal/models"
)

// CreateUser inserts a new user. An empty ID is assigned a fresh UUID.
// A duplicate username maps to apperr.ErrConflict.
func (db *DB) CreateUser(u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := db.conn.Exec(`
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, u.ID, u.Username, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isConstraint(err) {
			return fmt.Errorf("store: username %q: %w", u.Username, apperr.ErrConflict)
		}
		return fmt.Errorf("store: create user: %w", err)
	}
	return nil
}

// GetUser returns a user by id.
func (db *DB) GetUser(id string) (*models.User, error) {
	return db.scanUser(db.conn.QueryRow(`
		SELECT id, username, password_hash, created_at FROM users WHERE id = ?
	`, id))
}

// GetUserByUsername returns a user by its unique username.
func (db *DB) GetUserByUsername(username string) (*models.User, error) {
	return db.scanUser(db.conn.QueryRow(`
		SELECT id, username, password_hash, created_at FROM users WHERE username = ?
	`, username))
}

// DeleteUser removes a user; owned notes (and their index rows) cascade away.
func (db *DB) DeleteUser(id string) error {
	res, err := db.conn.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (db *DB) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: scan user: %w", err)
	}
	return &u, nil
}
