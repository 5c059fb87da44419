package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/waxca059-max/MyNotes/internal/apperr"
	"github.com/waxca059-max/MyNotes/internal/models"
	"github.com/waxca059-max/MyNotes/internal/store"
)

// Service handles registration and login against the user table.
type Service struct {
	store  store.NoteStore
	tokens *TokenIssuer
}

// NewService creates a new auth service.
func NewService(st store.NoteStore, tokens *TokenIssuer) *Service {
	return &Service{store: st, tokens: tokens}
}

// Tokens exposes the token issuer for the HTTP middleware.
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// Register creates a user and returns it with a fresh bearer token.
// A taken username surfaces as ErrConflict from the store.
func (s *Service) Register(_ context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("username and password are required: %w", apperr.ErrInvalidInput)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("auth: hash password: %w", err)
	}

	u := &models.User{Username: username, PasswordHash: hash}
	if err := s.store.CreateUser(u); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("auth: issue token: %w", err)
	}
	return u, token, nil
}

// Login verifies credentials and returns the user with a fresh bearer token.
// A wrong password and an unknown username are both ErrUnauthorized so the
// response does not reveal which one was wrong.
func (s *Service) Login(_ context.Context, username, password string) (*models.User, string, error) {
	u, err := s.store.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, "", apperr.ErrUnauthorized
		}
		return nil, "", err
	}
	if !CheckPassword(u.PasswordHash, password) {
		return nil, "", apperr.ErrUnauthorized
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("auth: issue token: %w", err)
	}
	return u, token, nil
}
