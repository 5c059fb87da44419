package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/waxca059-max/MyNotes/internal/ai"
	"github.com/waxca059-max/MyNotes/internal/noteservice"
)

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks registration constraints.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 64)),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 128)),
	)
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks login constraints.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// AuthResponse carries the issued token and user payload.
type AuthResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

// SaveNoteRequest is the request body for creating or updating a note.
// An empty id creates a new note.
type SaveNoteRequest = noteservice.NoteInput

// AIRequest is the request body shared by the AI endpoints. Question and
// History are only meaningful for /ai/chat.
type AIRequest struct {
	Content  string       `json:"content"`
	Question string       `json:"question"`
	History  []ai.Message `json:"history"`
}
