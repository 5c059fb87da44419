// Package noteservice coordinates note persistence, search, and change
// notifications for the API and MCP layers.
package noteservice

import (
	"context"
	"strings"

	"github.com/waxca059-max/MyNotes/internal/markdown"
	"github.com/waxca059-max/MyNotes/internal/models"
	"github.com/waxca059-max/MyNotes/internal/sse"
	"github.com/waxca059-max/MyNotes/internal/store"
)

// NoteInput is the client-supplied part of a note. An empty ID means create.
type NoteInput struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Pinned   bool     `json:"pinned"`
}

// Service coordinates store operations and SSE notifications.
type Service struct {
	store  store.NoteStore
	broker *sse.Broker
}

// NewService creates a new note service. broker may be nil (no events).
func NewService(st store.NoteStore, broker *sse.Broker) *Service {
	return &Service{store: st, broker: broker}
}

// ListNotes returns the user's notes; with a non-empty query it performs
// full-text search instead. Both keep pinned notes first.
func (s *Service) ListNotes(_ context.Context, userID, query string) ([]models.Note, error) {
	var (
		notes []models.Note
		err   error
	)
	if strings.TrimSpace(query) == "" {
		notes, err = s.store.ListNotes(userID)
	} else {
		notes, err = s.store.SearchNotes(userID, query, 0)
	}
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// GetNote returns a single note scoped by owner.
func (s *Service) GetNote(_ context.Context, userID, id string) (*models.Note, error) {
	return s.store.GetNote(userID, id)
}

// SaveNote persists the note and publishes a change event. When the client
// omits the title, one is derived from the Markdown content (frontmatter
// title, first heading, or first line); frontmatter tags fill in when no
// tags were supplied.
func (s *Service) SaveNote(_ context.Context, userID string, in NoteInput) (*models.Note, error) {
	if in.Title == "" || len(in.Tags) == 0 {
		parsed := markdown.Parse(in.Content)
		if in.Title == "" {
			in.Title = parsed.Title
		}
		if len(in.Tags) == 0 && len(parsed.Tags) > 0 {
			in.Tags = parsed.Tags
		}
	}

	creating := in.ID == ""
	saved, err := s.store.SaveNote(userID, models.Note{
		ID:       in.ID,
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
		Tags:     in.Tags,
		Pinned:   in.Pinned,
	})
	if err != nil {
		return nil, err
	}

	if s.broker != nil {
		kind := "updated"
		if creating {
			kind = "created"
		}
		s.broker.PublishNoteEvent(userID, kind, saved.ID)
	}
	return saved, nil
}

// DeleteNote removes the note and publishes a deletion event.
func (s *Service) DeleteNote(_ context.Context, userID, id string) error {
	if err := s.store.DeleteNote(userID, id); err != nil {
		return err
	}
	if s.broker != nil {
		s.broker.PublishNoteEvent(userID, "deleted", id)
	}
	return nil
}
