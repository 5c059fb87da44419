package store

import "github.com/waxca059-max/MyNotes/internal/models"

// NoteStore defines the interface for note and user persistence.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type NoteStore interface {
	CreateUser(u *models.User) error
	GetUser(id string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	DeleteUser(id string) error

	SaveNote(userID string, n models.Note) (*models.Note, error)
	GetNote(userID, id string) (*models.Note, error)
	ListNotes(userID string) ([]models.Note, error)
	SearchNotes(userID, query string, limit int) ([]models.Note, error)
	DeleteNote(userID, id string) error

	Close() error
}

// Verify *DB satisfies NoteStore at compile time.
var _ NoteStore = (*DB)(nil)
