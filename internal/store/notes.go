package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/waxca059-max/MyNotes/internal/apperr"
	"github.com/waxca059-max/MyNotes/internal/models"
)

const noteColumns = `id, user_id, title, content, category, tags, pinned, created_at, updated_at`

// SaveNote inserts the note when n.ID is empty, otherwise updates the row
// owned by userID. A note id belonging to another user is indistinguishable
// from a missing one and returns apperr.ErrNotFound. The FTS shadow rows are
// maintained by triggers inside the same statement transaction, so the
// primary write and the index write are one atomic unit.
//
// updated_at is always assigned here, never taken from the caller.
func (db *DB) SaveNote(userID string, n models.Note) (*models.Note, error) {
	now := time.Now().UTC()
	if n.Category == "" {
		n.Category = "default"
	}
	tagsJSON, _ := json.Marshal(nonNilTags(n.Tags))

	if n.ID == "" {
		n.ID = uuid.NewString()
		_, err := db.conn.Exec(`
			INSERT INTO notes (id, user_id, title, content, category, tags, pinned, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, n.ID, userID, n.Title, n.Content, n.Category, string(tagsJSON), boolToInt(n.Pinned), now, now)
		if err != nil {
			if isConstraint(err) {
				return nil, fmt.Errorf("store: insert note: %w", apperr.ErrConflict)
			}
			return nil, fmt.Errorf("store: insert note: %w", err)
		}
		return db.GetNote(userID, n.ID)
	}

	res, err := db.conn.Exec(`
		UPDATE notes
		SET title = ?, content = ?, category = ?, tags = ?, pinned = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, n.Title, n.Content, n.Category, string(tagsJSON), boolToInt(n.Pinned), now, n.ID, userID)
	if err != nil {
		if isConstraint(err) {
			return nil, fmt.Errorf("store: update note: %w", apperr.ErrConflict)
		}
		return nil, fmt.Errorf("store: update note: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return nil, apperr.ErrNotFound
	}
	return db.GetNote(userID, n.ID)
}

// GetNote returns a single note scoped by owner.
func (db *DB) GetNote(userID, id string) (*models.Note, error) {
	row := db.conn.QueryRow(`
		SELECT `+noteColumns+` FROM notes WHERE id = ? AND user_id = ?
	`, id, userID)
	n, err := scanNote(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get note: %w", err)
	}
	return n, nil
}

// ListNotes returns every note owned by userID, pinned first, then most
// recently updated.
func (db *DB) ListNotes(userID string) ([]models.Note, error) {
	rows, err := db.conn.Query(`
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_id = ?
		ORDER BY pinned DESC, updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	return collectNotes(rows)
}

// DeleteNote removes a note scoped by owner. Zero rows affected means the
// note does not exist for that owner.
func (db *DB) DeleteNote(userID, id string) error {
	res, err := db.conn.Exec(`DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func collectNotes(rows *sql.Rows) ([]models.Note, error) {
	defer rows.Close()
	var out []models.Note
	for rows.Next() {
		n, err := scanNote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("store: scan note: %w", err)
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func scanNote(scan func(...any) error) (*models.Note, error) {
	var (
		n        models.Note
		tagsJSON string
		pinned   int
	)
	if err := scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Category, &tagsJSON, &pinned, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil || n.Tags == nil {
		n.Tags = []string{}
	}
	n.Pinned = pinned != 0
	return &n, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
