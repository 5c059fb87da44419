//go:build !sqlite_fts5

package store

import (
	"database/sql"
	"fmt"

	"github.com/waxca059-max/MyNotes/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not compiled in; full-text search uses a LIKE fallback over the
	// notes table and no shadow index is maintained.
	return nil
}

// SearchNotes performs a LIKE-based search (fallback when FTS5 is not
// compiled in). Pinned notes still sort first, tie-broken by recency since
// there is no relevance rank.
func (db *DB) SearchNotes(userID, query string, limit int) ([]models.Note, error) {
	if limit <= 0 {
		limit = 50
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT `+noteColumns+`
		FROM notes
		WHERE user_id = ? AND (title LIKE ? OR content LIKE ?)
		ORDER BY pinned DESC, updated_at DESC
		LIMIT ?
	`, userID, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	return collectNotes(rows)
}
