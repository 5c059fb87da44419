//go:build sqlite_fts5

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/waxca059-max/MyNotes/internal/models"
)

// initFTS creates the shadow search table and the three triggers that keep it
// in lockstep with the notes table. Because triggers fire inside the same
// transaction as the primary write, there is no write path that can leave the
// index stale.
func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS notes_fts USING fts5(
			id UNINDEXED,
			user_id UNINDEXED,
			title,
			content,
			tokenize = 'unicode61 remove_diacritics 2'
		);

		CREATE TRIGGER IF NOT EXISTS notes_fts_insert AFTER INSERT ON notes BEGIN
			INSERT INTO notes_fts (id, user_id, title, content)
			VALUES (new.id, new.user_id, new.title, new.content);
		END;

		CREATE TRIGGER IF NOT EXISTS notes_fts_update AFTER UPDATE ON notes BEGIN
			DELETE FROM notes_fts WHERE id = old.id;
			INSERT INTO notes_fts (id, user_id, title, content)
			VALUES (new.id, new.user_id, new.title, new.content);
		END;

		CREATE TRIGGER IF NOT EXISTS notes_fts_delete AFTER DELETE ON notes BEGIN
			DELETE FROM notes_fts WHERE id = old.id;
		END;
	`)
	return err
}

// matchExpr quotes query as a single FTS5 phrase with a prefix wildcard.
// Embedded double quotes are doubled so user input can never break out of
// the phrase quoting.
func matchExpr(query string) string {
	return `"` + strings.ReplaceAll(query, `"`, `""`) + `"*`
}

// SearchNotes performs an FTS5 full-text search over title and content,
// restricted to userID's notes. Pinned notes sort first, then by relevance.
func (db *DB) SearchNotes(userID, query string, limit int) ([]models.Note, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.conn.Query(`
		SELECT n.id, n.user_id, n.title, n.content, n.category, n.tags, n.pinned, n.created_at, n.updated_at
		FROM notes_fts
		JOIN notes n ON n.id = notes_fts.id
		WHERE notes_fts MATCH ? AND notes_fts.user_id = ?
		ORDER BY n.pinned DESC, notes_fts.rank
		LIMIT ?
	`, matchExpr(query), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("store: search: %w", err)
	}
	return collectNotes(rows)
}
