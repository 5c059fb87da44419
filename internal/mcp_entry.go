package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/waxca059-max/MyNotes/internal/mcpserver"
	"github.com/waxca059-max/MyNotes/internal/noteservice"
	"github.com/waxca059-max/MyNotes/internal/store"
)

// RunMCP starts the stdio MCP server bound to the given user's notes.
// Logs go to stderr so stdout stays clean for the MCP transport.
func RunMCP(_ context.Context, cfg *Config, username string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	if username == "" {
		return fmt.Errorf("username is required")
	}

	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer db.Close()

	user, err := db.GetUserByUsername(username)
	if err != nil {
		return fmt.Errorf("lookup user %q: %w", username, err)
	}

	logger.Info("MCP server starting",
		slog.String("username", user.Username),
		slog.String("sqlite_path", cfg.SQLite.Path))

	srv := mcpserver.New(noteservice.NewService(db, nil), user.ID)
	return srv.ServeStdio()
}
