package mcpserver

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/waxca059-max/MyNotes/internal/models"
	"github.com/waxca059-max/MyNotes/internal/noteservice"
	"github.com/waxca059-max/MyNotes/internal/store"
)

func testServer(t *testing.T) *Server {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "mcp-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	user := &models.User{Username: "alice", PasswordHash: "x"}
	if err := db.CreateUser(user); err != nil {
		t.Fatal(err)
	}

	return New(noteservice.NewService(db, nil), user.ID)
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we invoke the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_notes":
		result, err = srv.listNotes(ctx, req)
	case "search_notes":
		result, err = srv.searchNotes(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	case "save_note":
		result, err = srv.saveNote(ctx, req)
	case "delete_note":
		result, err = srv.deleteNote(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSaveAndReadNote(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "save_note", map[string]interface{}{
		"content": "# Test\nHello",
	})
	text := resultText(r)
	if !strings.HasPrefix(text, "saved: ") {
		t.Fatalf("save result = %q", text)
	}
	id := strings.TrimPrefix(text, "saved: ")

	r = callTool(t, srv, "read_note", map[string]interface{}{"id": id})
	var note models.Note
	if err := json.Unmarshal([]byte(resultText(r)), &note); err != nil {
		t.Fatalf("decode note: %v", err)
	}
	if note.Title != "Test" {
		t.Errorf("title = %q, want Test (derived from heading)", note.Title)
	}
	if note.Content != "# Test\nHello" {
		t.Errorf("content = %q", note.Content)
	}
}

func TestListNotesTool(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "save_note", map[string]interface{}{"content": "a"})
	callTool(t, srv, "save_note", map[string]interface{}{"content": "b"})

	r := callTool(t, srv, "list_notes", map[string]interface{}{})
	var notes []models.Note
	if err := json.Unmarshal([]byte(resultText(r)), &notes); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("list returned %d notes, want 2", len(notes))
	}
}

func TestSearchNotesTool(t *testing.T) {
	srv := testServer(t)
	callTool(t, srv, "save_note", map[string]interface{}{"content": "meeting agenda for friday"})
	callTool(t, srv, "save_note", map[string]interface{}{"content": "grocery list"})

	r := callTool(t, srv, "search_notes", map[string]interface{}{"query": "agenda"})
	var notes []models.Note
	if err := json.Unmarshal([]byte(resultText(r)), &notes); err != nil {
		t.Fatalf("decode search: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("search returned %d notes, want 1", len(notes))
	}
}

func TestReadNoteMissing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "read_note", map[string]interface{}{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}

func TestDeleteNoteTool(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "save_note", map[string]interface{}{"content": "bye"})
	id := strings.TrimPrefix(resultText(r), "saved: ")

	r = callTool(t, srv, "delete_note", map[string]interface{}{"id": id})
	if resultText(r) != "deleted: "+id {
		t.Errorf("delete result = %q", resultText(r))
	}

	r = callTool(t, srv, "read_note", map[string]interface{}{"id": id})
	if !r.IsError {
		t.Error("expected error reading deleted note")
	}
}
