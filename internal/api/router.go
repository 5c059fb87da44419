package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/waxca059-max/MyNotes/internal/ai"
	"github.com/waxca059-max/MyNotes/internal/auth"
	"github.com/waxca059-max/MyNotes/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// Auth routes are public; everything else requires a Bearer JWT.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(notes *noteservice.Service, accounts *auth.Service, adapter *ai.Adapter, uploadsDir string, sseHandler http.Handler) chi.Router {
	h := NewHandler(notes)
	authH := NewAuthHandler(accounts)
	aiH := NewAIHandler(adapter)
	upH := NewUploadHandler(uploadsDir)

	r := chi.NewRouter()

	// Accounts.
	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Everything else requires a valid token.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(accounts.Tokens()))

		r.Get("/notes", h.ListNotes)
		r.Post("/notes", h.SaveNote)
		r.Get("/notes/{id}", h.GetNote)
		r.Delete("/notes/{id}", h.DeleteNote)

		r.Post("/ai/summarize", aiH.Summarize)
		r.Post("/ai/tags", aiH.SuggestTags)
		r.Post("/ai/chat", aiH.Chat)
		r.Post("/ai/format", aiH.Format)

		r.Post("/upload", upH.Upload)
		r.Get("/uploads/{filename}", upH.ServeFile)

		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
