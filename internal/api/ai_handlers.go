package api

import (
	"encoding/json"
	"net/http"

	"github.com/waxca059-max/MyNotes/internal/ai"
)

// AIHandler holds the AI assistant route handlers.
type AIHandler struct {
	adapter *ai.Adapter
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(adapter *ai.Adapter) *AIHandler {
	return &AIHandler{adapter: adapter}
}

func decodeAIRequest(w http.ResponseWriter, r *http.Request) (*AIRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxNoteBody)
	var req AIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return nil, false
	}
	return &req, true
}

// Summarize handles POST /api/ai/summarize.
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAIRequest(w, r)
	if !ok {
		return
	}
	summary, err := h.adapter.Summarize(r.Context(), req.Content)
	if err != nil {
		writeError(w, err, "summarize")
		return
	}
	writeJSON(w, http.StatusOK, okBody(map[string]string{"summary": summary}))
}

// SuggestTags handles POST /api/ai/tags. This endpoint never fails on
// provider errors; it degrades to an empty tag list.
func (h *AIHandler) SuggestTags(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAIRequest(w, r)
	if !ok {
		return
	}
	tags := h.adapter.SuggestTags(r.Context(), req.Content)
	writeJSON(w, http.StatusOK, okBody(map[string][]string{"tags": tags}))
}

// Chat handles POST /api/ai/chat.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAIRequest(w, r)
	if !ok {
		return
	}
	answer, err := h.adapter.Chat(r.Context(), req.Content, req.Question, req.History)
	if err != nil {
		writeError(w, err, "chat")
		return
	}
	writeJSON(w, http.StatusOK, okBody(map[string]string{"answer": answer}))
}

// Format handles POST /api/ai/format.
func (h *AIHandler) Format(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAIRequest(w, r)
	if !ok {
		return
	}
	formatted, err := h.adapter.Format(r.Context(), req.Content)
	if err != nil {
		writeError(w, err, "format")
		return
	}
	writeJSON(w, http.StatusOK, okBody(map[string]string{"formatted": formatted}))
}
