// Package http exposes the draft and chat services over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/documedix/documedix/internal/core/domain"
	"github.com/documedix/documedix/internal/core/usecase"
)

// DraftGenerator produces one HTML section draft from user-typed content.
type DraftGenerator interface {
	GenerateSection(ctx context.Context, req usecase.DraftRequest) (string, error)
}

// ChatResponder answers one assistant message.
type ChatResponder interface {
	Reply(ctx context.Context, message, category string) (string, error)
}

type Handler struct {
	drafts DraftGenerator
	chat   ChatResponder
	logger *slog.Logger
}

func NewHandler(drafts DraftGenerator, chat ChatResponder, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{drafts: drafts, chat: chat, logger: logger}
}

// Routes registers the API endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/generate-draft", h.generateDraft)
	mux.HandleFunc("POST /api/chat", h.handleChat)
	mux.HandleFunc("GET /api/health", h.health)
}

type draftRequest struct {
	Category    string `json:"category"`
	TextContent string `json:"textContent"`
	Grade       int    `json:"grade"`
	ItemCode    string `json:"itemCode"`
}

// draftResponse is the stable envelope: both payload fields are always
// present, with explicit nulls for the unused one.
type draftResponse struct {
	Success bool    `json:"success"`
	Draft   *string `json:"draft"`
	Error   *string `json:"error"`
}

func draftOK(draft string) draftResponse {
	return draftResponse{Success: true, Draft: &draft}
}

func draftFailed(msg string) draftResponse {
	return draftResponse{Error: &msg}
}

func (h *Handler) generateDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, draftFailed("잘못된 요청 형식입니다."))
		return
	}

	draft, err := h.drafts.GenerateSection(r.Context(), usecase.DraftRequest{
		Category:    req.Category,
		TextContent: req.TextContent,
		Grade:       req.Grade,
		ItemCode:    req.ItemCode,
	})
	if err != nil {
		h.writeDraftError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draftOK(draft))
}

func (h *Handler) writeDraftError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsKind(err, domain.ErrInvalidInput) {
		writeJSON(w, http.StatusBadRequest, draftFailed(err.Error()))
		return
	}
	h.logger.Error("draft_generation_failed", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, draftFailed("초안 생성 중 오류가 발생했습니다."))
}

type chatRequest struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

type chatResponse struct {
	Success bool    `json:"success"`
	Reply   *string `json:"reply"`
	Error   *string `json:"error"`
}

func chatOK(reply string) chatResponse {
	return chatResponse{Success: true, Reply: &reply}
}

func chatFailed(msg string) chatResponse {
	return chatResponse{Error: &msg}
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, chatFailed("잘못된 요청 형식입니다."))
		return
	}

	reply, err := h.chat.Reply(r.Context(), req.Message, req.Category)
	if err != nil {
		if domain.IsKind(err, domain.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, chatFailed(err.Error()))
			return
		}
		h.logger.Error("chat_failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, chatFailed("답변 생성 중 오류가 발생했습니다."))
		return
	}
	writeJSON(w, http.StatusOK, chatOK(reply))
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
