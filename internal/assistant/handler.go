package assistant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Thakshaka/clinic-management-system/internal/history"
	"github.com/Thakshaka/clinic-management-system/internal/http/middleware"
	"github.com/Thakshaka/clinic-management-system/pkg/logging"
)

// Handler wires HTTP requests to the assistant service.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates an assistant handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("assistant: service cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		service: service,
		logger:  logger,
	}
}

type messageRequest struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message history.ChatMessage `json:"message"`
	Intent  string              `json:"intent"`
}

type historyResponse struct {
	Messages []history.ChatMessage `json:"messages"`
}

type quickActionsResponse struct {
	QuickActions []QuickAction `json:"quickActions"`
}

// Message handles POST /assistant/message.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.PatientEmailFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode message request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.Send(r.Context(), email, req.Message)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			http.Error(w, "Message cannot be empty", http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to process message", "error", err)
		http.Error(w, "Failed to process message", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{Message: result.Message, Intent: string(result.Intent)})
}

// History handles GET /assistant/history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.PatientEmailFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	messages := h.service.History(r.Context(), email)
	h.writeJSON(w, http.StatusOK, historyResponse{Messages: messages})
}

// ClearHistory handles DELETE /assistant/history.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.PatientEmailFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cleared, err := h.service.ClearHistory(r.Context(), email)
	if err != nil {
		h.logger.Error("failed to clear history", "error", err)
		http.Error(w, "Failed to clear history", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{Message: cleared})
}

// QuickActions handles GET /assistant/quick-actions.
func (h *Handler) QuickActions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, quickActionsResponse{QuickActions: h.service.QuickActions()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
