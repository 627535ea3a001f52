package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/partyhub/party-ui-api/internal/data"
)

// AuthEventReader exposes the audit trail to the admin endpoints.
type AuthEventReader interface {
	ListRecent(ctx context.Context, limit int) ([]data.AuthEventRecord, error)
	CountByKind(ctx context.Context, since time.Time) (map[string]int64, error)
}

// EventHandlers serves the auth activity log to privileged roles.
type EventHandlers struct {
	Events AuthEventReader
	Logger *slog.Logger
}

const (
	defaultEventListLimit = 50
	maxEventListLimit     = 500
	defaultCountWindow    = 24 * time.Hour
)

// List handles GET /admin/auth-events.
func (h *EventHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultEventListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_limit",
				Err:     errors.New("limit must be a positive integer"),
			})
			return
		}
		limit = min(parsed, maxEventListLimit)
	}

	events, err := h.Events.ListRecent(r.Context(), limit)
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "list auth events failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "event_log_unavailable",
			Err:     errors.New("event log unavailable"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

// Counts handles GET /admin/auth-event-counts.
func (h *EventHandlers) Counts(w http.ResponseWriter, r *http.Request) {
	window := defaultCountWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_window",
				Err:     errors.New("window must be a positive duration"),
			})
			return
		}
		window = parsed
	}

	counts, err := h.Events.CountByKind(r.Context(), time.Now().Add(-window))
	if err != nil {
		h.Logger.ErrorContext(r.Context(), "count auth events failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "event_log_unavailable",
			Err:     errors.New("event log unavailable"),
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"window": window.String(),
		"counts": counts,
	})
}
