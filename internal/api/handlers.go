package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hookwell/hookwell/internal/events"
	"github.com/hookwell/hookwell/internal/intake"
	"github.com/hookwell/hookwell/internal/metrics"
	"github.com/hookwell/hookwell/internal/ratelimit"
)

// SignatureHeader carries the sender's hex-encoded HMAC-SHA256 tag.
const SignatureHeader = "x-webhook-signature"

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// handleIntake handles POST /webhooks
func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	// Read one byte past the limit so oversized bodies are detectable.
	body, err := io.ReadAll(io.LimitReader(r.Body, s.config.MaxBodyBytes+1))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if int64(len(body)) > s.config.MaxBodyBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	var req IntakeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if n := len(req.Source); n < 1 || n > 100 {
		s.writeError(w, http.StatusBadRequest, "source must be 1-100 characters")
		return
	}
	if n := len(req.EventType); n < 1 || n > 100 {
		s.writeError(w, http.StatusBadRequest, "eventType must be 1-100 characters")
		return
	}

	payload := make(map[string]any)
	if len(req.Payload) > 0 {
		if err := json.Unmarshal(req.Payload, &payload); err != nil {
			s.writeError(w, http.StatusBadRequest, "payload must be a JSON object")
			return
		}
	}
	if len(payload) == 0 {
		s.writeError(w, http.StatusBadRequest, "payload must be a non-empty JSON object")
		return
	}

	res := s.guard.Handle(intake.Request{
		Source:      req.Source,
		EventType:   req.EventType,
		Payload:     payload,
		ProvidedTag: r.Header.Get(SignatureHeader),
		Identity:    ratelimit.Identity(r.Header.Get("X-Forwarded-For"), r.RemoteAddr),
	})

	if res.RateLimited {
		w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfterSeconds))
		respondJSON(w, http.StatusTooManyRequests, RateLimitedResponse{
			Message:           "Too many requests",
			RetryAfterSeconds: res.RetryAfterSeconds,
		})
		return
	}

	respondJSON(w, http.StatusCreated, IntakeResponse{
		ID:      res.Event.ID,
		Message: "Webhook received",
	})
}

// handleListEvents handles GET /webhooks
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil || page < 1 {
		s.writeError(w, http.StatusBadRequest, "page must be a positive integer")
		return
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil || limit < 1 || limit > maxLimit {
		s.writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
		return
	}

	items, total := s.store.Query(page, limit, r.URL.Query().Get("source"), r.URL.Query().Get("eventType"))

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	respondJSON(w, http.StatusOK, EventListResponse{
		Items:      items,
		Count:      len(items),
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

// handleGetEvent handles GET /webhooks/{eventID}. A malformed id gets the
// same response as an absent one, so callers cannot probe id syntax.
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	if _, err := uuid.Parse(eventID); err != nil {
		s.writeError(w, http.StatusNotFound, "event not found")
		return
	}

	evt, ok := s.store.Get(eventID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "event not found")
		return
	}

	respondJSON(w, http.StatusOK, evt)
}

// handleDeleteEvent handles DELETE /webhooks/{eventID}
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	if _, err := uuid.Parse(eventID); err != nil {
		s.writeError(w, http.StatusNotFound, "event not found")
		return
	}

	if !s.store.Delete(eventID) {
		s.writeError(w, http.StatusNotFound, "event not found")
		return
	}

	metrics.EventsDeleted.Inc()
	metrics.StoreEvents.Set(float64(s.store.Count()))
	s.hub.Publish(events.KindDeleted, events.DeletedData{ID: eventID})
	s.logger.Info("event deleted via API", "id", eventID)

	w.WriteHeader(http.StatusNoContent)
}

// handleHealthz handles GET /healthz (no auth).
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := HealthzResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		EventsStored:  s.store.Count(),
		Capacity:      s.store.Capacity(),
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleAdminClear handles DELETE /admin/events
func (s *Server) handleAdminClear(w http.ResponseWriter, r *http.Request) {
	cleared := s.store.Count()
	s.store.Clear()

	metrics.StoreEvents.Set(0)
	s.hub.Publish(events.KindCleared, events.ClearedData{Count: cleared})
	s.logger.Info("store cleared via API", "cleared", cleared)

	respondJSON(w, http.StatusOK, ClearResponse{Message: "store cleared", Cleared: cleared})
}

// queryInt parses an integer query parameter, falling back to def when absent.
func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// respondJSON is a helper to write JSON responses
func respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response
func (s *Server) writeError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}
