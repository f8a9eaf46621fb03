package api

import (
	"encoding/json"

	"github.com/hookwell/hookwell/internal/store"
)

// IntakeRequest is the JSON body for POST /webhooks.
type IntakeRequest struct {
	Source    string          `json:"source"`
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// IntakeResponse is returned when a delivery is accepted, whether or not
// its signature verified.
type IntakeResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// RateLimitedResponse is returned when a delivery is rejected by the
// rate limiter.
type RateLimitedResponse struct {
	Message           string `json:"message"`
	RetryAfterSeconds int    `json:"retryAfterSeconds"`
}

// EventListResponse is returned by GET /webhooks.
type EventListResponse struct {
	Items      []store.Event `json:"items"`
	Count      int           `json:"count"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

// ErrorResponse is returned on errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthzResponse is returned by GET /healthz.
type HealthzResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	EventsStored  int    `json:"events_stored"`
	Capacity      int    `json:"capacity"`
}

// ClearResponse is returned by DELETE /admin/events.
type ClearResponse struct {
	Message string `json:"message"`
	Cleared int    `json:"cleared"`
}
