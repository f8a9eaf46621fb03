package intake

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hookwell/hookwell/internal/events"
	"github.com/hookwell/hookwell/internal/metrics"
	"github.com/hookwell/hookwell/internal/signature"
	"github.com/hookwell/hookwell/internal/store"
)

// Request is one webhook delivery after boundary validation.
type Request struct {
	Source      string
	EventType   string
	Payload     map[string]any
	ProvidedTag string
	Identity    string
}

// Result is the outcome of handling a delivery: either the stored event or
// a rate-limit rejection telling the client when to retry.
type Result struct {
	Event             store.Event
	RateLimited       bool
	RetryAfterSeconds int
}

// Guard runs the intake sequence for each delivery: admission check,
// signature verification, then storage. Verification failure does not
// reject a delivery; the event is stored unverified.
type Guard struct {
	admitter Admitter
	verifier Verifier
	saver    Saver
	hub      *events.Hub
	logger   *slog.Logger
}

// New creates a guard wired to the given collaborators.
func New(admitter Admitter, verifier Verifier, saver Saver, hub *events.Hub, logger *slog.Logger) *Guard {
	return &Guard{
		admitter: admitter,
		verifier: verifier,
		saver:    saver,
		hub:      hub,
		logger:   logger,
	}
}

// Handle decides admission for one delivery and stores it on acceptance.
func (g *Guard) Handle(req Request) Result {
	decision := g.admitter.Allow(req.Identity)
	metrics.RateLimitIdentities.Set(float64(g.admitter.Identities()))

	if !decision.Allowed {
		metrics.EventsReceived.WithLabelValues(metrics.OutcomeRateLimited).Inc()
		g.hub.Publish(events.KindRateLimited, events.RateLimitedData{
			Identity:          req.Identity,
			RetryAfterSeconds: decision.RetryAfterSeconds,
		})
		g.logger.Debug("delivery rate limited",
			"identity", req.Identity,
			"retry_after_seconds", decision.RetryAfterSeconds)
		return Result{RateLimited: true, RetryAfterSeconds: decision.RetryAfterSeconds}
	}

	verified := false
	canonical, err := signature.CanonicalBytes(req.Source, req.EventType, req.Payload)
	if err != nil {
		g.logger.Warn("canonicalize delivery", "source", req.Source, "error", err)
	} else {
		verified = g.verifier.Verify(canonical, req.ProvidedTag)
	}

	evt := store.Event{
		ID:          uuid.NewString(),
		Source:      req.Source,
		EventType:   req.EventType,
		Payload:     req.Payload,
		ProvidedTag: req.ProvidedTag,
		Verified:    verified,
		ReceivedAt:  time.Now().UTC(),
	}
	stored, evicted := g.saver.Save(evt)

	metrics.EventsReceived.WithLabelValues(metrics.OutcomeAccepted).Inc()
	if verified {
		metrics.EventsVerified.WithLabelValues(metrics.ResultVerified).Inc()
	} else {
		metrics.EventsVerified.WithLabelValues(metrics.ResultUnverified).Inc()
	}
	metrics.StoreEvents.Set(float64(g.saver.Count()))

	if evicted != nil {
		metrics.EventsEvicted.Inc()
		g.hub.Publish(events.KindEvicted, events.EvictedData{ID: evicted.ID, Source: evicted.Source})
		g.logger.Debug("event evicted", "id", evicted.ID, "source", evicted.Source)
	}

	g.hub.Publish(events.KindReceived, events.ReceivedData{
		ID:        stored.ID,
		Source:    stored.Source,
		EventType: stored.EventType,
		Verified:  stored.Verified,
	})
	g.logger.Info("webhook received",
		"id", stored.ID,
		"source", stored.Source,
		"event_type", stored.EventType,
		"verified", stored.Verified)

	return Result{Event: stored}
}
