package intake

import (
	"github.com/hookwell/hookwell/internal/ratelimit"
	"github.com/hookwell/hookwell/internal/store"
)

//go:generate mockgen -destination=mocks/mock_intake.go -package=mocks github.com/hookwell/hookwell/internal/intake Admitter,Verifier,Saver

// Admitter decides whether a client identity may submit another delivery.
type Admitter interface {
	Allow(identity string) ratelimit.Decision
	Identities() int
}

// Verifier authenticates a provided tag against the canonical event bytes.
type Verifier interface {
	Verify(canonical []byte, providedTag string) bool
}

// Saver retains accepted events, reporting any eviction the insert forced.
type Saver interface {
	Save(evt store.Event) (store.Event, *store.Event)
	Count() int
}
