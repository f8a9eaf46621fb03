package watch

import (
	"strings"
	"time"
)

// Ticker rotates through frames on each UI tick. The frame only advances
// when ticks arrive, so a frozen program shows a frozen glyph.
type Ticker struct {
	frames   []string
	index    int
	lastTick time.Time
}

func NewTicker() Ticker {
	return Ticker{
		frames:   []string{"⟲", "⟳"},
		lastTick: time.Now(),
	}
}

func (t *Ticker) Tick() {
	t.index = (t.index + 1) % len(t.frames)
	t.lastTick = time.Now()
}

func (t Ticker) Current() string {
	return t.frames[t.index]
}

const (
	spinnerDots     = 5
	spinnerFadeStep = 2 * time.Second
)

// Spinner shows delivery activity as a row of dots. Every notice relights
// the full row; the dots then fade one by one as the stream goes quiet.
type Spinner struct {
	lastEvent time.Time
}

func NewSpinner() Spinner {
	return Spinner{}
}

func (s *Spinner) OnEvent() {
	s.lastEvent = time.Now()
}

// lit derives the number of dots still burning from the time since the
// last notice, one step per fade interval.
func (s Spinner) lit() int {
	if s.lastEvent.IsZero() {
		return 0
	}
	faded := int(time.Since(s.lastEvent) / spinnerFadeStep)
	if faded >= spinnerDots {
		return 0
	}
	return spinnerDots - faded
}

func (s Spinner) Render(theme Theme) string {
	var b strings.Builder
	on := s.lit()
	for i := range spinnerDots {
		if i < on {
			b.WriteString(theme.TickerActive.Render("●"))
		} else {
			b.WriteString(theme.TickerInactive.Render("○"))
		}
	}
	return b.String()
}

func (s Spinner) LastEvent() time.Time {
	return s.lastEvent
}
