package watch

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hookwell/hookwell/internal/events"
)

// LimitedState tracks rejected deliveries for one client identity.
type LimitedState struct {
	Identity   string
	Rejections int
	RetryAfter int
	LastSeen   time.Time
}

func updateLimitedState(limited map[string]*LimitedState, n events.Notice) {
	if limited == nil {
		return
	}
	if n.Kind != events.KindRateLimited {
		return
	}

	data := make(map[string]any)
	_ = json.Unmarshal(n.Data, &data)

	identity, _ := data["identity"].(string)
	if identity == "" {
		return
	}

	state, ok := limited[identity]
	if !ok {
		state = &LimitedState{Identity: identity}
		limited[identity] = state
	}
	state.Rejections++
	state.LastSeen = time.Now()
	if retryAfter, ok := data["retry_after_seconds"].(float64); ok {
		state.RetryAfter = int(retryAfter)
	}
}

func renderRateLimits(limited map[string]*LimitedState, theme Theme, width int) string {
	innerWidth := width - 4

	if len(limited) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render("RATE LIMITS"),
			theme.Dim.Render("  No rejected deliveries..."),
		)
		return theme.Border.Width(innerWidth).Render(content)
	}

	identities := sortedLimitedIdentities(limited)
	var lines []string
	for i, identity := range identities {
		if i >= 8 {
			break
		}
		lines = append(lines, renderLimitedRow(limited[identity], theme))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{theme.Title.Render("RATE LIMITS")}, lines...)...,
	)
	return theme.Border.Width(innerWidth).Render(content)
}

func renderLimitedRow(s *LimitedState, theme Theme) string {
	rejections := theme.StatusFailed.Render(fmt.Sprintf("[%d rejected]", s.Rejections))

	retryStr := ""
	// Show the retry hint only while the window that produced it can still be open.
	if s.RetryAfter > 0 && time.Since(s.LastSeen) < time.Duration(s.RetryAfter)*time.Second {
		retryStr = " " + theme.Dim.Render(fmt.Sprintf("retry in %ds", s.RetryAfter))
	}

	lastStr := ""
	if !s.LastSeen.IsZero() {
		lastStr = "  " + theme.Dim.Render(formatAgo(time.Since(s.LastSeen).Round(time.Second)))
	}

	return fmt.Sprintf(" %-28s %s%s%s", s.Identity, rejections, retryStr, lastStr)
}

func sortedLimitedIdentities(limited map[string]*LimitedState) []string {
	identities := make([]string, 0, len(limited))
	for identity := range limited {
		identities = append(identities, identity)
	}
	sort.Strings(identities)
	return identities
}
