package watch

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hookwell/hookwell/internal/events"
)

// SourceState aggregates intake activity for one webhook source.
type SourceState struct {
	Name         string
	Received     int
	Verified     int
	Evicted      int
	LastVerified bool
	LastSeen     time.Time
}

// updateSourceState processes a notice and updates per-source tracking.
func updateSourceState(sources map[string]*SourceState, n events.Notice) {
	if sources == nil {
		return
	}
	if n.Kind != events.KindReceived && n.Kind != events.KindEvicted {
		return
	}

	data := make(map[string]any)
	_ = json.Unmarshal(n.Data, &data)

	source, _ := data["source"].(string)
	if source == "" {
		return
	}

	s := getOrCreateSource(sources, source)

	switch n.Kind {
	case events.KindReceived:
		s.Received++
		verified, _ := data["verified"].(bool)
		if verified {
			s.Verified++
		}
		s.LastVerified = verified
		s.LastSeen = time.Now()

	case events.KindEvicted:
		s.Evicted++
	}
}

func getOrCreateSource(sources map[string]*SourceState, name string) *SourceState {
	s, ok := sources[name]
	if !ok {
		s = &SourceState{Name: name}
		sources[name] = s
	}
	return s
}

// sortedSourceNames returns source names in stable sorted order.
func sortedSourceNames(sources map[string]*SourceState) []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func renderSources(sources map[string]*SourceState, theme Theme, width int) string {
	innerWidth := width - 4

	if len(sources) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render("SOURCES"),
			theme.Dim.Render("  No deliveries yet..."),
		)
		return theme.Border.Width(innerWidth).Render(content)
	}

	names := sortedSourceNames(sources)

	var lines []string
	for i, name := range names {
		if i >= 8 {
			break
		}
		lines = append(lines, renderSourceRow(sources[name], theme))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{theme.Title.Render("SOURCES")}, lines...)...,
	)

	return theme.Border.Width(innerWidth).Render(content)
}

func renderSourceRow(s *SourceState, theme Theme) string {
	verifiedStr := theme.Dim.Render(fmt.Sprintf("verified:%d", s.Verified))
	if s.Verified > 0 {
		verifiedStr = theme.StatusOK.Render(fmt.Sprintf("verified:%d", s.Verified))
	}

	evictedStr := ""
	if s.Evicted > 0 {
		evictedStr = "  " + theme.StatusWarn.Render(fmt.Sprintf("evicted:%d", s.Evicted))
	}

	lastStr := ""
	if !s.LastSeen.IsZero() {
		icon := theme.StatusWarn.Render("○")
		if s.LastVerified {
			icon = theme.StatusOK.Render("●")
		}
		lastStr = fmt.Sprintf("  Last: %s %s", formatAgo(time.Since(s.LastSeen).Round(time.Second)), icon)
	}

	return fmt.Sprintf(" %-24s recv:%-5d %s%s%s",
		s.Name,
		s.Received,
		verifiedStr,
		evictedStr,
		lastStr,
	)
}

func formatAgo(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh ago", int(d.Hours()))
}
