package watch

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hookwell/hookwell/internal/events"
)

func renderNoticeStream(noticeLog []events.Notice, theme Theme, width int) string {
	innerWidth := width - 4

	if len(noticeLog) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			theme.Title.Render("EVENT STREAM"),
			theme.Dim.Render("  Waiting for notices..."),
		)
		return theme.Border.Width(innerWidth).Render(content)
	}

	var lines []string
	for i, n := range noticeLog {
		if i >= 10 {
			break
		}
		lines = append(lines, formatNotice(n, theme))
	}

	noticesText := lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(lines, "\n"))
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.Title.Render("EVENT STREAM"),
		noticesText,
	)

	return theme.Border.Width(innerWidth).Render(content)
}

func formatNotice(n events.Notice, theme Theme) string {
	ts := theme.Dim.Render(n.At.Format("15:04:05"))

	// Color the notice kind based on category
	var kindStyle lipgloss.Style
	switch n.Kind {
	case events.KindReceived:
		kindStyle = theme.StatusOK
	case events.KindRateLimited:
		kindStyle = theme.StatusFailed
	case events.KindEvicted:
		kindStyle = theme.StatusWarn
	case events.KindDeleted, events.KindCleared:
		kindStyle = theme.Highlight
	default:
		kindStyle = theme.Dim
	}

	kindName := kindStyle.Render(fmt.Sprintf("%-20s", n.Kind))

	// Extract brief description from data
	desc := extractNoticeDesc(n)

	return fmt.Sprintf("%s %s %s", ts, kindName, desc)
}

func extractNoticeDesc(n events.Notice) string {
	data := make(map[string]any)
	_ = json.Unmarshal(n.Data, &data)

	var parts []string

	if id, ok := data["id"].(string); ok {
		if len(id) > 8 {
			id = id[:8]
		}
		parts = append(parts, fmt.Sprintf("[%s]", id))
	}

	if source, ok := data["source"].(string); ok {
		parts = append(parts, source)
	}

	if eventType, ok := data["event_type"].(string); ok && eventType != "" {
		parts = append(parts, eventType)
	}

	if identity, ok := data["identity"].(string); ok {
		parts = append(parts, identity)
	}

	if verified, ok := data["verified"].(bool); ok {
		if verified {
			parts = append(parts, "verified")
		} else {
			parts = append(parts, "unverified")
		}
	}

	if count, ok := data["count"].(float64); ok {
		parts = append(parts, fmt.Sprintf("count=%d", int(count)))
	}

	if len(parts) == 0 {
		raw := string(n.Data)
		if len(raw) > 60 {
			raw = raw[:60] + "..."
		}
		return raw
	}

	return strings.Join(parts, " ")
}
