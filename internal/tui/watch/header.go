package watch

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HealthState tracks service health from /healthz polling.
type HealthState struct {
	Status        string
	UptimeSeconds int64
	EventsStored  int
	Capacity      int
	Connected     bool
	LastCheck     time.Time
}

// statusBadge picks the icon and styled label for the connection state.
func statusBadge(health HealthState, theme Theme) string {
	switch {
	case !health.Connected:
		return "🔌 " + theme.StatusFailed.Render("CONNECTING")
	case health.Status != "ok" && health.Status != "":
		return "⚠️ " + theme.StatusFailed.Render("DEGRADED")
	default:
		return "✅ " + theme.StatusOK.Render("HEALTHY")
	}
}

// storeGauge renders the stored/capacity counter, switching to the warn
// style once the store is at ninety percent and evictions are imminent.
func storeGauge(health HealthState, theme Theme) string {
	text := fmt.Sprintf("Stored: %d/%d", health.EventsStored, health.Capacity)
	if health.Capacity > 0 && health.EventsStored*10 >= health.Capacity*9 {
		return theme.StatusWarn.Render(text)
	}
	return text
}

func renderHeader(health HealthState, ticker Ticker, spinner Spinner, theme Theme, width int) string {
	innerWidth := width - 4

	title := fmt.Sprintf(" HOOKWELL WATCH %s", theme.Highlight.Render(ticker.Current()))
	clock := theme.Dim.Render(time.Now().Format("15:04:05"))
	gap := innerWidth - lipgloss.Width(title) - lipgloss.Width(clock) - 4
	if gap < 1 {
		gap = 1
	}

	lastDelivery := "never"
	if !spinner.LastEvent().IsZero() {
		lastDelivery = fmt.Sprintf("%s ago", time.Since(spinner.LastEvent()).Round(time.Second))
	}

	uptime := formatDuration(time.Duration(health.UptimeSeconds) * time.Second)
	lines := []string{
		title + strings.Repeat(" ", gap) + clock + " ",
		fmt.Sprintf(" %s  ⏱ %s  %s", statusBadge(health, theme), uptime, storeGauge(health, theme)),
		fmt.Sprintf(" Last delivery: %s %s", lastDelivery, spinner.Render(theme)),
	}

	return theme.Border.Width(innerWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// formatDuration renders an uptime compactly, dropping units that would
// read as zero.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
