package watch

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hookwell/hookwell/internal/events"
)

// receivedRow is one accepted delivery shown in the deliveries table.
type receivedRow struct {
	id        string
	source    string
	eventType string
	verified  bool
	at        time.Time
}

// Model is the main BubbleTea model for the watch TUI.
type Model struct {
	apiURL string

	width  int
	height int

	// State
	health     HealthState
	sources    map[string]*SourceState
	limited    map[string]*LimitedState
	noticeLog  []events.Notice
	recent     []receivedRow
	lastSeenID int64

	// Live indicators
	ticker  Ticker
	spinner Spinner

	// UI state
	theme      Theme
	eventTable table.Model

	// Communication
	hubNotices chan events.Notice

	// Error display
	lastError string
}

// New creates a new watch TUI model.
func New(apiURL string) *Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ST", Width: 2},
			{Title: "Source", Width: 18},
			{Title: "Type", Width: 22},
			{Title: "ID", Width: 10},
			{Title: "Age", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return &Model{
		apiURL:     apiURL,
		sources:    make(map[string]*SourceState),
		limited:    make(map[string]*LimitedState),
		noticeLog:  make([]events.Notice, 0),
		hubNotices: make(chan events.Notice, 100),
		eventTable: t,
		ticker:     NewTicker(),
		spinner:    NewSpinner(),
		theme:      NewDefaultTheme(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		subscribeToNotices(m.apiURL, 0, m.hubNotices),
		receiveNextNotice(m.hubNotices),
		func() tea.Msg { return fetchHealth(m.apiURL) },
		tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) }),
		tea.EnterAltScreen,
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.eventTable.SetWidth(m.width - 6)

	case tickMsg:
		m.ticker.Tick()
		m.eventTable.SetRows(m.tableRows())
		return m, tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })

	case noticeMsg:
		n := events.Notice(msg)

		if n.ID > m.lastSeenID {
			m.lastSeenID = n.ID
		}

		// Update notice log (newest first)
		m.noticeLog = append([]events.Notice{n}, m.noticeLog...)
		if len(m.noticeLog) > 50 {
			m.noticeLog = m.noticeLog[:50]
		}

		// Update spinner
		m.spinner.OnEvent()

		// Update panel state
		updateSourceState(m.sources, n)
		updateLimitedState(m.limited, n)

		if n.Kind == events.KindReceived {
			m.recent = append([]receivedRow{newReceivedRow(n)}, m.recent...)
			if len(m.recent) > 50 {
				m.recent = m.recent[:50]
			}
			m.eventTable.SetRows(m.tableRows())
		}

		// Mark as connected
		m.health.Connected = true
		m.lastError = ""

		return m, receiveNextNotice(m.hubNotices)

	case healthMsg:
		m.health.Status = msg.Status
		m.health.UptimeSeconds = msg.UptimeSeconds
		m.health.EventsStored = msg.EventsStored
		m.health.Capacity = msg.Capacity
		m.health.Connected = true
		m.health.LastCheck = time.Now()
		m.lastError = ""

		return m, tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
			return fetchHealth(m.apiURL)
		})

	case sseDisconnectedMsg:
		m.health.Connected = false
		m.lastError = "SSE disconnected, reconnecting..."
		// Reconnect after a short delay; the existing receiveNextNotice
		// goroutine is still waiting on the channel and will pick up
		// notices from the new subscription.
		return m, tea.Tick(3*time.Second, func(t time.Time) tea.Msg {
			return reconnectMsg{}
		})

	case reconnectMsg:
		return m, subscribeToNotices(m.apiURL, m.lastSeenID, m.hubNotices)

	case errMsg:
		m.lastError = msg.Error()
		// Retry health in 5s
		return m, tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
			return fetchHealth(m.apiURL)
		})
	}

	m.eventTable, cmd = m.eventTable.Update(msg)
	return m, cmd
}

func newReceivedRow(n events.Notice) receivedRow {
	data := make(map[string]any)
	_ = json.Unmarshal(n.Data, &data)

	row := receivedRow{at: n.At}
	row.id, _ = data["id"].(string)
	row.source, _ = data["source"].(string)
	row.eventType, _ = data["event_type"].(string)
	row.verified, _ = data["verified"].(bool)
	return row
}

func (m Model) tableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.recent))
	for _, r := range m.recent {
		st := m.theme.StatusWarn.Render("○")
		if r.verified {
			st = m.theme.StatusOK.Render("●")
		}

		id := r.id
		if len(id) > 8 {
			id = id[:8]
		}

		rows = append(rows, table.Row{
			st,
			r.source,
			r.eventType,
			id,
			formatAgo(time.Since(r.at).Round(time.Second)),
		})
	}
	return rows
}

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing watch..."
	}

	header := renderHeader(m.health, m.ticker, m.spinner, m.theme, m.width)
	deliveries := m.renderDeliveries()
	sources := renderSources(m.sources, m.theme, m.width)
	limits := renderRateLimits(m.limited, m.theme, m.width)
	stream := renderNoticeStream(m.noticeLog, m.theme, m.width)

	// Error bar
	var errBar string
	if m.lastError != "" {
		errBar = m.theme.ErrorBar.Render(fmt.Sprintf(" ⚠ %s", m.lastError))
	}

	help := m.theme.Help.Render(" [q] Quit • [↑/↓] Scroll Deliveries")

	parts := []string{header, deliveries, sources, limits, stream}
	if errBar != "" {
		parts = append(parts, errBar)
	}
	parts = append(parts, help)

	return lipgloss.NewStyle().Margin(1, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
}

func (m Model) renderDeliveries() string {
	innerWidth := m.width - 4

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("RECENT DELIVERIES"),
		m.eventTable.View(),
	)

	return m.theme.Border.Width(innerWidth).Render(content)
}
