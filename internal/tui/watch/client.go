package watch

import (
	"bufio"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hookwell/hookwell/internal/events"
)

// Messages delivered to the model by the commands below.
type (
	noticeMsg          events.Notice
	tickMsg            time.Time
	errMsg             error
	sseDisconnectedMsg struct{}
	reconnectMsg       struct{}
)

// healthMsg mirrors the /healthz response body.
type healthMsg struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	EventsStored  int    `json:"events_stored"`
	Capacity      int    `json:"capacity"`
}

// healthClient gets a short timeout; the SSE stream uses the default
// client because a streaming request must never time out.
var healthClient = &http.Client{Timeout: 2 * time.Second}

// subscribeToNotices opens the SSE /events stream and feeds decoded
// notices into ch until the connection drops, then reports
// sseDisconnectedMsg so the model can schedule a reconnect. A
// non-zero lastSeenID asks the server to replay what was missed.
func subscribeToNotices(apiURL string, lastSeenID int64, ch chan<- events.Notice) tea.Cmd {
	return func() tea.Msg {
		req, err := http.NewRequest("GET", apiURL+"/events", nil)
		if err != nil {
			return errMsg(err)
		}
		if lastSeenID > 0 {
			req.Header.Set("Last-Event-ID", strconv.FormatInt(lastSeenID, 10))
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return sseDisconnectedMsg{}
		}
		defer resp.Body.Close()

		relayNotices(resp.Body, ch)
		return sseDisconnectedMsg{}
	}
}

// relayNotices scans SSE framing off the wire and sends one notice
// per complete frame. Comment lines and unknown fields fall through,
// which also swallows the server's keep-alive pings.
func relayNotices(body io.Reader, ch chan<- events.Notice) {
	var frame events.Notice
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			if len(frame.Data) > 0 {
				frame.At = time.Now()
				ch <- frame
			}
			frame = events.Notice{}
			continue
		}
		if v, ok := strings.CutPrefix(line, "id: "); ok {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				frame.ID = id
			}
		} else if v, ok := strings.CutPrefix(line, "event: "); ok {
			frame.Kind = v
		} else if v, ok := strings.CutPrefix(line, "data: "); ok {
			frame.Data = []byte(v)
		}
	}
}

// receiveNextNotice waits for the next notice from the channel.
func receiveNextNotice(ch <-chan events.Notice) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-ch)
	}
}

// fetchHealth queries the /healthz endpoint.
func fetchHealth(apiURL string) tea.Msg {
	resp, err := healthClient.Get(apiURL + "/healthz")
	if err != nil {
		return errMsg(err)
	}
	defer resp.Body.Close()

	var h healthMsg
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return errMsg(err)
	}
	return h
}
