package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/grayman/dealflows/internal/landing"
	"github.com/grayman/dealflows/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Clients only send control frames.
	maxMessageSize = 512
)

// Frame types sent over the stats socket
const (
	FrameSnapshot = "snapshot"
	FrameMetrics  = "metrics"
)

// Frame is one message on the stats socket
type Frame struct {
	Type      string          `json:"type"`
	Metrics   landing.Metrics `json:"metrics"`
	Saturated bool            `json:"saturated"`
	MenuOpen  *bool           `json:"menu_open,omitempty"`
}

// handleWebSocket streams counter values for one page. Closing the last
// socket of a page unmounts it.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.pages.get(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	// A failed upgrade never counts as a socket, so it cannot unmount the page
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		logging.Debug("WebSocket upgrade failed", zap.String("page_id", id), zap.Error(err))
		return
	}

	page, err := s.pages.attach(id)
	if err != nil {
		// Reaped between the lookup and the upgrade
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, err.Error()),
			time.Now().Add(writeWait))
		_ = conn.Close()
		return
	}

	remoteAddr := conn.RemoteAddr().String()
	s.trackConn(conn, id)
	logging.LogConnection(remoteAddr, id, "websocket_opened")

	defer func() {
		_ = conn.Close()
		s.pages.detach(id)
		logging.LogConnection(remoteAddr, id, "websocket_closed")
		s.untrackConn(conn)
	}()

	s.streamPage(conn, page)
}

// streamPage writes the initial snapshot and then the latest counters after
// each tick until the peer goes away or the server shuts down
func (s *Server) streamPage(conn *websocket.Conn, page *landing.Page) {
	// Only the newest update matters; a slow peer skips intermediate ticks
	updates := make(chan landing.Metrics, 1)
	unsubscribe := page.Subscribe(func(m landing.Metrics) {
		for {
			select {
			case updates <- m:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	snap := page.Snapshot()
	menuOpen := snap.MenuOpen
	if err := writeFrame(conn, Frame{
		Type:      FrameSnapshot,
		Metrics:   snap.Metrics,
		Saturated: snap.Saturated,
		MenuOpen:  &menuOpen,
	}); err != nil {
		return
	}
	sent := progress(snap.Metrics)

	readDone := make(chan struct{})
	go readPump(conn, readDone)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case m := <-updates:
			// Ticks that landed before the snapshot would move the counters back
			if progress(m) <= sent {
				continue
			}
			if err := writeFrame(conn, Frame{Type: FrameMetrics, Metrics: m, Saturated: m.Saturated()}); err != nil {
				return
			}
			sent = progress(m)

		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}

		case <-readDone:
			return

		case <-s.ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		}
	}
}

// readPump drains the peer so control frames are processed, and signals
// when the connection is gone
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Debug("WebSocket read error", zap.String("remote_addr", conn.RemoteAddr().String()), zap.Error(err))
			}
			return
		}
	}
}

func writeFrame(conn *websocket.Conn, f Frame) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(f)
}

// progress is the sum of all counters. Counters never decrease, so a larger
// sum means a later tick.
func progress(m landing.Metrics) int {
	total := 0
	for _, metric := range m {
		total += metric.Current
	}
	return total
}
