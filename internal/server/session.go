package server

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20
)

// session is one browser connection with its own controller. The mutex
// serializes every handler so the controller sees one event at a time.
type session struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	options viewer.Options

	mu         sync.Mutex
	controller *viewer.Controller
	sent       uint64
	closed     bool
}

// handle applies one client message and returns whether it was consumed
func (s *session) handle(msg ClientMessage) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.controller
	pos := viewer.Point2{X: msg.X, Y: msg.Y}

	switch msg.Type {
	case MsgPointerDown:
		c.OnPointerDown(pos)
	case MsgPointerMove:
		c.OnPointerMove(pos)
	case MsgPointerUp:
		c.OnPointerUp()
	case MsgPointerLeave:
		c.OnPointerLeave()
	case MsgWheel:
		return c.OnWheel(msg.DeltaY), nil
	case MsgPaste:
		return c.OnPaste(msg.Text), nil
	case MsgEdit:
		return c.OnCellEdit(msg.Row, msg.Col, msg.Value), nil
	case MsgReset:
		c.ResetView()
	default:
		return false, fmt.Errorf("unknown message type %q", msg.Type)
	}
	return true, nil
}

// loadGrid swaps the session's grid and queues the new frame
func (s *session) loadGrid(g *grid.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller.LoadGrid(g)
	s.pushFrameLocked(false)
}

// pushFrame queues the current frame unless it was already sent
func (s *session) pushFrame(force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushFrameLocked(force)
}

// pushFrameLocked builds and queues the frame in one critical section, so
// frames reach the send buffer in revision order. s.mu must be held.
func (s *session) pushFrameLocked(force bool) {
	c := s.controller
	if !force && c.Revision() == s.sent {
		return
	}
	s.sent = c.Revision()
	s.enqueueLocked(ServerMessage{Type: MsgFrame, Frame: encodeFrame(c, c.Frame(s.options))})
}

// frame renders the current state
func (s *session) frame() viewer.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Frame(s.options)
}

func (s *session) queue(msg ServerMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enqueueLocked(msg)
}

// enqueueLocked hands a message to the write pump. s.mu must be held.
func (s *session) enqueueLocked(msg ServerMessage) {
	if s.closed {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[SESSION] Error marshalling %s message: %v", msg.Type, err)
		return
	}

	select {
	case s.send <- data:
	default:
		log.Printf("[SESSION] Send buffer full for %s, dropping %s message", s.id, msg.Type)
	}
}

func (s *session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.send)
	}
}

// readPump decodes client messages until the connection fails
func (s *session) readPump(onDone func()) {
	defer onDone()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNoStatusReceived) {
				log.Printf("[WEBSOCKET] Unexpected close for session %s: %v", s.id, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.queue(ServerMessage{Type: MsgError, Error: "invalid message format"})
			continue
		}

		handled, err := s.handle(msg)
		if err != nil {
			s.queue(ServerMessage{Type: MsgError, Request: msg.Type, Error: err.Error()})
			continue
		}
		if msg.Type == MsgWheel || msg.Type == MsgPaste || msg.Type == MsgEdit {
			s.queue(ServerMessage{Type: MsgResult, Request: msg.Type, Handled: handled})
		}
		s.pushFrame(false)
	}
}

// writePump writes queued messages and keeps the connection alive
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
