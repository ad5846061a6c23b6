// Package server serves the surface to browsers. Each websocket
// connection gets its own controller; the page draws the frames it
// receives as SVG and sends pointer, wheel, paste and edit events back.
package server

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/source"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

//go:embed static
var staticFiles embed.FS

// Server hands out sessions over websockets
type Server struct {
	settings config.Settings
	source   source.Source
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session
	grid     *grid.Grid // latest loaded grid, copied into new sessions
}

// New creates a server for the given source. The source is loaded once
// here; every new session starts from a copy of that grid.
func New(settings config.Settings, src source.Source) (*Server, error) {
	g, err := src.Load()
	if err != nil {
		return nil, err
	}

	s := &Server{
		settings: settings,
		source:   src,
		sessions: make(map[string]*session),
		grid:     g,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 16384,
		CheckOrigin:     sameOrigin,
	}
	return s, nil
}

// sameOrigin accepts clients without an Origin header and browsers on
// the serving host
func sameOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Host != r.Host {
		log.Printf("[WEBSOCKET] Request from disallowed origin rejected: %s", origin)
		return false
	}
	return true
}

// Handler returns the HTTP routes: the page, the websocket and an SVG
// snapshot of a session
func (s *Server) Handler() http.Handler {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/snapshot.svg", s.handleSnapshot)
	return mux
}

// Sessions returns the number of open sessions
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// LoadGrid replaces the grid of every session, such as after the source
// file changed
func (s *Server) LoadGrid(g *grid.Grid) {
	s.mu.Lock()
	s.grid = g
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.loadGrid(copyGrid(g))
	}
	log.Printf("[SERVER] Grid reloaded for %d session(s)", len(sessions))
}

// Reload reads the source again and pushes the result to all sessions
func (s *Server) Reload() error {
	g, err := s.source.Load()
	if err != nil {
		return err
	}
	s.LoadGrid(g)
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WEBSOCKET] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	s.mu.Lock()
	g := copyGrid(s.grid)
	s.mu.Unlock()

	sess := &session{
		id:         uuid.NewString(),
		conn:       conn,
		send:       make(chan []byte, 64),
		options:    s.settings.Options(),
		controller: viewer.NewController(g, s.settings.CameraValue(), s.settings.InteractionValue()),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	total := len(s.sessions)
	s.mu.Unlock()
	log.Printf("[WEBSOCKET] Session %s opened from %s - Total sessions: %d", sess.id, r.RemoteAddr, total)

	sess.queue(ServerMessage{Type: MsgSession, SessionID: sess.id})
	sess.pushFrame(true)

	go sess.writePump()
	go sess.readPump(func() {
		s.mu.Lock()
		delete(s.sessions, sess.id)
		s.mu.Unlock()
		sess.close()
		log.Printf("[WEBSOCKET] Session %s closed", sess.id)
	})
}

// handleSnapshot writes the current frame of a session as SVG
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	if _, err := uuid.Parse(id); err != nil {
		http.Error(w, "invalid session id", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if err := viewer.WriteSVG(w, sess.frame()); err != nil {
		log.Printf("[SERVER] Snapshot for %s failed: %v", id, err)
	}
}

// copyGrid gives a session its own grid so edits stay private
func copyGrid(g *grid.Grid) *grid.Grid {
	c, err := grid.FromRows(g.Values())
	if err != nil {
		return grid.Default(grid.DefaultSize)
	}
	return c
}
