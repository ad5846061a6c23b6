package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mikeyj777/detailed-modeling-data-analysis/internal/source"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/config"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/grid"
	"github.com/mikeyj777/detailed-modeling-data-analysis/pkg/viewer"
)

func startServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := New(config.Default(), source.Source{DefaultSize: grid.DefaultSize})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// next reads messages until one of the wanted type arrives
func next(t *testing.T, conn *websocket.Conn, want string) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var msg ServerMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", want, err)
		}
		if msg.Type == want {
			return msg
		}
	}
}

func countItems(f *WireFrame, kind string) int {
	n := 0
	for _, it := range f.Items {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

func TestSessionReceivesInitialFrame(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts)

	hello := next(t, conn, MsgSession)
	if hello.SessionID == "" {
		t.Fatal("session id missing")
	}

	frame := next(t, conn, MsgFrame).Frame
	if got := countItems(frame, "circle"); got != 121 {
		t.Errorf("circles failed: expected 121, got %d", got)
	}
	if got := countItems(frame, "line"); got != 24 {
		t.Errorf("lines failed: expected 24, got %d", got)
	}
	if frame.Camera.RotationX != 45 || frame.Camera.Scale != 1 {
		t.Errorf("camera failed: got %+v", frame.Camera)
	}
}

func TestWheelAndDrag(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts)
	next(t, conn, MsgFrame)

	if err := conn.WriteJSON(ClientMessage{Type: MsgWheel, DeltaY: -100}); err != nil {
		t.Fatal(err)
	}
	result := next(t, conn, MsgResult)
	if !result.Handled || result.Request != MsgWheel {
		t.Errorf("wheel result failed: got %+v", result)
	}
	if got := next(t, conn, MsgFrame).Frame.Camera.Scale; got != 1.1 {
		t.Errorf("scale failed: expected 1.1, got %v", got)
	}

	conn.WriteJSON(ClientMessage{Type: MsgPointerDown, X: 100, Y: 100})
	conn.WriteJSON(ClientMessage{Type: MsgPointerMove, X: 110, Y: 120})
	camera := next(t, conn, MsgFrame).Frame.Camera
	if camera.RotationX != 55 || camera.RotationY != 50 {
		t.Errorf("drag failed: got %+v", camera)
	}
}

func TestPasteAndEdit(t *testing.T) {
	_, ts := startServer(t)
	conn := dial(t, ts)
	next(t, conn, MsgFrame)

	conn.WriteJSON(ClientMessage{Type: MsgPaste, Text: "1\t2\n3\t4"})
	if !next(t, conn, MsgResult).Handled {
		t.Error("paste should be handled")
	}
	frame := next(t, conn, MsgFrame).Frame
	if frame.Rows != 2 || countItems(frame, "circle") != 4 {
		t.Errorf("paste frame failed: %d rows, %d circles", frame.Rows, countItems(frame, "circle"))
	}

	conn.WriteJSON(ClientMessage{Type: MsgPaste, Text: ""})
	if next(t, conn, MsgResult).Handled {
		t.Error("empty paste should not be handled")
	}

	conn.WriteJSON(ClientMessage{Type: MsgEdit, Row: 5, Col: 5, Value: "1"})
	if next(t, conn, MsgResult).Handled {
		t.Error("out of range edit should not be handled")
	}

	conn.WriteJSON(ClientMessage{Type: "rotate"})
	if msg := next(t, conn, MsgError); !strings.Contains(msg.Error, "rotate") {
		t.Errorf("unknown type error failed: got %q", msg.Error)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	srv, ts := startServer(t)
	a := dial(t, ts)
	b := dial(t, ts)
	next(t, a, MsgFrame)
	next(t, b, MsgFrame)

	a.WriteJSON(ClientMessage{Type: MsgPaste, Text: "1"})
	next(t, a, MsgFrame)

	b.WriteJSON(ClientMessage{Type: MsgWheel, DeltaY: 1})
	frame := next(t, b, MsgFrame).Frame
	if frame.Rows != 11 {
		t.Errorf("paste leaked into another session: %d rows", frame.Rows)
	}
	if srv.Sessions() != 2 {
		t.Errorf("Sessions failed: expected 2, got %d", srv.Sessions())
	}
}

func TestLoadGridBroadcasts(t *testing.T) {
	srv, ts := startServer(t)
	conn := dial(t, ts)
	next(t, conn, MsgFrame)

	g, _ := grid.FromRows([][]float64{{1, 2, 3}})
	srv.LoadGrid(g)

	frame := next(t, conn, MsgFrame).Frame
	if frame.Rows != 1 || frame.Cols != 3 {
		t.Errorf("reload failed: got %dx%d", frame.Rows, frame.Cols)
	}
}

func TestPageAndSnapshot(t *testing.T) {
	_, ts := startServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "/ws") {
		t.Errorf("index failed: status %d", resp.StatusCode)
	}

	conn := dial(t, ts)
	id := next(t, conn, MsgSession).SessionID

	resp, err = http.Get(ts.URL + "/snapshot.svg?session=" + id)
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || strings.Count(string(body), "<circle") != 121 {
		t.Errorf("snapshot failed: status %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/snapshot.svg?session=nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for a bad id, got %d", resp.StatusCode)
	}
}

func TestSameOrigin(t *testing.T) {
	r := httptest.NewRequest("GET", "http://example.com/ws", nil)
	if !sameOrigin(r) {
		t.Error("requests without Origin should pass")
	}
	r.Header.Set("Origin", "http://example.com")
	if !sameOrigin(r) {
		t.Error("same host should pass")
	}
	r.Header.Set("Origin", "http://evil.test")
	if sameOrigin(r) {
		t.Error("foreign origin should be rejected")
	}
}

func TestFramesQueuedInRevisionOrder(t *testing.T) {
	settings := config.Default()
	sess := &session{
		id:         "ordering",
		send:       make(chan []byte, 1024),
		options:    settings.Options(),
		controller: viewer.NewController(grid.Default(1), settings.CameraValue(), settings.InteractionValue()),
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			sess.loadGrid(grid.Default(1))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			sess.handle(ClientMessage{Type: MsgWheel, DeltaY: float64(i%2*2 - 1)})
			sess.pushFrame(false)
		}
	}()
	wg.Wait()
	sess.close()

	var last uint64
	frames := 0
	for data := range sess.send {
		var msg ServerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal(err)
		}
		if msg.Frame == nil {
			continue
		}
		if frames > 0 && msg.Frame.Revision <= last {
			t.Fatalf("frame %d has revision %d after %d", frames, msg.Frame.Revision, last)
		}
		last = msg.Frame.Revision
		frames++
	}
	if frames == 0 {
		t.Error("no frames queued")
	}
}
