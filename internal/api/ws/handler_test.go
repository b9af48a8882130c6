package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/GriffinCanCode/LexOS/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/LexOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/LexOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/monitoring"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

// wire-side view of a frame; content is left undecoded
type testWindow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	IsMinimized bool   `json:"is_minimized"`
}

type testFrame struct {
	Type     string       `json:"type"`
	ID       string       `json:"id"`
	Message  string       `json:"message"`
	Command  string       `json:"command"`
	WindowID string       `json:"window_id"`
	Changed  *bool        `json:"changed"`
	Closed   *int         `json:"closed"`
	Window   *testWindow  `json:"window"`
	Windows  []testWindow `json:"windows"`
	Seq      uint64       `json:"seq"`
	Event    *struct {
		Type     string       `json:"type"`
		WindowID string       `json:"window_id"`
		Windows  []testWindow `json:"windows"`
	} `json:"event"`
}

type fixture struct {
	server  *httptest.Server
	shell   *desktop.Shell
	hub     *Hub
	metrics *monitoring.Metrics
}

func setup(t *testing.T) *fixture {
	t.Helper()
	return setupWithBuffer(t, 16)
}

func setupWithBuffer(t *testing.T, buffer int) *fixture {
	t.Helper()

	metrics := monitoring.NewMetrics()
	shell := desktop.NewShell(window.NewManager(), catalog.Default())
	hub := NewHub(buffer).WithMetrics(metrics)
	detach := hub.Attach(shell.Windows())

	router := gin.New()
	router.GET("/stream", NewHandler(shell, hub).HandleConnection)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		detach()
	})

	return &fixture{server: server, shell: shell, hub: hub, metrics: metrics}
}

func (f *fixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// welcome + snapshot
	require.Equal(t, FrameSystem, read(t, conn).Type)
	require.Equal(t, FrameSnapshot, read(t, conn).Type)
	return conn
}

func read(t *testing.T, conn *websocket.Conn) testFrame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var f testFrame
	require.NoError(t, json.Unmarshal(data, &f), string(data))
	return f
}

func send(t *testing.T, conn *websocket.Conn, cmd Command) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(cmd))
}

func ids(ws []testWindow) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.ID)
	}
	return out
}

func TestWelcomeAndSnapshot(t *testing.T) {
	f := setup(t)
	_, err := f.shell.Launch(catalog.Terminal)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	welcome := read(t, conn)
	assert.Equal(t, FrameSystem, welcome.Type)
	assert.Contains(t, welcome.Message, "Connected")
	assert.True(t, strings.HasPrefix(welcome.ID, "evt_"))

	snap := read(t, conn)
	assert.Equal(t, FrameSnapshot, snap.Type)
	assert.Equal(t, []string{catalog.Terminal}, ids(snap.Windows))
}

func TestEmptySnapshotCarriesWindowList(t *testing.T) {
	f := setup(t)

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read(t, conn)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"snapshot"`, string(raw["type"]))
	assert.JSONEq(t, `[]`, string(raw["windows"]))
}

func TestSnapshotAndEventsStayOrderedUnderConcurrentChanges(t *testing.T) {
	f := setupWithBuffer(t, 4096)

	var wg sync.WaitGroup
	for _, app := range []string{catalog.Terminal, catalog.CodeIDE} {
		wg.Add(1)
		go func(app string) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				_, _ = f.shell.Launch(app)
				f.shell.Minimize(app)
				f.shell.Close(app)
			}
		}(app)
	}

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read(t, conn)
	snap := read(t, conn)
	require.Equal(t, FrameSnapshot, snap.Type)

	wg.Wait()
	final := f.shell.Windows().Snapshot()

	// events follow the snapshot in sequence without gaps
	var last testFrame
	for want := snap.Seq + 1; want <= final.Seq; want++ {
		last = read(t, conn)
		require.Equal(t, FrameWindowEvent, last.Type)
		require.Equal(t, want, last.Seq)
	}
	if final.Seq > snap.Seq {
		assert.Equal(t, len(final.Windows), len(last.Event.Windows))
	}
}

func TestCommandLifecycle(t *testing.T) {
	f := setup(t)
	conn := f.dial(t)

	send(t, conn, Command{Type: CmdOpen, ID: catalog.CodeIDE})
	ev := read(t, conn)
	require.Equal(t, FrameWindowEvent, ev.Type)
	assert.Equal(t, "opened", ev.Event.Type)
	assert.Equal(t, catalog.CodeIDE, ev.WindowID)
	ack := read(t, conn)
	require.Equal(t, FrameAck, ack.Type)
	require.NotNil(t, ack.Window)
	assert.Equal(t, "LexOS IDE", ack.Window.Title)

	send(t, conn, Command{Type: CmdMinimize, ID: catalog.CodeIDE})
	ev = read(t, conn)
	assert.Equal(t, "minimized", ev.Event.Type)
	assert.True(t, ev.Event.Windows[0].IsMinimized)
	ack = read(t, conn)
	require.NotNil(t, ack.Changed)
	assert.True(t, *ack.Changed)

	// no-op: no event, only the ack
	send(t, conn, Command{Type: CmdMinimize, ID: catalog.CodeIDE})
	ack = read(t, conn)
	assert.Equal(t, FrameAck, ack.Type)
	assert.False(t, *ack.Changed)

	send(t, conn, Command{Type: CmdMaximize, ID: catalog.CodeIDE})
	assert.Equal(t, "restored", read(t, conn).Event.Type)
	assert.True(t, *read(t, conn).Changed)

	send(t, conn, Command{Type: CmdOpen, ID: catalog.Terminal})
	read(t, conn)
	read(t, conn)

	send(t, conn, Command{Type: CmdClose, ID: catalog.CodeIDE})
	ev = read(t, conn)
	assert.Equal(t, "closed", ev.Event.Type)
	assert.Equal(t, []string{catalog.Terminal}, ids(ev.Event.Windows))
	assert.True(t, *read(t, conn).Changed)

	send(t, conn, Command{Type: CmdCloseAll})
	assert.Equal(t, "cleared", read(t, conn).Event.Type)
	ack = read(t, conn)
	require.NotNil(t, ack.Closed)
	assert.Equal(t, 1, *ack.Closed)
	assert.Equal(t, 0, f.shell.Windows().Len())
}

func TestErrorsKeepConnectionOpen(t *testing.T) {
	f := setup(t)
	conn := f.dial(t)

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"unknown type", `{"type":"resize","id":"terminal"}`, "unknown message type"},
		{"malformed", `{"type":`, "malformed command"},
		{"unknown app", `{"type":"open","id":"spreadsheet"}`, "unknown app"},
		{"missing id", `{"type":"minimize"}`, "id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(tt.payload)))
			frame := read(t, conn)
			assert.Equal(t, FrameError, frame.Type)
			assert.Contains(t, frame.Message, tt.want)
		})
	}

	send(t, conn, Command{Type: CmdPing})
	assert.Equal(t, FramePong, read(t, conn).Type)
	assert.Equal(t, 0, f.shell.Windows().Len())
}

func TestEventsReachEveryClient(t *testing.T) {
	f := setup(t)
	a := f.dial(t)
	b := f.dial(t)

	require.Eventually(t, func() bool { return f.hub.Len() == 2 }, time.Second, 10*time.Millisecond)

	send(t, a, Command{Type: CmdOpen, ID: catalog.SystemMonitor})

	ev := read(t, b)
	assert.Equal(t, FrameWindowEvent, ev.Type)
	assert.Equal(t, catalog.SystemMonitor, ev.WindowID)

	// REST-side changes are streamed too
	f.shell.Minimize(catalog.SystemMonitor)
	assert.Equal(t, "minimized", read(t, b).Event.Type)
}

func TestConnectionMetrics(t *testing.T) {
	f := setup(t)

	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	read(t, conn)

	require.Eventually(t, func() bool {
		return f.metrics.Snapshot().ActiveConnections == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return f.metrics.Snapshot().ActiveConnections == 0 && f.hub.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
