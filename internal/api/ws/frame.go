package ws

import (
	"time"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/LexOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/types"
)

// Server → client frame types
const (
	FrameSystem      = "system"
	FrameSnapshot    = "snapshot"
	FrameWindowEvent = "window_event"
	FrameAck         = "ack"
	FramePong        = "pong"
	FrameError       = "error"
)

// Client → server command types
const (
	CmdOpen     = "open"
	CmdMinimize = "minimize"
	CmdMaximize = "maximize"
	CmdClose    = "close"
	CmdCloseAll = "close_all"
	CmdPing     = "ping"
)

// Frame is one server → client message
type Frame struct {
	Type      string             `json:"type"`
	ID        id.EventID         `json:"id,omitempty"`
	Message   string             `json:"message,omitempty"`
	Command   string             `json:"command,omitempty"`
	WindowID  string             `json:"window_id,omitempty"`
	Changed   *bool              `json:"changed,omitempty"`
	Closed    *int               `json:"closed,omitempty"`
	Window    *types.Window      `json:"window,omitempty"`
	Windows   *[]types.Window    `json:"windows,omitempty"` // snapshot only; empty encodes as []
	Stats     *types.WindowStats `json:"stats,omitempty"`
	Seq       uint64             `json:"seq,omitempty"`
	Event     *window.Event      `json:"event,omitempty"`
	Timestamp int64              `json:"timestamp"`
}

// Command is one client → server message. ID names the app for open and
// the window for every other command.
type Command struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

func newFrame(frameType string) Frame {
	return Frame{
		Type:      frameType,
		ID:        id.NewEventID(),
		Timestamp: time.Now().Unix(),
	}
}

func systemFrame(message string) Frame {
	f := newFrame(FrameSystem)
	f.Message = message
	return f
}

func snapshotFrame(snap window.Snapshot) Frame {
	f := newFrame(FrameSnapshot)
	windows := snap.Windows
	if windows == nil {
		windows = []types.Window{}
	}
	f.Windows = &windows
	f.Stats = &snap.Stats
	f.Seq = snap.Seq
	return f
}

func eventFrame(e window.Event) Frame {
	f := newFrame(FrameWindowEvent)
	f.WindowID = e.WindowID
	f.Seq = e.Seq
	f.Event = &e
	return f
}

func errorFrame(command, message string) Frame {
	f := newFrame(FrameError)
	f.Command = command
	f.Message = message
	return f
}

func encode(f Frame) ([]byte, error) {
	return sonic.Marshal(f)
}

func decode(data []byte) (Command, error) {
	var cmd Command
	err := sonic.Unmarshal(data, &cmd)
	return cmd, err
}
