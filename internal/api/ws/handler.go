package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LexOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/LexOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/utils"
	"github.com/GriffinCanCode/LexOS/backend/internal/shared/version"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origin policy is enforced by the CORS layer
	},
}

// Handler manages WebSocket connections
type Handler struct {
	shell  *desktop.Shell
	hub    *Hub
	tracer *tracing.Tracer
	logger *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(shell *desktop.Shell, hub *Hub) *Handler {
	return &Handler{
		shell:  shell,
		hub:    hub,
		logger: zap.NewNop(),
	}
}

// WithTracer adds a span per client command
func (h *Handler) WithTracer(tracer *tracing.Tracer) *Handler {
	h.tracer = tracer
	return h
}

// WithLogger sets the handler logger
func (h *Handler) WithLogger(logger *zap.Logger) *Handler {
	if logger != nil {
		h.logger = logger.Named("ws")
	}
	return h
}

// HandleConnection upgrades the request and serves the connection until
// either side closes it
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}

	cl := newClient(uuid.New().String(), conn, h.hub.buffer)
	logger := h.logger.With(zap.String("conn_id", cl.id))
	logger.Info("WebSocket client connected", zap.String("remote", c.ClientIP()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.writePump(cl, logger)
	}()

	h.reply(cl, systemFrame("Connected to "+version.Service))

	// Registering inside Sync queues the snapshot ahead of every event
	// newer than it, and no older event after it.
	h.shell.Windows().Sync(func(snap window.Snapshot) {
		h.hub.register(cl)
		h.reply(cl, snapshotFrame(snap))
	})

	h.readPump(c.Request.Context(), cl, logger)

	h.hub.unregister(cl)
	cl.stop()
	wg.Wait()

	logger.Info("WebSocket client disconnected")
}

func (h *Handler) readPump(ctx context.Context, cl *client, logger *zap.Logger) {
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}

		cmd, err := decode(data)
		if err != nil {
			h.hub.recordReceived("invalid")
			h.reply(cl, errorFrame("", "malformed command: "+err.Error()))
			continue
		}

		h.handleCommand(ctx, cl, cmd, logger)
	}
}

func (h *Handler) writePump(cl *client, logger *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case data := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.Debug("WebSocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-cl.done:
			_ = cl.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// handleCommand applies one client command. Failures become error frames;
// the connection stays open.
func (h *Handler) handleCommand(ctx context.Context, cl *client, cmd Command, logger *zap.Logger) {
	known := true
	switch cmd.Type {
	case CmdOpen, CmdMinimize, CmdMaximize, CmdClose, CmdCloseAll, CmdPing:
	default:
		known = false
	}
	if known {
		h.hub.recordReceived(cmd.Type)
	} else {
		h.hub.recordReceived("unknown")
	}

	var span *tracing.Span
	if h.tracer != nil && known && cmd.Type != CmdPing {
		span, _ = h.tracer.StartSpan(ctx, "ws."+cmd.Type)
		span.SetTag("conn_id", cl.id)
		defer func() {
			span.Finish()
			h.tracer.Submit(span)
		}()
	}

	frame, err := h.apply(cmd)
	if err != nil {
		if span != nil {
			span.SetError(err)
		}
		logger.Debug("Command rejected", zap.String("command", cmd.Type), zap.Error(err))
		h.reply(cl, errorFrame(cmd.Type, err.Error()))
		return
	}
	h.reply(cl, frame)
}

var errUnknownCommand = errors.New("unknown message type")

func (h *Handler) apply(cmd Command) (Frame, error) {
	switch cmd.Type {
	case CmdPing:
		return newFrame(FramePong), nil

	case CmdCloseAll:
		n := h.shell.CloseAll()
		f := ack(cmd)
		f.Closed = &n
		return f, nil

	case CmdOpen:
		if err := utils.ValidateID(cmd.ID, "id", true); err != nil {
			return Frame{}, err
		}
		w, err := h.shell.Launch(cmd.ID)
		if err != nil {
			return Frame{}, err
		}
		f := ack(cmd)
		f.Window = &w
		return f, nil

	case CmdMinimize, CmdMaximize, CmdClose:
		if err := utils.ValidateID(cmd.ID, "id", true); err != nil {
			return Frame{}, err
		}
		var changed bool
		switch cmd.Type {
		case CmdMinimize:
			changed = h.shell.Minimize(cmd.ID)
		case CmdMaximize:
			changed = h.shell.Restore(cmd.ID)
		default:
			changed = h.shell.Close(cmd.ID)
		}
		f := ack(cmd)
		f.Changed = &changed
		return f, nil
	}

	return Frame{}, fmt.Errorf("%w: %q", errUnknownCommand, cmd.Type)
}

func ack(cmd Command) Frame {
	f := newFrame(FrameAck)
	f.Command = cmd.Type
	f.WindowID = cmd.ID
	return f
}

// reply queues a frame for one client
func (h *Handler) reply(cl *client, f Frame) {
	data, err := encode(f)
	if err != nil {
		h.logger.Error("Failed to encode frame", zap.String("type", f.Type), zap.Error(err))
		return
	}
	if cl.enqueue(data) {
		h.hub.recordSent(f.Type)
	}
}
