package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/LexOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/monitoring"
)

// DefaultSendBuffer is the per-connection outbound queue length
const DefaultSendBuffer = 64

// client is one upgraded connection
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newClient(id string, conn *websocket.Conn, buffer int) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// enqueue queues data without blocking. A full queue means the peer is not
// keeping up; the connection is dropped.
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		c.stop()
		return false
	}
}

// stop signals the writer to close the connection. Safe to call repeatedly.
func (c *client) stop() {
	c.once.Do(func() { close(c.done) })
}

// Hub fans window events out to every connected client
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	buffer  int
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewHub creates a hub with the given per-connection send buffer
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultSendBuffer
	}
	return &Hub{
		clients: make(map[string]*client),
		buffer:  buffer,
		logger:  zap.NewNop(),
	}
}

// WithMetrics adds connection and message counting
func (h *Hub) WithMetrics(metrics *monitoring.Metrics) *Hub {
	h.metrics = metrics
	return h
}

// WithLogger sets the hub logger
func (h *Hub) WithLogger(logger *zap.Logger) *Hub {
	if logger != nil {
		h.logger = logger.Named("ws")
	}
	return h
}

// Attach forwards every manager event to connected clients.
// The returned function detaches the hub.
func (h *Hub) Attach(m *window.Manager) (detach func()) {
	return m.Subscribe(func(e window.Event) {
		h.Broadcast(eventFrame(e))
	})
}

// Broadcast encodes f once and queues it on every client
func (h *Hub) Broadcast(f Frame) {
	data, err := encode(f)
	if err != nil {
		h.logger.Error("Failed to encode frame", zap.String("type", f.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		if c.enqueue(data) {
			h.recordSent(f.Type)
			continue
		}
		h.logger.Warn("Dropping slow connection", zap.String("conn_id", c.id))
	}
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.stop()
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
	}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()

	if ok && h.metrics != nil {
		h.metrics.DecWSConnections()
	}
}

func (h *Hub) recordSent(frameType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", frameType)
	}
}

func (h *Hub) recordReceived(cmdType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage("in", cmdType)
	}
}
