// Package realtime streams onboarding gate decisions to browser clients over
// server-sent events.
package realtime

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ErrHubClosed is returned by Register after Shutdown.
var ErrHubClosed = errors.New("realtime: hub closed")

const outboundBuffer = 8

// Event is one SSE frame.
type Event struct {
	ID   string
	Name string
	Data any
}

// Client is a single open SSE connection.
type Client struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	Outbound  chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Hub tracks open SSE clients.
type Hub struct {
	mu        sync.RWMutex
	log       *slog.Logger
	heartbeat time.Duration
	clients   map[*Client]struct{}
	closed    bool
}

// NewHub creates a Hub. heartbeat <= 0 disables keep-alive comments.
func NewHub(logger *slog.Logger, heartbeat time.Duration) *Hub {
	return &Hub{
		log:       logger.With("component", "sse_hub"),
		heartbeat: heartbeat,
		clients:   make(map[*Client]struct{}),
	}
}

// Register adds a client for profileID.
func (h *Hub) Register(profileID uuid.UUID) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	c := &Client{
		ID:        uuid.New(),
		ProfileID: profileID,
		Outbound:  make(chan Event, outboundBuffer),
		done:      make(chan struct{}),
	}
	h.clients[c] = struct{}{}

	h.log.Debug("sse client registered",
		slog.String("client_id", c.ID.String()),
		slog.String("profile_id", profileID.String()),
	)
	return c, nil
}

// Unregister removes the client and ends its stream. Safe to call twice.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// ClientCount returns the number of open clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send queues an event for c and stamps it with a sortable ID. It never
// blocks; a full buffer drops the event and returns false.
func (h *Hub) Send(c *Client, name string, data any) bool {
	ev := Event{ID: ulid.Make().String(), Name: name, Data: data}
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.Outbound <- ev:
		return true
	default:
		h.log.Warn("dropping sse event; outbound buffer full",
			slog.String("client_id", c.ID.String()),
			slog.String("event", name),
		)
		return false
	}
}

// Shutdown ends every open stream and rejects new registrations.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	clear(h.clients)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	h.log.Info("sse hub shut down", slog.Int("clients", len(clients)))
}

// Stream writes queued events for c until the request ends, the client is
// unregistered or the hub shuts down.
func (h *Hub) Stream(w http.ResponseWriter, r *http.Request, c *Client) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return errors.New("realtime: streaming unsupported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	var tick <-chan time.Time
	if h.heartbeat > 0 {
		t := time.NewTicker(h.heartbeat)
		defer t.Stop()
		tick = t.C
	}

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return nil
		case <-tick:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return err
			}
			flusher.Flush()
		case ev := <-c.Outbound:
			if err := writeEvent(w, ev); err != nil {
				return err
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, ev Event) error {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		return fmt.Errorf("marshal sse event %s: %w", ev.Name, err)
	}
	_, err = fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", ev.ID, ev.Name, data)
	return err
}
