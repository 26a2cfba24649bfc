package broadcast

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/auth"
	"auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/conc"
)

// Upgrader accepts websocket handshakes from any origin; the browser
// dashboard and the public page are served from different hosts.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SnapshotSource yields the latest committed auction state.
type SnapshotSource interface {
	Snapshot() models.Snapshot
}

// Options size the hub buffers
type Options struct {
	SendBuffer  int
	EventBuffer int
}

// Hub is the connection registry. A single dispatcher goroutine (Run)
// owns registration and fans committed events out to every connection.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	resync     chan *Client
	events     chan models.Event
	kick       chan struct{}
	done       chan struct{}

	overflow atomic.Bool
	dropped  atomic.Uint64

	// mu guards clients and the open state of every client's send channel
	mu      sync.RWMutex
	clients map[*Client]struct{}

	source     SnapshotSource
	sendBuffer int
	pumps      conc.WaitGroup
}

// NewHub creates a hub; call Run before serving connections.
func NewHub(opts Options) *Hub {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 256
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 1024
	}
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		resync:     make(chan *Client),
		events:     make(chan models.Event, opts.EventBuffer),
		kick:       make(chan struct{}, 1),
		done:       make(chan struct{}),
		clients:    make(map[*Client]struct{}),
		sendBuffer: opts.SendBuffer,
	}
}

// Publish queues a committed event for fan-out. It never blocks: when the
// queue is full the event is dropped and every connection is resynced.
func (h *Hub) Publish(event models.Event) {
	select {
	case h.events <- event:
	default:
		h.dropped.Add(1)
		h.overflow.Store(true)
		select {
		case h.kick <- struct{}{}:
		default:
		}
		utils.Warn("hub event queue full, scheduling resync", map[string]any{"seq": event.Seq, "type": event.Type})
	}
}

// Run dispatches until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context, source SnapshotSource) {
	h.source = source
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.add(c)
			h.sendSnapshot(c)
			utils.Info("connection registered", c.logFields())
		case c := <-h.unregister:
			if h.remove(c) {
				utils.Info("connection unregistered", c.logFields())
			}
		case c := <-h.resync:
			h.sendSnapshot(c)
		case <-h.kick:
			h.resyncAfterOverflow()
		case ev := <-h.events:
			h.resyncAfterOverflow()
			h.dispatch(ev)
		}
	}
}

// Wait blocks until every connection pump has exited.
func (h *Hub) Wait() {
	h.pumps.Wait()
}

// Register hands a connection to the dispatcher, which replies with a snapshot.
func (h *Hub) Register(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return fmt.Errorf("broadcast: %w - hub stopped", auctionerrors.ErrConnection)
	}
}

// Unregister removes a connection and closes its outbound queue.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast sends one message to every connection on the channel.
// Messages carrying a seq are skipped by connections already past it.
func (h *Hub) Broadcast(ch models.Channel, msg models.Message) error {
	frame, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("broadcast: encode %s: %w", msg.Event, err)
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		if c.Channel != ch {
			continue
		}
		if msg.Seq != 0 && msg.Seq <= c.lastSeq.Load() {
			continue
		}
		if !c.enqueue(frame) {
			slow = append(slow, c)
			continue
		}
		if msg.Seq != 0 {
			c.lastSeq.Store(msg.Seq)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		if h.remove(c) {
			utils.Warn("dropping slow connection", c.logFields(map[string]any{
				"error": fmt.Errorf("broadcast: %w - send buffer full", auctionerrors.ErrConnection).Error(),
			}))
		}
	}
	return nil
}

// ServeConn registers an upgraded socket and starts its pumps.
func (h *Hub) ServeConn(conn *websocket.Conn, ch models.Channel, identity *auth.Identity) (*Client, error) {
	c := newClient(h, conn, ch, identity)
	if err := h.Register(c); err != nil {
		_ = conn.Close()
		return nil, err
	}
	h.pumps.Go(c.writePump)
	h.pumps.Go(c.readPump)
	return c, nil
}

// Resync asks the dispatcher to send c a fresh snapshot.
func (h *Hub) Resync(c *Client) {
	select {
	case h.resync <- c:
	case <-h.done:
	}
}

// Dropped reports how many events were lost to queue overflow.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

func (h *Hub) dispatch(ev models.Event) {
	for _, ch := range []models.Channel{models.ChannelAdmin, models.ChannelPublic} {
		if err := h.Broadcast(ch, ev.Message(ch)); err != nil {
			utils.Error("failed to broadcast event", map[string]any{"seq": ev.Seq, "channel": ch, "error": err.Error()})
		}
	}
}

func (h *Hub) resyncAfterOverflow() {
	if !h.overflow.Swap(false) {
		return
	}
	h.mu.RLock()
	all := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		all = append(all, c)
	}
	h.mu.RUnlock()

	for _, c := range all {
		h.sendSnapshot(c)
	}
	utils.Info("resynced all connections after overflow", map[string]any{"connections": len(all)})
}

// sendSnapshot delivers the current channel projection and fast-forwards
// the connection past every event the snapshot already contains.
func (h *Hub) sendSnapshot(c *Client) {
	if h.source == nil {
		return
	}
	snap := h.source.Snapshot()
	ev := models.Event{Seq: snap.Seq, Type: models.EventStateSnapshot, Transition: "sync", State: snap, CreatedAt: snap.UpdatedAt}
	frame, err := sonic.Marshal(ev.Message(c.Channel))
	if err != nil {
		utils.Error("failed to encode snapshot", map[string]any{"seq": snap.Seq, "error": err.Error()})
		return
	}

	h.mu.RLock()
	_, ok := h.clients[c]
	delivered := ok && c.enqueue(frame)
	h.mu.RUnlock()

	if !ok {
		return
	}
	if !delivered {
		h.remove(c)
		utils.Warn("dropping slow connection", c.logFields(map[string]any{"stage": "snapshot"}))
		return
	}
	c.lastSeq.Store(snap.Seq)
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

// remove reports whether c was still registered.
func (h *Hub) remove(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	delete(h.clients, c)
	close(c.send)
	return true
}

func (h *Hub) shutdown() {
	close(h.done)
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	utils.Info("hub stopped", nil)
}

// ConnectionInfo describes one live connection
type ConnectionInfo struct {
	ID          string         `json:"id"`
	Channel     models.Channel `json:"channel"`
	UserID      string         `json:"user_id,omitempty"`
	TeamID      string         `json:"team_id,omitempty"`
	LastSeq     uint64         `json:"last_seq"`
	LastAck     uint64         `json:"last_ack"`
	ConnectedAt time.Time      `json:"connected_at"`
}

// Stats summarizes the registry
type Stats struct {
	Admin         int              `json:"admin"`
	Public        int              `json:"public"`
	DroppedEvents uint64           `json:"dropped_events"`
	Connections   []ConnectionInfo `json:"connections"`
}

// Stats returns counts and per-connection sequence positions.
func (h *Hub) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := Stats{DroppedEvents: h.dropped.Load(), Connections: make([]ConnectionInfo, 0, len(h.clients))}
	for c := range h.clients {
		if c.Channel == models.ChannelAdmin {
			out.Admin++
		} else {
			out.Public++
		}
		out.Connections = append(out.Connections, c.info())
	}
	return out
}
