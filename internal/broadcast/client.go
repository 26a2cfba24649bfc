package broadcast

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"auction-engine/internal/auth"
	"auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one registered websocket connection.
type Client struct {
	ID          string
	Channel     models.Channel
	Identity    *auth.Identity
	ConnectedAt time.Time

	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	lastSeq atomic.Uint64
	lastAck atomic.Uint64
}

func newClient(h *Hub, conn *websocket.Conn, ch models.Channel, identity *auth.Identity) *Client {
	return &Client{
		ID:          utils.GenerateConnectionID(),
		Channel:     ch,
		Identity:    identity,
		ConnectedAt: time.Now().UTC(),
		hub:         h,
		conn:        conn,
		send:        make(chan []byte, h.sendBuffer),
	}
}

// LastSeq is the highest broadcast sequence queued to this connection.
func (c *Client) LastSeq() uint64 {
	return c.lastSeq.Load()
}

// LastAck is the highest sequence the peer acknowledged.
func (c *Client) LastAck() uint64 {
	return c.lastAck.Load()
}

// enqueue must be called with the hub's read lock held.
func (c *Client) enqueue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// inbound is a control frame sent by the peer
type inbound struct {
	Event models.EventType `json:"event"`
	Data  json.RawMessage  `json:"data,omitempty"`
}

type ackData struct {
	Seq uint64 `json:"seq"`
}

// readPump handles peer control frames until the socket fails
func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				utils.Warn("websocket read failed", c.logFields(map[string]any{"error": err.Error()}))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.handle(raw)
	}
}

func (c *Client) handle(raw []byte) {
	var msg inbound
	if err := sonic.Unmarshal(raw, &msg); err != nil {
		utils.Debug("ignoring malformed frame", c.logFields(map[string]any{"error": err.Error()}))
		return
	}

	switch msg.Event {
	case models.EventPing:
		c.reply(models.Message{Event: models.EventPong, Data: map[string]any{"time": time.Now().UTC()}})
	case models.EventAck:
		var ack ackData
		if err := sonic.Unmarshal(msg.Data, &ack); err != nil {
			utils.Debug("ignoring malformed ack", c.logFields(map[string]any{"error": err.Error()}))
			return
		}
		for {
			prev := c.lastAck.Load()
			if ack.Seq <= prev || c.lastAck.CompareAndSwap(prev, ack.Seq) {
				break
			}
		}
	case models.EventResync:
		c.hub.Resync(c)
	case models.EventPong:
	default:
		utils.Debug("ignoring unknown event", c.logFields(map[string]any{"event": msg.Event}))
	}
}

// reply queues a frame for this connection only
func (c *Client) reply(msg models.Message) {
	frame, err := sonic.Marshal(msg)
	if err != nil {
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c]; ok {
		c.enqueue(frame)
	}
}

// writePump drains the send queue to the socket and keeps it alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				utils.Warn("websocket write failed", c.logFields(map[string]any{"error": err.Error()}))
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) info() ConnectionInfo {
	out := ConnectionInfo{
		ID:          c.ID,
		Channel:     c.Channel,
		LastSeq:     c.lastSeq.Load(),
		LastAck:     c.lastAck.Load(),
		ConnectedAt: c.ConnectedAt,
	}
	if c.Identity != nil {
		out.UserID = c.Identity.UserID
		out.TeamID = c.Identity.TeamID
	}
	return out
}

func (c *Client) logFields(extra ...map[string]any) map[string]any {
	fields := map[string]any{"connection_id": c.ID, "channel": c.Channel}
	if c.Identity != nil {
		fields["user_id"] = c.Identity.UserID
	}
	for _, m := range extra {
		for k, v := range m {
			fields[k] = v
		}
	}
	return fields
}
