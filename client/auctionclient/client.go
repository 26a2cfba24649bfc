// Package auctionclient is a reconnecting subscriber for the auction event stream.
//
// Every (re)connect fetches a state snapshot over REST before streaming. Frames are
// applied in sequence order; a gap asks the server for a resync and drops frames
// until the fresh snapshot arrives. After MaxFailures consecutive failed attempts
// the client stops retrying until Reconnect is called.
package auctionclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"auction-engine/internal/models"
	"auction-engine/utils"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v5"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/conc"
	"github.com/valyala/bytebufferpool"
)

const (
	defaultInitialInterval = 2 * time.Second
	defaultMaxInterval     = 30 * time.Second
	defaultMaxFailures     = 10
	defaultPingInterval    = 20 * time.Second
	writeWait              = 10 * time.Second
)

var (
	ErrCircuitOpen = errors.New("auctionclient: too many failed attempts, call Reconnect")
	ErrSnapshot    = errors.New("auctionclient: snapshot fetch failed")
)

// Options configure a Client. Only BaseURL is required.
type Options struct {
	BaseURL         string // http(s)://host:port of the auction server
	Token           string // bearer token; empty follows the public channel
	MaxFailures     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	PingInterval    time.Duration
	HTTPClient      *http.Client
	Dialer          *websocket.Dialer
}

// Frame is one message delivered to the handler
type Frame struct {
	Event models.EventType `json:"event"`
	Seq   uint64           `json:"seq,omitempty"`
	Data  json.RawMessage  `json:"data"`
}

// Handler receives snapshots and in-order events. It runs on the read goroutine.
type Handler func(Frame)

// Client follows one auction stream
type Client struct {
	opts     Options
	stateURL string
	wsURL    string
	handler  Handler
	backoff  *backoff.ExponentialBackOff

	lastSeq       atomic.Uint64
	resyncPending atomic.Bool

	mu        sync.Mutex
	failures  int
	tripped   bool
	reconnect chan struct{}
}

// New validates the options and builds a client. Call Run to start streaming.
func New(opts Options, handler Handler) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("auctionclient: invalid base url %q", opts.BaseURL)
	}
	if handler == nil {
		handler = func(Frame) {}
	}
	if opts.MaxFailures <= 0 {
		opts.MaxFailures = defaultMaxFailures
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = defaultInitialInterval
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = defaultMaxInterval
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = defaultPingInterval
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Dialer == nil {
		opts.Dialer = websocket.DefaultDialer
	}

	statePath, wsPath := "/public/auction/state", "/ws-public"
	if opts.Token != "" {
		statePath, wsPath = "/auction/state", "/ws"
	}

	ws := *base
	switch base.Scheme {
	case "https":
		ws.Scheme = "wss"
	default:
		ws.Scheme = "ws"
	}

	return &Client{
		opts:      opts,
		stateURL:  base.String() + statePath,
		wsURL:     ws.String() + wsPath,
		handler:   handler,
		backoff:   newBackOff(opts.InitialInterval, opts.MaxInterval),
		reconnect: make(chan struct{}, 1),
	}, nil
}

func newBackOff(initial, max time.Duration) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.MaxInterval = max
	b.Multiplier = 2
	b.RandomizationFactor = 0.5
	b.Reset()
	return b
}

// LastSeq is the sequence of the last applied snapshot or event.
func (c *Client) LastSeq() uint64 {
	return c.lastSeq.Load()
}

// Tripped reports whether the circuit breaker stopped reconnecting.
func (c *Client) Tripped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tripped
}

// Failures is the number of consecutive failed connection attempts.
func (c *Client) Failures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures
}

// Reconnect closes the circuit breaker and retries immediately.
func (c *Client) Reconnect() {
	c.mu.Lock()
	c.tripped = false
	c.failures = 0
	c.backoff.Reset()
	c.mu.Unlock()

	select {
	case c.reconnect <- struct{}{}:
	default:
	}
}

// Run connects and streams until ctx is cancelled
func (c *Client) Run(ctx context.Context) error {
	for {
		if c.Tripped() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.reconnect:
			}
		}

		connected, err := c.session(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait, open := c.recordAttempt(connected)
		if open {
			utils.Error("auction stream disconnected", map[string]any{"error": ErrCircuitOpen.Error(), "cause": errString(err)})
			continue
		}
		utils.Warn("auction stream disconnected, retrying", map[string]any{"error": errString(err), "retry_in": wait.String()})

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-c.reconnect:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// recordAttempt updates the breaker and returns the next delay. A session
// that connected before dropping is not a failure and restarts the count.
func (c *Client) recordAttempt(connected bool) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if connected {
		c.failures = 0
		c.backoff.Reset()
		return c.backoff.NextBackOff(), false
	}
	c.failures++
	if c.failures >= c.opts.MaxFailures {
		c.tripped = true
		return 0, true
	}
	return c.backoff.NextBackOff(), false
}

// session runs one connection. connected reports whether the stream was established.
func (c *Client) session(ctx context.Context) (bool, error) {
	snapshot, err := c.fetchSnapshot(ctx)
	if err != nil {
		return false, err
	}

	conn, _, err := c.opts.Dialer.DialContext(ctx, c.wsURL, c.header())
	if err != nil {
		return false, fmt.Errorf("auctionclient: dial %s: %w", c.wsURL, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c.resyncPending.Store(false)
	c.deliverSnapshot(snapshot)
	utils.Info("auction stream connected", map[string]any{"url": c.wsURL, "seq": c.LastSeq()})

	w := &frameWriter{conn: conn}
	done := make(chan struct{})
	var wg conc.WaitGroup
	wg.Go(func() { c.keepalive(w, done) })
	defer func() {
		close(done)
		wg.Wait()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}
		var f Frame
		if err := sonic.Unmarshal(raw, &f); err != nil {
			utils.Debug("ignoring malformed frame", map[string]any{"error": err.Error()})
			continue
		}
		if err := c.handle(w, f); err != nil {
			return true, err
		}
	}
}

func (c *Client) handle(w *frameWriter, f Frame) error {
	switch f.Event {
	case models.EventPong:
		return nil
	case models.EventPing:
		return w.send(models.Message{Event: models.EventPong})
	case models.EventStateSnapshot:
		if f.Seq < c.LastSeq() {
			return nil
		}
		c.resyncPending.Store(false)
		c.apply(f)
		return w.ack(f.Seq)
	}

	last := c.LastSeq()
	switch {
	case f.Seq <= last:
		return nil
	case f.Seq == last+1 && !c.resyncPending.Load():
		c.apply(f)
		return w.ack(f.Seq)
	default:
		if c.resyncPending.Swap(true) {
			return nil
		}
		utils.Warn("sequence gap, requesting resync", map[string]any{"last_seq": last, "received_seq": f.Seq})
		return w.send(models.Message{Event: models.EventResync})
	}
}

func (c *Client) apply(f Frame) {
	c.lastSeq.Store(f.Seq)
	c.handler(f)
}

func (c *Client) keepalive(w *frameWriter, done <-chan struct{}) {
	ticker := time.NewTicker(c.opts.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := w.send(models.Message{Event: models.EventPing}); err != nil {
				return
			}
		}
	}
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type snapshotSeq struct {
	Seq uint64 `json:"seq"`
}

// fetchSnapshot returns the state snapshot as a state_snapshot frame
func (c *Client) fetchSnapshot(ctx context.Context) (Frame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.stateURL, nil)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	for k, v := range c.header() {
		req.Header[k] = v
	}

	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	var env envelope
	if err := sonic.Unmarshal(buf.B, &env); err != nil {
		return Frame{}, fmt.Errorf("%w: decode: %v", ErrSnapshot, err)
	}
	if resp.StatusCode != http.StatusOK {
		return Frame{}, fmt.Errorf("%w: status %d: %s", ErrSnapshot, resp.StatusCode, env.Error)
	}

	var seq snapshotSeq
	if err := sonic.Unmarshal(env.Data, &seq); err != nil {
		return Frame{}, fmt.Errorf("%w: decode state: %v", ErrSnapshot, err)
	}
	data, err := sonic.Marshal(models.EventPayload{Transition: "fetch", State: env.Data})
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrSnapshot, err)
	}
	return Frame{Event: models.EventStateSnapshot, Seq: seq.Seq, Data: data}, nil
}

func (c *Client) deliverSnapshot(f Frame) {
	if f.Seq < c.LastSeq() {
		utils.Warn("server snapshot is behind the last applied sequence", map[string]any{"last_seq": c.LastSeq(), "snapshot_seq": f.Seq})
	}
	c.apply(f)
}

func (c *Client) header() http.Header {
	h := http.Header{}
	if c.opts.Token != "" {
		h.Set("Authorization", "Bearer "+c.opts.Token)
	}
	return h
}

// frameWriter serializes writes from the read loop and the keepalive goroutine
type frameWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *frameWriter) send(msg models.Message) error {
	frame, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(websocket.TextMessage, frame)
}

func (w *frameWriter) ack(seq uint64) error {
	return w.send(models.Message{Event: models.EventAck, Data: map[string]uint64{"seq": seq}})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
