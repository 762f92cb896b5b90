// Package subscribe exposes the reactive query layer over a websocket.
//
// A client opens one socket and multiplexes any number of named query
// subscriptions over it. A subscription starts on a loading sentinel and then
// gets a frame per distinct result. Frames are coalesced upstream, so the
// newest result always gets through; a fast first evaluation may overwrite
// the sentinel before it is sent.
package subscribe

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/webfolio/webfolio/internal/config"
	"github.com/webfolio/webfolio/internal/reactive"
	"github.com/webfolio/webfolio/internal/store"
	"github.com/webfolio/webfolio/internal/web/handler"
)

// Path is the path of the subscription websocket.
const Path = "/ws/subscribe"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Actions a client may send.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// Request is a client frame.
type Request struct {
	Action string `json:"action"`
	// ID is the client-chosen subscription identifier, echoed on every
	// server frame for that subscription.
	ID    uint64 `json:"id"`
	Query string `json:"query,omitempty"`
	Args  string `json:"args,omitempty"`
}

// Frame is a server frame. Ready is false only on the initial loading frame.
type Frame struct {
	ID    uint64          `json:"id"`
	Query string          `json:"query"`
	Args  string          `json:"args,omitempty"`
	Ready bool            `json:"ready"`
	Value json.RawMessage `json:"value,omitempty"`
	Error string          `json:"error,omitempty"`
}

// Service is the subscription handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	st  *store.Store
}

// Handler is the subscription handler.
var Handler = Service{}

// Init initializes the subscription handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st *store.Store) {
	if app == nil || cfg == nil || st == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.st = st

	app.Use(Path, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}

		return fiber.ErrUpgradeRequired
	})

	app.Get(Path, websocket.New(func(conn *websocket.Conn) {
		client := newClient(conn, st)

		go client.writePump()
		client.readPump()
	}))
}

// activeSub is one live subscription of a client.
type activeSub struct {
	sub  *reactive.Subscription
	done chan struct{}
}

// client is one websocket connection and its subscriptions.
type client struct {
	conn *websocket.Conn
	st   *store.Store
	send chan []byte
	quit chan struct{}

	mu   sync.Mutex
	subs map[uint64]*activeSub
}

func newClient(conn *websocket.Conn, st *store.Store) *client {
	return &client{
		conn: conn,
		st:   st,
		send: make(chan []byte, sendBuffer),
		quit: make(chan struct{}),
		subs: make(map[uint64]*activeSub),
	}
}

// readPump consumes client frames until the socket closes, then tears down
// every subscription.
func (c *client) readPump() {
	defer c.teardown()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			log.Debug().Err(err).Msg("malformed subscription frame")
			continue
		}

		switch req.Action {
		case ActionSubscribe:
			c.subscribe(&req)
		case ActionUnsubscribe:
			c.unsubscribe(req.ID)
		}
	}
}

// writePump owns all writes to the socket.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.quit:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})

			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// subscribe opens the named query and pumps its results to the socket.
// Reusing a live id first closes the previous subscription.
func (c *client) subscribe(req *Request) {
	sub, err := c.st.Subscribe(req.Query, req.Args)
	if err != nil {
		c.enqueue(&Frame{ID: req.ID, Query: req.Query, Args: req.Args, Ready: true, Error: err.Error()})
		return
	}

	active := &activeSub{sub: sub, done: make(chan struct{})}

	c.mu.Lock()

	if prev, ok := c.subs[req.ID]; ok {
		close(prev.done)
		prev.sub.Close()
	}

	c.subs[req.ID] = active
	c.mu.Unlock()

	go c.pump(req, active)
}

// unsubscribe closes one subscription by its client id.
func (c *client) unsubscribe(id uint64) {
	c.mu.Lock()
	active, ok := c.subs[id]

	if ok {
		delete(c.subs, id)
	}
	c.mu.Unlock()

	if ok {
		close(active.done)
		active.sub.Close()
	}
}

// pump forwards query results for one subscription until it is closed.
func (c *client) pump(req *Request, active *activeSub) {
	for {
		select {
		case res, ok := <-active.sub.Updates():
			if !ok {
				return
			}

			frame := &Frame{ID: req.ID, Query: req.Query, Args: req.Args, Ready: res.Ready}

			if res.Err != nil {
				frame.Error = res.Err.Error()
			} else if res.Ready {
				value, err := json.Marshal(res.Value)
				if err != nil {
					frame.Error = err.Error()
				} else {
					frame.Value = value
				}
			}

			c.enqueue(frame)
		case <-active.done:
			return
		}
	}
}

// enqueue hands a frame to the write pump. Blocking on a full buffer is
// safe: the reactive layer coalesces behind it, and quit unblocks the send
// when the connection goes away.
func (c *client) enqueue(frame *Frame) {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal subscription frame")
		return
	}

	select {
	case c.send <- data:
	case <-c.quit:
	}
}

// teardown closes every subscription, stops the write pump and drops the
// connection.
func (c *client) teardown() {
	c.mu.Lock()
	subs := c.subs
	c.subs = make(map[uint64]*activeSub)
	c.mu.Unlock()

	for _, active := range subs {
		close(active.done)
		active.sub.Close()
	}

	close(c.quit)
	_ = c.conn.Close()
}
