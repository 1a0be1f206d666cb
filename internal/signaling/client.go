package signaling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/junsooki/hudhook/internal/input"
	"github.com/junsooki/hudhook/internal/logger"
)

var (
	// ErrRemote wraps an error reported by the HUD for a request.
	ErrRemote = errors.New("remote error")
	// ErrClosed is returned when the connection closes before a reply arrives.
	ErrClosed = errors.New("signaling connection closed")
)

// Handler callbacks for session-level messages.
type Handler struct {
	OnAnswer       func(payload json.RawMessage)
	OnICECandidate func(payload json.RawMessage)
	OnError        func(msg string)
}

// Client is a WebSocket control client for a running HUD.
type Client struct {
	url     string
	handler Handler

	conn   *websocket.Conn
	mu     sync.Mutex
	done   chan struct{}
	closed bool

	pendingMu sync.Mutex
	pending   map[string]chan Message
}

// NewClient creates a control client for url (ws://host:port/ws).
func NewClient(url string, handler Handler) *Client {
	return &Client{
		url:     url,
		handler: handler,
		done:    make(chan struct{}),
		pending: make(map[string]chan Message),
	}
}

// Connect dials the HUD and starts reading messages.
func (c *Client) Connect(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("signaling dial: %w", err)
	}
	c.conn = conn

	go c.readLoop()
	go c.pingLoop()
	return nil
}

// Close shuts down the connection.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
	if c.conn != nil {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		c.conn.Close()
	}
}

// Fire sends e to the HUD and waits for its Result.
func (c *Client) Fire(ctx context.Context, e input.Event) (input.Result, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return input.Result{}, err
	}

	id := uuid.NewString()
	reply := make(chan Message, 1)
	c.pendingMu.Lock()
	c.pending[id] = reply
	c.pendingMu.Unlock()
	defer func() {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
	}()

	if err := c.send(Message{Type: TypeEvent, ID: id, Payload: payload}); err != nil {
		return input.Result{}, err
	}

	select {
	case msg := <-reply:
		if msg.Type == TypeError {
			return input.Result{}, fmt.Errorf("%w: %s", ErrRemote, msg.Msg)
		}
		var res input.Result
		if err := json.Unmarshal(msg.Payload, &res); err != nil {
			return input.Result{}, fmt.Errorf("decode result: %w", err)
		}
		return res, nil
	case <-c.done:
		return input.Result{}, ErrClosed
	case <-ctx.Done():
		return input.Result{}, ctx.Err()
	}
}

// SendOffer sends an SDP offer to the HUD.
func (c *Client) SendOffer(payload json.RawMessage) error {
	return c.send(Message{Type: TypeOffer, Payload: payload})
}

// SendICECandidate sends an ICE candidate to the HUD.
func (c *Client) SendICECandidate(payload json.RawMessage) error {
	return c.send(Message{Type: TypeICECandidate, Payload: payload})
}

func (c *Client) send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	if c.closed {
		return ErrClosed
	}
	return c.conn.WriteJSON(msg)
}

func (c *Client) readLoop() {
	defer c.Close()
	for {
		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			select {
			case <-c.done:
				return
			default:
				logger.Debug().Err(err).Msg("signaling read")
				return
			}
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg Message) {
	if msg.ID != "" && (msg.Type == TypeResult || msg.Type == TypeError) {
		c.pendingMu.Lock()
		reply, ok := c.pending[msg.ID]
		c.pendingMu.Unlock()
		if ok {
			reply <- msg
			return
		}
	}

	switch msg.Type {
	case TypeAnswer:
		if c.handler.OnAnswer != nil {
			c.handler.OnAnswer(msg.Payload)
		}
	case TypeICECandidate:
		if c.handler.OnICECandidate != nil {
			c.handler.OnICECandidate(msg.Payload)
		}
	case TypeError:
		if c.handler.OnError != nil {
			c.handler.OnError(msg.Msg)
		}
	case TypePong, TypeResult:
		// heartbeat response or a reply nobody is waiting for
	}
}

func (c *Client) pingLoop() {
	ticker := time.NewTicker(25 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			_ = c.send(Message{Type: TypePing})
		}
	}
}
