package signaling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/junsooki/hudhook/internal/input"
	"github.com/junsooki/hudhook/internal/logger"
	"github.com/junsooki/hudhook/internal/peer"
)

// Path is where the Server accepts WebSocket connections.
const Path = "/ws"

// PeerFactory creates the HUD side of a WebRTC session for one connection.
type PeerFactory func(cand peer.CandidateSender, handle peer.EventHandler) (*peer.Answerer, error)

// Server accepts control connections and fires their events through a Router.
type Server struct {
	router   *input.Router
	newPeer  PeerFactory
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[*session]struct{}
}

// NewServer creates a Server. A nil newPeer disables WebRTC offers.
func NewServer(router *input.Router, newPeer PeerFactory) *Server {
	return &Server{
		router:  router,
		newPeer: newPeer,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		sessions: make(map[*session]struct{}),
	}
}

// ListenAndServe serves Path on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("signaling listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves Path on ln until ctx is done, then closes every open control
// connection along with the listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return fmt.Errorf("signaling serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		// Shutdown leaves hijacked connections alone.
		s.closeSessions()
		if err != nil {
			return fmt.Errorf("signaling shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) track(c *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[c] = struct{}{}
}

func (s *Server) untrack(c *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, c)
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.sessions {
		c.conn.Close()
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	sess := &session{server: s, conn: conn}
	s.track(sess)
	defer s.untrack(sess)
	sess.serve(r.Context())
}

// session is one control connection.
type session struct {
	server *Server
	conn   *websocket.Conn

	mu       sync.Mutex
	answerer *peer.Answerer

	// Candidates trickled ahead of the offer.
	early []json.RawMessage

	writeMu sync.Mutex
}

func (c *session) serve(ctx context.Context) {
	log := logger.WithField("remote", c.conn.RemoteAddr().String())
	log.Info().Msg("control connection opened")
	defer func() {
		c.mu.Lock()
		if c.answerer != nil {
			c.answerer.Close()
		}
		c.mu.Unlock()
		c.conn.Close()
		log.Info().Msg("control connection closed")
	}()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("control read")
			}
			return
		}
		c.handle(ctx, msg)
	}
}

func (c *session) handle(ctx context.Context, msg Message) {
	switch msg.Type {
	case TypeEvent:
		c.handleEvent(ctx, msg)
	case TypeOffer:
		c.handleOffer(ctx, msg)
	case TypeICECandidate:
		c.mu.Lock()
		a := c.answerer
		if a == nil {
			c.early = append(c.early, msg.Payload)
		}
		c.mu.Unlock()
		if a == nil {
			return
		}
		if err := a.HandleICECandidate(msg.Payload); err != nil {
			logger.Warn().Err(err).Msg("handle ICE candidate")
		}
	case TypePing:
		c.write(Message{Type: TypePong, Timestamp: time.Now().UnixMilli()})
	default:
		c.writeError(msg.ID, fmt.Errorf("unknown message type %q", msg.Type))
	}
}

func (c *session) handleEvent(ctx context.Context, msg Message) {
	var e input.Event
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		c.writeError(msg.ID, fmt.Errorf("decode event: %w", err))
		return
	}
	res, err := c.server.router.Route(ctx, e)
	if err != nil {
		c.writeError(msg.ID, err)
		return
	}
	payload, err := json.Marshal(res)
	if err != nil {
		c.writeError(msg.ID, err)
		return
	}
	c.write(Message{Type: TypeResult, ID: msg.ID, Payload: payload})
}

func (c *session) handleOffer(ctx context.Context, msg Message) {
	if c.server.newPeer == nil {
		c.writeError(msg.ID, errors.New("webrtc disabled"))
		return
	}

	a, err := c.server.newPeer(c, func(data []byte) ([]byte, error) {
		return c.server.router.HandleJSON(ctx, data)
	})
	if err != nil {
		c.writeError(msg.ID, fmt.Errorf("create peer: %w", err))
		return
	}

	c.mu.Lock()
	if c.answerer != nil {
		c.answerer.Close()
	}
	c.answerer = a
	early := c.early
	c.early = nil
	c.mu.Unlock()

	for _, p := range early {
		if err := a.HandleICECandidate(p); err != nil {
			logger.Warn().Err(err).Msg("handle ICE candidate")
		}
	}

	answer, err := a.HandleOffer(msg.Payload)
	if err != nil {
		c.writeError(msg.ID, err)
		return
	}
	c.write(Message{Type: TypeAnswer, ID: msg.ID, Payload: answer})
}

// SendICECandidate implements peer.CandidateSender.
func (c *session) SendICECandidate(payload json.RawMessage) error {
	return c.send(Message{Type: TypeICECandidate, Payload: payload})
}

func (c *session) writeError(id string, err error) {
	c.write(Message{Type: TypeError, ID: id, Msg: err.Error()})
}

func (c *session) write(msg Message) {
	if err := c.send(msg); err != nil {
		logger.Debug().Err(err).Str("type", msg.Type).Msg("control write")
	}
}

// send serializes writes; gorilla connections allow one concurrent writer.
func (c *session) send(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}
