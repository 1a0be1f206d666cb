package peer

import (
	"encoding/json"
	"sync"

	"github.com/pion/webrtc/v4"

	"github.com/junsooki/hudhook/internal/logger"
)

// DefaultICEServers is used when no STUN servers are configured.
var DefaultICEServers = []string{"stun:stun.l.google.com:19302", "stun:stun1.l.google.com:19302"}

// CandidateSender relays local ICE candidates to the remote peer.
type CandidateSender interface {
	SendICECandidate(payload json.RawMessage) error
}

// NewPeerConnection creates a PeerConnection using the given STUN/TURN URLs.
func NewPeerConnection(iceServers []string) (*webrtc.PeerConnection, error) {
	if len(iceServers) == 0 {
		iceServers = DefaultICEServers
	}
	cfg := webrtc.Configuration{
		ICEServers: []webrtc.ICEServer{{URLs: iceServers}},
	}
	pc, err := webrtc.NewPeerConnection(cfg)
	if err != nil {
		return nil, err
	}
	pc.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		logger.Info().Str("state", state.String()).Msg("peer connection state")
	})
	return pc, nil
}

// relayCandidates forwards every gathered local candidate through sender.
func relayCandidates(pc *webrtc.PeerConnection, sender CandidateSender) {
	pc.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		data, err := json.Marshal(c.ToJSON())
		if err != nil {
			logger.Warn().Err(err).Msg("marshal ICE candidate")
			return
		}
		if err := sender.SendICECandidate(data); err != nil {
			logger.Warn().Err(err).Msg("send ICE candidate")
		}
	})
}

// addCandidate decodes and adds a remote ICE candidate.
func addCandidate(pc *webrtc.PeerConnection, payload json.RawMessage) error {
	var candidate webrtc.ICECandidateInit
	if err := json.Unmarshal(payload, &candidate); err != nil {
		return err
	}
	return pc.AddICECandidate(candidate)
}

// candidates holds remote ICE candidates until a remote description is set.
type candidates struct {
	mu      sync.Mutex
	pending []json.RawMessage
}

func (c *candidates) add(pc *webrtc.PeerConnection, payload json.RawMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pc.RemoteDescription() == nil {
		c.pending = append(c.pending, payload)
		return nil
	}
	return addCandidate(pc, payload)
}

// flush adds every held candidate. Call after setting the remote description.
func (c *candidates) flush(pc *webrtc.PeerConnection) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.pending {
		if err := addCandidate(pc, p); err != nil {
			return err
		}
	}
	c.pending = nil
	return nil
}

// frame wraps every message on the events channel. The answer to an event
// carries the event's Seq so a late reply cannot be taken for a newer one.
type frame struct {
	Seq  uint64          `json:"seq"`
	Body json.RawMessage `json:"body"`
}
