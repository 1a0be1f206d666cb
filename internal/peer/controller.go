package peer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pion/webrtc/v4"

	"github.com/junsooki/hudhook/internal/logger"
	"github.com/junsooki/hudhook/internal/transport"
)

// Offerer is the remote-control side of a WebRTC session. It opens the
// events DataChannel and sends events over it once connected.
type Offerer struct {
	pc        *webrtc.PeerConnection
	transport *transport.DataChannelTransport
	open      chan struct{}

	mu      sync.Mutex
	seq     uint64
	pending map[uint64]chan []byte

	remote candidates
}

// NewOfferer creates an Offerer. Local candidates go out through cand.
func NewOfferer(iceServers []string, cand CandidateSender) (*Offerer, error) {
	pc, err := NewPeerConnection(iceServers)
	if err != nil {
		return nil, err
	}

	ordered := true
	dc, err := pc.CreateDataChannel(transport.EventsLabel, &webrtc.DataChannelInit{
		Ordered: &ordered,
	})
	if err != nil {
		pc.Close()
		return nil, err
	}

	o := &Offerer{
		pc:        pc,
		transport: transport.NewDataChannelTransport(dc),
		open:      make(chan struct{}),
		pending:   make(map[uint64]chan []byte),
	}
	var once sync.Once
	dc.OnOpen(func() { once.Do(func() { close(o.open) }) })
	o.transport.OnResult(o.deliver)

	relayCandidates(pc, cand)
	return o, nil
}

// Offer creates the local SDP offer to send to the HUD.
func (o *Offerer) Offer() (json.RawMessage, error) {
	offer, err := o.pc.CreateOffer(nil)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	if err := o.pc.SetLocalDescription(offer); err != nil {
		return nil, fmt.Errorf("set local description: %w", err)
	}
	return json.Marshal(offer)
}

// HandleAnswer processes an incoming SDP answer.
func (o *Offerer) HandleAnswer(payload json.RawMessage) error {
	var answer webrtc.SessionDescription
	if err := json.Unmarshal(payload, &answer); err != nil {
		return fmt.Errorf("decode answer: %w", err)
	}
	if err := o.pc.SetRemoteDescription(answer); err != nil {
		return fmt.Errorf("set remote description: %w", err)
	}
	return o.remote.flush(o.pc)
}

// HandleICECandidate adds a remote ICE candidate, holding it back if the
// answer has not been applied yet.
func (o *Offerer) HandleICECandidate(payload json.RawMessage) error {
	return o.remote.add(o.pc, payload)
}

// Send waits for the channel to open, sends event and returns its reply.
// Replies are matched by sequence number, so a reply that arrives after its
// Send gave up is dropped rather than handed to a later call.
func (o *Offerer) Send(ctx context.Context, event []byte) ([]byte, error) {
	select {
	case <-o.open:
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for data channel: %w", ctx.Err())
	}

	reply := make(chan []byte, 1)
	o.mu.Lock()
	o.seq++
	seq := o.seq
	o.pending[seq] = reply
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		delete(o.pending, seq)
		o.mu.Unlock()
	}()

	data, err := json.Marshal(frame{Seq: seq, Body: event})
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	if err := o.transport.SendEvent(data); err != nil {
		return nil, err
	}

	select {
	case res := <-reply:
		return res, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("wait for result: %w", ctx.Err())
	}
}

// deliver hands a reply frame to the Send waiting on its sequence number.
func (o *Offerer) deliver(data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		logger.Warn().Err(err).Msg("decode result frame")
		return
	}
	o.mu.Lock()
	reply, ok := o.pending[f.Seq]
	o.mu.Unlock()
	if !ok {
		logger.Debug().Uint64("seq", f.Seq).Msg("dropping unclaimed result")
		return
	}
	select {
	case reply <- f.Body:
	default:
	}
}

// Close shuts down the peer connection.
func (o *Offerer) Close() {
	if o.pc != nil {
		o.pc.Close()
	}
}
