package peer

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pion/webrtc/v4"

	"github.com/junsooki/hudhook/internal/input"
	"github.com/junsooki/hudhook/internal/logger"
	"github.com/junsooki/hudhook/internal/transport"
)

// EventHandler turns a serialized event into a serialized result.
type EventHandler func(data []byte) ([]byte, error)

// Answerer is the HUD side of a WebRTC session. It answers an offer and
// routes every event arriving on the events DataChannel through its handler.
type Answerer struct {
	pc        *webrtc.PeerConnection
	transport *transport.DataChannelTransport
	remote    candidates
}

// NewAnswerer creates an Answerer. Local candidates go out through cand.
func NewAnswerer(iceServers []string, cand CandidateSender, handle EventHandler) (*Answerer, error) {
	pc, err := NewPeerConnection(iceServers)
	if err != nil {
		return nil, err
	}

	a := &Answerer{
		pc:        pc,
		transport: transport.NewDataChannelTransport(nil),
	}
	a.transport.OnEvent(func(data []byte) {
		out, err := answerFrame(handle, data)
		if err != nil {
			logger.Warn().Err(err).Msg("encode result")
			return
		}
		if err := a.transport.SendResult(out); err != nil {
			logger.Warn().Err(err).Msg("send result")
		}
	})

	pc.OnDataChannel(func(dc *webrtc.DataChannel) {
		logger.Info().Str("label", dc.Label()).Msg("data channel received")
		if dc.Label() != transport.EventsLabel {
			return
		}
		dc.OnOpen(func() {
			logger.Info().Msg("events data channel open")
		})
		a.transport.SetChannel(dc)
	})

	relayCandidates(pc, cand)
	return a, nil
}

// Transport returns the DataChannelTransport carrying events.
func (a *Answerer) Transport() *transport.DataChannelTransport {
	return a.transport
}

// HandleOffer applies the remote offer and returns the SDP answer.
func (a *Answerer) HandleOffer(payload json.RawMessage) (json.RawMessage, error) {
	var offer webrtc.SessionDescription
	if err := json.Unmarshal(payload, &offer); err != nil {
		return nil, fmt.Errorf("decode offer: %w", err)
	}
	if err := a.pc.SetRemoteDescription(offer); err != nil {
		return nil, fmt.Errorf("set remote description: %w", err)
	}
	if err := a.remote.flush(a.pc); err != nil {
		return nil, fmt.Errorf("add held candidates: %w", err)
	}

	answer, err := a.pc.CreateAnswer(nil)
	if err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}
	if err := a.pc.SetLocalDescription(answer); err != nil {
		return nil, fmt.Errorf("set local description: %w", err)
	}
	return json.Marshal(answer)
}

// HandleICECandidate adds a remote ICE candidate, holding it back until the
// offer has been applied.
func (a *Answerer) HandleICECandidate(payload json.RawMessage) error {
	return a.remote.add(a.pc, payload)
}

// Close shuts down the peer connection.
func (a *Answerer) Close() {
	if a.pc != nil {
		a.pc.Close()
	}
}

// answerFrame unwraps an event frame, answers its body and wraps the reply
// under the same sequence number.
func answerFrame(handle EventHandler, data []byte) ([]byte, error) {
	var in frame
	if err := json.Unmarshal(data, &in); err != nil {
		return json.Marshal(frame{Body: failure(fmt.Errorf("decode frame: %w", err))})
	}
	return json.Marshal(frame{Seq: in.Seq, Body: answerEvent(handle, in.Body)})
}

// answerEvent runs handle and always produces a reply, folding a handler
// error into the Result since the channel has no separate error frame.
func answerEvent(handle EventHandler, data []byte) []byte {
	out, err := handle(data)
	if err != nil {
		return failure(err)
	}
	if !json.Valid(out) {
		return failure(errors.New("handler returned invalid JSON"))
	}
	return out
}

func failure(err error) []byte {
	out, _ := json.Marshal(input.Result{Error: err.Error()})
	return out
}
