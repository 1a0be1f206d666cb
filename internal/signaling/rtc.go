package signaling

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/junsooki/hudhook/internal/input"
	"github.com/junsooki/hudhook/internal/logger"
	"github.com/junsooki/hudhook/internal/peer"
)

// FireWebRTC negotiates an events DataChannel with the HUD at url, sends e
// through it and returns the Result. The control connection only carries the
// offer, answer and candidates.
func FireWebRTC(ctx context.Context, url string, iceServers []string, e input.Event) (input.Result, error) {
	n := newNegotiation()
	client := NewClient(url, n.handler())

	offerer, err := peer.NewOfferer(iceServers, client)
	if err != nil {
		return input.Result{}, fmt.Errorf("create peer: %w", err)
	}
	defer offerer.Close()
	n.offerer = offerer

	if err := client.Connect(ctx); err != nil {
		return input.Result{}, err
	}
	defer client.Close()

	offer, err := offerer.Offer()
	if err != nil {
		return input.Result{}, err
	}
	if err := client.SendOffer(offer); err != nil {
		return input.Result{}, fmt.Errorf("send offer: %w", err)
	}

	select {
	case answer := <-n.answers:
		if err := offerer.HandleAnswer(answer); err != nil {
			return input.Result{}, err
		}
	case msg := <-n.errs:
		return input.Result{}, fmt.Errorf("%w: %s", ErrRemote, msg)
	case <-ctx.Done():
		return input.Result{}, fmt.Errorf("wait for answer: %w", ctx.Err())
	}

	data, err := json.Marshal(e)
	if err != nil {
		return input.Result{}, err
	}
	reply, err := offerer.Send(ctx, data)
	if err != nil {
		return input.Result{}, err
	}

	var res input.Result
	if err := json.Unmarshal(reply, &res); err != nil {
		return input.Result{}, fmt.Errorf("decode result: %w", err)
	}
	if res.Error != "" {
		return input.Result{}, fmt.Errorf("%w: %s", ErrRemote, res.Error)
	}
	return res, nil
}

// negotiation collects the HUD's replies to one offer. Only the first answer
// and the first error are kept; the client's read loop never blocks on them.
type negotiation struct {
	offerer *peer.Offerer
	answers chan json.RawMessage
	errs    chan string
}

func newNegotiation() *negotiation {
	return &negotiation{
		answers: make(chan json.RawMessage, 1),
		errs:    make(chan string, 1),
	}
}

func (n *negotiation) handler() Handler {
	return Handler{
		OnAnswer: func(payload json.RawMessage) {
			select {
			case n.answers <- payload:
			default:
				logger.Debug().Msg("ignoring extra answer")
			}
		},
		OnICECandidate: func(payload json.RawMessage) {
			if n.offerer == nil {
				return
			}
			if err := n.offerer.HandleICECandidate(payload); err != nil {
				logger.Warn().Err(err).Msg("handle ICE candidate")
			}
		},
		OnError: func(msg string) {
			select {
			case n.errs <- msg:
			default:
			}
		},
	}
}
