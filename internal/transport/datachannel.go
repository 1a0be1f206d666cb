package transport

import (
	"errors"
	"sync"

	"github.com/pion/webrtc/v4"
)

// EventsLabel is the label of the DataChannel carrying events and results.
const EventsLabel = "events"

// ErrNoChannel is returned when sending before a DataChannel is attached.
var ErrNoChannel = errors.New("events data channel not set")

// DataChannelTransport carries trigger events and their results over a
// single ordered WebRTC DataChannel. Events flow from the remote side to the
// HUD and results flow back on the same channel, so each side only installs
// the callback it needs.
type DataChannelTransport struct {
	mu sync.Mutex
	dc *webrtc.DataChannel

	onEvent  func(data []byte)
	onResult func(data []byte)
}

// NewDataChannelTransport wraps dc, which may be nil until SetChannel is called.
func NewDataChannelTransport(dc *webrtc.DataChannel) *DataChannelTransport {
	t := &DataChannelTransport{}
	if dc != nil {
		t.SetChannel(dc)
	}
	return t
}

// SetChannel sets or replaces the DataChannel (used when receiving negotiated channels).
func (t *DataChannelTransport) SetChannel(dc *webrtc.DataChannel) {
	t.mu.Lock()
	t.dc = dc
	t.mu.Unlock()
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		t.deliver(msg.Data)
	})
}

func (t *DataChannelTransport) SendEvent(data []byte) error {
	return t.send(data)
}

func (t *DataChannelTransport) SendResult(data []byte) error {
	return t.send(data)
}

func (t *DataChannelTransport) OnEvent(cb func(data []byte)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onEvent = cb
}

func (t *DataChannelTransport) OnResult(cb func(data []byte)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onResult = cb
}

func (t *DataChannelTransport) send(data []byte) error {
	t.mu.Lock()
	dc := t.dc
	t.mu.Unlock()
	if dc == nil {
		return ErrNoChannel
	}
	return dc.Send(data)
}

// deliver hands an inbound message to whichever callbacks are installed.
func (t *DataChannelTransport) deliver(data []byte) {
	t.mu.Lock()
	onEvent, onResult := t.onEvent, t.onResult
	t.mu.Unlock()

	if onEvent != nil {
		onEvent(data)
	}
	if onResult != nil {
		onResult(data)
	}
}
