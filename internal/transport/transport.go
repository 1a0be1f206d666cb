package transport

// EventSender sends serialized trigger events.
type EventSender interface {
	SendEvent(data []byte) error
}

// EventReceiver receives serialized trigger events.
type EventReceiver interface {
	OnEvent(callback func(data []byte))
}

// ResultSender replies to a received event.
type ResultSender interface {
	SendResult(data []byte) error
}

// ResultReceiver receives replies to sent events.
type ResultReceiver interface {
	OnResult(callback func(data []byte))
}
