package input

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/junsooki/hudhook/internal/callback"
	"github.com/junsooki/hudhook/internal/logger"
)

// ErrUnknownEvent is returned for events whose type has no callback kind.
var ErrUnknownEvent = errors.New("unknown event type")

// Router fires decoded events on a Dispatcher, handing each call to a Runner
// so callbacks execute on the engine's goroutine.
type Router struct {
	dispatcher *callback.Dispatcher
	runner     callback.Runner
}

// NewRouter creates a Router. A nil runner runs callbacks inline.
func NewRouter(d *callback.Dispatcher, r callback.Runner) *Router {
	if r == nil {
		r = &callback.Direct{}
	}
	return &Router{dispatcher: d, runner: r}
}

// Route fires e. An unbound trigger is not an error; the Result simply
// reports Fired=false.
func (r *Router) Route(ctx context.Context, e Event) (Result, error) {
	t := TriggerFor(e)
	res := Result{Trigger: string(t)}

	var fn func()
	switch e.Type {
	case EventAction:
		fn = func() {
			res.Fired = r.dispatcher.Fire(t)
		}
	case EventQuery:
		fn = func() {
			v, ok := r.dispatcher.FireReturn(t)
			res.Fired = ok
			if ok {
				res.Value = &v
			}
		}
	case EventKeyDown, EventKeyUp:
		fn = func() {
			res.Fired = r.dispatcher.FireKey(t, e.KeyCode)
		}
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownEvent, e.Type)
	}

	if err := r.runner.Do(ctx, fn); err != nil {
		return Result{}, fmt.Errorf("run %s: %w", t, err)
	}
	if !res.Fired {
		logger.Debug().Str("trigger", string(t)).Str("type", string(e.Type)).Msg("trigger not bound")
	}
	return res, nil
}

// HandleJSON decodes an Event, routes it and encodes the Result.
func (r *Router) HandleJSON(ctx context.Context, data []byte) ([]byte, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	res, err := r.Route(ctx, e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(res)
}
