package callback

import (
	"sort"
	"sync"
)

// Dispatcher binds triggers to callbacks and fires them synchronously.
//
// Each callback kind has its own table, so the same trigger may carry an
// Action, a ReturnAction and a KeyAction at once. Callbacks are invoked on
// the caller's goroutine, outside the table lock, and may re-enter the
// Dispatcher. Panics raised by a callback reach the caller unchanged.
type Dispatcher struct {
	mu      sync.RWMutex
	actions map[Trigger]Action
	returns map[Trigger]ReturnAction
	keys    map[Trigger]KeyAction
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		actions: make(map[Trigger]Action),
		returns: make(map[Trigger]ReturnAction),
		keys:    make(map[Trigger]KeyAction),
	}
}

// RegisterAction binds a to t, replacing any Action already bound.
// A nil a removes the binding.
func (d *Dispatcher) RegisterAction(t Trigger, a Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if a == nil {
		delete(d.actions, t)
		return
	}
	d.actions[t] = a
}

// RegisterReturn binds r to t, replacing any ReturnAction already bound.
// A nil r removes the binding.
func (d *Dispatcher) RegisterReturn(t Trigger, r ReturnAction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if r == nil {
		delete(d.returns, t)
		return
	}
	d.returns[t] = r
}

// RegisterKey binds k to t, replacing any KeyAction already bound.
// A nil k removes the binding.
func (d *Dispatcher) RegisterKey(t Trigger, k KeyAction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if k == nil {
		delete(d.keys, t)
		return
	}
	d.keys[t] = k
}

// Unregister removes every callback bound to t. Unknown triggers are ignored.
func (d *Dispatcher) Unregister(t Trigger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.actions, t)
	delete(d.returns, t)
	delete(d.keys, t)
}

// Fire invokes the Action bound to t, if any, and reports whether one ran.
func (d *Dispatcher) Fire(t Trigger) bool {
	d.mu.RLock()
	a := d.actions[t]
	d.mu.RUnlock()
	if a == nil {
		return false
	}
	a()
	return true
}

// FireReturn invokes the ReturnAction bound to t and returns its value.
// ok is false when nothing is bound, in which case value is false too.
func (d *Dispatcher) FireReturn(t Trigger) (value, ok bool) {
	d.mu.RLock()
	r := d.returns[t]
	d.mu.RUnlock()
	if r == nil {
		return false, false
	}
	return r(), true
}

// FireKey invokes the KeyAction bound to t with keyCode, if any, and reports
// whether one ran.
func (d *Dispatcher) FireKey(t Trigger, keyCode int) bool {
	d.mu.RLock()
	k := d.keys[t]
	d.mu.RUnlock()
	if k == nil {
		return false
	}
	k(keyCode)
	return true
}

// Bound reports whether any callback kind is registered for t.
func (d *Dispatcher) Bound(t Trigger) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, a := d.actions[t]
	_, r := d.returns[t]
	_, k := d.keys[t]
	return a || r || k
}

// HasAction reports whether an Action is bound to t.
func (d *Dispatcher) HasAction(t Trigger) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.actions[t]
	return ok
}

// HasKey reports whether a KeyAction is bound to t.
func (d *Dispatcher) HasKey(t Trigger) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.keys[t]
	return ok
}

// Triggers returns every trigger with at least one binding, sorted.
func (d *Dispatcher) Triggers() []Trigger {
	d.mu.RLock()
	seen := make(map[Trigger]struct{}, len(d.actions)+len(d.returns)+len(d.keys))
	for t := range d.actions {
		seen[t] = struct{}{}
	}
	for t := range d.returns {
		seen[t] = struct{}{}
	}
	for t := range d.keys {
		seen[t] = struct{}{}
	}
	d.mu.RUnlock()

	out := make([]Trigger, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
