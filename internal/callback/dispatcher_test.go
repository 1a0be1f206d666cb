package callback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFireAction(t *testing.T) {
	d := NewDispatcher()
	count := 0
	d.RegisterAction(TriggerClick, func() { count++ })

	d.Fire(TriggerClick)
	d.Fire(TriggerClick)
	d.Fire(TriggerClick)

	assert.Equal(t, 3, count)
}

func TestFireReturn(t *testing.T) {
	for _, want := range []bool{true, false} {
		d := NewDispatcher()
		calls := 0
		d.RegisterReturn(TriggerValidate, func() bool {
			calls++
			return want
		})

		got, ok := d.FireReturn(TriggerValidate)
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, 1, calls)
	}
}

func TestFireKey(t *testing.T) {
	d := NewDispatcher()
	var seen []int
	d.RegisterKey(TriggerKeyDown, func(keyCode int) { seen = append(seen, keyCode) })

	d.FireKey(TriggerKeyDown, 65)
	assert.Equal(t, []int{65}, seen)

	d.FireKey(TriggerKeyDown, 0)
	d.FireKey(TriggerKeyDown, -7)
	assert.Equal(t, []int{65, 0, -7}, seen)
}

func TestFireUnbound(t *testing.T) {
	d := NewDispatcher()

	assert.NotPanics(t, func() { d.Fire("nothing") })
	assert.NotPanics(t, func() { d.FireKey("nothing", 13) })

	got, ok := d.FireReturn("nothing")
	assert.False(t, ok)
	assert.False(t, got)
}

func TestKindsAreIndependent(t *testing.T) {
	d := NewDispatcher()
	fired := false
	d.RegisterAction("shared", func() { fired = true })

	d.FireKey("shared", 1)
	_, ok := d.FireReturn("shared")
	assert.False(t, ok)
	assert.False(t, fired)

	d.Fire("shared")
	assert.True(t, fired)
}

func TestReRegisterReplaces(t *testing.T) {
	d := NewDispatcher()
	first, second := 0, 0
	d.RegisterAction(TriggerClick, func() { first++ })
	d.RegisterAction(TriggerClick, func() { second++ })

	d.Fire(TriggerClick)

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)

	d.RegisterReturn(TriggerValidate, func() bool { return false })
	d.RegisterReturn(TriggerValidate, func() bool { return true })
	got, ok := d.FireReturn(TriggerValidate)
	assert.True(t, ok)
	assert.True(t, got)

	last := 0
	d.RegisterKey(TriggerKeyDown, func(int) { t.Fatal("replaced key action fired") })
	d.RegisterKey(TriggerKeyDown, func(k int) { last = k })
	d.FireKey(TriggerKeyDown, 9)
	assert.Equal(t, 9, last)
}

func TestUnregister(t *testing.T) {
	d := NewDispatcher()
	fired := 0
	d.RegisterAction(TriggerClick, func() { fired++ })
	d.RegisterReturn(TriggerClick, func() bool { fired++; return true })
	d.RegisterKey(TriggerClick, func(int) { fired++ })
	require.True(t, d.Bound(TriggerClick))

	d.Unregister(TriggerClick)

	d.Fire(TriggerClick)
	d.FireKey(TriggerClick, 1)
	_, ok := d.FireReturn(TriggerClick)
	assert.False(t, ok)
	assert.Zero(t, fired)
	assert.False(t, d.Bound(TriggerClick))

	assert.NotPanics(t, func() { d.Unregister("never-bound") })
}

func TestRegisterNilRemoves(t *testing.T) {
	d := NewDispatcher()
	d.RegisterAction(TriggerClick, func() {})
	d.RegisterAction(TriggerClick, nil)

	assert.False(t, d.Bound(TriggerClick))
	assert.NotPanics(t, func() { d.Fire(TriggerClick) })
}

func TestCallbackMayReenter(t *testing.T) {
	d := NewDispatcher()
	inner := 0
	d.RegisterAction("inner", func() { inner++ })
	d.RegisterAction("outer", func() {
		d.Fire("inner")
		d.Unregister("outer")
	})

	d.Fire("outer")
	d.Fire("outer")

	assert.Equal(t, 1, inner)
	assert.False(t, d.Bound("outer"))
}

func TestPanicPropagates(t *testing.T) {
	d := NewDispatcher()
	d.RegisterAction(TriggerClick, func() { panic("boom") })

	assert.PanicsWithValue(t, "boom", func() { d.Fire(TriggerClick) })
}

func TestTriggers(t *testing.T) {
	d := NewDispatcher()
	d.RegisterKey(TriggerKeyDown, func(int) {})
	d.RegisterAction(TriggerClick, func() {})
	d.RegisterReturn(TriggerClick, func() bool { return true })
	d.RegisterReturn(TriggerValidate, func() bool { return true })

	assert.Equal(t, []Trigger{TriggerClick, TriggerKeyDown, TriggerValidate}, d.Triggers())
}

func TestDirectDo(t *testing.T) {
	var r Direct
	ran := false
	require.NoError(t, r.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Do(ctx, func() { t.Fatal("ran after cancel") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHasPerKind(t *testing.T) {
	d := NewDispatcher()
	d.RegisterAction(TriggerClick, func() {})

	assert.True(t, d.HasAction(TriggerClick))
	assert.False(t, d.HasKey(TriggerClick))
	assert.True(t, d.Bound(TriggerClick))
}

func TestFireReportsWhetherRan(t *testing.T) {
	d := NewDispatcher()
	d.RegisterAction(TriggerClick, func() {})
	d.RegisterKey(TriggerKeyDown, func(int) {})

	assert.True(t, d.Fire(TriggerClick))
	assert.True(t, d.FireKey(TriggerKeyDown, 0))
	assert.False(t, d.Fire(TriggerKeyDown))
	assert.False(t, d.FireKey(TriggerClick, 1))

	d.Unregister(TriggerClick)
	assert.False(t, d.Fire(TriggerClick))
}
