package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/junsooki/hudhook/internal/callback"
	"github.com/junsooki/hudhook/internal/display"
)

func TestDemoBindings(t *testing.T) {
	d := callback.NewDispatcher()
	quit := 0
	app := &demo{quit: func() { quit++ }}
	app.bind(d)

	v, ok := d.FireReturn(callback.TriggerValidate)
	assert.True(t, ok)
	assert.False(t, v)

	d.Fire(callback.TriggerClick)
	d.Fire(callback.TriggerClick)
	d.Fire(callback.TriggerClick)
	assert.Equal(t, 3, app.clicks)

	v, _ = d.FireReturn(callback.TriggerValidate)
	assert.True(t, v)

	d.Fire(triggerReset)
	assert.Zero(t, app.clicks)

	d.FireKey(callback.TriggerKeyDown, 65)
	assert.Equal(t, 65, app.lastKey)
	assert.Zero(t, quit)

	d.FireKey(callback.TriggerKeyDown, display.KeyCodeEscape)
	assert.Equal(t, 1, quit)
	assert.Equal(t, "clicks: 0  keys: 2  last key: 256", app.status())

	v, ok = d.FireReturn(callback.TriggerClose)
	assert.True(t, ok)
	assert.True(t, v)
}

func TestRegionsFitWindow(t *testing.T) {
	for _, r := range regions(640, 360) {
		assert.True(t, r.X >= 0 && r.X+r.W <= 640, r.Label)
		assert.True(t, r.Y >= 0 && r.Y+r.H <= 360, r.Label)
	}
}
