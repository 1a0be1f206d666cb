package display

import (
	"context"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/junsooki/hudhook/internal/callback"
)

func TestKeyCode(t *testing.T) {
	cases := map[ebiten.Key]int{
		ebiten.KeyA:       65,
		ebiten.KeyZ:       90,
		ebiten.Key0:       48,
		ebiten.Key9:       57,
		ebiten.KeySpace:   32,
		ebiten.KeyEscape:  KeyCodeEscape,
		ebiten.KeyF1:      290,
		ebiten.KeyF12:     301,
		ebiten.KeyArrowUp: KeyCodeUp,
	}
	for k, want := range cases {
		got, ok := KeyCode(k)
		require.True(t, ok, k.String())
		assert.Equal(t, want, got, k.String())
	}

	_, ok := KeyCode(ebiten.KeyShiftLeft)
	assert.False(t, ok)
}

func TestKeyCodesUnique(t *testing.T) {
	seen := make(map[int]ebiten.Key)
	for _, b := range polledKeys {
		prev, dup := seen[b.code]
		assert.False(t, dup, "code %d used by %s and %s", b.code, prev, b.key)
		seen[b.code] = b.key
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{X: 10, Y: 20, W: 30, H: 40}

	assert.True(t, r.Contains(10, 20))
	assert.True(t, r.Contains(39, 59))
	assert.False(t, r.Contains(40, 30))
	assert.False(t, r.Contains(20, 60))
	assert.False(t, r.Contains(9, 30))
}

func TestHUDKeyFiresKeyActions(t *testing.T) {
	d := callback.NewDispatcher()
	var down, up []int
	d.RegisterKey(callback.TriggerKeyDown, func(k int) { down = append(down, k) })
	d.RegisterKey(callback.TriggerKeyUp, func(k int) { up = append(up, k) })
	h := NewHUD(d, Options{})

	h.key(ebiten.KeyA, true)
	h.key(ebiten.KeyA, false)
	h.key(ebiten.KeyShiftLeft, true)

	assert.Equal(t, []int{65}, down)
	assert.Equal(t, []int{65}, up)
}

func TestHUDClick(t *testing.T) {
	d := callback.NewDispatcher()
	var fired []string
	for _, name := range []callback.Trigger{callback.TriggerClick, "reset", "top"} {
		name := name
		d.RegisterAction(name, func() { fired = append(fired, string(name)) })
	}
	h := NewHUD(d, Options{})
	h.AddRegion(Region{Label: "reset", Trigger: "reset", X: 0, Y: 0, W: 100, H: 100})
	h.AddRegion(Region{Label: "top", Trigger: "top", X: 50, Y: 50, W: 100, H: 100})

	h.click(10, 10)
	h.click(60, 60)
	h.click(300, 300)

	assert.Equal(t, []string{"reset", "top", "click"}, fired)
}

func TestHUDAllowClose(t *testing.T) {
	d := callback.NewDispatcher()
	h := NewHUD(d, Options{})
	assert.True(t, h.allowClose())

	d.RegisterReturn(callback.TriggerClose, func() bool { return false })
	assert.False(t, h.allowClose())

	d.RegisterReturn(callback.TriggerClose, func() bool { return true })
	assert.True(t, h.allowClose())
}

func TestHUDDoRunsOnDrain(t *testing.T) {
	h := NewHUD(callback.NewDispatcher(), Options{})

	ran := make(chan struct{})
	errc := make(chan error, 1)
	go func() {
		errc <- h.Do(context.Background(), func() { close(ran) })
	}()

	require.Eventually(t, func() bool {
		h.drain()
		select {
		case <-ran:
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)
	require.NoError(t, <-errc)
}

func TestHUDDoAfterStop(t *testing.T) {
	h := NewHUD(callback.NewDispatcher(), Options{})
	h.stop.Do(func() { close(h.stopped) })

	// Fill the queue so the send cannot win the select.
	for i := 0; i < cap(h.queue); i++ {
		h.queue <- func() {}
	}
	err := h.Do(context.Background(), func() { t.Fatal("ran after stop") })
	assert.ErrorIs(t, err, ErrClosed)
}

func TestHUDDoContextCancelled(t *testing.T) {
	h := NewHUD(callback.NewDispatcher(), Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := h.Do(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewHUDDefaults(t *testing.T) {
	h := NewHUD(callback.NewDispatcher(), Options{})
	assert.Equal(t, 640, h.opts.Width)
	assert.Equal(t, 360, h.opts.Height)
	assert.Equal(t, "hudhook", h.opts.Title)
}
