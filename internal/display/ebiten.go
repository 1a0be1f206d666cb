package display

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/junsooki/hudhook/internal/callback"
	"github.com/junsooki/hudhook/internal/logger"
)

// ErrClosed is returned by Do once the HUD loop has exited.
var ErrClosed = errors.New("hud closed")

var (
	_ Display         = (*HUD)(nil)
	_ callback.Runner = (*HUD)(nil)
)

var (
	backgroundColor = color.RGBA{0x10, 0x14, 0x1c, 0xff}
	regionColor     = color.RGBA{0x6c, 0xb4, 0xee, 0xff}
)

// HUD is an Ebitengine overlay that turns key presses, clicks and window
// close requests into Dispatcher triggers. It also implements
// callback.Runner: work handed to Do runs on the game goroutine between
// frames, so every callback fires from one goroutine.
type HUD struct {
	dispatcher *callback.Dispatcher
	opts       Options

	mu      sync.Mutex
	regions []Region

	queue   chan func()
	stopped chan struct{}
	stop    sync.Once
	quit    atomic.Bool
}

// NewHUD creates a HUD firing callbacks on d.
func NewHUD(d *callback.Dispatcher, opts Options) *HUD {
	if opts.Width <= 0 {
		opts.Width = 640
	}
	if opts.Height <= 0 {
		opts.Height = 360
	}
	if opts.Title == "" {
		opts.Title = "hudhook"
	}
	return &HUD{
		dispatcher: d,
		opts:       opts,
		queue:      make(chan func(), 64),
		stopped:    make(chan struct{}),
	}
}

// AddRegion adds a click region. Later regions sit on top of earlier ones.
func (h *HUD) AddRegion(r Region) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.regions = append(h.regions, r)
}

// Quit asks the loop to exit after the current frame.
func (h *HUD) Quit() {
	h.quit.Store(true)
}

// Loop opens the window and runs the game loop until the window closes or
// Quit is called. Must be called from the main goroutine.
func (h *HUD) Loop() error {
	defer h.stop.Do(func() { close(h.stopped) })

	ebiten.SetWindowSize(h.opts.Width, h.opts.Height)
	ebiten.SetWindowTitle(h.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Do queues fn for the game goroutine and waits for it to finish.
func (h *HUD) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn()
	}

	select {
	case h.queue <- task:
	case <-h.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-h.stopped:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// --- ebiten.Game interface ---

func (h *HUD) Update() error {
	h.drain()

	if ebiten.IsWindowBeingClosed() && h.allowClose() {
		return ebiten.Termination
	}

	h.captureKeyboardInput()
	h.captureMouseInput()

	if h.quit.Load() {
		return ebiten.Termination
	}
	return nil
}

func (h *HUD) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	line := 8
	if h.opts.Status != nil {
		ebitenutil.DebugPrintAt(screen, h.opts.Status(), 8, line)
		line += 16
	}

	triggers := h.dispatcher.Triggers()
	names := make([]string, len(triggers))
	for i, t := range triggers {
		names[i] = string(t)
	}
	ebitenutil.DebugPrintAt(screen, "bound: "+strings.Join(names, ", "), 8, line)

	h.mu.Lock()
	regions := append([]Region(nil), h.regions...)
	h.mu.Unlock()
	for _, r := range regions {
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, regionColor, false)
		ebitenutil.DebugPrintAt(screen, r.Label, r.X+4, r.Y+4)
	}
}

func (h *HUD) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// --- Input capture ---

func (h *HUD) captureKeyboardInput() {
	for _, b := range polledKeys {
		if inpututil.IsKeyJustPressed(b.key) {
			h.key(b.key, true)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			h.key(b.key, false)
		}
	}
}

func (h *HUD) captureMouseInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		h.click(ebiten.CursorPosition())
	}
}

// key fires keyDown or keyUp for k. Unmapped keys are ignored.
func (h *HUD) key(k ebiten.Key, down bool) {
	code, ok := KeyCode(k)
	if !ok {
		return
	}
	t := callback.TriggerKeyUp
	if down {
		t = callback.TriggerKeyDown
	}
	h.dispatcher.FireKey(t, code)
}

// click fires the trigger of the topmost region under (x, y), or the generic
// click trigger when no region is hit.
func (h *HUD) click(x, y int) {
	t := callback.TriggerClick

	h.mu.Lock()
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Contains(x, y) {
			t = h.regions[i].Trigger
			break
		}
	}
	h.mu.Unlock()

	logger.Debug().Str("trigger", string(t)).Int("x", x).Int("y", y).Msg("hud click")
	h.dispatcher.Fire(t)
}

// allowClose asks the close ReturnAction whether the window may close.
// With nothing bound the window always closes.
func (h *HUD) allowClose() bool {
	v, ok := h.dispatcher.FireReturn(callback.TriggerClose)
	if ok && !v {
		logger.Info().Msg("close vetoed")
		return false
	}
	return true
}

// drain runs every queued task without blocking.
func (h *HUD) drain() {
	for {
		select {
		case task := <-h.queue:
			task()
		default:
			return
		}
	}
}
