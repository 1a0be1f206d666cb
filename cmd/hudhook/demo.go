package main

import (
	"fmt"

	"github.com/junsooki/hudhook/internal/callback"
	"github.com/junsooki/hudhook/internal/display"
	"github.com/junsooki/hudhook/internal/logger"
)

// triggerReset is fired by the "reset" HUD region.
const triggerReset callback.Trigger = "reset"

// demo is the sample set of callbacks the binary binds. All fields are
// touched only from the callback goroutine.
type demo struct {
	clicks  int
	lastKey int
	keys    int
	quit    func()
}

func (s *demo) bind(d *callback.Dispatcher) {
	d.RegisterAction(callback.TriggerClick, func() {
		s.clicks++
		logger.Info().Int("clicks", s.clicks).Msg("click")
	})
	d.RegisterAction(triggerReset, func() {
		s.clicks = 0
		logger.Info().Msg("counter reset")
	})
	d.RegisterReturn(callback.TriggerValidate, func() bool {
		return s.clicks >= 1
	})
	d.RegisterKey(callback.TriggerKeyDown, func(keyCode int) {
		s.lastKey = keyCode
		s.keys++
		logger.Debug().Int("key", keyCode).Msg("key down")
		if keyCode == display.KeyCodeEscape && s.quit != nil {
			s.quit()
		}
	})
	d.RegisterKey(callback.TriggerKeyUp, func(keyCode int) {
		logger.Debug().Int("key", keyCode).Msg("key up")
	})
	d.RegisterReturn(callback.TriggerClose, func() bool {
		logger.Info().Int("clicks", s.clicks).Msg("closing")
		return true
	})
}

func (s *demo) status() string {
	return fmt.Sprintf("clicks: %d  keys: %d  last key: %d", s.clicks, s.keys, s.lastKey)
}

// regions lays out the demo's click regions for a window of the given size.
func regions(width, height int) []display.Region {
	return []display.Region{
		{Label: "reset", Trigger: triggerReset, X: width - 96, Y: height - 48, W: 80, H: 32},
	}
}
