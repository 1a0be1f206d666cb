package display

import "github.com/hajimehoshi/ebiten/v2"

// GLFW-compatible key codes for keys that have no printable ASCII value.
const (
	KeyCodeEscape    = 256
	KeyCodeEnter     = 257
	KeyCodeTab       = 258
	KeyCodeBackspace = 259
	KeyCodeInsert    = 260
	KeyCodeDelete    = 261
	KeyCodeRight     = 262
	KeyCodeLeft      = 263
	KeyCodeDown      = 264
	KeyCodeUp        = 265
	KeyCodePageUp    = 266
	KeyCodePageDown  = 267
	KeyCodeHome      = 268
	KeyCodeEnd       = 269
	KeyCodeF1        = 290
)

type keyBinding struct {
	key  ebiten.Key
	code int
}

// polledKeys lists every key the HUD reports, in a fixed order so keys
// pressed on the same frame fire deterministically.
var polledKeys = buildKeyBindings()

var keyCodes = func() map[ebiten.Key]int {
	m := make(map[ebiten.Key]int, len(polledKeys))
	for _, b := range polledKeys {
		m[b.key] = b.code
	}
	return m
}()

func buildKeyBindings() []keyBinding {
	// Letters and digits map to their upper-case ASCII value.
	return []keyBinding{
		{ebiten.KeyA, 'A'},
		{ebiten.KeyB, 'B'},
		{ebiten.KeyC, 'C'},
		{ebiten.KeyD, 'D'},
		{ebiten.KeyE, 'E'},
		{ebiten.KeyF, 'F'},
		{ebiten.KeyG, 'G'},
		{ebiten.KeyH, 'H'},
		{ebiten.KeyI, 'I'},
		{ebiten.KeyJ, 'J'},
		{ebiten.KeyK, 'K'},
		{ebiten.KeyL, 'L'},
		{ebiten.KeyM, 'M'},
		{ebiten.KeyN, 'N'},
		{ebiten.KeyO, 'O'},
		{ebiten.KeyP, 'P'},
		{ebiten.KeyQ, 'Q'},
		{ebiten.KeyR, 'R'},
		{ebiten.KeyS, 'S'},
		{ebiten.KeyT, 'T'},
		{ebiten.KeyU, 'U'},
		{ebiten.KeyV, 'V'},
		{ebiten.KeyW, 'W'},
		{ebiten.KeyX, 'X'},
		{ebiten.KeyY, 'Y'},
		{ebiten.KeyZ, 'Z'},
		{ebiten.Key0, '0'},
		{ebiten.Key1, '1'},
		{ebiten.Key2, '2'},
		{ebiten.Key3, '3'},
		{ebiten.Key4, '4'},
		{ebiten.Key5, '5'},
		{ebiten.Key6, '6'},
		{ebiten.Key7, '7'},
		{ebiten.Key8, '8'},
		{ebiten.Key9, '9'},
		{ebiten.KeyF1, KeyCodeF1},
		{ebiten.KeyF2, KeyCodeF1 + 1},
		{ebiten.KeyF3, KeyCodeF1 + 2},
		{ebiten.KeyF4, KeyCodeF1 + 3},
		{ebiten.KeyF5, KeyCodeF1 + 4},
		{ebiten.KeyF6, KeyCodeF1 + 5},
		{ebiten.KeyF7, KeyCodeF1 + 6},
		{ebiten.KeyF8, KeyCodeF1 + 7},
		{ebiten.KeyF9, KeyCodeF1 + 8},
		{ebiten.KeyF10, KeyCodeF1 + 9},
		{ebiten.KeyF11, KeyCodeF1 + 10},
		{ebiten.KeyF12, KeyCodeF1 + 11},
		{ebiten.KeySpace, ' '},
		{ebiten.KeyMinus, '-'},
		{ebiten.KeyEqual, '='},
		{ebiten.KeyComma, ','},
		{ebiten.KeyPeriod, '.'},
		{ebiten.KeySlash, '/'},
		{ebiten.KeyEscape, KeyCodeEscape},
		{ebiten.KeyEnter, KeyCodeEnter},
		{ebiten.KeyTab, KeyCodeTab},
		{ebiten.KeyBackspace, KeyCodeBackspace},
		{ebiten.KeyInsert, KeyCodeInsert},
		{ebiten.KeyDelete, KeyCodeDelete},
		{ebiten.KeyArrowRight, KeyCodeRight},
		{ebiten.KeyArrowLeft, KeyCodeLeft},
		{ebiten.KeyArrowDown, KeyCodeDown},
		{ebiten.KeyArrowUp, KeyCodeUp},
		{ebiten.KeyPageUp, KeyCodePageUp},
		{ebiten.KeyPageDown, KeyCodePageDown},
		{ebiten.KeyHome, KeyCodeHome},
		{ebiten.KeyEnd, KeyCodeEnd},
	}
}

// KeyCode maps an Ebitengine key to the integer code passed to KeyActions.
func KeyCode(k ebiten.Key) (int, bool) {
	code, ok := keyCodes[k]
	return code, ok
}
