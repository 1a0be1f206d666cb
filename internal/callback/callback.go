package callback

// Trigger names an event point at which a registered callback is invoked.
type Trigger string

// Standard triggers raised by the HUD and the remote event router.
const (
	TriggerClick    Trigger = "click"
	TriggerValidate Trigger = "validate"
	TriggerKeyDown  Trigger = "keyDown"
	TriggerKeyUp    Trigger = "keyUp"
	TriggerClose    Trigger = "close"
)

// Action is a hook with no arguments and no result, e.g. a button press.
type Action func()

// ReturnAction is a hook reporting whether an operation succeeded or a
// condition holds.
type ReturnAction func() bool

// KeyAction is called with the key code of a key event.
type KeyAction func(keyCode int)
