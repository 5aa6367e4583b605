// Package device reads key events from a Linux input device and translates
// them into engine input. It lets a host without a windowing system's text
// input, such as a handheld reading its built-in keyboard, drive the engine.
package device

import (
	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
	"github.com/holoplot/go-evdev"
)

// Key event values reported by the kernel.
const (
	ValueRelease int32 = 0
	ValuePress   int32 = 1
	ValueRepeat  int32 = 2
)

// Event is one key transition read from a device.
type Event struct {
	Code  keymap.Code
	Value int32
}

// Input is what one event means to the engine. Exactly one of Text and Key
// is set.
type Input struct {
	Text    string
	Key     constants.KeyCode
	Mods    constants.Modifier
	Release bool
}

var specialKeys = map[keymap.Code]constants.KeyCode{
	keymap.Code(evdev.KEY_LEFT):      constants.KeyLeft,
	keymap.Code(evdev.KEY_RIGHT):     constants.KeyRight,
	keymap.Code(evdev.KEY_UP):        constants.KeyUp,
	keymap.Code(evdev.KEY_DOWN):      constants.KeyDown,
	keymap.Code(evdev.KEY_HOME):      constants.KeyHome,
	keymap.Code(evdev.KEY_END):       constants.KeyEnd,
	keymap.Code(evdev.KEY_BACKSPACE): constants.KeyBackspace,
	keymap.Code(evdev.KEY_DELETE):    constants.KeyDelete,
	keymap.Code(evdev.KEY_ENTER):     constants.KeyEnter,
	keymap.Code(evdev.KEY_KPENTER):   constants.KeyEnter,
	keymap.Code(evdev.KEY_ESC):       constants.KeyEscape,
	keymap.Code(evdev.KEY_TAB):       constants.KeyTab,
}

var shortcutKeys = map[keymap.Code]constants.KeyCode{
	keymap.CodeA: constants.KeyA,
	keymap.CodeC: constants.KeyC,
	keymap.CodeV: constants.KeyV,
	keymap.CodeX: constants.KeyX,
}

var (
	codeSpace      = keymap.Code(evdev.KEY_SPACE)
	codeLeftShift  = keymap.Code(evdev.KEY_LEFTSHIFT)
	codeRightShift = keymap.Code(evdev.KEY_RIGHTSHIFT)
	codeLeftCtrl   = keymap.Code(evdev.KEY_LEFTCTRL)
	codeRightCtrl  = keymap.Code(evdev.KEY_RIGHTCTRL)
)

// Translator turns device events into engine input. It tracks the held
// modifiers and resolves character keys through the keymap's current layout,
// so a switch on the on-screen keyboard also changes what the physical keys
// type.
type Translator struct {
	keymap keymap.Service
	shift  bool
	ctrl   bool
}

func NewTranslator(km keymap.Service) *Translator {
	return &Translator{keymap: km}
}

// Translate returns the engine input for ev. ok is false for events the
// engine has no use for: modifier changes, unmapped keys, releases of
// non-arrow keys and auto-repeats of arrows, which the engine repeats itself.
func (t *Translator) Translate(ev Event) (in Input, ok bool) {
	down := ev.Value != ValueRelease

	switch ev.Code {
	case codeLeftShift, codeRightShift:
		t.shift = down
		return Input{}, false
	case codeLeftCtrl, codeRightCtrl:
		t.ctrl = down
		return Input{}, false
	}

	if key, found := specialKeys[ev.Code]; found {
		if key.IsArrow() {
			if ev.Value == ValueRepeat {
				return Input{}, false
			}
			return Input{Key: key, Mods: t.mods(), Release: !down}, true
		}
		if !down {
			return Input{}, false
		}
		return Input{Key: key, Mods: t.mods()}, true
	}

	if !down {
		return Input{}, false
	}
	if key, found := shortcutKeys[ev.Code]; found && t.ctrl {
		return Input{Key: key, Mods: t.mods()}, true
	}
	if t.ctrl {
		return Input{}, false
	}
	if ev.Code == codeSpace {
		return Input{Text: " "}, true
	}
	if !keymap.IsCharacter(ev.Code) {
		return Input{}, false
	}

	text := t.keymap.MapPhysicalKey(ev.Code, t.shift, t.keymap.CurrentLayout())
	if text == "" {
		text = keymap.FallbackText(ev.Code, t.shift)
	}
	if text == "" {
		return Input{}, false
	}
	return Input{Text: text}, true
}

func (t *Translator) mods() constants.Modifier {
	m := constants.ModNone
	if t.shift {
		m |= constants.ModShift
	}
	if t.ctrl {
		m |= constants.ModCtrl
	}
	return m
}
