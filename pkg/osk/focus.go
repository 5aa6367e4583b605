package osk

import (
	"image"
	"unicode"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
)

// Focus is the element that receives navigation input.
type Focus int

const (
	FocusInput Focus = iota
	FocusKeys
)

func (f Focus) String() string {
	switch f {
	case FocusInput:
		return "input"
	case FocusKeys:
		return "keys"
	default:
		return "unknown"
	}
}

// KeyDown handles a non-character key and reports whether it was consumed.
// Held arrows repeat through TickKeyRepeat; hosts should drop their own
// auto-repeat events for arrows.
func (e *Engine) KeyDown(code constants.KeyCode, mods constants.Modifier) bool {
	if code.IsArrow() {
		e.repeat.SetHeld(code, true, e.now())
		e.repeatMods = mods
		e.navigate(internal.DirectionFor(code), mods)
		return true
	}

	extend := mods.Has(constants.ModShift)
	switch code {
	case constants.KeyTab:
		e.toggleFocus()
	case constants.KeyEscape:
		if e.focus != FocusKeys {
			return false
		}
		e.focusInput()
	case constants.KeyEnter:
		if e.focus == FocusKeys {
			e.ActivateHighlighted()
		} else {
			e.submit()
		}
	case constants.KeyBackspace:
		if e.editor.DeleteBackward() {
			e.changed()
		}
	case constants.KeyDelete:
		if e.editor.DeleteForward() {
			e.changed()
		}
	case constants.KeyHome:
		e.editor.SetCaret(0, extend)
		e.pulse()
	case constants.KeyEnd:
		e.editor.SetCaret(e.editor.Len(), extend)
		e.pulse()
	case constants.KeyA, constants.KeyC, constants.KeyV, constants.KeyX:
		if !mods.Has(constants.ModCtrl) {
			return false
		}
		e.shortcut(code)
	default:
		return false
	}
	return true
}

// KeyUp ends the repeat of a held arrow.
func (e *Engine) KeyUp(code constants.KeyCode) bool {
	return e.repeat.SetHeld(code, false, e.now())
}

// TickKeyRepeat repeats a held arrow when its repeat is due and reports
// whether it did.
func (e *Engine) TickKeyRepeat() bool {
	dir := e.repeat.Update(e.now())
	if dir == internal.DirectionNone {
		return false
	}
	e.navigate(dir, e.repeatMods)
	return true
}

// CharInput inserts a typed character. Control characters are not consumed.
func (e *Engine) CharInput(r rune) bool {
	if unicode.IsControl(r) || r == unicode.ReplacementChar {
		return false
	}
	e.insert(string(r))
	return true
}

func (e *Engine) shortcut(code constants.KeyCode) {
	var err error
	switch code {
	case constants.KeyA:
		e.SelectAll()
	case constants.KeyC:
		err = e.Copy()
	case constants.KeyX:
		err = e.Cut()
	case constants.KeyV:
		err = e.Paste()
	}
	if err != nil {
		e.logger.Debug("Clipboard shortcut failed", "key", code.GetName(), "error", err)
	}
}

func (e *Engine) navigate(dir internal.Direction, mods constants.Modifier) {
	if e.focus == FocusInput {
		switch dir {
		case internal.DirectionLeft:
			e.editor.MoveCaret(-1, mods.Has(constants.ModShift))
			e.pulse()
		case internal.DirectionRight:
			e.editor.MoveCaret(1, mods.Has(constants.ModShift))
			e.pulse()
		case internal.DirectionUp, internal.DirectionDown:
			e.focusKeysNear(e.caretPoint())
		}
		return
	}

	e.ensureLayout()
	keys, rows := e.layout.Keys, e.layout.Rows
	switch dir {
	case internal.DirectionLeft:
		e.highlight(internal.MoveHorizontal(keys, rows, e.highlighted, -1))
	case internal.DirectionRight:
		e.highlight(internal.MoveHorizontal(keys, rows, e.highlighted, 1))
	case internal.DirectionUp, internal.DirectionDown:
		delta := 1
		if dir == internal.DirectionUp {
			delta = -1
		}
		next, ok := internal.MoveVertical(keys, rows, e.highlighted, delta)
		if !ok {
			e.focusInput()
			return
		}
		e.highlight(next)
	}
}

func (e *Engine) highlight(i int) {
	e.highlighted = i
	e.active = i
}

// focusInput hands focus to the input field and remembers the highlighted
// key for the next visit to the grid.
func (e *Engine) focusInput() {
	if e.validKey(e.highlighted) {
		e.active = e.highlighted
	}
	e.focus = FocusInput
}

func (e *Engine) focusKeys(i int) {
	e.focus = FocusKeys
	e.highlight(i)
}

// toggleFocus switches between the input and the grid. Entering the grid
// restores the remembered key.
func (e *Engine) toggleFocus() {
	if e.focus == FocusKeys {
		e.focusInput()
		return
	}
	e.ensureLayout()
	idx := e.active
	if !e.validKey(idx) {
		idx = internal.FirstVisible(e.layout.Keys)
	}
	if idx < 0 {
		return
	}
	e.focusKeys(idx)
}

// focusKeysNear enters the grid at the key closest to p.
func (e *Engine) focusKeysNear(p image.Point) {
	e.ensureLayout()
	idx := internal.NearestKey(e.layout.Keys, p)
	if idx < 0 {
		return
	}
	e.focusKeys(idx)
}
