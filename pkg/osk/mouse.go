package osk

import (
	"image"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
)

// MouseDown handles a button press at (x, y) in buffer coordinates and
// reports whether it landed on the input field or the keyboard. Only the
// left button is handled.
func (e *Engine) MouseDown(x, y int, button constants.MouseButton) bool {
	if button != constants.MouseButtonLeft {
		return false
	}
	p := image.Pt(x, y)

	switch {
	case p.In(e.inputRect):
		e.focusInput()
		e.editor.SetCaret(e.indexAt(x), false)
		e.dragging = true
		e.pulse()
		return true

	case p.In(e.keyboardRect):
		e.ensureLayout()
		idx := internal.HitTest(e.layout.Keys, p)
		if idx < 0 {
			return true
		}
		e.focusKeys(idx)
		e.pressed = idx
		e.activate(idx)
		return true
	}
	return false
}

// MouseMove extends the selection while a drag that started in the input
// field is in progress.
func (e *Engine) MouseMove(x, y int) bool {
	if !e.dragging {
		return false
	}
	e.editor.SetCaret(e.indexAt(x), true)
	return true
}

// MouseUp ends a drag or a key press.
func (e *Engine) MouseUp(x, y int, button constants.MouseButton) bool {
	if button != constants.MouseButtonLeft {
		return false
	}
	consumed := e.dragging || e.pressed >= 0
	e.dragging = false
	e.pressed = -1
	return consumed
}
