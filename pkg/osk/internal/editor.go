package internal

import "strings"

// Editor is the text buffer of the input field with its caret and selection.
// Positions count runes. The selection runs between anchor and caret; when
// they are equal there is no selection.
type Editor struct {
	text    []rune
	caret   int
	anchor  int
	version uint64
}

func (e *Editor) Text() string {
	return string(e.text)
}

// Runes returns the buffer. The slice must not be modified.
func (e *Editor) Runes() []rune {
	return e.text
}

func (e *Editor) Len() int {
	return len(e.text)
}

func (e *Editor) Caret() int {
	return e.caret
}

func (e *Editor) Anchor() int {
	return e.anchor
}

// Version increments on every text change.
func (e *Editor) Version() uint64 {
	return e.version
}

// Selection returns the normalized selection. length is zero when nothing is
// selected.
func (e *Editor) Selection() (start, length int) {
	if e.anchor <= e.caret {
		return e.anchor, e.caret - e.anchor
	}
	return e.caret, e.anchor - e.caret
}

func (e *Editor) HasSelection() bool {
	return e.anchor != e.caret
}

func (e *Editor) SelectedText() string {
	start, length := e.Selection()
	return string(e.text[start : start+length])
}

// SetText replaces the buffer and puts the caret at its end.
func (e *Editor) SetText(s string) {
	e.text = []rune(s)
	e.caret = len(e.text)
	e.anchor = e.caret
	e.version++
}

// InsertAtCaret replaces the selection, if any, with s and leaves the caret
// after the inserted text. It reports whether the buffer changed.
func (e *Editor) InsertAtCaret(s string) bool {
	changed := e.DeleteSelection()
	if s == "" {
		return changed
	}

	ins := []rune(s)
	text := make([]rune, 0, len(e.text)+len(ins))
	text = append(text, e.text[:e.caret]...)
	text = append(text, ins...)
	text = append(text, e.text[e.caret:]...)
	e.text = text
	e.caret += len(ins)
	e.anchor = e.caret
	e.version++
	return true
}

// DeleteSelection removes the selected text and puts the caret at its start.
func (e *Editor) DeleteSelection() bool {
	start, length := e.Selection()
	if length == 0 {
		return false
	}
	e.text = append(e.text[:start], e.text[start+length:]...)
	e.caret = start
	e.anchor = start
	e.version++
	return true
}

// DeleteBackward removes the selection, or the rune before the caret.
func (e *Editor) DeleteBackward() bool {
	if e.DeleteSelection() {
		return true
	}
	if e.caret == 0 {
		return false
	}
	e.text = append(e.text[:e.caret-1], e.text[e.caret:]...)
	e.caret--
	e.anchor = e.caret
	e.version++
	return true
}

// DeleteForward removes the selection, or the rune after the caret.
func (e *Editor) DeleteForward() bool {
	if e.DeleteSelection() {
		return true
	}
	if e.caret >= len(e.text) {
		return false
	}
	e.text = append(e.text[:e.caret], e.text[e.caret+1:]...)
	e.version++
	return true
}

// SetSelection selects length runes from start. Both are clamped to the
// buffer and the caret ends at the selection end.
func (e *Editor) SetSelection(start, length int) {
	start = clamp(start, 0, len(e.text))
	length = clamp(length, 0, len(e.text)-start)
	e.anchor = start
	e.caret = start + length
}

// SetCaret moves the caret to i. With extend the anchor stays put, growing or
// shrinking the selection; otherwise the selection collapses.
func (e *Editor) SetCaret(i int, extend bool) {
	e.caret = clamp(i, 0, len(e.text))
	if !extend {
		e.anchor = e.caret
	}
}

// MoveCaret moves the caret by delta runes. Without extend, a selection
// collapses to its near edge instead of moving.
func (e *Editor) MoveCaret(delta int, extend bool) {
	if !extend && e.HasSelection() {
		start, length := e.Selection()
		if delta < 0 {
			e.SetCaret(start, false)
		} else {
			e.SetCaret(start+length, false)
		}
		return
	}
	e.SetCaret(e.caret+delta, extend)
}

func (e *Editor) SelectAll() {
	e.anchor = 0
	e.caret = len(e.text)
}

// ClearSelection collapses the selection onto the caret.
func (e *Editor) ClearSelection() {
	e.anchor = e.caret
}

// SanitizePaste trims s to limit runes and rejects text containing line
// breaks.
func SanitizePaste(s string, limit int) (string, bool) {
	if s == "" || strings.ContainsAny(s, "\r\n") {
		return "", false
	}
	runes := []rune(s)
	if limit > 0 && len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes), true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
