package osk

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/internal"
)

// SetText replaces the contents of the input field and puts the caret at
// the end.
func (e *Engine) SetText(s string) {
	e.editor.SetText(s)
	e.changed()
}

// InsertText inserts s at the caret, replacing the selection.
func (e *Engine) InsertText(s string) {
	e.insert(s)
}

// SetSelection selects length runes from start. Both are clamped to the text.
func (e *Engine) SetSelection(start, length int) {
	e.editor.SetSelection(start, length)
	e.pulse()
}

func (e *Engine) SelectAll() {
	e.editor.SelectAll()
	e.pulse()
}

// Copy puts the selection on the clipboard. Without a selection it does
// nothing.
func (e *Engine) Copy() error {
	if !e.editor.HasSelection() {
		return nil
	}
	if err := e.clip.SetText(e.editor.SelectedText()); err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	return nil
}

// Cut copies the selection and deletes it. The text is left alone when the
// clipboard fails.
func (e *Engine) Cut() error {
	if !e.editor.HasSelection() {
		return nil
	}
	if err := e.Copy(); err != nil {
		return err
	}
	if e.editor.DeleteSelection() {
		e.changed()
	}
	return nil
}

// Paste inserts the clipboard text at the caret, truncated to the paste
// limit. Text containing a line break is rejected with ErrPasteRejected.
func (e *Engine) Paste() error {
	text, err := e.clip.Text()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}
	s, ok := internal.SanitizePaste(text, e.pasteLimit)
	if !ok {
		e.logger.Debug("Paste rejected", "runes", len([]rune(text)))
		return ErrPasteRejected
	}
	e.insert(s)
	return nil
}

// TickCaretBlink advances the caret feedback pulse and reports whether the
// caret's visibility changed, in which case the input area needs a redraw.
func (e *Engine) TickCaretBlink() bool {
	return e.blink.Tick(e.now())
}

// NextBlinkIn returns the time until the next caret toggle, or false when no
// pulse is running.
func (e *Engine) NextBlinkIn() (time.Duration, bool) {
	return e.blink.NextIn(e.now())
}

func (e *Engine) insert(s string) bool {
	if !e.editor.InsertAtCaret(s) {
		return false
	}
	e.changed()
	return true
}

// changed follows every text mutation.
func (e *Engine) changed() {
	e.pulse()
	if e.opts.OnTextChanged != nil {
		e.opts.OnTextChanged(e.editor.Text())
	}
}

func (e *Engine) pulse() {
	e.blink.Start(e.now())
}

// DrawInputArea composites the input field, its text, selection and caret
// onto the target buffer. The host repaints the input rectangle with the
// background colour before calling it.
func (e *Engine) DrawInputArea() {
	if e.target == nil || e.inputRect.Empty() {
		return
	}
	e.ensureShapes()

	shape := internal.ShapeInputUnfocused
	if e.focus == FocusInput {
		shape = internal.ShapeInputFocused
	}
	e.shapes.DrawShape(e.target, shape, e.inputRect.Min)

	view := e.textView()
	if view.Empty() {
		return
	}
	size := e.inputFontSize()
	if size <= 0 {
		return
	}
	e.ensureWidths(size)

	t := e.theme
	ascent, descent := e.text.LineMetrics(size)
	baseline := view.Min.Y + int(math.Round((float64(view.Dy())+ascent-descent)/2))

	caretX := e.widths.IndexToX(e.editor.Caret())
	e.scroll = internal.ScrollToCaret(e.scroll, caretX, view.Dx(), e.widths.Width(), e.scrollPad())
	originX := view.Min.X - e.scroll

	if e.editor.Len() == 0 {
		e.text.DrawString(e.target, view, size, e.captions.Placeholder, view.Min.X, baseline, t.PlaceholderColor)
	} else {
		e.drawText(view, size, originX, baseline)
	}

	if e.blink.Visible() {
		w := max(1, int(math.Round(float64(e.caretWidth)*e.scale)))
		x := originX + caretX
		top := max(view.Min.Y, baseline-int(math.Ceil(ascent)))
		bottom := min(view.Max.Y, baseline+int(math.Ceil(descent)))
		bar := image.Rect(x, top, x+w, bottom).Intersect(e.inputRect)
		internal.FillRect(e.target, bar.Min.X, bar.Min.Y, bar.Dx(), bar.Dy(), t.CaretColor)
	}
}

// drawText draws the text with the selected part on a selection band.
func (e *Engine) drawText(view image.Rectangle, size float64, originX, baseline int) {
	t := e.theme
	text := e.editor.Text()

	start, length := e.editor.Selection()
	var band image.Rectangle
	if length > 0 {
		x0 := originX + e.widths.IndexToX(start)
		x1 := originX + e.widths.IndexToX(start+length)
		band = image.Rect(x0, view.Min.Y, x1, view.Max.Y).Intersect(view)
	}
	if band.Empty() {
		e.text.DrawString(e.target, view, size, text, originX, baseline, t.InputTextColor)
		return
	}

	internal.FillRect(e.target, band.Min.X, band.Min.Y, band.Dx(), band.Dy(), t.SelectionColor)
	left := image.Rect(view.Min.X, view.Min.Y, band.Min.X, view.Max.Y)
	right := image.Rect(band.Max.X, view.Min.Y, view.Max.X, view.Max.Y)
	for _, clip := range []image.Rectangle{left, right} {
		if !clip.Empty() {
			e.text.DrawString(e.target, clip, size, text, originX, baseline, t.InputTextColor)
		}
	}
	e.text.DrawString(e.target, band, size, text, originX, baseline, t.SelectionTextColor)
}

// textView is the part of the input rectangle text is drawn in.
func (e *Engine) textView() image.Rectangle {
	return internal.HorizontalPadding(constants.DefaultInputPadding).Scale(e.scale).Inset(e.inputRect)
}

func (e *Engine) inputFontSize() float64 {
	return quantize(float64(e.inputRect.Dy()) * e.theme.InputFontFraction)
}

func (e *Engine) scrollPad() int {
	return int(math.Round(float64(e.scrollPadding) * e.scale))
}

func (e *Engine) ensureWidths(size float64) {
	if e.widths.Ensure(e.text, e.editor.Runes(), e.editor.Version(), size, e.scale) {
		e.logger.Debug("Measured input text", "runes", e.editor.Len(), "width", e.widths.Width())
	}
}

// indexAt maps a buffer x coordinate inside the input field to a caret
// position.
func (e *Engine) indexAt(x int) int {
	view := e.textView()
	size := e.inputFontSize()
	if view.Empty() || size <= 0 {
		return e.editor.Caret()
	}
	e.ensureWidths(size)
	return e.widths.XToIndex(x - view.Min.X + e.scroll)
}

// caretPoint is the caret's position in buffer coordinates.
func (e *Engine) caretPoint() image.Point {
	view := e.textView()
	y := (e.inputRect.Min.Y + e.inputRect.Max.Y) / 2
	size := e.inputFontSize()
	if view.Empty() || size <= 0 {
		return image.Pt(e.inputRect.Min.X, y)
	}
	e.ensureWidths(size)
	return image.Pt(view.Min.X-e.scroll+e.widths.IndexToX(e.editor.Caret()), y)
}
