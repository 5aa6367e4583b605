package osk

import (
	"testing"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFocusString(t *testing.T) {
	assert.Equal(t, "input", FocusInput.String())
	assert.Equal(t, "keys", FocusKeys.String())
	assert.Equal(t, "unknown", Focus(9).String())
}

func TestDownFromInputPicksNearestKey(t *testing.T) {
	te := newTestEngine(t)
	require.Equal(t, FocusInput, te.Focus())
	require.Equal(t, -1, te.Highlighted())

	assert.True(t, te.KeyDown(constants.KeyDown, constants.ModNone))
	assert.Equal(t, FocusKeys, te.Focus())
	assert.Equal(t, "1", te.highlightedKey(t).Caption)
}

func TestDownFromInputFollowsCaret(t *testing.T) {
	te := newTestEngine(t)
	// 30 runes put the caret 300 px into the field.
	te.SetText("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

	te.KeyDown(constants.KeyDown, constants.ModNone)
	h := te.highlightedKey(t)
	p := te.caretPoint()
	assert.LessOrEqual(t, h.Rect.Min.X-te.margin(), p.X)
	assert.GreaterOrEqual(t, h.Rect.Max.X+te.margin(), p.X)
	assert.Equal(t, 0, h.Row)
}

func TestUpFromFirstRowReturnsToInput(t *testing.T) {
	te := newTestEngine(t)
	te.KeyDown(constants.KeyDown, constants.ModNone)
	require.Equal(t, FocusKeys, te.Focus())

	te.KeyDown(constants.KeyUp, constants.ModNone)
	assert.Equal(t, FocusInput, te.Focus())
}

func TestDownFromLastRowReturnsToInput(t *testing.T) {
	te := newTestEngine(t)
	te.KeyDown(constants.KeyTab, constants.ModNone)
	te.highlight(te.kindIndex(t, KeySpace))

	te.KeyDown(constants.KeyDown, constants.ModNone)
	assert.Equal(t, FocusInput, te.Focus())
}

func TestGridArrowNavigation(t *testing.T) {
	te := newTestEngine(t)
	te.KeyDown(constants.KeyTab, constants.ModNone)
	require.Equal(t, "1", te.highlightedKey(t).Caption)

	te.KeyDown(constants.KeyLeft, constants.ModNone)
	assert.Equal(t, "1", te.highlightedKey(t).Caption, "no wraparound")

	te.KeyDown(constants.KeyRight, constants.ModNone)
	te.KeyDown(constants.KeyDown, constants.ModNone)
	assert.Equal(t, "w", te.highlightedKey(t).Caption)

	te.KeyDown(constants.KeyDown, constants.ModNone)
	te.KeyDown(constants.KeyDown, constants.ModNone)
	assert.Equal(t, "z", te.highlightedKey(t).Caption)

	assert.Equal(t, "", te.Text(), "navigation never types")
}

func TestTabRemembersActiveKey(t *testing.T) {
	te := newTestEngine(t)

	te.KeyDown(constants.KeyTab, constants.ModNone)
	te.KeyDown(constants.KeyRight, constants.ModNone)
	te.KeyDown(constants.KeyRight, constants.ModNone)
	require.Equal(t, "3", te.highlightedKey(t).Caption)

	te.KeyDown(constants.KeyTab, constants.ModNone)
	assert.Equal(t, FocusInput, te.Focus())

	te.KeyDown(constants.KeyTab, constants.ModNone)
	assert.Equal(t, FocusKeys, te.Focus())
	assert.Equal(t, "3", te.highlightedKey(t).Caption)
}

func TestEscapeReturnsToInput(t *testing.T) {
	te := newTestEngine(t)
	te.KeyDown(constants.KeyTab, constants.ModNone)
	te.KeyDown(constants.KeyRight, constants.ModNone)

	assert.True(t, te.KeyDown(constants.KeyEscape, constants.ModNone))
	assert.Equal(t, FocusInput, te.Focus())
	assert.False(t, te.KeyDown(constants.KeyEscape, constants.ModNone))

	te.KeyDown(constants.KeyTab, constants.ModNone)
	assert.Equal(t, "2", te.highlightedKey(t).Caption)
}

func TestEnterActivatesHighlightedKey(t *testing.T) {
	te := newTestEngine(t)
	te.KeyDown(constants.KeyTab, constants.ModNone)
	te.KeyDown(constants.KeyDown, constants.ModNone)

	te.KeyDown(constants.KeyEnter, constants.ModNone)
	te.KeyDown(constants.KeyEnter, constants.ModNone)
	assert.Equal(t, "qq", te.Text())
	assert.Equal(t, FocusKeys, te.Focus())
}

func TestHeldArrowRepeats(t *testing.T) {
	te := newTestEngine(t)
	te.KeyDown(constants.KeyTab, constants.ModNone)

	te.KeyDown(constants.KeyRight, constants.ModNone)
	require.Equal(t, "2", te.highlightedKey(t).Caption)

	te.clock.Advance(299 * time.Millisecond)
	assert.False(t, te.TickKeyRepeat())
	te.clock.Advance(time.Millisecond)
	assert.True(t, te.TickKeyRepeat())
	assert.Equal(t, "3", te.highlightedKey(t).Caption)

	te.clock.Advance(50 * time.Millisecond)
	assert.True(t, te.TickKeyRepeat())
	assert.Equal(t, "4", te.highlightedKey(t).Caption)

	assert.True(t, te.KeyUp(constants.KeyRight))
	te.clock.Advance(time.Second)
	assert.False(t, te.TickKeyRepeat())
	assert.False(t, te.KeyUp(constants.KeyEnter))
}

func TestHeldShiftArrowExtendsSelection(t *testing.T) {
	te := newTestEngine(t)
	te.SetText("abcdef")
	te.KeyDown(constants.KeyHome, constants.ModNone)

	te.KeyDown(constants.KeyRight, constants.ModShift)
	te.clock.Advance(300 * time.Millisecond)
	te.TickKeyRepeat()

	start, length := te.Selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, length)
}

func TestUnhandledKeys(t *testing.T) {
	te := newTestEngine(t)
	assert.False(t, te.KeyDown(constants.KeyUnknown, constants.ModNone))
	assert.False(t, te.KeyDown(constants.KeyA, constants.ModShift))
	assert.False(t, te.MouseDown(400, 50, constants.MouseButtonRight))
	assert.False(t, te.MouseUp(400, 50, constants.MouseButtonRight))
	assert.False(t, te.MouseMove(400, 50))
}

func TestClickMapsCaret(t *testing.T) {
	te := newTestEngine(t)
	te.SetText("abc")
	// Text starts 10 px into the field and each rune is 10 px wide.
	x0 := testInputRect.Min.X + 10
	y := 50

	require.True(t, te.MouseDown(x0+8, y, mouseLeft))
	assert.Equal(t, 1, te.Caret())
	te.MouseUp(x0+8, y, mouseLeft)

	te.MouseDown(x0+3, y, mouseLeft)
	assert.Equal(t, 0, te.Caret())
	te.MouseUp(x0+3, y, mouseLeft)

	te.MouseDown(x0+500, y, mouseLeft)
	assert.Equal(t, 3, te.Caret())
	te.MouseUp(x0+500, y, mouseLeft)
}

func TestDragSelects(t *testing.T) {
	te := newTestEngine(t)
	te.SetText("abcdef")
	x0 := testInputRect.Min.X + 10
	y := 50

	require.True(t, te.MouseDown(x0+11, y, mouseLeft))
	assert.True(t, te.MouseMove(x0+38, y))
	start, length := te.Selection()
	assert.Equal(t, 1, start)
	assert.Equal(t, 3, length)

	// Dragging back past the anchor selects to its left.
	te.MouseMove(x0, y)
	start, length = te.Selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 1, length)

	assert.True(t, te.MouseUp(x0, y, mouseLeft))
	assert.False(t, te.MouseMove(x0+50, y))
	_, length = te.Selection()
	assert.Equal(t, 1, length)
}

func TestClickInInputClearsSelectionAndTakesFocus(t *testing.T) {
	te := newTestEngine(t)
	te.SetText("abc")
	te.SelectAll()
	te.KeyDown(constants.KeyTab, constants.ModNone)
	require.Equal(t, FocusKeys, te.Focus())

	te.MouseDown(testInputRect.Min.X+10, 50, mouseLeft)
	assert.Equal(t, FocusInput, te.Focus())
	_, length := te.Selection()
	assert.Zero(t, length)
	assert.Equal(t, 0, te.Caret())
}
