package osk

import (
	"strings"
	"testing"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripEditing(t *testing.T) {
	te := newTestEngine(t)

	te.InsertText("abc")
	assert.Equal(t, "abc", te.Text())
	assert.Equal(t, 3, te.Caret())
	_, length := te.Selection()
	assert.Zero(t, length)

	assert.True(t, te.KeyDown(constants.KeyBackspace, constants.ModNone))
	assert.Equal(t, "ab", te.Text())
	assert.Equal(t, 2, te.Caret())

	te.SetSelection(0, 2)
	te.InsertText("")
	assert.Equal(t, "", te.Text())
	assert.Equal(t, 0, te.Caret())
}

func TestTextChangedNotifications(t *testing.T) {
	var seen []string
	te := newTestEngine(t, func(o *Options) {
		o.OnTextChanged = func(s string) { seen = append(seen, s) }
	})

	assert.True(t, te.CharInput('h'))
	assert.True(t, te.CharInput('é'))
	assert.False(t, te.CharInput('\n'))
	assert.False(t, te.CharInput('\b'))
	te.KeyDown(constants.KeyHome, constants.ModNone)
	te.KeyDown(constants.KeyDelete, constants.ModNone)

	assert.Equal(t, []string{"h", "hé", "é"}, seen)
}

func TestPasteRejectsLineBreaks(t *testing.T) {
	te := newTestEngine(t)
	te.SetText("xy")
	require.NoError(t, te.clip.SetText("one\ntwo"))

	err := te.Paste()
	assert.ErrorIs(t, err, ErrPasteRejected)
	assert.True(t, IsPasteRejected(err))
	assert.Equal(t, "xy", te.Text())
	assert.Equal(t, 2, te.Caret())

	require.NoError(t, te.clip.SetText("a\rb"))
	assert.ErrorIs(t, te.Paste(), ErrPasteRejected)
	assert.Equal(t, "xy", te.Text())
}

func TestPasteTruncates(t *testing.T) {
	te := newTestEngine(t)
	require.NoError(t, te.clip.SetText(strings.Repeat("ü", 60)))

	require.NoError(t, te.Paste())
	assert.Equal(t, strings.Repeat("ü", 50), te.Text())
	assert.Equal(t, 50, te.Caret())
}

func TestPasteLimitOption(t *testing.T) {
	te := newTestEngine(t, func(o *Options) { o.PasteLimit = 3 })
	require.NoError(t, te.clip.SetText("abcdef"))

	require.NoError(t, te.Paste())
	assert.Equal(t, "abc", te.Text())
}

func TestCopyAndCut(t *testing.T) {
	te := newTestEngine(t)
	te.SetText("hello")

	require.NoError(t, te.Copy())
	got, _ := te.clip.Text()
	assert.Empty(t, got, "copy without a selection does nothing")

	te.SetSelection(1, 3)
	require.NoError(t, te.Copy())
	got, _ = te.clip.Text()
	assert.Equal(t, "ell", got)
	assert.Equal(t, "hello", te.Text())

	require.NoError(t, te.Cut())
	assert.Equal(t, "ho", te.Text())
	assert.Equal(t, 1, te.Caret())

	assert.True(t, te.KeyDown(constants.KeyV, constants.ModCtrl))
	assert.Equal(t, "hello", te.Text())
	assert.Equal(t, 4, te.Caret())

	assert.False(t, te.KeyDown(constants.KeyV, constants.ModNone))
	assert.Equal(t, "hello", te.Text())
}

func TestClipboardFailureLeavesText(t *testing.T) {
	te := newTestEngine(t, func(o *Options) { o.Clipboard = brokenClipboard{} })
	te.SetText("keep")
	te.SelectAll()

	err := te.Cut()
	assert.ErrorIs(t, err, ErrClipboardUnavailable)
	assert.ErrorIs(t, err, errBroken)
	assert.Equal(t, "keep", te.Text())

	assert.ErrorIs(t, te.Paste(), ErrClipboardUnavailable)
	assert.Equal(t, "keep", te.Text())

	// Shortcuts swallow the error.
	assert.True(t, te.KeyDown(constants.KeyX, constants.ModCtrl))
	assert.Equal(t, "keep", te.Text())
}

func TestSelectionShortcuts(t *testing.T) {
	te := newTestEngine(t)
	te.SetText("abcd")

	te.KeyDown(constants.KeyA, constants.ModCtrl)
	start, length := te.Selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, length)

	te.KeyDown(constants.KeyLeft, constants.ModNone)
	assert.Equal(t, 0, te.Caret())

	te.KeyDown(constants.KeyRight, constants.ModShift)
	te.KeyDown(constants.KeyRight, constants.ModShift)
	start, length = te.Selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 2, length)

	te.KeyDown(constants.KeyEnd, constants.ModShift)
	start, length = te.Selection()
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, length)

	te.KeyDown(constants.KeyHome, constants.ModNone)
	assert.Equal(t, 0, te.Caret())
	_, length = te.Selection()
	assert.Zero(t, length)
}

func TestSubmitFromInput(t *testing.T) {
	var submitted []string
	te := newTestEngine(t, func(o *Options) {
		o.OnSubmit = func(s string) { submitted = append(submitted, s) }
	})
	te.SetText("done")

	assert.True(t, te.KeyDown(constants.KeyEnter, constants.ModNone))
	assert.Equal(t, []string{"done"}, submitted)
}

func TestCaretBlinkPulse(t *testing.T) {
	te := newTestEngine(t)
	_, running := te.NextBlinkIn()
	assert.False(t, running)

	te.InsertText("a")
	assert.True(t, te.CaretVisible())
	next, running := te.NextBlinkIn()
	require.True(t, running)
	assert.Equal(t, 90*time.Millisecond, next)

	te.clock.Advance(90 * time.Millisecond)
	assert.True(t, te.TickCaretBlink())
	assert.False(t, te.CaretVisible())

	te.clock.Advance(time.Second)
	assert.True(t, te.TickCaretBlink())
	assert.True(t, te.CaretVisible())
	_, running = te.NextBlinkIn()
	assert.False(t, running)
	assert.False(t, te.TickCaretBlink())
}

func TestBlinkCanBeDisabled(t *testing.T) {
	te := newTestEngine(t, func(o *Options) { o.BlinkToggles = -1 })

	te.InsertText("a")
	_, running := te.NextBlinkIn()
	assert.False(t, running)
	assert.True(t, te.CaretVisible())
}
