package osk

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/BrandonKowalski/osk/pkg/osk/keymap"
	"github.com/stretchr/testify/require"
)

var (
	testKeyboardRect = image.Rect(20, 100, 780, 580)
	testInputRect    = image.Rect(20, 20, 780, 80)
	testBackground   = color.NRGBA{A: 0xff}
)

const mouseLeft = constants.MouseButtonLeft

type drawCall struct {
	text string
	clip image.Rectangle
	c    color.NRGBA
}

// monoRenderer gives every rune a 10 px advance with one pixel of bearing on
// each side. It records draws instead of rasterizing.
type monoRenderer struct {
	draws  []drawCall
	closed bool
}

func (r *monoRenderer) MeasureRun(_ float64, runes []rune) ([]InkBox, []GlyphMetrics) {
	boxes := make([]InkBox, len(runes))
	metrics := make([]GlyphMetrics, len(runes))
	for i := range runes {
		pen := float64(i * 10)
		boxes[i] = InkBox{Left: pen + 1, Right: pen + 9}
		metrics[i] = GlyphMetrics{LeftBearing: 1, Advance: 10, RightBearing: 1}
	}
	return boxes, metrics
}

func (r *monoRenderer) Advance(_ float64, s string) float64 {
	return float64(len([]rune(s)) * 10)
}

func (r *monoRenderer) LineMetrics(size float64) (ascent, descent float64) {
	return size * 0.8, size * 0.2
}

func (r *monoRenderer) DrawString(_ *image.RGBA, clip image.Rectangle, _ float64, s string, _, _ int, c color.NRGBA) {
	r.draws = append(r.draws, drawCall{text: s, clip: clip, c: c})
}

func (r *monoRenderer) Close() error {
	r.closed = true
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// stubKeymap maps nothing, so letters fall back to ASCII.
type stubKeymap struct {
	ids     []keymap.LayoutID
	current keymap.LayoutID
	fail    error
}

func (s *stubKeymap) InstalledLayouts() []keymap.LayoutID { return s.ids }
func (s *stubKeymap) CurrentLayout() keymap.LayoutID { return s.current }
func (s *stubKeymap) MapPhysicalKey(keymap.Code, bool, keymap.LayoutID) string {
	return ""
}

func (s *stubKeymap) Activate(id keymap.LayoutID) error {
	if s.fail != nil {
		return s.fail
	}
	s.current = id
	return nil
}

type brokenClipboard struct{}

var errBroken = errors.New("clipboard is gone")

func (brokenClipboard) SetText(string) error { return errBroken }
func (brokenClipboard) Text() (string, error) { return "", errBroken }

type testEngine struct {
	*Engine
	clock    *fakeClock
	renderer *monoRenderer
	clip     *MemoryClipboard
	target   *image.RGBA
}

func newTestEngine(t *testing.T, configure ...func(*Options)) *testEngine {
	t.Helper()

	km, err := keymap.NewBuiltin()
	require.NoError(t, err)

	captions := DefaultCaptions()
	te := &testEngine{
		clock:    &fakeClock{t: time.Unix(1000, 0)},
		renderer: &monoRenderer{},
		clip:     NewMemoryClipboard(),
		target:   image.NewRGBA(image.Rect(0, 0, 800, 600)),
	}
	opts := Options{
		Keymap:    km,
		Renderer:  te.renderer,
		Clipboard: te.clip,
		Captions:  &captions,
		Clock:     te.clock.Now,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range configure {
		fn(&opts)
	}

	e, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })

	e.SetTargetBuffer(te.target, testBackground)
	e.SetKeyboardRect(testKeyboardRect)
	e.SetInputRect(testInputRect)
	te.Engine = e
	return te
}

// keyIndex finds the first key matching pred.
func (te *testEngine) keyIndex(t *testing.T, pred func(Key) bool) int {
	t.Helper()
	for i, k := range te.Keys() {
		if pred(k) {
			return i
		}
	}
	t.Fatal("no matching key")
	return -1
}

func (te *testEngine) captionIndex(t *testing.T, caption string) int {
	t.Helper()
	return te.keyIndex(t, func(k Key) bool { return k.Caption == caption })
}

func (te *testEngine) kindIndex(t *testing.T, kind KeyKind) int {
	t.Helper()
	return te.keyIndex(t, func(k Key) bool { return k.Kind == kind })
}

// click presses and releases the left button on the centre of key i.
func (te *testEngine) click(t *testing.T, i int) {
	t.Helper()
	c := te.Keys()[i].Center()
	require.True(t, te.MouseDown(c.X, c.Y, mouseLeft))
	te.MouseUp(c.X, c.Y, mouseLeft)
}

func (te *testEngine) highlightedKey(t *testing.T) Key {
	t.Helper()
	h := te.Highlighted()
	require.GreaterOrEqual(t, h, 0)
	return te.Keys()[h]
}

func opaque(c color.NRGBA) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func assertPixel(t *testing.T, img *image.RGBA, x, y int, want color.NRGBA) {
	t.Helper()
	got := img.RGBAAt(x, y)
	w := opaque(want)
	near := func(a, b uint8) bool {
		d := int(a) - int(b)
		return d >= -2 && d <= 2
	}
	if !near(got.R, w.R) || !near(got.G, w.G) || !near(got.B, w.B) || !near(got.A, w.A) {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, w)
	}
}
