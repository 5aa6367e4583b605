package internal

import (
	"math"
	"sort"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
)

// WidthCache maps caret positions to horizontal pixel offsets. Offsets has one
// entry per caret position: Offsets[0] is 0 and the slice never decreases.
type WidthCache struct {
	offsets []int
	batch   int

	valid   bool
	version uint64
	size    float64
	scale   float64
}

func NewWidthCache(batch int) *WidthCache {
	if batch <= 0 {
		batch = constants.DefaultMeasureBatch
	}
	return &WidthCache{batch: batch, offsets: []int{0}}
}

// Invalidate forces the next Ensure to re-measure.
func (w *WidthCache) Invalidate() {
	w.valid = false
}

// Ensure re-measures text when version, size or scale differ from the last
// build. It reports whether a rebuild happened.
func (w *WidthCache) Ensure(m Measurer, text []rune, version uint64, size, scale float64) bool {
	if w.valid && w.version == version && w.size == size && w.scale == scale {
		return false
	}
	w.offsets = MeasureOffsets(m, text, size, w.batch)
	w.valid = true
	w.version = version
	w.size = size
	w.scale = scale
	return true
}

// SetOffsets installs precomputed offsets. They are forced monotonic.
func (w *WidthCache) SetOffsets(offsets []int) {
	if len(offsets) == 0 {
		offsets = []int{0}
	}
	w.offsets = append(w.offsets[:0], offsets...)
	w.offsets[0] = 0
	makeMonotonic(w.offsets)
	w.valid = true
}

func (w *WidthCache) Offsets() []int {
	return w.offsets
}

// Width is the offset of the last caret position.
func (w *WidthCache) Width() int {
	return w.offsets[len(w.offsets)-1]
}

// IndexToX returns the offset of caret position i, clamped to the buffer.
func (w *WidthCache) IndexToX(i int) int {
	return w.offsets[clamp(i, 0, len(w.offsets)-1)]
}

// XToIndex returns the caret position nearest to x. A point exactly half way
// between two positions maps to the left one.
func (w *WidthCache) XToIndex(x int) int {
	n := len(w.offsets) - 1
	i := sort.SearchInts(w.offsets, x)
	if i == 0 {
		return 0
	}
	if i > n {
		return n
	}
	if x-w.offsets[i-1] <= w.offsets[i]-x {
		return i - 1
	}
	return i
}

// MeasureOffsets measures text in batches and converts ink boxes into caret
// offsets: each glyph's origin is its ink left minus its left bearing, and
// the final offset is the last origin plus its advance but never left of the
// last ink right edge.
func MeasureOffsets(m Measurer, text []rune, size float64, batch int) []int {
	offsets := make([]int, len(text)+1)
	if len(text) == 0 || m == nil {
		return offsets
	}
	if batch <= 0 {
		batch = constants.DefaultMeasureBatch
	}

	base := 0.0
	lastOrigin, lastAdvance, lastInkRight := 0.0, 0.0, 0.0
	for start := 0; start < len(text); start += batch {
		end := min(start+batch, len(text))
		boxes, metrics := m.MeasureRun(size, text[start:end])

		for j := start; j < end; j++ {
			k := j - start
			var box InkBox
			var gm GlyphMetrics
			if k < len(boxes) {
				box = boxes[k]
			}
			if k < len(metrics) {
				gm = metrics[k]
			}
			origin := base + box.Left - gm.LeftBearing
			offsets[j] = int(math.Round(origin))
			lastOrigin, lastAdvance = origin, gm.Advance
			lastInkRight = base + box.Right
		}
		base = lastOrigin + lastAdvance
	}

	final := math.Round(lastOrigin + lastAdvance)
	if ink := math.Ceil(lastInkRight); final < ink {
		final = ink
	}
	offsets[len(text)] = int(final)
	offsets[0] = 0
	makeMonotonic(offsets)
	return offsets
}

func makeMonotonic(offsets []int) {
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			offsets[i] = offsets[i-1]
		}
	}
}

// ScrollToCaret returns the scroll offset that keeps caretX inside a view of
// viewW pixels with pad pixels of slack on either side, moving the current
// scroll as little as possible. The result is clamped to the text width.
func ScrollToCaret(scroll, caretX, viewW, textW, pad int) int {
	if viewW <= 0 {
		return 0
	}
	pad = min(pad, viewW/2)

	if caretX-scroll < pad {
		scroll = caretX - pad
	} else if caretX-scroll > viewW-pad {
		scroll = caretX - (viewW - pad)
	}

	maxScroll := max(0, textW+pad-viewW)
	return clamp(scroll, 0, maxScroll)
}
