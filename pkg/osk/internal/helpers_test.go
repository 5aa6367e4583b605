package internal

import "github.com/BrandonKowalski/osk/pkg/osk/keymap"

// monoMeasurer lays out every rune with a fixed advance and a one pixel left
// bearing. Spaces have no ink.
type monoMeasurer struct {
	advance float64
	calls   int
}

func (m *monoMeasurer) MeasureRun(_ float64, runes []rune) ([]InkBox, []GlyphMetrics) {
	m.calls++
	boxes := make([]InkBox, len(runes))
	metrics := make([]GlyphMetrics, len(runes))
	for i, r := range runes {
		pen := float64(i) * m.advance
		if r == ' ' {
			boxes[i] = InkBox{Left: pen, Right: pen}
			metrics[i] = GlyphMetrics{Advance: m.advance}
			continue
		}
		boxes[i] = InkBox{Left: pen + 1, Right: pen + m.advance - 1}
		metrics[i] = GlyphMetrics{LeftBearing: 1, Advance: m.advance, RightBearing: 1}
	}
	return boxes, metrics
}

// emptyKeymap has layouts but maps nothing.
type emptyKeymap struct {
	layouts []keymap.LayoutID
}

func (e emptyKeymap) InstalledLayouts() []keymap.LayoutID { return e.layouts }
func (e emptyKeymap) CurrentLayout() keymap.LayoutID { return e.layouts[0] }
func (e emptyKeymap) Activate(keymap.LayoutID) error { return nil }
func (e emptyKeymap) MapPhysicalKey(keymap.Code, bool, keymap.LayoutID) string { return "" }
