package internal

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/srwiley/rasterx"
)

// Shape names one pre-rendered rounded rectangle.
type Shape int

const (
	ShapePanel Shape = iota
	ShapeInputFocused
	ShapeInputUnfocused
	ShapeKeyDefaultShort
	ShapeKeyHighlightShort
	ShapeKeyDefaultTall
	ShapeKeyHighlightTall
	ShapeCount
)

func (s Shape) String() string {
	switch s {
	case ShapePanel:
		return "panel"
	case ShapeInputFocused:
		return "input-focused"
	case ShapeInputUnfocused:
		return "input-unfocused"
	case ShapeKeyDefaultShort:
		return "key-default-short"
	case ShapeKeyHighlightShort:
		return "key-highlight-short"
	case ShapeKeyDefaultTall:
		return "key-default-tall"
	case ShapeKeyHighlightTall:
		return "key-highlight-tall"
	default:
		return "unknown"
	}
}

// KeyShape returns the cache entry for a key of the given height class.
func KeyShape(short, highlighted bool) Shape {
	switch {
	case short && highlighted:
		return ShapeKeyHighlightShort
	case short:
		return ShapeKeyDefaultShort
	case highlighted:
		return ShapeKeyHighlightTall
	default:
		return ShapeKeyDefaultTall
	}
}

// ShapeParams is the tuple a cache entry was rendered from. An entry is valid
// exactly when its stored tuple equals the requested one.
type ShapeParams struct {
	Width          int
	Height         int
	Fill           color.NRGBA
	Background     color.NRGBA // Target buffer colour under the shape
	Underlay       color.NRGBA // Opaque surface between background and shape, e.g. the panel under a key
	HasUnderlay    bool
	RadiusFraction float64
	MarginFraction float64 // Vertical margin used to derive key row height; zero for non-key shapes
}

// Radius returns the corner radius in pixels, capped to half the smaller side.
func (p ShapeParams) Radius() float64 {
	r := p.RadiusFraction * float64(p.Height)
	limit := float64(min(p.Width, p.Height)) / 2
	if r > limit {
		r = limit
	}
	if r < 0 {
		r = 0
	}
	return r
}

// CapWidth is the width of the right-edge strip copied when a key narrower
// than the cache is drawn.
func (p ShapeParams) CapWidth() int {
	return int(math.Ceil(p.Radius())) + 1
}

// CacheEntry is a rendered bitmap and the parameters that produced it.
type CacheEntry struct {
	params   ShapeParams
	bitmap   *image.RGBA
	built    bool
	rebuilds int
}

// Bitmap returns the rendered image, or nil when the entry has no area.
func (e *CacheEntry) Bitmap() *image.RGBA {
	return e.bitmap
}

func (e *CacheEntry) Params() ShapeParams {
	return e.params
}

// Rebuilds is the number of times the entry has been rasterized.
func (e *CacheEntry) Rebuilds() int {
	return e.rebuilds
}

// ShapeSet holds the requested parameters for every shape.
type ShapeSet [ShapeCount]ShapeParams

// RoundRectCache owns one bitmap per Shape and re-rasterizes an entry only when
// its parameters change.
type RoundRectCache struct {
	entries [ShapeCount]CacheEntry
	logger  *slog.Logger
}

func NewRoundRectCache(logger *slog.Logger) *RoundRectCache {
	if logger == nil {
		logger = GetInternalLogger()
	}
	return &RoundRectCache{logger: logger}
}

// Ensure brings every entry up to date with set and returns how many entries
// were rebuilt. Calling it again with the same set rebuilds nothing.
func (c *RoundRectCache) Ensure(set ShapeSet) int {
	rebuilt := 0
	for s := Shape(0); s < ShapeCount; s++ {
		if c.EnsureShape(s, set[s]) {
			rebuilt++
		}
	}
	if rebuilt > 0 {
		c.logger.Debug("Rebuilt round-rect caches", "count", rebuilt)
	}
	return rebuilt
}

// EnsureShape rebuilds a single entry if its parameters changed and reports
// whether it did.
func (c *RoundRectCache) EnsureShape(s Shape, p ShapeParams) bool {
	e := &c.entries[s]
	if e.built && e.params == p {
		return false
	}
	e.params = p
	e.built = true
	e.bitmap = renderRoundRect(p)
	e.rebuilds++
	return true
}

func (c *RoundRectCache) Entry(s Shape) *CacheEntry {
	return &c.entries[s]
}

// Release drops every bitmap. The next Ensure rebuilds all entries.
func (c *RoundRectCache) Release() {
	for i := range c.entries {
		c.entries[i].bitmap = nil
		c.entries[i].built = false
	}
}

// DrawShape copies the whole entry to dst at dp. Entries without a bitmap are
// skipped.
func (c *RoundRectCache) DrawShape(dst *image.RGBA, s Shape, dp image.Point) {
	bmp := c.entries[s].bitmap
	if bmp == nil {
		return
	}
	Blit(bmp, bmp.Bounds(), dst, dp)
}

// BlitKey draws a key of rect's size from a full-width key entry: the left
// part is cropped from the entry's left edge and the right cap comes from the
// entry's own right edge, so the corners stay round at every width.
func (c *RoundRectCache) BlitKey(dst *image.RGBA, s Shape, rect image.Rectangle) {
	e := &c.entries[s]
	bmp := e.bitmap
	if bmp == nil || rect.Empty() {
		return
	}

	b := bmp.Bounds()
	w := min(rect.Dx(), b.Dx())
	h := min(rect.Dy(), b.Dy())
	capW := e.params.CapWidth()
	if w < 2*capW {
		// Too narrow for both caps: half from each edge.
		capW = w - w/2
	}
	leftW := w - capW

	if leftW > 0 {
		Blit(bmp, image.Rect(b.Min.X, b.Min.Y, b.Min.X+leftW, b.Min.Y+h), dst, rect.Min)
	}
	Blit(bmp, image.Rect(b.Max.X-capW, b.Min.Y, b.Max.X, b.Min.Y+h), dst, image.Pt(rect.Min.X+leftW, rect.Min.Y))
}

func renderRoundRect(p ShapeParams) *image.RGBA {
	if p.Width <= 0 || p.Height <= 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))

	base := p.Background
	if p.HasUnderlay {
		base = BlendOver(p.Background, p.Underlay)
	}
	FillRect(img, 0, 0, p.Width, p.Height, base)

	r := p.Radius()
	scanner := rasterx.NewScannerGV(p.Width, p.Height, img, img.Bounds())
	filler := rasterx.NewFiller(p.Width, p.Height, scanner)
	filler.SetColor(p.Fill)
	rasterx.AddRoundRect(0, 0, float64(p.Width), float64(p.Height), r, r, 0, rasterx.RoundGap, filler)
	filler.Draw()

	return img
}
