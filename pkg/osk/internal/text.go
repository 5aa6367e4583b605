package internal

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// InkBox is the horizontal extent of a glyph's visible pixels, measured from
// the origin of the run it was measured in.
type InkBox struct {
	Left  float64
	Right float64
}

// GlyphMetrics are the advance-width components of a glyph. LeftBearing is
// the distance from the glyph origin to its ink; Advance moves the pen.
type GlyphMetrics struct {
	LeftBearing  float64
	Advance      float64
	RightBearing float64
}

// Measurer measures short runs of characters at a pixel size. Both slices
// have one element per rune.
type Measurer interface {
	MeasureRun(size float64, runes []rune) ([]InkBox, []GlyphMetrics)
}

// TextRenderer is the text service used for captions and the input field.
type TextRenderer interface {
	Measurer
	// Advance returns the pen advance of s.
	Advance(size float64, s string) float64
	// LineMetrics returns the ascent and descent of the face.
	LineMetrics(size float64) (ascent, descent float64)
	// DrawString draws s with its origin at (x, baseline), clipped to clip.
	DrawString(dst *image.RGBA, clip image.Rectangle, size float64, s string, x, baseline int, c color.NRGBA)
	Close() error
}

// FaceRenderer implements TextRenderer over an OpenType font, keeping one
// face per pixel size.
type FaceRenderer struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFaceRenderer parses a TTF or OTF font.
func NewFaceRenderer(data []byte) (*FaceRenderer, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &FaceRenderer{font: f, faces: make(map[float64]font.Face)}, nil
}

// NewDefaultFaceRenderer uses the embedded Go Regular font.
func NewDefaultFaceRenderer() (*FaceRenderer, error) {
	return NewFaceRenderer(goregular.TTF)
}

// LoadFaceRenderer reads a font file. An empty path selects the default font.
func LoadFaceRenderer(path string) (*FaceRenderer, error) {
	if path == "" {
		return NewDefaultFaceRenderer()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return NewFaceRenderer(data)
}

func (r *FaceRenderer) face(size float64) font.Face {
	if size <= 0 {
		size = 1
	}
	if f, ok := r.faces[size]; ok {
		return f
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		GetInternalLogger().Error("Failed to create font face", "size", size, "error", err)
		return nil
	}
	r.faces[size] = f
	return f
}

func (r *FaceRenderer) MeasureRun(size float64, runes []rune) ([]InkBox, []GlyphMetrics) {
	boxes := make([]InkBox, len(runes))
	metrics := make([]GlyphMetrics, len(runes))

	face := r.face(size)
	if face == nil {
		return boxes, metrics
	}

	pen := fixed.Int26_6(0)
	prev := rune(-1)
	for i, c := range runes {
		if prev >= 0 {
			pen += face.Kern(prev, c)
		}
		bounds, advance, _ := face.GlyphBounds(c)

		m := GlyphMetrics{Advance: toFloat(advance)}
		box := InkBox{Left: toFloat(pen), Right: toFloat(pen)}
		if bounds.Max.X > bounds.Min.X {
			m.LeftBearing = toFloat(bounds.Min.X)
			m.RightBearing = toFloat(advance - bounds.Max.X)
			box = InkBox{Left: toFloat(pen + bounds.Min.X), Right: toFloat(pen + bounds.Max.X)}
		}

		boxes[i] = box
		metrics[i] = m
		pen += advance
		prev = c
	}
	return boxes, metrics
}

func (r *FaceRenderer) Advance(size float64, s string) float64 {
	face := r.face(size)
	if face == nil {
		return 0
	}
	return toFloat(font.MeasureString(face, s))
}

func (r *FaceRenderer) LineMetrics(size float64) (ascent, descent float64) {
	face := r.face(size)
	if face == nil {
		return size * 0.8, size * 0.2
	}
	m := face.Metrics()
	return toFloat(m.Ascent), toFloat(m.Descent)
}

func (r *FaceRenderer) DrawString(dst *image.RGBA, clip image.Rectangle, size float64, s string, x, baseline int, c color.NRGBA) {
	face := r.face(size)
	if face == nil || s == "" {
		return
	}
	clip = clip.Intersect(dst.Rect)
	if clip.Empty() {
		return
	}
	d := font.Drawer{
		Dst:  dst.SubImage(clip).(*image.RGBA),
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

// Close releases every face.
func (r *FaceRenderer) Close() error {
	var firstErr error
	for size, f := range r.faces {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.faces, size)
	}
	return firstErr
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
