package internal

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// Icon identifies a special-key glyph.
type Icon int

const (
	IconNone Icon = iota
	IconBackspace
	IconShift
	IconShiftActive
	IconSubmit
)

func (i Icon) source() string {
	switch i {
	case IconBackspace:
		return constants.IconBackspace
	case IconShift:
		return constants.IconShift
	case IconShiftActive:
		return constants.IconShiftActive
	case IconSubmit:
		return constants.IconSubmit
	default:
		return ""
	}
}

// IconRenderer rasterizes SVG icons and keeps the results in an LRU keyed by
// icon, size and colour.
type IconRenderer struct {
	cache *BitmapCache
}

func NewIconRenderer() *IconRenderer {
	return &IconRenderer{cache: NewBitmapCache()}
}

// Render returns a size x size bitmap of icon drawn in c on a transparent
// background.
func (r *IconRenderer) Render(icon Icon, size int, c color.NRGBA) (*image.RGBA, error) {
	src := icon.source()
	if src == "" || size <= 0 {
		return nil, nil
	}

	key := fmt.Sprintf("%d:%d:%s", icon, size, ColorToHex(c))
	if bmp := r.cache.Get(key); bmp != nil {
		return bmp, nil
	}

	hex := fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	svg, err := oksvg.ReadIconStream(strings.NewReader(fmt.Sprintf(src, hex)))
	if err != nil {
		return nil, fmt.Errorf("parse icon %d: %w", icon, err)
	}
	svg.SetTarget(0, 0, float64(size), float64(size))

	bmp := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, bmp, bmp.Bounds())
	svg.Draw(rasterx.NewDasher(size, size, scanner), float64(c.A)/255)

	r.cache.Set(key, bmp)
	return bmp, nil
}

// DrawCentered composites icon over dst, centred in rect.
func (r *IconRenderer) DrawCentered(dst *image.RGBA, rect image.Rectangle, icon Icon, size int, c color.NRGBA) error {
	bmp, err := r.Render(icon, size, c)
	if err != nil || bmp == nil {
		return err
	}
	b := bmp.Bounds()
	at := image.Pt(rect.Min.X+(rect.Dx()-b.Dx())/2, rect.Min.Y+(rect.Dy()-b.Dy())/2)
	dr := image.Rectangle{Min: at, Max: at.Add(b.Size())}.Intersect(rect)
	draw.Draw(dst, dr, bmp, dr.Min.Sub(at), draw.Over)
	return nil
}

// Release drops all rendered icons.
func (r *IconRenderer) Release() {
	r.cache.Clear()
}
