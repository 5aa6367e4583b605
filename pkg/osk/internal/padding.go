package internal

import "image"

// Padding defines spacing on all four sides of an element.
type Padding struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(value int) Padding {
	return Padding{
		Top:    value,
		Right:  value,
		Bottom: value,
		Left:   value,
	}
}

// HorizontalPadding pads only the left and right sides.
func HorizontalPadding(value int) Padding {
	return Padding{Left: value, Right: value}
}

// Inset shrinks r by the padding. A rectangle too small to hold the padding
// becomes empty.
func (p Padding) Inset(r image.Rectangle) image.Rectangle {
	if r.Dx() <= p.Left+p.Right || r.Dy() <= p.Top+p.Bottom {
		return image.Rectangle{}
	}
	return image.Rect(r.Min.X+p.Left, r.Min.Y+p.Top, r.Max.X-p.Right, r.Max.Y-p.Bottom)
}

// Scale multiplies every side by f, rounding to the nearest pixel.
func (p Padding) Scale(f float64) Padding {
	s := func(v int) int { return int(float64(v)*f + 0.5) }
	return Padding{Top: s(p.Top), Right: s(p.Right), Bottom: s(p.Bottom), Left: s(p.Left)}
}
