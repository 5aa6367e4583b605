package internal

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FillRect writes c into the w x h rectangle at (x, y). The rectangle is
// clipped to dst's bounds; nothing is blended.
func FillRect(dst *image.RGBA, x, y, w, h int, c color.NRGBA) {
	if dst == nil || w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(dst.Rect)
	if r.Empty() {
		return
	}

	p := premultiply(c)
	row := dst.PixOffset(r.Min.X, r.Min.Y)
	width := r.Dx() * 4
	first := dst.Pix[row : row+width]
	for i := 0; i < width; i += 4 {
		first[i+0] = p.R
		first[i+1] = p.G
		first[i+2] = p.B
		first[i+3] = p.A
	}
	for yy := r.Min.Y + 1; yy < r.Max.Y; yy++ {
		off := dst.PixOffset(r.Min.X, yy)
		copy(dst.Pix[off:off+width], first)
	}
}

// BlendOver composites fore over back. Both colours use straight alpha and
// so does the result; a fully transparent result is transparent black.
func BlendOver(back, fore color.NRGBA) color.NRGBA {
	fa := uint32(fore.A)
	ba := uint32(back.A)

	outA255 := fa*255 + ba*(255-fa)
	if outA255 == 0 {
		return color.NRGBA{}
	}

	channel := func(f, b uint8) uint8 {
		num := uint32(f)*fa*255 + uint32(b)*ba*(255-fa)
		return uint8((num + outA255/2) / outA255)
	}

	return color.NRGBA{
		R: channel(fore.R, back.R),
		G: channel(fore.G, back.G),
		B: channel(fore.B, back.B),
		A: uint8((outA255 + 127) / 255),
	}
}

// Blit copies sr of src to dst at dp without blending.
func Blit(src image.Image, sr image.Rectangle, dst draw.Image, dp image.Point) {
	if src == nil || dst == nil || sr.Empty() {
		return
	}
	draw.Copy(dst, dp, src, sr, draw.Src, nil)
}

// Straight converts a premultiplied colour back to straight alpha.
func Straight(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func premultiply(c color.NRGBA) color.RGBA {
	if c.A == 0xff {
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	a := uint32(c.A)
	return color.RGBA{
		R: uint8((uint32(c.R)*a + 127) / 255),
		G: uint8((uint32(c.G)*a + 127) / 255),
		B: uint8((uint32(c.B)*a + 127) / 255),
		A: c.A,
	}
}
