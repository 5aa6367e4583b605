package internal

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconRendererCaches(t *testing.T) {
	r := NewIconRenderer()
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	for _, icon := range []Icon{IconBackspace, IconShift, IconShiftActive, IconSubmit} {
		bmp, err := r.Render(icon, 24, white)
		require.NoError(t, err)
		require.NotNil(t, bmp)
		assert.Equal(t, image.Rect(0, 0, 24, 24), bmp.Bounds())

		again, err := r.Render(icon, 24, white)
		require.NoError(t, err)
		assert.Same(t, bmp, again)
	}

	other, err := r.Render(IconShift, 24, color.NRGBA{R: 255, A: 255})
	require.NoError(t, err)
	first, _ := r.Render(IconShift, 24, white)
	assert.NotSame(t, first, other)

	r.Release()
	fresh, err := r.Render(IconShift, 24, white)
	require.NoError(t, err)
	assert.NotSame(t, first, fresh)
}

func TestIconRendererDrawsSomething(t *testing.T) {
	r := NewIconRenderer()
	bmp, err := r.Render(IconSubmit, 32, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	require.NoError(t, err)

	inked := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if bmp.RGBAAt(x, y).A > 0 {
				inked++
			}
		}
	}
	assert.Greater(t, inked, 0)
}

func TestIconRendererNone(t *testing.T) {
	r := NewIconRenderer()
	bmp, err := r.Render(IconNone, 24, color.NRGBA{A: 255})
	assert.NoError(t, err)
	assert.Nil(t, bmp)

	bmp, err = r.Render(IconShift, 0, color.NRGBA{A: 255})
	assert.NoError(t, err)
	assert.Nil(t, bmp)

	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.NoError(t, r.DrawCentered(dst, dst.Rect, IconNone, 8, color.NRGBA{A: 255}))
}

func TestDrawCenteredClipsToRect(t *testing.T) {
	r := NewIconRenderer()
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	rect := image.Rect(10, 10, 20, 20)

	require.NoError(t, r.DrawCentered(dst, rect, IconSubmit, 30, color.NRGBA{R: 255, G: 255, B: 255, A: 255}))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if !image.Pt(x, y).In(rect) {
				assert.Equal(t, uint8(0), dst.RGBAAt(x, y).A, "pixel %d,%d", x, y)
			}
		}
	}
}
