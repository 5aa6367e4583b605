package internal

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaceRendererMeasuresAndDraws(t *testing.T) {
	r, err := NewDefaultFaceRenderer()
	require.NoError(t, err)
	defer r.Close()

	assert.Greater(t, r.Advance(20, "WW"), r.Advance(20, "W"))
	assert.Greater(t, r.Advance(40, "W"), r.Advance(20, "W"))

	ascent, descent := r.LineMetrics(20)
	assert.Greater(t, ascent, 0.0)
	assert.Greater(t, descent, 0.0)

	boxes, metrics := r.MeasureRun(20, []rune("a b"))
	require.Len(t, boxes, 3)
	assert.Equal(t, boxes[1].Left, boxes[1].Right)
	assert.Greater(t, metrics[1].Advance, 0.0)

	dst := image.NewRGBA(image.Rect(0, 0, 60, 30))
	clip := image.Rect(0, 0, 30, 30)
	r.DrawString(dst, clip, 20, "WWWW", 2, 22, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	inside, outside := 0, 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 60; x++ {
			if dst.RGBAAt(x, y).A == 0 {
				continue
			}
			if x < 30 {
				inside++
			} else {
				outside++
			}
		}
	}
	assert.Greater(t, inside, 0)
	assert.Equal(t, 0, outside)
}

func TestLoadFaceRendererMissingFile(t *testing.T) {
	_, err := LoadFaceRenderer("/nonexistent/font.ttf")
	assert.Error(t, err)

	_, err = NewFaceRenderer([]byte("not a font"))
	assert.Error(t, err)
}
