package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/face-annotator-go/domain/face"
)

var white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func whiteImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return img
}

func isStrokeRed(c color.RGBA) bool { return c.R > 200 && c.G < 60 && c.B < 60 }

func TestSummarize_Boundaries(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, MessageNoFace},
		{1, MessageOneFace},
		{2, MessageManyFaces},
		{5, MessageManyFaces},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Summarize(tt.count).Message(), "count=%d", tt.count)
	}
}

func TestRender_OutlinesMatchRegionsExactly(t *testing.T) {
	regions := face.Regions{
		7:  {X: 10, Y: 10, Width: 40, Height: 30},
		2:  {X: 60, Y: 55, Width: 25, Height: 25},
		11: {X: 5, Y: 70, Width: 20, Height: 20},
	}
	res := Render(whiteImage(100, 100), regions, DefaultStyle())
	require.NotNil(t, res.Image)
	require.Len(t, res.Outlines, 3)
	assert.Equal(t, []image.Rectangle{
		image.Rect(10, 10, 50, 40),
		image.Rect(60, 55, 85, 80),
		image.Rect(5, 70, 25, 90),
	}, res.Outlines)
}

func TestRender_DrawsStrokeAndKeepsInterior(t *testing.T) {
	src := whiteImage(100, 100)
	res := Render(src, face.Regions{0: {X: 10, Y: 10, Width: 40, Height: 30}}, DefaultStyle())
	img := res.Image
	require.Equal(t, src.Bounds(), img.Bounds())

	// Left and right edge midpoints sit on the stroke.
	assert.True(t, isStrokeRed(img.RGBAAt(10, 25)), "left edge: %v", img.RGBAAt(10, 25))
	assert.True(t, isStrokeRed(img.RGBAAt(49, 25)), "right edge: %v", img.RGBAAt(49, 25))
	assert.True(t, isStrokeRed(img.RGBAAt(30, 39)), "bottom edge: %v", img.RGBAAt(30, 39))
	// Interior and far background are untouched.
	assert.Equal(t, white, img.RGBAAt(30, 25))
	assert.Equal(t, white, img.RGBAAt(90, 90))
	// Source stays pristine.
	assert.Equal(t, white, src.RGBAAt(10, 25))
}

func TestRender_NoRegionsCopiesImage(t *testing.T) {
	src := whiteImage(8, 6)
	src.SetRGBA(3, 3, color.RGBA{G: 0x80, A: 0xff})
	res := Render(src, face.Regions{}, DefaultStyle())
	assert.Empty(t, res.Outlines)
	assert.Equal(t, src.Pix, res.Image.Pix)
	assert.NotSame(t, src, res.Image)
}

func TestRender_Idempotent(t *testing.T) {
	src := whiteImage(64, 48)
	regions := face.Regions{0: {X: 4, Y: 4, Width: 20, Height: 20}, 1: {X: 30, Y: 10, Width: 25, Height: 30}}
	a := Render(src, regions, DefaultStyle())
	b := Render(src, regions, DefaultStyle())
	assert.Equal(t, a.Image.Pix, b.Image.Pix)
	assert.Equal(t, a.Outlines, b.Outlines)
}

func TestRender_RegionOutsideBoundsDoesNotPanic(t *testing.T) {
	src := whiteImage(20, 20)
	res := Render(src, face.Regions{0: {X: -10, Y: 15, Width: 50, Height: 40}}, DefaultStyle())
	require.Len(t, res.Outlines, 1)
	assert.Equal(t, image.Rect(-10, 15, 40, 55), res.Outlines[0])
}

func TestRender_OffsetOriginSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 25, 25))
	draw.Draw(src, src.Bounds(), image.NewUniform(white), src.Bounds().Min, draw.Src)
	res := Render(src, nil, DefaultStyle())
	assert.Equal(t, image.Rect(0, 0, 20, 20), res.Image.Bounds())
	assert.Equal(t, white, res.Image.RGBAAt(0, 0))
}
