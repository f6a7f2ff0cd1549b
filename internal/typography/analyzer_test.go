package typography

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func TestAnalyzeBrightnessUniform(t *testing.T) {
	black := AnalyzeBrightness(solidImage(90, 90, color.NRGBA{0, 0, 0, 255}))
	assert.InDelta(t, 0, black.Overall, 0.01)
	for _, row := range gridRegions {
		for _, r := range row {
			assert.InDelta(t, 0, black.Cells[r], 0.01, "region %s", r)
		}
	}

	white := AnalyzeBrightness(solidImage(90, 90, color.NRGBA{255, 255, 255, 255}))
	assert.InDelta(t, 1, white.Overall, 0.01)
}

func TestAnalyzeBrightnessSplit(t *testing.T) {
	img := solidImage(120, 120, color.NRGBA{255, 255, 255, 255})
	fillRect(img, image.Rect(0, 60, 120, 120), color.NRGBA{0, 0, 0, 255})

	bm := AnalyzeBrightness(img)
	assert.Greater(t, bm.Cells[TopCenter], 0.9)
	assert.Less(t, bm.Cells[BottomCenter], 0.1)
	assert.InDelta(t, 0.5, bm.Overall, 0.05)

	darkest, v := bm.Darkest()
	assert.Contains(t, []Region{BottomLeft, BottomCenter, BottomRight}, darkest)
	assert.Less(t, v, 0.1)

	brightest, v := bm.Brightest()
	assert.Contains(t, []Region{TopLeft, TopCenter, TopRight}, brightest)
	assert.Greater(t, v, 0.9)
}

func TestAnalyzeContrastAndSubject(t *testing.T) {
	img := solidImage(120, 120, color.NRGBA{255, 255, 255, 255})
	fillRect(img, image.Rect(0, 60, 120, 120), color.NRGBA{0, 0, 0, 255})

	a := Analyze(img)
	assert.True(t, a.HighContrast)
	assert.True(t, a.HasClearSubject)
	assert.NotEmpty(t, a.DarkRegions)
	assert.NotEmpty(t, a.LightRegions)
	assert.Equal(t, "bottom_heavy", a.Suggestion)
}

func TestAnalyzeDarkImageStaysCentered(t *testing.T) {
	a := Analyze(solidImage(90, 90, color.NRGBA{25, 25, 25, 255}))
	assert.Equal(t, "centered", a.Suggestion)
	assert.Len(t, a.DarkRegions, 9)
	assert.False(t, a.HighContrast)
}

func TestAnalyzeBrightImageUsesDarkestBand(t *testing.T) {
	img := solidImage(90, 90, color.NRGBA{255, 255, 255, 255})
	fillRect(img, image.Rect(0, 60, 90, 90), color.NRGBA{128, 128, 128, 255})

	a := Analyze(img)
	assert.Greater(t, a.Brightness.Overall, 0.8)
	assert.Equal(t, "bottom_heavy", a.Suggestion)
}

func TestDominantColors(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}
	blue := color.NRGBA{0, 0, 255, 255}
	img := solidImage(200, 200, red)
	fillRect(img, image.Rect(150, 0, 200, 200), blue)

	dominant := DominantColors(img, 5)
	require.NotEmpty(t, dominant)
	assert.Equal(t, red, dominant[0])
	assert.LessOrEqual(t, len(dominant), 5)
}

func TestDominantColorsSolid(t *testing.T) {
	teal := color.NRGBA{0, 128, 128, 255}
	dominant := DominantColors(solidImage(50, 50, teal), 3)
	require.NotEmpty(t, dominant)
	assert.Equal(t, teal, dominant[0])
}

func TestSubjectPosition(t *testing.T) {
	img := solidImage(101, 101, color.NRGBA{0, 0, 0, 255})
	fillRect(img, image.Rect(70, 70, 81, 81), color.NRGBA{255, 255, 255, 255})

	x, y, ok := SubjectPosition(img)
	require.True(t, ok)
	assert.Greater(t, x, 0.5)
	assert.Greater(t, y, 0.5)
}

func TestSubjectPositionFeatureless(t *testing.T) {
	_, _, ok := SubjectPosition(solidImage(50, 50, color.NRGBA{80, 80, 80, 255}))
	assert.False(t, ok)
}
