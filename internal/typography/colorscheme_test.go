package typography

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContrastRatio(t *testing.T) {
	assert.InDelta(t, 21, ContrastRatio(white, color.NRGBA{0, 0, 0, 255}), 0.1)
	assert.InDelta(t, 1, ContrastRatio(white, white), 0.01)
	assert.True(t, SufficientContrast(white, color.NRGBA{0, 0, 0, 255}))
	assert.False(t, SufficientContrast(white, color.NRGBA{200, 200, 200, 255}))
}

func TestComplementary(t *testing.T) {
	got := Complementary(color.NRGBA{255, 0, 0, 255})
	assert.Equal(t, color.NRGBA{0, 255, 255, 255}, got)
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#fff", color.NRGBA{255, 255, 255, 255}, true},
		{"#1a2b3c", color.NRGBA{26, 43, 60, 255}, true},
		{"use #ff0000 as accent", color.NRGBA{255, 0, 0, 255}, true},
		{"no color here", color.NRGBA{}, false},
		{"#gggggg", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseHexColor(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestGenerateSchemeDarkImage(t *testing.T) {
	img := solidImage(60, 60, color.NRGBA{10, 10, 10, 255})
	scheme := GenerateScheme(img, "", "")

	assert.Equal(t, white, scheme.Text)
	assert.Equal(t, defaultOverlay, scheme.OverlayBG)
	assert.True(t, SufficientContrast(scheme.Accent, scheme.Text))
	assert.Equal(t, "auto-generated", scheme.SchemeType)
}

func TestGenerateSchemeBrightImage(t *testing.T) {
	img := solidImage(60, 60, color.NRGBA{240, 240, 240, 255})
	scheme := GenerateScheme(img, "", "")

	assert.Equal(t, nearBlack, scheme.Text)
	assert.Equal(t, lightOverlay, scheme.OverlayBG)
}

func TestGenerateSchemeNamedColor(t *testing.T) {
	img := solidImage(60, 60, color.NRGBA{128, 128, 128, 255})
	scheme := GenerateScheme(img, "vibrant blue tones", "")
	assert.Equal(t, color.NRGBA{41, 128, 185, 230}, scheme.Accent)
}

func TestGenerateSchemeHexToken(t *testing.T) {
	img := solidImage(60, 60, color.NRGBA{128, 128, 128, 255})
	scheme := GenerateScheme(img, "brand color #c0392b", "")
	assert.Equal(t, color.NRGBA{192, 57, 43, 230}, scheme.Accent)
}

func TestGenerateSchemeComplementary(t *testing.T) {
	img := solidImage(60, 60, color.NRGBA{200, 40, 40, 255})
	scheme := GenerateScheme(img, "complementary", "")
	assert.Equal(t, uint8(255-200), scheme.Accent.R)
	assert.Equal(t, uint8(255-40), scheme.Accent.G)
}

func TestGenerateSchemeIndustryPalette(t *testing.T) {
	img := solidImage(60, 60, color.NRGBA{10, 10, 10, 255})
	scheme := GenerateScheme(img, "", "technology startup")

	assert.Equal(t, color.NRGBA{46, 204, 113, 255}, scheme.Accent)
	// dark image keeps readable white text
	assert.Equal(t, white, scheme.Text)
}

func TestGenerateSchemeUnknownIndustryFallsBack(t *testing.T) {
	img := solidImage(60, 60, color.NRGBA{10, 10, 10, 255})
	scheme := GenerateScheme(img, "", "underwater basket weaving")
	assert.True(t, SufficientContrast(scheme.Accent, scheme.Text))
}

func TestPaletteFor(t *testing.T) {
	_, ok := PaletteFor("luxury watches")
	assert.True(t, ok)
	_, ok = PaletteFor("")
	assert.False(t, ok)
}
