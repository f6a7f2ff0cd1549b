package typography

import (
	"image"
	"image/color"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pixelsDiffer(a, b image.Image) bool {
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ar, ag, ab, _ := a.At(x, y).RGBA()
			br, bg, bb, _ := b.At(x, y).RGBA()
			if ar != br || ag != bg || ab != bb {
				return true
			}
		}
	}
	return false
}

func TestComposeRendersText(t *testing.T) {
	base := solidImage(800, 600, color.NRGBA{40, 60, 90, 255})
	engine := NewEngine()

	result := engine.Compose(base, Content{
		Brand:    "Forge",
		Headline: "Built to Last",
		CTA:      "Shop Now",
	}, Options{Style: "modern", Industry: "technology"})

	require.NotNil(t, result)
	assert.Equal(t, base.Bounds(), result.Image.Bounds())
	assert.True(t, pixelsDiffer(base, result.Image), "composite should draw over the base")
	assert.Equal(t, StyleModern, result.Style)
	assert.Len(t, result.Placed, 3)
}

func TestComposeUppercasesShortHeadlines(t *testing.T) {
	base := solidImage(400, 300, color.NRGBA{128, 128, 128, 255})
	engine := NewEngine()

	result := engine.Compose(base, Content{Headline: "built to last"}, Options{})
	assert.Equal(t, "BUILT TO LAST", result.Placed[ElementHeadline].Text)

	result = engine.Compose(base, Content{Headline: "a much longer headline kept as written"}, Options{})
	assert.Equal(t, "a much longer headline kept as written", result.Placed[ElementHeadline].Text)
}

func TestComposeHonorsPlacementOverride(t *testing.T) {
	base := solidImage(400, 300, color.NRGBA{128, 128, 128, 255})
	engine := NewEngine()

	result := engine.Compose(base, Content{Headline: "Hello"}, Options{Placement: "bottom_heavy"})
	assert.Equal(t, "bottom_centered", result.Layout)
}

func TestComposeUnknownStyleFallsBack(t *testing.T) {
	base := solidImage(400, 300, color.NRGBA{128, 128, 128, 255})
	engine := NewEngine()

	result := engine.Compose(base, Content{Headline: "Hello"}, Options{Style: "brutalist vaporwave"})
	assert.Equal(t, StyleModern, result.Style)
}

func TestComposeBrandTemplate(t *testing.T) {
	base := solidImage(800, 600, color.NRGBA{20, 20, 20, 255})
	engine := NewEngine()

	result := engine.Compose(base, Content{
		Brand:    "Rolex",
		Headline: "Perpetual Motion",
		CTA:      "Discover",
	}, Options{Style: "luxury"})

	assert.Equal(t, "rolex", result.Layout)
	assert.Equal(t, StyleLuxury, result.Style)
}

func TestComposePlacementPinsOverBrandTemplate(t *testing.T) {
	base := solidImage(800, 600, color.NRGBA{20, 20, 20, 255})
	engine := NewEngine()

	content := Content{Brand: "Nike", Headline: "Run Further", CTA: "Shop"}

	result := engine.Compose(base, content, Options{Placement: "top_centered"})
	assert.Equal(t, "top_centered", result.Layout)

	// a mere suggestion still loses to the brand template
	result = engine.Compose(base, content, Options{Suggestion: "top_centered"})
	assert.Equal(t, "nike", result.Layout)
}

func TestDrawTextTreatments(t *testing.T) {
	base := solidImage(400, 200, color.NRGBA{90, 90, 90, 255})
	lib := NewFontLibrary()
	face := lib.Face(StyleModern, ElementHeadline, 32)

	treatments := []Treatment{
		TreatmentSimple, TreatmentShadow, TreatmentElegantShadow,
		TreatmentGlow, TreatmentSubtleGlow, TreatmentGradient,
		TreatmentPremiumGradient, TreatmentLayeredGradient, TreatmentMetallic,
		TreatmentOutline, TreatmentPremiumOutline, TreatmentGlass,
		TreatmentSubtleBG, TreatmentMinimalElegant, TreatmentVibrantOverlay,
	}
	for _, treatment := range treatments {
		overlay := gg.NewContext(400, 200)
		before := gg.NewContext(400, 200).Image()
		p := &PlacedText{Text: "Sample", Pos: image.Pt(200, 80), Align: AlignCenter}
		p.Width, p.Height = MeasureText(face, p.Text)

		DrawText(overlay, base, p, face, treatment, white, defaultAccent, 0.4, EffectParams{})
		assert.True(t, pixelsDiffer(before, overlay.Image()), "treatment %s drew nothing", treatment)
	}
}

func TestDrawTextGlassWithoutBase(t *testing.T) {
	lib := NewFontLibrary()
	face := lib.Face(StyleModern, ElementHeadline, 32)
	overlay := gg.NewContext(400, 200)
	p := &PlacedText{Text: "Glass", Pos: image.Pt(200, 80), Align: AlignCenter}
	p.Width, p.Height = MeasureText(face, p.Text)

	// nil base falls back to the subtle background panel
	DrawText(overlay, nil, p, face, TreatmentGlass, white, defaultAccent, 0.4, EffectParams{})
	assert.True(t, pixelsDiffer(gg.NewContext(400, 200).Image(), overlay.Image()))
}

func TestDrawButtonStyles(t *testing.T) {
	lib := NewFontLibrary()
	face := lib.Face(StyleModern, ElementCTA, 24)

	styles := []ButtonStyle{
		ButtonRounded, ButtonPill, ButtonMinimalLine,
		ButtonGlass, ButtonGradient, ButtonFlat,
	}
	for _, style := range styles {
		dc := gg.NewContext(400, 200)
		p := &PlacedText{Text: "Buy Now", Pos: image.Pt(200, 80), Align: AlignCenter}
		p.Width, p.Height = MeasureText(face, p.Text)

		bounds := DrawButton(dc, p, face, style, defaultAccent, white)
		assert.False(t, bounds.Empty(), "style %s", style)
		assert.True(t, bounds.Min.Y < 80 && bounds.Max.Y > 80, "style %s should wrap the anchor row", style)
		assert.True(t, pixelsDiffer(gg.NewContext(400, 200).Image(), dc.Image()), "style %s drew nothing", style)
	}
}
