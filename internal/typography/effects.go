package typography

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Treatment names a layered text effect.
type Treatment string

const (
	TreatmentSimple          Treatment = "simple"
	TreatmentShadow          Treatment = "shadow"
	TreatmentElegantShadow   Treatment = "elegant_shadow"
	TreatmentGlow            Treatment = "glow"
	TreatmentSubtleGlow      Treatment = "subtle_glow"
	TreatmentGradient        Treatment = "gradient"
	TreatmentPremiumGradient Treatment = "premium_gradient"
	TreatmentLayeredGradient Treatment = "layered_gradient"
	TreatmentMetallic        Treatment = "luxury_metallic"
	TreatmentOutline         Treatment = "outline"
	TreatmentPremiumOutline  Treatment = "premium_outline"
	TreatmentGlass           Treatment = "glass_effect"
	TreatmentSubtleBG        Treatment = "subtle_bg"
	TreatmentMinimalElegant  Treatment = "minimal_elegant"
	TreatmentVibrantOverlay  Treatment = "vibrant_overlay"
)

// EffectParams tunes a treatment. Zero values select per-treatment defaults.
type EffectParams struct {
	ShadowOffset   int
	ShadowAlpha    uint8
	ShadowBlur     float64
	GlowRadius     float64
	GlowIterations int
	GlowIntensity  float64
	Steps          int
	Direction      string // vertical, horizontal, diagonal
	StartOpacity   float64
	EndOpacity     float64
	Thickness      int
	Padding        int
	CornerRadius   float64
	Opacity        float64
	LetterSpacing  float64
	BlurRadius     float64
}

func withAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = a
	return c
}

func scaleAlpha(c color.NRGBA, f float64) color.NRGBA {
	c.A = uint8(clamp255(float64(c.A) * f))
	return c
}

func lighten(c color.NRGBA, delta float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(float64(c.R) + delta)),
		G: uint8(clamp255(float64(c.G) + delta)),
		B: uint8(clamp255(float64(c.B) + delta)),
		A: c.A,
	}
}

func darken(c color.NRGBA, factor float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(float64(c.R) * factor)),
		G: uint8(clamp255(float64(c.G) * factor)),
		B: uint8(clamp255(float64(c.B) * factor)),
		A: c.A,
	}
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(clamp255(float64(x)*(1-t) + float64(y)*t))
	}
	return color.NRGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), lerp(a.A, b.A)}
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// drawTopLeft renders s with its top-left corner at (x, y).
func drawTopLeft(dc *gg.Context, s string, x, y float64) {
	dc.DrawStringAnchored(s, x, y, 0, 1)
}

// textLayer renders text in col onto a fresh transparent canvas with pad
// pixels of margin on every side.
func textLayer(text string, face font.Face, col color.Color, pad int) *gg.Context {
	w, h := MeasureText(face, text)
	dc := gg.NewContext(w+pad*2, h+pad*2)
	dc.SetFontFace(face)
	dc.SetColor(col)
	drawTopLeft(dc, text, float64(pad), float64(pad))
	return dc
}

// DrawText renders one placed text element onto the overlay using the given
// treatment. base is the underlying photograph, needed only by the glass
// treatment; overall is the image's overall brightness, used by subtle_bg.
func DrawText(overlay *gg.Context, base image.Image, p *PlacedText, face font.Face,
	treatment Treatment, textColor, accentColor color.NRGBA, overall float64, params EffectParams) {

	x := float64(p.Pos.X)
	switch p.Align {
	case AlignCenter:
		x -= float64(p.Width) / 2
	case AlignRight:
		x -= float64(p.Width)
	}
	y := float64(p.Pos.Y)

	overlay.SetFontFace(face)

	switch treatment {
	case TreatmentSimple:
		overlay.SetColor(textColor)
		drawTopLeft(overlay, p.Text, x, y)
	case TreatmentElegantShadow:
		drawShadow(overlay, p.Text, face, x, y, textColor, shadowSpec{offset: 2, alpha: 120, blur: 2, minPad: 30}.merge(params))
	case TreatmentGlow:
		drawGlow(overlay, p.Text, face, x, y, textColor, accentColor, params)
	case TreatmentSubtleGlow:
		drawSubtleGlow(overlay, p.Text, face, x, y, textColor, accentColor, params)
	case TreatmentGradient:
		drawGradient(overlay, p.Text, x, y, textColor, params)
	case TreatmentPremiumGradient:
		drawPremiumGradient(overlay, p.Text, face, x, y, textColor, params)
	case TreatmentLayeredGradient:
		drawLayeredGradient(overlay, p.Text, face, x, y, textColor, accentColor, params)
	case TreatmentMetallic:
		drawMetallic(overlay, p.Text, face, x, y, textColor, accentColor, params)
	case TreatmentOutline:
		drawOutline(overlay, p.Text, face, x, y, textColor, withAlpha(accentColor, 200), params)
	case TreatmentPremiumOutline:
		drawPremiumOutline(overlay, p.Text, face, x, y, textColor, accentColor, params)
	case TreatmentGlass:
		if base != nil {
			drawGlass(overlay, base, p.Text, face, x, y, textColor, params)
		} else {
			drawSubtleBackground(overlay, p.Text, face, x, y, textColor, overall, params)
		}
	case TreatmentSubtleBG:
		drawSubtleBackground(overlay, p.Text, face, x, y, textColor, overall, params)
	case TreatmentMinimalElegant:
		drawMinimalElegant(overlay, p.Text, face, x, y, textColor, params)
	case TreatmentVibrantOverlay:
		drawVibrantOverlay(overlay, p.Text, face, x, y, textColor, accentColor, params)
	default:
		// shadow is both an explicit treatment and the fallback
		drawShadow(overlay, p.Text, face, x, y, textColor, shadowSpec{offset: 2, alpha: 150, blur: 3, minPad: 20}.merge(params))
	}
}

type shadowSpec struct {
	offset int
	alpha  uint8
	blur   float64
	minPad int
}

func (s shadowSpec) merge(p EffectParams) shadowSpec {
	if p.ShadowOffset != 0 {
		s.offset = p.ShadowOffset
	}
	if p.ShadowAlpha != 0 {
		s.alpha = p.ShadowAlpha
	}
	if p.ShadowBlur != 0 {
		s.blur = p.ShadowBlur
	}
	return s
}

// drawShadow draws a blurred drop shadow beneath the text.
func drawShadow(dc *gg.Context, text string, face font.Face, x, y float64, textColor color.NRGBA, spec shadowSpec) {
	pad := spec.minPad
	if p := spec.offset + int(spec.blur*3); p > pad {
		pad = p
	}

	layer := textLayer(text, face, color.NRGBA{0, 0, 0, spec.alpha}, pad)
	blurred := imaging.Blur(layer.Image(), spec.blur)
	dc.DrawImage(blurred, int(x)-pad+spec.offset, int(y)-pad+spec.offset)

	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}

// drawGlow puts a single blurred halo behind the text.
func drawGlow(dc *gg.Context, text string, face font.Face, x, y float64, textColor, glowColor color.NRGBA, p EffectParams) {
	radius := p.GlowRadius
	if radius == 0 {
		radius = 5
	}
	intensity := p.GlowIntensity
	if intensity == 0 {
		intensity = 0.7
	}
	if glowColor.A == 0 {
		glowColor = color.NRGBA{255, 255, 255, 100}
	}

	pad := int(radius * 2)
	layer := textLayer(text, face, scaleAlpha(glowColor, intensity), pad)
	blurred := imaging.Blur(layer.Image(), radius)
	dc.DrawImage(blurred, int(x)-pad, int(y)-pad)

	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}

// drawSubtleGlow stacks several offset copies before blurring, giving an
// omnidirectional halo that fades outward.
func drawSubtleGlow(dc *gg.Context, text string, face font.Face, x, y float64, textColor, glowColor color.NRGBA, p EffectParams) {
	radius := p.GlowRadius
	if radius == 0 {
		radius = 5
	}
	iterations := p.GlowIterations
	if iterations == 0 {
		iterations = 3
	}
	if glowColor.A == 0 {
		glowColor = color.NRGBA{255, 255, 255, 100}
	}

	pad := int(radius) * 3
	w, h := MeasureText(face, text)
	layer := gg.NewContext(w+pad*2, h+pad*2)
	layer.SetFontFace(face)

	for i := iterations; i > 0; i-- {
		alpha := uint8(clamp255(float64(glowColor.A) * float64(i) / float64(iterations)))
		layer.SetColor(withAlpha(glowColor, alpha))
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				drawTopLeft(layer, text, float64(pad+dx*i), float64(pad+dy*i))
			}
		}
	}

	blurred := imaging.Blur(layer.Image(), radius/2)
	dc.DrawImage(blurred, int(x)-pad, int(y)-pad)

	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}

// drawGradient is the light-weight gradient: a short stack of offset shadow
// copies under the main text.
func drawGradient(dc *gg.Context, text string, x, y float64, textColor color.NRGBA, p EffectParams) {
	offset := p.ShadowOffset
	if offset == 0 {
		offset = 2
	}
	dc.SetColor(color.NRGBA{0, 0, 0, 100})
	for i := 1; i <= offset; i++ {
		drawTopLeft(dc, text, x+float64(i), y+float64(i))
	}
	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}

// drawPremiumGradient renders stepped copies with decaying opacity along the
// gradient direction, then a crisp top copy, lightly blurred together.
func drawPremiumGradient(dc *gg.Context, text string, face font.Face, x, y float64, textColor color.NRGBA, p EffectParams) {
	steps := p.Steps
	if steps < 2 {
		steps = 10
	}
	start := p.StartOpacity
	if start == 0 {
		start = 1.0
	}
	end := p.EndOpacity
	if end == 0 {
		end = 0.7
	}
	direction := p.Direction
	if direction == "" {
		direction = "vertical"
	}
	shadowOffset := p.ShadowOffset
	if shadowOffset == 0 {
		shadowOffset = 2
	}

	w, h := MeasureText(face, text)
	pad := max(w, h)
	layer := gg.NewContext(w+pad*2, h+pad*2)
	layer.SetFontFace(face)

	layer.SetColor(color.NRGBA{0, 0, 0, 128})
	drawTopLeft(layer, text, float64(pad+shadowOffset), float64(pad+shadowOffset))

	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		alpha := uint8(clamp255(float64(textColor.A) * (start - (start-end)*t)))
		var ox, oy float64
		switch direction {
		case "horizontal":
			ox = float64(w) * t * 0.2
		case "diagonal":
			ox = float64(w) * t * 0.15
			oy = float64(h) * t * 0.15
		default:
			oy = float64(h) * t * 0.2
		}
		layer.SetColor(withAlpha(textColor, alpha))
		drawTopLeft(layer, text, float64(pad)+ox, float64(pad)+oy)
	}

	layer.SetColor(textColor)
	drawTopLeft(layer, text, float64(pad), float64(pad))

	blurred := imaging.Blur(layer.Image(), 0.5)
	dc.DrawImage(blurred, int(x)-pad, int(y)-pad)
}

// drawLayeredGradient interpolates text color toward the accent across a few
// offset layers for depth.
func drawLayeredGradient(dc *gg.Context, text string, face font.Face, x, y float64, textColor, accentColor color.NRGBA, p EffectParams) {
	layers := p.Steps
	if layers == 0 {
		layers = 3
	}
	direction := p.Direction
	if direction == "" {
		direction = "vertical"
	}
	if accentColor.A == 0 {
		accentColor = textColor
	}

	const pad = 20
	w, h := MeasureText(face, text)
	layer := gg.NewContext(w+pad*2, h+pad*2)
	layer.SetFontFace(face)

	layer.SetColor(color.NRGBA{0, 0, 0, 100})
	drawTopLeft(layer, text, pad+2, pad+2)

	for i := 0; i < layers; i++ {
		var t float64
		if layers > 1 {
			t = float64(i) / float64(layers-1)
		}
		var ox, oy float64
		switch direction {
		case "horizontal":
			ox = float64(w) * t * 0.2
		case "diagonal":
			ox = float64(w) * t * 0.1
			oy = float64(h) * t * 0.1
		default:
			oy = float64(h) * t * 0.2
		}
		layer.SetColor(lerpColor(textColor, accentColor, t))
		drawTopLeft(layer, text, pad+ox, pad+oy)
	}

	blurred := imaging.Blur(layer.Image(), 0.5)
	dc.DrawImage(blurred, int(x)-pad, int(y)-pad)

	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}

// drawMetallic layers a dark base, an offset highlight, an accent sheen, the
// main text and a top edge highlight to mimic metal lettering.
func drawMetallic(dc *gg.Context, text string, face font.Face, x, y float64, textColor, accentColor color.NRGBA, p EffectParams) {
	if accentColor.A == 0 {
		accentColor = color.NRGBA{255, 215, 0, 200}
	}
	shadowOffset := p.ShadowOffset
	if shadowOffset == 0 {
		shadowOffset = 3
	}

	w, h := MeasureText(face, text)
	pad := max(w, h)
	layer := gg.NewContext(w+pad*2, h+pad*2)
	layer.SetFontFace(face)
	at := func(col color.Color, ox, oy float64) {
		layer.SetColor(col)
		drawTopLeft(layer, text, float64(pad)+ox, float64(pad)+oy)
	}

	at(color.NRGBA{0, 0, 0, 150}, float64(shadowOffset), float64(shadowOffset))
	at(darken(textColor, 0.5), 0, 0)
	at(lighten(textColor, 40), -1, -1)
	at(scaleAlpha(accentColor, 0.5), 0, 0)
	at(textColor, 0, 0)
	at(scaleAlpha(lighten(textColor, 80), 0.5), 0, -2)

	blurred := imaging.Blur(layer.Image(), 0.3)
	dc.DrawImage(blurred, int(x)-pad, int(y)-pad)
}

// drawOutline strokes the text by stamping offset copies around it.
func drawOutline(dc *gg.Context, text string, face font.Face, x, y float64, textColor, outlineColor color.NRGBA, p EffectParams) {
	thickness := p.Thickness
	if thickness == 0 {
		thickness = 1
	}
	if outlineColor.A == 0 {
		outlineColor = color.NRGBA{0, 0, 0, 200}
	}

	dc.SetColor(outlineColor)
	for dx := -thickness; dx <= thickness; dx++ {
		for dy := -thickness; dy <= thickness; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawTopLeft(dc, text, x+float64(dx), y+float64(dy))
		}
	}
	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}

// drawPremiumOutline adds an inner glow pass between the outline and the
// main text.
func drawPremiumOutline(dc *gg.Context, text string, face font.Face, x, y float64, textColor, outlineColor color.NRGBA, p EffectParams) {
	thickness := p.Thickness
	if thickness == 0 {
		thickness = 1
	}
	intensity := p.GlowIntensity
	if intensity == 0 {
		intensity = 0.5
	}
	if outlineColor.A == 0 {
		outlineColor = color.NRGBA{255, 255, 255, 200}
	}

	dc.SetColor(outlineColor)
	dirs := [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	for i := 1; i <= thickness; i++ {
		for _, d := range dirs {
			drawTopLeft(dc, text, x+float64(d[0]*i), y+float64(d[1]*i))
		}
	}

	inner := scaleAlpha(lighten(outlineColor, 0.2*255), intensity)
	dc.SetColor(inner)
	drawTopLeft(dc, text, x, y)

	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}

// drawGlass blurs the photograph behind the text area and brightens it,
// clipped to a rounded panel, before drawing the text.
func drawGlass(dc *gg.Context, base image.Image, text string, face font.Face, x, y float64, textColor color.NRGBA, p EffectParams) {
	blurRadius := p.BlurRadius
	if blurRadius == 0 {
		blurRadius = 10
	}
	opacity := p.Opacity
	if opacity == 0 {
		opacity = 0.4
	}
	pad := p.Padding
	if pad == 0 {
		pad = 15
	}

	w, h := MeasureText(face, text)
	rect := image.Rect(int(x)-pad, int(y)-pad, int(x)+w+pad, int(y)+h+pad).Intersect(base.Bounds())
	if rect.Empty() {
		dc.SetColor(textColor)
		drawTopLeft(dc, text, x, y)
		return
	}

	crop := imaging.Crop(base, rect)
	blurred := imaging.Blur(crop, blurRadius)

	dc.Push()
	dc.DrawRoundedRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), 10)
	dc.Clip()
	dc.DrawImage(blurred, rect.Min.X, rect.Min.Y)

	// translucent sheen plus a fading top reflection
	dc.SetColor(color.NRGBA{255, 255, 255, uint8(clamp255(255 * opacity))})
	dc.DrawRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))
	dc.Fill()

	reflection := rect.Dy() / 3
	for i := 0; i < reflection; i++ {
		alpha := uint8(clamp255(255 * 0.3 * (1 - float64(i)/float64(reflection))))
		dc.SetColor(color.NRGBA{255, 255, 255, alpha})
		dc.DrawLine(float64(rect.Min.X), float64(rect.Min.Y+i), float64(rect.Max.X), float64(rect.Min.Y+i))
		dc.Stroke()
	}
	dc.ResetClip()
	dc.Pop()

	dc.SetFontFace(face)
	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}

// drawSubtleBackground draws a rounded translucent panel behind the text,
// dark on bright images and light on dark ones.
func drawSubtleBackground(dc *gg.Context, text string, face font.Face, x, y float64, textColor color.NRGBA, overall float64, p EffectParams) {
	pad := p.Padding
	if pad == 0 {
		pad = 15
	}
	radius := p.CornerRadius
	if radius == 0 {
		radius = 8
	}
	opacity := p.Opacity
	if opacity == 0 {
		opacity = 0.7
	}

	bg := color.NRGBA{255, 255, 255, uint8(clamp255(255 * opacity))}
	if overall > 0.5 {
		bg = color.NRGBA{0, 0, 0, uint8(clamp255(255 * opacity))}
	}

	w, h := MeasureText(face, text)
	dc.SetColor(bg)
	dc.DrawRoundedRectangle(x-float64(pad), y-float64(pad), float64(w+pad*2), float64(h+pad*2), radius)
	dc.Fill()

	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}

// drawMinimalElegant spaces letters slightly and adds a one-pixel shadow.
func drawMinimalElegant(dc *gg.Context, text string, face font.Face, x, y float64, textColor color.NRGBA, p EffectParams) {
	spacing := p.LetterSpacing
	if spacing == 0 {
		spacing = 0.05
	}
	extra := spacing * fontSize(face)

	dc.SetColor(color.NRGBA{0, 0, 0, 60})
	drawSpaced(dc, text, face, x+1, y+1, extra)
	dc.SetColor(textColor)
	drawSpaced(dc, text, face, x, y, extra)
}

// drawSpaced draws text rune by rune with extra horizontal spacing.
func drawSpaced(dc *gg.Context, text string, face font.Face, x, y, extra float64) {
	cx := x
	for _, r := range text {
		s := string(r)
		drawTopLeft(dc, s, cx, y)
		w, _ := MeasureText(face, s)
		cx += float64(w) + extra
	}
}

func fontSize(face font.Face) float64 {
	m := face.Metrics()
	return float64((m.Ascent + m.Descent).Ceil())
}

// drawVibrantOverlay fills a rounded accent panel behind the text.
func drawVibrantOverlay(dc *gg.Context, text string, face font.Face, x, y float64, textColor, accentColor color.NRGBA, p EffectParams) {
	pad := p.Padding
	if pad == 0 {
		pad = 15
	}
	opacity := p.Opacity
	if opacity == 0 {
		opacity = 0.8
	}
	if accentColor.A == 0 {
		accentColor = color.NRGBA{41, 128, 185, 200}
	}

	w, h := MeasureText(face, text)
	dc.SetColor(scaleAlpha(accentColor, opacity))
	dc.DrawRoundedRectangle(x-float64(pad), y-float64(pad), float64(w+pad*2), float64(h+pad*2), 10)
	dc.Fill()

	dc.SetColor(textColor)
	drawTopLeft(dc, text, x, y)
}
