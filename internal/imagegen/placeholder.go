package imagegen

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"

	"github.com/forgeworks/adforge/internal/typography"
)

var placeholderFonts = typography.NewFontLibrary()

// industry background moods for drawn placeholders
var placeholderPalettes = map[string][2]color.NRGBA{
	"technology": {{16, 24, 48, 255}, {41, 72, 128, 255}},
	"luxury":     {{20, 16, 12, 255}, {64, 52, 28, 255}},
	"beauty":     {{48, 24, 48, 255}, {120, 72, 120, 255}},
	"fashion":    {{24, 24, 32, 255}, {80, 64, 72, 255}},
	"food":       {{40, 24, 12, 255}, {120, 72, 32, 255}},
}

var defaultPalette = [2]color.NRGBA{{24, 30, 40, 255}, {56, 78, 104, 255}}

// Placeholder draws a stand-in base photograph: a vertical gradient in the
// industry's mood with a soft radial highlight where the product would sit.
// The text bands at the top and bottom stay calm so overlaid copy reads well.
func Placeholder(req Request, width, height int) image.Image {
	top, bottom := placeholderColors(req.Industry)

	dc := gg.NewContext(width, height)
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		dc.SetColor(blend(top, bottom, t))
		dc.DrawLine(0, float64(y), float64(width), float64(y))
		dc.Stroke()
	}

	// radial highlight, centered slightly above middle
	cx, cy := float64(width)/2, float64(height)*0.45
	maxR := float64(width) * 0.4
	steps := 60
	for i := steps; i > 0; i-- {
		r := maxR * float64(i) / float64(steps)
		alpha := 0.008 * (1 - float64(i)/float64(steps))
		dc.SetRGBA(1, 1, 1, alpha)
		dc.DrawCircle(cx, cy, r)
		dc.Fill()
	}

	// faint vignette keeps edges dark
	for i := 0; i < 40; i++ {
		inset := float64(i) * 2
		alpha := 0.012 * (1 - float64(i)/40)
		dc.SetRGBA(0, 0, 0, alpha)
		dc.DrawRectangle(inset, inset, float64(width)-2*inset, float64(height)-2*inset)
		dc.SetLineWidth(4)
		dc.Stroke()
	}

	// ground shadow suggesting a product pedestal
	dc.SetRGBA(0, 0, 0, 0.25)
	dc.DrawEllipse(cx, float64(height)*0.68, maxR*0.8, float64(height)*0.04)
	dc.Fill()

	// the product name stands in for the missing photograph
	if product := strings.ToUpper(strings.TrimSpace(req.Product)); product != "" {
		dc.SetFontFace(placeholderFonts.Face(typography.StyleModern, typography.ElementHeadline, float64(height)*0.06))
		dc.SetRGBA(1, 1, 1, 0.92)
		dc.DrawStringAnchored(product, cx, cy, 0.5, 0.5)
	}
	if brand := strings.TrimSpace(req.BrandName); brand != "" {
		dc.SetFontFace(placeholderFonts.Face(typography.StyleModern, typography.ElementBrand, float64(height)*0.035))
		dc.SetRGBA(1, 1, 1, 0.7)
		dc.DrawStringAnchored(brand, cx, cy+float64(height)*0.09, 0.5, 0.5)
	}

	return dc.Image()
}

func placeholderColors(industry string) (color.NRGBA, color.NRGBA) {
	lower := strings.ToLower(industry)
	for key, p := range placeholderPalettes {
		if strings.Contains(lower, key) {
			return p[0], p[1]
		}
	}
	return defaultPalette[0], defaultPalette[1]
}

func blend(a, b color.NRGBA, t float64) color.NRGBA {
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*(1-t) + float64(y)*t))
	}
	return color.NRGBA{lerp(a.R, b.R), lerp(a.G, b.G), lerp(a.B, b.B), 255}
}

