package typography

import (
	"image"
	"image/color"
	"regexp"
	"strings"
)

// ColorScheme holds the colors the compositor uses for a creative.
type ColorScheme struct {
	Text       color.NRGBA
	Accent     color.NRGBA
	OverlayBG  color.NRGBA
	Dominant   []color.NRGBA
	Brightness float64
	SchemeType string
	Industry   string
}

// Palette groups an industry's preferred colors.
type Palette struct {
	Primary []color.NRGBA
	Accent  []color.NRGBA
	Text    []color.NRGBA
}

var (
	white     = color.NRGBA{255, 255, 255, 255}
	nearBlack = color.NRGBA{30, 30, 30, 255}

	defaultAccent  = color.NRGBA{41, 128, 185, 230}
	defaultOverlay = color.NRGBA{0, 0, 0, 160}
	lightOverlay   = color.NRGBA{255, 255, 255, 160}
)

// industryPalettes maps industry keywords to curated palettes.
var industryPalettes = map[string]Palette{
	"technology": {
		Primary: []color.NRGBA{{41, 128, 185, 255}, {52, 152, 219, 255}},
		Accent:  []color.NRGBA{{46, 204, 113, 255}, {26, 188, 156, 255}},
		Text:    []color.NRGBA{white, {52, 73, 94, 255}},
	},
	"luxury": {
		Primary: []color.NRGBA{{44, 62, 80, 255}, {52, 73, 94, 255}},
		Accent:  []color.NRGBA{{212, 172, 13, 255}, {250, 219, 20, 255}},
		Text:    []color.NRGBA{white, nearBlack},
	},
	"beauty": {
		Primary: []color.NRGBA{{155, 89, 182, 255}, {142, 68, 173, 255}},
		Accent:  []color.NRGBA{{241, 196, 15, 255}, {243, 156, 18, 255}},
		Text:    []color.NRGBA{white, {52, 73, 94, 255}},
	},
	"fashion": {
		Primary: []color.NRGBA{{52, 73, 94, 255}, {44, 62, 80, 255}},
		Accent:  []color.NRGBA{{231, 76, 60, 255}, {192, 57, 43, 255}},
		Text:    []color.NRGBA{white, nearBlack},
	},
	"food": {
		Primary: []color.NRGBA{{211, 84, 0, 255}, {243, 156, 18, 255}},
		Accent:  []color.NRGBA{{46, 204, 113, 255}, {39, 174, 96, 255}},
		Text:    []color.NRGBA{white, {44, 62, 80, 255}},
	},
}

var namedAccents = []struct {
	keyword string
	color   color.NRGBA
}{
	{"blue", color.NRGBA{41, 128, 185, 230}},
	{"red", color.NRGBA{192, 57, 43, 230}},
	{"green", color.NRGBA{39, 174, 96, 230}},
	{"purple", color.NRGBA{142, 68, 173, 230}},
	{"gold", color.NRGBA{241, 196, 15, 230}},
	{"yellow", color.NRGBA{241, 196, 15, 230}},
	{"black", color.NRGBA{30, 30, 30, 230}},
	{"white", color.NRGBA{240, 240, 240, 230}},
}

var hexColorRe = regexp.MustCompile(`#(?:[0-9a-fA-F]{3}){1,2}`)

// Luminance returns the perceived brightness of a color in [0,1] using the
// 0.299/0.587/0.114 weighting.
func Luminance(c color.NRGBA) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// ContrastRatio computes a simplified WCAG contrast ratio between two colors.
func ContrastRatio(a, b color.NRGBA) float64 {
	l1, l2 := Luminance(a), Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// SufficientContrast reports whether two colors meet the 4.5:1 threshold
// recommended for normal text.
func SufficientContrast(a, b color.NRGBA) bool {
	return ContrastRatio(a, b) >= 4.5
}

// Complementary returns the RGB complement of a color, keeping alpha.
func Complementary(c color.NRGBA) color.NRGBA {
	return color.NRGBA{255 - c.R, 255 - c.G, 255 - c.B, c.A}
}

// textColorFor picks white or near-black text against the given background.
func textColorFor(background color.NRGBA) color.NRGBA {
	if Luminance(background) < 0.5 {
		return white
	}
	return nearBlack
}

// ParseHexColor parses the first #rgb or #rrggbb token in s.
func ParseHexColor(s string) (color.NRGBA, bool) {
	m := hexColorRe.FindString(s)
	if m == "" {
		return color.NRGBA{}, false
	}
	hex := m[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, ok := hexByte(hex[i*2], hex[i*2+1])
		if !ok {
			return color.NRGBA{}, false
		}
		rgb[i] = v
	}
	return color.NRGBA{rgb[0], rgb[1], rgb[2], 255}, true
}

func hexByte(hi, lo byte) (uint8, bool) {
	h, ok1 := hexNibble(hi)
	l, ok2 := hexNibble(lo)
	return h<<4 | l, ok1 && ok2
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// PaletteFor returns the palette whose key appears in the industry string.
func PaletteFor(industry string) (Palette, bool) {
	lower := strings.ToLower(industry)
	for key, p := range industryPalettes {
		if strings.Contains(lower, key) {
			return p, true
		}
	}
	return Palette{}, false
}

// GenerateScheme builds a color scheme for an image. schemeType may name a
// color ("blue", "gold"), a strategy ("monochromatic", "complementary"), or
// carry a #hex token; industry selects a curated palette when schemeType is
// empty.
func GenerateScheme(img image.Image, schemeType, industry string) ColorScheme {
	dominant := DominantColors(img, 5)
	brightness := AnalyzeBrightness(img).Overall

	scheme := ColorScheme{
		Dominant:   dominant,
		Brightness: brightness,
		SchemeType: schemeType,
		Industry:   industry,
	}
	if scheme.SchemeType == "" {
		scheme.SchemeType = "auto-generated"
	}

	if brightness > 0.5 {
		scheme.Text = nearBlack
		scheme.OverlayBG = lightOverlay
	} else {
		scheme.Text = white
		scheme.OverlayBG = defaultOverlay
	}

	switch {
	case schemeType != "":
		scheme.Accent = accentFromSchemeType(schemeType, dominant, &scheme)
	default:
		if p, ok := PaletteFor(industry); ok {
			scheme.Accent = p.Accent[0]
			scheme.applyPaletteText(p, brightness, dominant)
		} else {
			scheme.Accent = accentFromDominant(dominant, scheme.Text)
		}
	}
	return scheme
}

func accentFromSchemeType(schemeType string, dominant []color.NRGBA, scheme *ColorScheme) color.NRGBA {
	lower := strings.ToLower(schemeType)

	for _, named := range namedAccents {
		if strings.Contains(lower, named.keyword) {
			return named.color
		}
	}

	switch {
	case strings.Contains(lower, "monochromatic") && len(dominant) > 0:
		base := dominant[0]
		scheme.Text = textColorFor(base)
		return color.NRGBA{base.R, base.G, base.B, 230}
	case strings.Contains(lower, "complementary") && len(dominant) > 0:
		base := dominant[0]
		comp := Complementary(base)
		scheme.Text = textColorFor(base)
		return color.NRGBA{comp.R, comp.G, comp.B, 230}
	}

	if c, ok := ParseHexColor(lower); ok {
		scheme.Text = textColorFor(c)
		return color.NRGBA{c.R, c.G, c.B, 230}
	}

	if len(dominant) > 0 {
		d := dominant[0]
		return color.NRGBA{d.R, d.G, d.B, 230}
	}
	return defaultAccent
}

// applyPaletteText overrides the brightness-based text color with the
// palette's, unless a dominant color would lose contrast against it.
func (s *ColorScheme) applyPaletteText(p Palette, brightness float64, dominant []color.NRGBA) {
	if len(p.Text) < 2 {
		return
	}
	candidate := p.Text[0]
	if brightness >= 0.5 {
		candidate = p.Text[1]
	}
	limit := len(dominant)
	if limit > 2 {
		limit = 2
	}
	for _, d := range dominant[:limit] {
		if !SufficientContrast(d, candidate) {
			return
		}
	}
	s.Text = candidate
}

// accentFromDominant picks the first dominant color that keeps readable
// contrast with the text color, else the default blue.
func accentFromDominant(dominant []color.NRGBA, text color.NRGBA) color.NRGBA {
	for _, d := range dominant {
		if SufficientContrast(d, text) {
			return color.NRGBA{d.R, d.G, d.B, 230}
		}
	}
	return defaultAccent
}
