package typography

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// Style names a typography style a creative can request.
type Style string

const (
	StyleModern    Style = "modern"
	StyleLuxury    Style = "luxury"
	StyleMinimal   Style = "minimal"
	StyleBold      Style = "bold"
	StyleElegant   Style = "elegant"
	StyleTechnical Style = "technical"
)

// Element names a text slot on the creative.
type Element string

const (
	ElementBrand       Element = "brand"
	ElementHeadline    Element = "headline"
	ElementSubheadline Element = "subheadline"
	ElementBody        Element = "body"
	ElementCTA         Element = "cta"
)

// weight selects one of the embedded Go font cuts.
type weight string

const (
	weightRegular   weight = "regular"
	weightMedium    weight = "medium"
	weightBold      weight = "bold"
	weightItalic    weight = "italic"
	weightSmallcaps weight = "smallcaps"
)

var embeddedTTF = map[weight][]byte{
	weightRegular:   goregular.TTF,
	weightMedium:    gomedium.TTF,
	weightBold:      gobold.TTF,
	weightItalic:    goitalic.TTF,
	weightSmallcaps: gosmallcaps.TTF,
}

// styleWeights maps each style and element to a font cut. The embedded Go
// family has no true light or serif cuts, so light styles use regular and
// display styles use medium or smallcaps.
var styleWeights = map[Style]map[Element]weight{
	StyleModern: {
		ElementHeadline:    weightBold,
		ElementSubheadline: weightRegular,
		ElementBody:        weightRegular,
		ElementCTA:         weightBold,
		ElementBrand:       weightBold,
	},
	StyleLuxury: {
		ElementHeadline:    weightSmallcaps,
		ElementSubheadline: weightItalic,
		ElementBody:        weightRegular,
		ElementCTA:         weightMedium,
		ElementBrand:       weightSmallcaps,
	},
	StyleMinimal: {
		ElementHeadline:    weightRegular,
		ElementSubheadline: weightRegular,
		ElementBody:        weightRegular,
		ElementCTA:         weightMedium,
		ElementBrand:       weightMedium,
	},
	StyleBold: {
		ElementHeadline:    weightBold,
		ElementSubheadline: weightBold,
		ElementBody:        weightRegular,
		ElementCTA:         weightBold,
		ElementBrand:       weightBold,
	},
	StyleElegant: {
		ElementHeadline:    weightSmallcaps,
		ElementSubheadline: weightRegular,
		ElementBody:        weightItalic,
		ElementCTA:         weightMedium,
		ElementBrand:       weightSmallcaps,
	},
	StyleTechnical: {
		ElementHeadline:    weightBold,
		ElementSubheadline: weightRegular,
		ElementBody:        weightRegular,
		ElementCTA:         weightBold,
		ElementBrand:       weightMedium,
	},
}

// NormalizeStyle maps a free-text style description (often straight from an
// LLM) onto a known style.
func NormalizeStyle(s string) Style {
	lower := strings.ToLower(s)
	for _, style := range []Style{StyleLuxury, StyleMinimal, StyleBold, StyleElegant, StyleTechnical, StyleModern} {
		if strings.Contains(lower, string(style)) {
			return style
		}
	}
	switch {
	case strings.Contains(lower, "classic"), strings.Contains(lower, "serif"):
		return StyleElegant
	case strings.Contains(lower, "clean"), strings.Contains(lower, "sans"):
		return StyleModern
	}
	return StyleModern
}

type faceKey struct {
	w    weight
	size float64
}

// FontLibrary loads and caches font faces. The embedded Go family always
// works; TTF files found in conventional font directories take precedence
// when their filename matches the requested cut.
type FontLibrary struct {
	mu     sync.Mutex
	parsed map[weight]*truetype.Font
	faces  map[faceKey]font.Face
	dirs   []string
}

func NewFontLibrary() *FontLibrary {
	home, _ := os.UserHomeDir()
	return &FontLibrary{
		parsed: make(map[weight]*truetype.Font),
		faces:  make(map[faceKey]font.Face),
		dirs: []string{
			"/usr/share/fonts/truetype",
			"/usr/share/fonts",
			"/Library/Fonts",
			filepath.Join(home, ".fonts"),
		},
	}
}

// Face returns a face for the given style and element. Unknown styles fall
// back to modern; loading never fails because the fonts are embedded.
func (l *FontLibrary) Face(style Style, element Element, size float64) font.Face {
	weights, ok := styleWeights[style]
	if !ok {
		weights = styleWeights[StyleModern]
	}
	w, ok := weights[element]
	if !ok {
		w = weightRegular
	}
	return l.face(w, size)
}

func (l *FontLibrary) face(w weight, size float64) font.Face {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := faceKey{w, size}
	if f, ok := l.faces[key]; ok {
		return f
	}

	parsed, ok := l.parsed[w]
	if !ok {
		var err error
		parsed, err = truetype.Parse(embeddedTTF[w])
		if err != nil {
			// The embedded data is known good; regular is the last resort.
			slog.Error("failed to parse embedded font", "weight", string(w), "error", err)
			parsed, _ = truetype.Parse(goregular.TTF)
		}
		l.parsed[w] = parsed
	}

	f := truetype.NewFace(parsed, &truetype.Options{Size: size})
	l.faces[key] = f
	return f
}

// LoadFile parses a TTF from disk, searching the library's font directories
// when name is not an absolute path.
func (l *FontLibrary) LoadFile(name string, size float64) (font.Face, bool) {
	paths := []string{name}
	if !filepath.IsAbs(name) {
		for _, dir := range l.dirs {
			paths = append(paths, filepath.Join(dir, name), filepath.Join(dir, name+".ttf"))
		}
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		parsed, err := truetype.Parse(data)
		if err != nil {
			slog.Debug("skipping unparseable font file", "path", p, "error", err)
			continue
		}
		return truetype.NewFace(parsed, &truetype.Options{Size: size}), true
	}
	return nil, false
}

// MeasureText returns the pixel width and height of text in the given face.
func MeasureText(face font.Face, text string) (w, h int) {
	d := font.Drawer{Face: face}
	adv := d.MeasureString(text)
	m := face.Metrics()
	return adv.Ceil(), (m.Ascent + m.Descent).Ceil()
}
