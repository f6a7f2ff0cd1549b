package typography

import (
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Content holds the text slots of a creative. Empty slots are skipped.
type Content struct {
	Brand       string
	Headline    string
	Subheadline string
	Body        string
	CTA         string
}

func (c Content) elements() TextElements {
	return TextElements{
		Brand:       c.Brand,
		Headline:    c.Headline,
		Subheadline: c.Subheadline,
		Body:        c.Body,
		CTA:         c.CTA,
	}
}

// Options steers a composition. Style and SchemeHint accept free text as it
// comes back from a language model. Suggestion nudges the layout but still
// yields to a matching brand template; Placement pins it outright.
type Options struct {
	Style      string
	Industry   string
	SchemeHint string
	Suggestion string
	Placement  string
}

// Result is a finished composition plus the intermediate decisions, kept for
// logging and for tests.
type Result struct {
	Image    image.Image
	Analysis *Analysis
	Scheme   ColorScheme
	Style    Style
	Layout   string
	Placed   map[Element]*PlacedText
}

// Font sizes as fractions of image height.
const (
	headlineScale    = 0.075
	subheadlineScale = 0.035
	bodyScale        = 0.030
	ctaScale         = 0.045
	brandScale       = 0.055
	largeBoost       = 1.3
)

var elementScales = map[Element]float64{
	ElementBrand:       brandScale,
	ElementHeadline:    headlineScale,
	ElementSubheadline: subheadlineScale,
	ElementBody:        bodyScale,
	ElementCTA:         ctaScale,
}

type stylePlan struct {
	treatments map[Element]Treatment
	button     ButtonStyle
}

var stylePlans = map[Style]stylePlan{
	StyleModern: {
		treatments: map[Element]Treatment{
			ElementBrand:       TreatmentSubtleBG,
			ElementHeadline:    TreatmentPremiumGradient,
			ElementSubheadline: TreatmentSubtleGlow,
			ElementBody:        TreatmentShadow,
		},
		button: ButtonRounded,
	},
	StyleLuxury: {
		treatments: map[Element]Treatment{
			ElementBrand:       TreatmentMinimalElegant,
			ElementHeadline:    TreatmentMetallic,
			ElementSubheadline: TreatmentElegantShadow,
			ElementBody:        TreatmentElegantShadow,
		},
		button: ButtonMinimalLine,
	},
	StyleMinimal: {
		treatments: map[Element]Treatment{
			ElementBrand:       TreatmentSimple,
			ElementHeadline:    TreatmentMinimalElegant,
			ElementSubheadline: TreatmentSimple,
			ElementBody:        TreatmentSimple,
		},
		button: ButtonMinimalLine,
	},
	StyleBold: {
		treatments: map[Element]Treatment{
			ElementBrand:       TreatmentOutline,
			ElementHeadline:    TreatmentPremiumOutline,
			ElementSubheadline: TreatmentShadow,
			ElementBody:        TreatmentShadow,
		},
		button: ButtonFlat,
	},
	StyleElegant: {
		treatments: map[Element]Treatment{
			ElementBrand:       TreatmentMinimalElegant,
			ElementHeadline:    TreatmentLayeredGradient,
			ElementSubheadline: TreatmentElegantShadow,
			ElementBody:        TreatmentElegantShadow,
		},
		button: ButtonPill,
	},
	StyleTechnical: {
		treatments: map[Element]Treatment{
			ElementBrand:       TreatmentShadow,
			ElementHeadline:    TreatmentGlass,
			ElementSubheadline: TreatmentSubtleBG,
			ElementBody:        TreatmentShadow,
		},
		button: ButtonGradient,
	},
}

// Engine composites text over photographs. It is safe for concurrent use.
type Engine struct {
	fonts *FontLibrary
}

func NewEngine() *Engine {
	return &Engine{fonts: NewFontLibrary()}
}

// drawOrder keeps backgrounds under foregrounds when panels overlap.
var drawOrder = []Element{ElementBody, ElementSubheadline, ElementBrand, ElementHeadline, ElementCTA}

// Compose analyzes the base photograph, picks colors and a layout, and
// renders the content onto a copy of it. The base image is never modified.
func (e *Engine) Compose(base image.Image, content Content, opts Options) *Result {
	bounds := base.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	analysis := Analyze(base)
	scheme := GenerateScheme(base, opts.SchemeHint, opts.Industry)
	style := NormalizeStyle(opts.Style)
	plan, ok := stylePlans[style]
	if !ok {
		plan = stylePlans[StyleModern]
	}

	// short headlines read better shouted
	if n := len(strings.Fields(content.Headline)); n > 0 && n <= 4 {
		content.Headline = strings.ToUpper(content.Headline)
	}

	// An explicit placement pins the layout; a suggestion or the analyzer's
	// pick still lets a matching brand template take over.
	layoutName := opts.Placement
	layoutBrand := ""
	if layoutName == "" {
		layoutName = opts.Suggestion
		if layoutName == "" {
			layoutName = analysis.Suggestion
		}
		layoutBrand = content.Brand
	}

	tpl := TemplateFor(layoutName, layoutBrand)
	faces := e.facesFor(style, tpl, height)

	placed, backdrop := Layout(base, content.elements(), faces, layoutName, layoutBrand)

	overlay := gg.NewContext(width, height)
	if backdrop != nil {
		overlay.SetColor(backdrop.Color)
		overlay.DrawRectangle(0, backdrop.YStart*float64(height), float64(width), (backdrop.YEnd-backdrop.YStart)*float64(height))
		overlay.Fill()
	}

	for _, el := range drawOrder {
		p, ok := placed[el]
		if !ok {
			continue
		}
		face := faces[el]
		if el == ElementCTA {
			textColor := textColorFor(scheme.Accent)
			if plan.button == ButtonMinimalLine {
				textColor = scheme.Accent
			}
			DrawButton(overlay, p, face, plan.button, scheme.Accent, textColor)
			continue
		}
		treatment := plan.treatments[el]
		DrawText(overlay, base, p, face, treatment, scheme.Text, scheme.Accent,
			analysis.Brightness.Overall, EffectParams{})
	}

	// a whisper of blur softens aliasing on the stamped effects
	softened := imaging.Blur(overlay.Image(), 0.3)

	out := gg.NewContext(width, height)
	out.DrawImage(base, 0, 0)
	out.DrawImage(softened, 0, 0)

	return &Result{
		Image:    out.Image(),
		Analysis: analysis,
		Scheme:   scheme,
		Style:    style,
		Layout:   tpl.Name,
		Placed:   placed,
	}
}

// facesFor builds one face per element, honoring template weight overrides
// and the large flag used by a few brand layouts.
func (e *Engine) facesFor(style Style, tpl LayoutTemplate, height int) map[Element]font.Face {
	faces := make(map[Element]font.Face, len(allElements))
	for _, el := range allElements {
		size := elementScales[el] * float64(height)
		if tpl.Large[el] {
			size *= largeBoost
		}
		if w, ok := tpl.Weights[el]; ok {
			faces[el] = e.fonts.face(w, size)
		} else {
			faces[el] = e.fonts.Face(style, el, size)
		}
	}
	return faces
}
