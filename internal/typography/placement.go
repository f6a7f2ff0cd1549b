package typography

import (
	"image"
	"image/color"
	"sort"
	"strings"

	"golang.org/x/image/font"
)

// Alignment controls how a text element hangs off its anchor point.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Anchor is a relative position inside the image.
type Anchor struct {
	X, Y  float64
	Align Alignment
}

// Spacing gives minimum vertical gaps between stacked elements, as fractions
// of image height.
type Spacing struct {
	HeadlineToSubheadline float64
	SubheadlineToBody     float64
	BodyToCTA             float64
}

// Backdrop describes a translucent panel drawn behind a band of text.
type Backdrop struct {
	Color  color.NRGBA
	YStart float64
	YEnd   float64
}

// LayoutTemplate positions the five text slots of a creative.
type LayoutTemplate struct {
	Name     string
	Anchors  map[Element]Anchor
	Spacing  Spacing
	Backdrop *Backdrop
	Weights  map[Element]weight
	Large    map[Element]bool
}

func stackedAnchors(x float64, align Alignment, brandY, headY, subY, bodyY, ctaY float64) map[Element]Anchor {
	return map[Element]Anchor{
		ElementBrand:       {x, brandY, align},
		ElementHeadline:    {x, headY, align},
		ElementSubheadline: {x, subY, align},
		ElementBody:        {x, bodyY, align},
		ElementCTA:         {x, ctaY, align},
	}
}

var layoutTemplates = map[string]LayoutTemplate{
	"centered": {
		Name:    "centered",
		Anchors: stackedAnchors(0.5, AlignCenter, 0.1, 0.25, 0.35, 0.5, 0.8),
		Spacing: Spacing{0.06, 0.05, 0.08},
	},
	"left_aligned": {
		Name:    "left_aligned",
		Anchors: stackedAnchors(0.1, AlignLeft, 0.1, 0.25, 0.35, 0.5, 0.8),
		Spacing: Spacing{0.06, 0.05, 0.08},
	},
	"right_aligned": {
		Name:    "right_aligned",
		Anchors: stackedAnchors(0.9, AlignRight, 0.1, 0.25, 0.35, 0.5, 0.8),
		Spacing: Spacing{0.06, 0.05, 0.08},
	},
	"top_centered": {
		Name:    "top_centered",
		Anchors: stackedAnchors(0.5, AlignCenter, 0.07, 0.15, 0.22, 0.3, 0.45),
		Spacing: Spacing{0.05, 0.04, 0.06},
	},
	"bottom_centered": {
		Name:    "bottom_centered",
		Anchors: stackedAnchors(0.5, AlignCenter, 0.55, 0.65, 0.72, 0.8, 0.9),
		Spacing: Spacing{0.05, 0.04, 0.06},
	},
	"bottom_left": {
		Name:    "bottom_left",
		Anchors: stackedAnchors(0.1, AlignLeft, 0.55, 0.65, 0.72, 0.8, 0.9),
		Spacing: Spacing{0.05, 0.04, 0.06},
	},
	"bottom_right": {
		Name:    "bottom_right",
		Anchors: stackedAnchors(0.9, AlignRight, 0.55, 0.65, 0.72, 0.8, 0.9),
		Spacing: Spacing{0.05, 0.04, 0.06},
	},
	"split_layout": {
		Name:    "split_layout",
		Anchors: stackedAnchors(0.5, AlignCenter, 0.07, 0.15, 0.22, 0.8, 0.9),
		Spacing: Spacing{0.05, 0.5, 0.06},
	},
	"text_overlay": {
		Name:    "text_overlay",
		Anchors: stackedAnchors(0.5, AlignCenter, 0.37, 0.45, 0.52, 0.6, 0.7),
		Spacing: Spacing{0.05, 0.04, 0.06},
		Backdrop: &Backdrop{
			Color:  color.NRGBA{0, 0, 0, 150},
			YStart: 0.35,
			YEnd:   0.75,
		},
	},
	"dynamic": {
		Name:    "dynamic",
		Anchors: stackedAnchors(0.5, AlignCenter, 0.1, 0.25, 0.35, 0.5, 0.8),
		Spacing: Spacing{0.06, 0.05, 0.08},
	},
}

var brandTemplates = map[string]LayoutTemplate{
	"apple": {
		Name:    "apple",
		Anchors: stackedAnchors(0.5, AlignCenter, 0.15, 0.25, 0.33, 0.45, 0.65),
		Spacing: Spacing{0.05, 0.05, 0.1},
		Weights: map[Element]weight{
			ElementHeadline:    weightRegular,
			ElementSubheadline: weightRegular,
			ElementBody:        weightRegular,
			ElementCTA:         weightRegular,
		},
	},
	"nike": {
		Name:    "nike",
		Anchors: stackedAnchors(0.1, AlignLeft, 0.8, 0.25, 0.35, 0.45, 0.6),
		Spacing: Spacing{0.06, 0.04, 0.08},
		Weights: map[Element]weight{
			ElementHeadline:    weightBold,
			ElementSubheadline: weightBold,
			ElementBody:        weightRegular,
			ElementCTA:         weightBold,
		},
		Large: map[Element]bool{ElementBrand: true},
	},
	"bmw": {
		Name:    "bmw",
		Anchors: stackedAnchors(0.1, AlignLeft, 0.03, 0.7, 0.77, 0.85, 0.92),
		Spacing: Spacing{0.04, 0.04, 0.03},
		Weights: map[Element]weight{
			ElementHeadline:    weightRegular,
			ElementSubheadline: weightRegular,
			ElementBody:        weightRegular,
			ElementCTA:         weightRegular,
		},
	},
	"rolex": {
		Name:    "rolex",
		Anchors: stackedAnchors(0.5, AlignCenter, 0.15, 0.3, 0.38, 0.48, 0.6),
		Spacing: Spacing{0.05, 0.05, 0.08},
		Weights: map[Element]weight{
			ElementHeadline:    weightSmallcaps,
			ElementSubheadline: weightRegular,
			ElementBody:        weightRegular,
			ElementCTA:         weightMedium,
		},
		Large: map[Element]bool{ElementBrand: true},
	},
	"samsung": {
		Name: "samsung",
		Anchors: map[Element]Anchor{
			ElementBrand:       {0.1, 0.05, AlignLeft},
			ElementHeadline:    {0.5, 0.75, AlignCenter},
			ElementSubheadline: {0.5, 0.82, AlignCenter},
			ElementBody:        {0.5, 0.87, AlignCenter},
			ElementCTA:         {0.5, 0.93, AlignCenter},
		},
		Spacing: Spacing{0.04, 0.03, 0.03},
		Weights: map[Element]weight{
			ElementHeadline:    weightBold,
			ElementSubheadline: weightRegular,
			ElementBody:        weightRegular,
			ElementCTA:         weightMedium,
		},
	},
}

// placement aliases accepted from insight data.
var placementAliases = map[string]string{
	"top_heavy":    "top_centered",
	"bottom_heavy": "bottom_centered",
	"left":         "left_aligned",
	"right":        "right_aligned",
	"overlay":      "text_overlay",
}

// TextElements carries the copy to composite. Empty strings are skipped.
type TextElements struct {
	Brand       string
	Headline    string
	Subheadline string
	Body        string
	CTA         string
}

func (t TextElements) get(e Element) string {
	switch e {
	case ElementBrand:
		return t.Brand
	case ElementHeadline:
		return t.Headline
	case ElementSubheadline:
		return t.Subheadline
	case ElementBody:
		return t.Body
	case ElementCTA:
		return t.CTA
	}
	return ""
}

var allElements = []Element{ElementBrand, ElementHeadline, ElementSubheadline, ElementBody, ElementCTA}

// elementPriority orders elements for overlap resolution; lower values stay
// put, higher values get moved.
var elementPriority = map[Element]int{
	ElementBrand:       1,
	ElementHeadline:    2,
	ElementSubheadline: 3,
	ElementBody:        4,
	ElementCTA:         5,
}

// PlacedText is a text element with a resolved position.
type PlacedText struct {
	Text   string
	Pos    image.Point // anchor: x per alignment, y is the top of the text
	Align  Alignment
	Width  int
	Height int
	Weight weight
	Large  bool
}

// Box returns the bounding rectangle of the placed text.
func (p *PlacedText) Box() image.Rectangle {
	x := p.Pos.X
	switch p.Align {
	case AlignCenter:
		x -= p.Width / 2
	case AlignRight:
		x -= p.Width
	}
	return image.Rect(x, p.Pos.Y, x+p.Width, p.Pos.Y+p.Height)
}

// TemplateFor resolves the layout for a style and optional brand. A matching
// brand template wins over the style; unknown styles fall back to centered.
func TemplateFor(style, brand string) LayoutTemplate {
	if brand != "" {
		lower := strings.ToLower(brand)
		for key, tpl := range brandTemplates {
			if strings.Contains(lower, key) {
				return tpl
			}
		}
	}
	if alias, ok := placementAliases[strings.ToLower(style)]; ok {
		style = alias
	}
	if tpl, ok := layoutTemplates[strings.ToLower(style)]; ok {
		return tpl
	}
	return layoutTemplates["centered"]
}

// Layout computes positions for every non-empty element, then detects and
// resolves vertical overlaps. faces provides the font used to measure each
// element.
func Layout(img image.Image, elems TextElements, faces map[Element]font.Face, style, brand string) (map[Element]*PlacedText, *Backdrop) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	tpl := TemplateFor(style, brand)
	if tpl.Name == "dynamic" {
		tpl = dynamicTemplate(img, tpl)
	}

	placed := make(map[Element]*PlacedText)
	for _, e := range allElements {
		text := elems.get(e)
		if text == "" {
			continue
		}
		anchor, ok := tpl.Anchors[e]
		if !ok {
			anchor = Anchor{0.5, 0.5, AlignCenter}
		}
		p := &PlacedText{
			Text:  text,
			Pos:   image.Pt(int(anchor.X*float64(width)), int(anchor.Y*float64(height))),
			Align: anchor.Align,
			Large: tpl.Large[e],
		}
		if w, ok := tpl.Weights[e]; ok {
			p.Weight = w
		}
		if face, ok := faces[e]; ok {
			p.Width, p.Height = MeasureText(face, text)
		}
		placed[e] = p
	}

	adjustSpacing(placed, tpl.Spacing, height)
	resolveOverlaps(placed, height)
	return placed, tpl.Backdrop
}

// dynamicTemplate shifts text away from the detected subject and adapts to
// extreme brightness. Very dark images additionally get a translucent panel
// in the lower band.
func dynamicTemplate(img image.Image, base LayoutTemplate) LayoutTemplate {
	tpl := base
	tpl.Anchors = make(map[Element]Anchor, len(base.Anchors))
	for e, a := range base.Anchors {
		tpl.Anchors[e] = a
	}

	if sx, sy, ok := SubjectPosition(img); ok {
		ys := map[Element]float64{
			ElementBrand:       0.6,
			ElementHeadline:    0.7,
			ElementSubheadline: 0.77,
			ElementBody:        0.84,
			ElementCTA:         0.9,
		}
		if sy >= 0.5 {
			ys = map[Element]float64{
				ElementBrand:       0.1,
				ElementHeadline:    0.2,
				ElementSubheadline: 0.27,
				ElementBody:        0.34,
				ElementCTA:         0.45,
			}
		}
		x, align := 0.85, AlignRight
		if sx >= 0.5 {
			x, align = 0.15, AlignLeft
		}
		for e := range tpl.Anchors {
			tpl.Anchors[e] = Anchor{x, ys[e], align}
		}
	}

	bm := AnalyzeBrightness(img)
	switch {
	case bm.Overall > 0.8:
		darkest, _ := bm.Darkest()
		x, align := 0.5, AlignCenter
		y := 0.5
		switch {
		case strings.HasSuffix(string(darkest), "_left"):
			x, align = 0.15, AlignLeft
		case strings.HasSuffix(string(darkest), "_right"):
			x, align = 0.85, AlignRight
		}
		switch {
		case strings.HasPrefix(string(darkest), "top"):
			y = 0.2
		case strings.HasPrefix(string(darkest), "bottom"):
			y = 0.8
		}
		offset := 0.0
		for _, e := range []Element{ElementHeadline, ElementSubheadline, ElementBody, ElementCTA} {
			tpl.Anchors[e] = Anchor{x, y + offset, align}
			offset += 0.07
		}
	case bm.Overall < 0.2:
		tpl.Backdrop = &Backdrop{
			Color:  color.NRGBA{0, 0, 0, 180},
			YStart: 0.6,
			YEnd:   0.95,
		}
		ys := []float64{0.68, 0.75, 0.82, 0.89}
		for i, e := range []Element{ElementHeadline, ElementSubheadline, ElementBody, ElementCTA} {
			tpl.Anchors[e] = Anchor{0.5, ys[i], AlignCenter}
		}
	}
	return tpl
}

// adjustSpacing pushes stacked elements down so the configured minimum gaps
// hold once real text heights are known.
func adjustSpacing(placed map[Element]*PlacedText, spacing Spacing, height int) {
	push := func(above, below Element, gap float64) {
		a, okA := placed[above]
		b, okB := placed[below]
		if !okA || !okB {
			return
		}
		minY := a.Pos.Y + a.Height + int(gap*float64(height))
		if b.Pos.Y < minY {
			b.Pos.Y = minY
		}
	}
	push(ElementHeadline, ElementSubheadline, spacing.HeadlineToSubheadline)
	push(ElementSubheadline, ElementBody, spacing.SubheadlineToBody)
	push(ElementBody, ElementCTA, spacing.BodyToCTA)
}

// detectOverlaps returns pairs of elements whose boxes intersect.
func detectOverlaps(placed map[Element]*PlacedText) [][2]Element {
	elems := make([]Element, 0, len(placed))
	for e := range placed {
		elems = append(elems, e)
	}
	sort.Slice(elems, func(i, j int) bool {
		return elementPriority[elems[i]] < elementPriority[elems[j]]
	})

	var overlaps [][2]Element
	for i := 0; i < len(elems); i++ {
		for j := i + 1; j < len(elems); j++ {
			if placed[elems[i]].Box().Overlaps(placed[elems[j]].Box()) {
				overlaps = append(overlaps, [2]Element{elems[i], elems[j]})
			}
		}
	}
	return overlaps
}

// resolveOverlaps moves the lower-priority element of each overlapping pair
// vertically by the overlap plus a 2%-of-height pad.
func resolveOverlaps(placed map[Element]*PlacedText, height int) {
	pad := int(0.02 * float64(height))
	for _, pair := range detectOverlaps(placed) {
		fixed, moving := placed[pair[0]], placed[pair[1]]
		fb, mb := fixed.Box(), moving.Box()

		overlapY := min(mb.Max.Y, fb.Max.Y) - max(mb.Min.Y, fb.Min.Y)
		if overlapY <= 0 {
			continue
		}
		if mb.Min.Y < fb.Min.Y {
			moving.Pos.Y -= overlapY + pad
		} else {
			moving.Pos.Y += overlapY + pad
		}
	}
}
