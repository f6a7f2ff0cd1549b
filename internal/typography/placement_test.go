package typography

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
)

func testFaces(t *testing.T, height int) map[Element]font.Face {
	t.Helper()
	lib := NewFontLibrary()
	faces := make(map[Element]font.Face, len(allElements))
	for _, el := range allElements {
		faces[el] = lib.Face(StyleModern, el, elementScales[el]*float64(height))
	}
	return faces
}

func TestTemplateFor(t *testing.T) {
	tests := []struct {
		style string
		brand string
		want  string
	}{
		{"bottom_heavy", "", "bottom_centered"},
		{"top_heavy", "", "top_centered"},
		{"overlay", "", "text_overlay"},
		{"left_aligned", "", "left_aligned"},
		{"no such layout", "", "centered"},
		{"centered", "Nike Air Max", "nike"},
		{"centered", "ROLEX Submariner", "rolex"},
		{"bottom_heavy", "Acme Corp", "bottom_centered"},
	}
	for _, tt := range tests {
		got := TemplateFor(tt.style, tt.brand)
		assert.Equal(t, tt.want, got.Name, "%s/%s", tt.style, tt.brand)
	}
}

func TestLayoutSkipsEmptyElements(t *testing.T) {
	img := solidImage(800, 600, color.NRGBA{128, 128, 128, 255})
	faces := testFaces(t, 600)

	placed, backdrop := Layout(img, TextElements{Headline: "Big Sale", CTA: "Shop Now"}, faces, "centered", "")
	assert.Nil(t, backdrop)
	assert.Len(t, placed, 2)
	assert.Contains(t, placed, ElementHeadline)
	assert.Contains(t, placed, ElementCTA)
}

func TestLayoutAlignment(t *testing.T) {
	img := solidImage(800, 600, color.NRGBA{128, 128, 128, 255})
	faces := testFaces(t, 600)

	placed, _ := Layout(img, TextElements{Headline: "Precision"}, faces, "left_aligned", "")
	p := placed[ElementHeadline]
	require.NotNil(t, p)
	assert.Equal(t, AlignLeft, p.Align)
	assert.Equal(t, 80, p.Pos.X) // 0.1 * 800
	assert.Greater(t, p.Width, 0)
	assert.Greater(t, p.Height, 0)
}

func TestLayoutTextOverlayBackdrop(t *testing.T) {
	img := solidImage(800, 600, color.NRGBA{128, 128, 128, 255})
	faces := testFaces(t, 600)

	_, backdrop := Layout(img, TextElements{Headline: "Hello"}, faces, "text_overlay", "")
	require.NotNil(t, backdrop)
	assert.InDelta(t, 0.35, backdrop.YStart, 0.001)
	assert.InDelta(t, 0.75, backdrop.YEnd, 0.001)
}

func TestLayoutResolvesOverlaps(t *testing.T) {
	img := solidImage(800, 600, color.NRGBA{128, 128, 128, 255})
	faces := testFaces(t, 600)

	elems := TextElements{
		Brand:       "Forge",
		Headline:    "Crafted For You",
		Subheadline: "Every detail considered",
		Body:        "Limited run, numbered pieces",
		CTA:         "Order Today",
	}
	placed, _ := Layout(img, elems, faces, "bottom_centered", "")
	require.Len(t, placed, 5)

	// no two boxes may intersect after resolution
	for i, a := range allElements {
		for _, b := range allElements[i+1:] {
			pa, pb := placed[a], placed[b]
			assert.False(t, pa.Box().Overlaps(pb.Box()), "%s overlaps %s", a, b)
		}
	}
}

func TestLayoutBrandTemplateWeights(t *testing.T) {
	img := solidImage(800, 600, color.NRGBA{128, 128, 128, 255})
	faces := testFaces(t, 600)

	placed, _ := Layout(img, TextElements{Brand: "Nike", Headline: "Just Do It"}, faces, "centered", "Nike")
	require.Contains(t, placed, ElementBrand)
	assert.True(t, placed[ElementBrand].Large)
	assert.Equal(t, weightBold, placed[ElementHeadline].Weight)
}

func TestPlacedTextBox(t *testing.T) {
	p := &PlacedText{Pos: image.Pt(400, 100), Align: AlignCenter, Width: 200, Height: 50}
	box := p.Box()
	assert.Equal(t, 300, box.Min.X)
	assert.Equal(t, 500, box.Max.X)
	assert.Equal(t, 100, box.Min.Y)
	assert.Equal(t, 150, box.Max.Y)
}
