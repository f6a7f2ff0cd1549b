package typography

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// ButtonStyle names a call-to-action button rendering.
type ButtonStyle string

const (
	ButtonRounded     ButtonStyle = "rounded"
	ButtonPill        ButtonStyle = "pill"
	ButtonMinimalLine ButtonStyle = "minimal_line"
	ButtonGlass       ButtonStyle = "glass"
	ButtonGradient    ButtonStyle = "gradient"
	ButtonFlat        ButtonStyle = "flat"
)

const (
	buttonPadX = 20
	buttonPadY = 12
)

// DrawButton renders the CTA text inside a styled button whose center sits at
// the element's anchor. It returns the button bounds so callers can register
// them for overlap checks.
func DrawButton(dc *gg.Context, p *PlacedText, face font.Face, style ButtonStyle,
	buttonColor, textColor color.NRGBA) image.Rectangle {

	tw, th := MeasureText(face, p.Text)
	w := tw + buttonPadX*2
	h := th + buttonPadY*2

	cx := float64(p.Pos.X)
	switch p.Align {
	case AlignLeft:
		cx += float64(tw) / 2
	case AlignRight:
		cx -= float64(tw) / 2
	}
	cy := float64(p.Pos.Y) + float64(th)/2

	x := cx - float64(w)/2
	y := cy - float64(h)/2

	dc.SetFontFace(face)

	switch style {
	case ButtonMinimalLine:
		drawMinimalLineButton(dc, x, y, w, h, buttonColor)
	case ButtonGlass:
		drawGlassButton(dc, x, y, w, h, buttonColor)
		dc.SetColor(color.NRGBA{0, 0, 0, 70})
		drawTopLeft(dc, p.Text, x+buttonPadX+1, y+buttonPadY+1)
	case ButtonGradient:
		drawGradientButton(dc, x, y, w, h, buttonColor)
	case ButtonPill:
		drawPillButton(dc, x, y, w, h, buttonColor)
	case ButtonFlat:
		drawFlatButton(dc, x, y, w, h, buttonColor)
	default:
		drawRoundedButton(dc, x, y, w, h, buttonColor)
		dc.SetColor(color.NRGBA{0, 0, 0, 100})
		drawTopLeft(dc, p.Text, x+buttonPadX+1, y+buttonPadY+1)
	}

	dc.SetColor(textColor)
	drawTopLeft(dc, p.Text, x+buttonPadX, y+buttonPadY)

	return image.Rect(int(x), int(y), int(x)+w, int(y)+h)
}

func buttonRadius(h int, limit float64) float64 {
	r := float64(h) / 4
	if r > limit {
		r = limit
	}
	return r
}

func drawRoundedButton(dc *gg.Context, x, y float64, w, h int, col color.NRGBA) {
	r := buttonRadius(h, 12)

	dc.SetColor(color.NRGBA{0, 0, 0, 40})
	dc.DrawRoundedRectangle(x+2, y+2, float64(w), float64(h), r)
	dc.Fill()

	dc.SetColor(col)
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), r)
	dc.Fill()

	// highlight band across the top 40%
	dc.Push()
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), r)
	dc.Clip()
	dc.SetColor(color.NRGBA{255, 255, 255, 76})
	dc.DrawRectangle(x, y, float64(w), float64(h)*0.4)
	dc.Fill()
	dc.ResetClip()
	dc.Pop()
}

func drawMinimalLineButton(dc *gg.Context, x, y float64, w, h int, col color.NRGBA) {
	r := buttonRadius(h, 8)
	dc.SetColor(col)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), r)
	dc.Stroke()
}

func drawGlassButton(dc *gg.Context, x, y float64, w, h int, col color.NRGBA) {
	r := buttonRadius(h, 12)

	dc.Push()
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), r)
	dc.Clip()

	dc.SetColor(scaleAlpha(col, 0.6))
	dc.DrawRectangle(x, y, float64(w), float64(h))
	dc.Fill()

	// fading highlight lines over the top third
	top := h / 3
	for i := 0; i < top; i++ {
		alpha := uint8(clamp255(100 * (1 - float64(i)/float64(top))))
		dc.SetColor(color.NRGBA{255, 255, 255, alpha})
		dc.DrawLine(x, y+float64(i), x+float64(w), y+float64(i))
		dc.Stroke()
	}

	// gathering shadow lines over the bottom quarter
	bottom := h / 4
	for i := 0; i < bottom; i++ {
		alpha := uint8(clamp255(50 * float64(i) / float64(bottom)))
		dc.SetColor(color.NRGBA{0, 0, 0, alpha})
		fy := y + float64(h-bottom+i)
		dc.DrawLine(x, fy, x+float64(w), fy)
		dc.Stroke()
	}

	dc.ResetClip()
	dc.Pop()
}

func drawGradientButton(dc *gg.Context, x, y float64, w, h int, col color.NRGBA) {
	r := buttonRadius(h, 12)
	bottom := darken(col, 0.7)

	dc.Push()
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), r)
	dc.Clip()

	for i := 0; i < h; i++ {
		t := float64(i) / float64(h-1)
		dc.SetColor(lerpColor(col, bottom, t))
		dc.DrawLine(x, y+float64(i), x+float64(w), y+float64(i))
		dc.Stroke()
	}

	top := h / 4
	for i := 0; i < top; i++ {
		alpha := uint8(clamp255(50 * (1 - float64(i)/float64(top))))
		dc.SetColor(color.NRGBA{255, 255, 255, alpha})
		dc.DrawLine(x, y+float64(i), x+float64(w), y+float64(i))
		dc.Stroke()
	}

	dc.ResetClip()
	dc.Pop()
}

func drawPillButton(dc *gg.Context, x, y float64, w, h int, col color.NRGBA) {
	r := float64(h) / 2

	dc.SetColor(color.NRGBA{0, 0, 0, 80})
	dc.DrawRoundedRectangle(x+1, y+1, float64(w), float64(h), r)
	dc.Fill()

	dc.SetColor(col)
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), r)
	dc.Fill()

	dc.Push()
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), r)
	dc.Clip()
	dc.SetColor(color.NRGBA{255, 255, 255, 60})
	dc.DrawRectangle(x, y, float64(w), float64(h)/2)
	dc.Fill()
	dc.ResetClip()
	dc.Pop()
}

func drawFlatButton(dc *gg.Context, x, y float64, w, h int, col color.NRGBA) {
	r := float64(h) / 6
	if r > 5 {
		r = 5
	}
	dc.SetColor(col)
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), r)
	dc.Fill()
}
