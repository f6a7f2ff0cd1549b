package typography

import (
	"image"
	"image/color"
	"sort"

	"github.com/disintegration/imaging"
)

// Region names a cell of the 3x3 rule-of-thirds grid.
type Region string

const (
	TopLeft      Region = "top_left"
	TopCenter    Region = "top_center"
	TopRight     Region = "top_right"
	MiddleLeft   Region = "middle_left"
	MiddleCenter Region = "middle_center"
	MiddleRight  Region = "middle_right"
	BottomLeft   Region = "bottom_left"
	BottomCenter Region = "bottom_center"
	BottomRight  Region = "bottom_right"
)

var gridRegions = [3][3]Region{
	{TopLeft, TopCenter, TopRight},
	{MiddleLeft, MiddleCenter, MiddleRight},
	{BottomLeft, BottomCenter, BottomRight},
}

// BrightnessMap holds normalized [0,1] brightness per grid cell plus the
// whole-image mean.
type BrightnessMap struct {
	Cells   map[Region]float64
	Overall float64
}

// Darkest returns the darkest grid cell.
func (m BrightnessMap) Darkest() (Region, float64) {
	return m.extreme(func(a, b float64) bool { return a < b })
}

// Brightest returns the brightest grid cell.
func (m BrightnessMap) Brightest() (Region, float64) {
	return m.extreme(func(a, b float64) bool { return a > b })
}

func (m BrightnessMap) extreme(better func(a, b float64) bool) (Region, float64) {
	var (
		bestRegion Region
		bestValue  float64
		first      = true
	)
	for _, row := range gridRegions {
		for _, r := range row {
			v, ok := m.Cells[r]
			if !ok {
				continue
			}
			if first || better(v, bestValue) {
				bestRegion, bestValue = r, v
				first = false
			}
		}
	}
	return bestRegion, bestValue
}

// Analysis is the result of inspecting a base image before compositing text.
type Analysis struct {
	Brightness      BrightnessMap
	Dominant        []color.NRGBA
	DarkRegions     []Region
	LightRegions    []Region
	HighContrast    bool
	HasClearSubject bool
	Suggestion      string
}

const (
	darkThreshold  = 0.3
	lightThreshold = 0.7
	dominantSample = 100
)

// luma converts a color to ITU-R 601-2 grayscale in [0,255].
func luma(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8))
}

// AnalyzeBrightness divides the image into a 3x3 grid and computes the mean
// brightness of each cell. Trailing pixels beyond the integer cell size are
// ignored, matching the grid used for placement.
func AnalyzeBrightness(img image.Image) BrightnessMap {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	cellW := width / 3
	cellH := height / 3
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}

	cells := make(map[Region]float64, 9)
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float64
			var count int
			x0 := bounds.Min.X + col*cellW
			y0 := bounds.Min.Y + row*cellH
			for y := y0; y < y0+cellH && y < bounds.Max.Y; y++ {
				for x := x0; x < x0+cellW && x < bounds.Max.X; x++ {
					sum += luma(img.At(x, y))
					count++
				}
			}
			if count == 0 {
				count = 1
			}
			cells[gridRegions[row][col]] = sum / (float64(count) * 255)
		}
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			total += luma(img.At(x, y))
		}
	}
	overall := total / (float64(width*height) * 255)

	return BrightnessMap{Cells: cells, Overall: overall}
}

// DominantColors extracts the n most frequent colors after downscaling the
// image to a fixed sample size. The most frequent color comes first.
func DominantColors(img image.Image, n int) []color.NRGBA {
	if n <= 0 {
		return nil
	}
	small := imaging.Resize(img, dominantSample, dominantSample, imaging.Lanczos)

	counts := make(map[color.NRGBA]int)
	bounds := small.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := small.NRGBAAt(x, y)
			c.A = 255
			counts[c]++
		}
	}

	type entry struct {
		c     color.NRGBA
		count int
	}
	entries := make([]entry, 0, len(counts))
	for c, count := range counts {
		entries = append(entries, entry{c, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		// Stable order for equal counts.
		a, b := entries[i].c, entries[j].c
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})

	if n > len(entries) {
		n = len(entries)
	}
	out := make([]color.NRGBA, n)
	for i := 0; i < n; i++ {
		out[i] = entries[i].c
	}
	return out
}

// Analyze inspects an image and returns everything the compositor needs to
// pick text placement and colors.
func Analyze(img image.Image) *Analysis {
	bm := AnalyzeBrightness(img)

	a := &Analysis{
		Brightness: bm,
		Dominant:   DominantColors(img, 5),
	}

	var minV, maxV float64
	first := true
	for _, row := range gridRegions {
		for _, r := range row {
			v := bm.Cells[r]
			if v < darkThreshold {
				a.DarkRegions = append(a.DarkRegions, r)
			} else if v > lightThreshold {
				a.LightRegions = append(a.LightRegions, r)
			}
			if first || v < minV {
				minV = v
			}
			if first || v > maxV {
				maxV = v
			}
			first = false
		}
	}

	a.HighContrast = maxV-minV > 0.5
	a.HasClearSubject = len(a.DarkRegions) > 0 && len(a.LightRegions) > 0
	a.Suggestion = suggestPlacement(bm, a.HasClearSubject)
	return a
}

// suggestPlacement picks a layout suggestion from the brightness profile.
// Very bright images get text over their darkest band; very dark images
// stay centered.
func suggestPlacement(bm BrightnessMap, hasClearSubject bool) string {
	switch {
	case bm.Overall > 0.8:
		darkest, _ := bm.Darkest()
		switch darkest {
		case TopLeft, TopCenter, TopRight:
			return "top_heavy"
		case BottomLeft, BottomCenter, BottomRight:
			return "bottom_heavy"
		default:
			return "centered"
		}
	case bm.Overall < 0.2:
		return "centered"
	case hasClearSubject:
		return "bottom_heavy"
	default:
		return "centered"
	}
}

// SubjectPosition estimates the center of the image's main subject from edge
// density. It keeps the strongest tenth of edge responses and returns their
// centroid normalized to [0,1]. ok is false when the image is featureless.
func SubjectPosition(img image.Image) (x, y float64, ok bool) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < 3 || height < 3 {
		return 0, 0, false
	}

	gray := make([]float64, width*height)
	for yy := 0; yy < height; yy++ {
		for xx := 0; xx < width; xx++ {
			gray[yy*width+xx] = luma(img.At(bounds.Min.X+xx, bounds.Min.Y+yy))
		}
	}

	// 3x3 Laplacian edge response.
	edges := make([]float64, 0, (width-2)*(height-2))
	type point struct{ x, y int }
	points := make([]point, 0, (width-2)*(height-2))
	for yy := 1; yy < height-1; yy++ {
		for xx := 1; xx < width-1; xx++ {
			center := gray[yy*width+xx]
			var sum float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					sum += gray[(yy+dy)*width+(xx+dx)]
				}
			}
			v := 8*center - sum
			if v < 0 {
				v = -v
			}
			edges = append(edges, v)
			points = append(points, point{xx, yy})
		}
	}
	if len(edges) == 0 {
		return 0, 0, false
	}

	sorted := append([]float64(nil), edges...)
	sort.Float64s(sorted)
	// On mostly flat images the 90th percentile is zero; v > threshold then
	// still picks out the real edges.
	threshold := sorted[len(sorted)*9/10]

	var sumX, sumY float64
	var count int
	for i, v := range edges {
		if v > threshold {
			sumX += float64(points[i].x)
			sumY += float64(points[i].y)
			count++
		}
	}
	if count == 0 {
		return 0, 0, false
	}
	return sumX / float64(count) / float64(width), sumY / float64(count) / float64(height), true
}
