package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestGenerateWithoutKeyUsesPlaceholder(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator("", dir)

	img, path, err := g.Generate(context.Background(), Request{Product: "espresso machine"})
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, adWidth, img.Bounds().Dx())
	assert.True(t, strings.HasPrefix(filepath.Base(path), "placeholder_base_"))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestGenerateDecodesInlineData(t *testing.T) {
	photo := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	data := base64.StdEncoding.EncodeToString(encodePNG(t, photo))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"inlineData": map[string]string{"mimeType": "image/png", "data": data}},
				}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	dir := t.TempDir()
	g := NewGenerator("test-key", dir)
	g.endpoint = srv.URL

	img, path, err := g.Generate(context.Background(), Request{Product: "watch"})
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.True(t, strings.HasPrefix(filepath.Base(path), "studio_base_"))
}

func TestGenerateAPIErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGenerator("test-key", t.TempDir())
	g.endpoint = srv.URL

	img, path, err := g.Generate(context.Background(), Request{Product: "watch"})
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Contains(t, filepath.Base(path), "placeholder_base_")
}

func TestBuildStudioPrompt(t *testing.T) {
	prompt := buildStudioPrompt(Request{
		Product:   "running shoes",
		BrandName: "NIKE",
		Industry:  "athletic footwear",
	})
	assert.Contains(t, prompt, "NIKE running shoes")
	assert.Contains(t, prompt, "45-degree angle")
	assert.Contains(t, prompt, "No text, logos, or watermarks")
}

func TestIndustryDirectives(t *testing.T) {
	tests := []struct {
		product  string
		industry string
		want     string
	}{
		{"smartphone", "", "3/4 angle"},
		{"chronograph watch", "", "10:10 position"},
		{"eau de parfum", "fragrance", "glass/crystal"},
		{"trail sneaker", "", "45-degree angle"},
		{"night serum", "skincare", "clinical feel"},
		{"garden hose", "", "clear focal point"},
	}
	for _, tt := range tests {
		got := industryDirectives(tt.industry, tt.product)
		assert.Contains(t, got, tt.want, tt.product)
	}
}

func TestPlaceholderPalette(t *testing.T) {
	img := Placeholder(Request{Industry: "technology"}, 200, 200)
	assert.Equal(t, 200, img.Bounds().Dx())

	// top rows should be darker than bottom rows
	topLuma := lumaAt(img, 100, 5)
	bottomLuma := lumaAt(img, 100, 195)
	assert.Less(t, topLuma, bottomLuma)
}

func TestPlaceholderRendersProductAndBrand(t *testing.T) {
	blank := Placeholder(Request{Industry: "technology"}, 400, 400)
	productOnly := Placeholder(Request{Industry: "technology", Product: "smartwatch"}, 400, 400)
	labeled := Placeholder(Request{Industry: "technology", Product: "smartwatch", BrandName: "APEX"}, 400, 400)

	assert.True(t, imagesDiffer(blank, productOnly), "product text not drawn")
	assert.True(t, imagesDiffer(productOnly, labeled), "brand text not drawn")
}

func imagesDiffer(a, b image.Image) bool {
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if a.At(x, y) != b.At(x, y) {
				return true
			}
		}
	}
	return false
}

func lumaAt(img image.Image, x, y int) float64 {
	r, g, b, _ := img.At(x, y).RGBA()
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

func TestEnhanceKeepsBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 32, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 32; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x * 8), 100, 50, 255})
		}
	}
	out := Enhance(src)
	assert.Equal(t, 32, out.Bounds().Dx())
	assert.Equal(t, 16, out.Bounds().Dy())
}
