package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"

	_ "image/jpeg"
)

const (
	defaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-3-pro-image-preview:generateContent"
	defaultTimeout  = 120 * time.Second

	// standard creative dimensions, 1:1 feed format
	adWidth  = 1024
	adHeight = 1024
)

// Request describes the photograph to produce. Industry and VisualFocus
// steer the prompt; ImageDescription usually comes from the copywriter pass.
type Request struct {
	Product          string
	BrandName        string
	Industry         string
	ImageDescription string
	VisualFocus      string
}

// Generator produces base photographs for creatives, via the Gemini image
// API when a key is configured and a drawn placeholder otherwise.
type Generator struct {
	apiKey     string
	endpoint   string
	outputDir  string
	httpClient *http.Client
}

func NewGenerator(apiKey, outputDir string) *Generator {
	return &Generator{
		apiKey:    apiKey,
		endpoint:  defaultEndpoint,
		outputDir: outputDir,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *apiError   `json:"error,omitempty"`
}

type candidate struct {
	Content contentResponse `json:"content"`
}

type contentResponse struct {
	Parts []partResponse `json:"parts"`
}

type partResponse struct {
	Text       string          `json:"text,omitempty"`
	InlineData *inlineDataResp `json:"inlineData,omitempty"`
}

type inlineDataResp struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Generate produces a base photograph, saves it under the output directory
// and returns the decoded image with its path. API failures fall back to the
// drawn placeholder rather than erroring out.
func (g *Generator) Generate(ctx context.Context, req Request) (image.Image, string, error) {
	if g.apiKey == "" {
		slog.Debug("image generator: no API key, using placeholder")
		return g.placeholderImage(req)
	}

	data, err := g.callGemini(ctx, req)
	if err != nil {
		slog.Error("image generation failed, using placeholder", "error", err, "product", req.Product)
		return g.placeholderImage(req)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		// some models answer jpeg regardless of the ask
		img, _, err = image.Decode(bytes.NewReader(data))
		if err != nil {
			slog.Error("generated image not decodable, using placeholder", "error", err)
			return g.placeholderImage(req)
		}
	}

	img = Enhance(img)

	path, err := g.save(img, "studio_base")
	if err != nil {
		return nil, "", err
	}

	slog.Info("generated base photograph", "product", req.Product, "path", path)
	return img, path, nil
}

func (g *Generator) placeholderImage(req Request) (image.Image, string, error) {
	img := Placeholder(req, adWidth, adHeight)
	path, err := g.save(img, "placeholder_base")
	if err != nil {
		return nil, "", err
	}
	return img, path, nil
}

func (g *Generator) callGemini(ctx context.Context, req Request) ([]byte, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: buildStudioPrompt(req)}}},
		},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			ImageConfig: &imageConfig{
				AspectRatio: "1:1",
			},
		},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", g.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if geminiResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", geminiResp.Error.Message)
	}

	for _, cand := range geminiResp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("decode image: %w", err)
				}
				return data, nil
			}
		}
	}

	return nil, fmt.Errorf("no image in API response")
}

func (g *Generator) save(img image.Image, prefix string) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	name := fmt.Sprintf("%s_%s.png", prefix, ulid.Make().String())
	path := filepath.Join(g.outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return path, nil
}

// Enhance applies the finishing adjustments used on every generated base:
// a touch more contrast and color, and a light sharpen.
func Enhance(img image.Image) image.Image {
	out := imaging.AdjustContrast(img, 5)
	out = imaging.AdjustSaturation(out, 10)
	return imaging.Sharpen(out, 0.5)
}

// buildStudioPrompt assembles the product photography brief.
func buildStudioPrompt(req Request) string {
	productInfo := req.Product
	if req.BrandName != "" {
		productInfo = req.BrandName + " " + req.Product
	}

	description := req.ImageDescription
	if description == "" {
		description = "Professional product photography of " + productInfo
	}

	focus := req.VisualFocus
	if focus == "" {
		focus = "product details and features"
	}

	return fmt.Sprintf(`Create a professional, studio-quality advertisement photograph of %s.

%s

%s

KEY REQUIREMENTS:
- Focus on %s
- Use dramatic, professional studio lighting
- Include subtle reflections and shadows
- Product must be clearly visible and occupy 60-70%% of frame
- Use a high-end, minimalist background that complements the product
- Leave appropriate space for text at the top and bottom
- No text, logos, or watermarks in the image
- 8K resolution, photorealistic commercial product photography
- The image should look like it belongs in a premium magazine advertisement or billboard

Important: Create a composition that allows for headline text at the top and smaller text at the bottom.`,
		productInfo, description, industryDirectives(req.Industry, req.Product), focus)
}

// industryDirectives returns photography directions for the product category.
func industryDirectives(industry, product string) string {
	productLower := strings.ToLower(product)
	industryLower := strings.ToLower(industry)

	matches := func(productTerms, industryTerms []string) bool {
		for _, t := range productTerms {
			if strings.Contains(productLower, t) {
				return true
			}
		}
		for _, t := range industryTerms {
			if industry != "" && strings.Contains(industryLower, t) {
				return true
			}
		}
		return false
	}

	switch {
	case matches([]string{"phone", "smartphone", "iphone"}, []string{"tech", "electronics", "smartphone"}):
		return `PHOTOGRAPHY DIRECTIVES:
- Show the device at a 3/4 angle that highlights both the screen and profile
- Use dramatic lighting that accentuates the sleek design
- Include subtle reflections on surfaces
- Display a vibrant, visually appealing screen
- Position against a dark or gradient background with professional studio lighting
- Ensure all product details are crisp and clear`
	case matches([]string{"watch", "timepiece"}, []string{"watches", "jewelry", "luxury"}):
		return `PHOTOGRAPHY DIRECTIVES:
- Show the watch at the classic 10:10 position to frame the logo
- Use macro photography techniques to highlight fine details
- Employ dramatic lighting with precise highlights on metal elements
- Create subtle shadows to convey depth and dimension
- Position against a dark, elegant background
- Use studio lighting that accentuates metallic finish and watch face details`
	case matches([]string{"perfume", "fragrance", "cologne"}, []string{"fragrance", "beauty", "cosmetics"}):
		return `PHOTOGRAPHY DIRECTIVES:
- Showcase the bottle with dramatic lighting that highlights its contours
- Create delicate reflections on glass/crystal surfaces
- Use soft diffused lighting to create an atmosphere of luxury and sophistication
- Position against a dark gradient background
- Add subtle environmental elements that suggest the fragrance profile (floral, woody, etc.)
- Include minimal water droplets or mist for sensory appeal`
	case matches([]string{"shoe", "sneaker", "footwear"}, []string{"footwear", "athletic", "fashion"}):
		return `PHOTOGRAPHY DIRECTIVES:
- Position the footwear at a dynamic 45-degree angle
- Light to highlight textures and materials
- Show subtle shadows beneath for grounding
- Capture both profile and top-down perspective elements
- Use dramatic studio lighting with careful highlights on key design elements
- Position against a simple, complementary background that doesn't distract`
	case matches([]string{"cream", "serum", "moisturizer", "skincare"}, []string{"skincare", "beauty", "cosmetics"}):
		return `PHOTOGRAPHY DIRECTIVES:
- Position product with lid/cap slightly open to suggest use
- Create soft, diffused lighting for a clean, clinical feel
- Add subtle cream/product texture elements
- Include droplets or application suggestion for lotions/liquids
- Use a light, bright background that suggests purity and cleanliness
- Incorporate subtle elements suggesting natural ingredients where appropriate`
	}

	return `PHOTOGRAPHY DIRECTIVES:
- Position the product as the clear focal point
- Use professional studio lighting with controlled highlights and shadows
- Create a composition with visual balance and clear focus
- Ensure the product's key features are prominently displayed
- Use a clean, professional background that complements the product`
}
