// Package ads orchestrates the full creative pipeline: brand extraction,
// analysis, social insights, pattern-enhanced copy, base image generation
// and typography compositing. Every stage degrades to a deterministic
// fallback so a prompt always yields a finished creative.
package ads

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"

	"github.com/forgeworks/adforge/internal/imagegen"
	"github.com/forgeworks/adforge/internal/insights"
	"github.com/forgeworks/adforge/internal/llm"
	"github.com/forgeworks/adforge/internal/patterns"
	"github.com/forgeworks/adforge/internal/typography"
)

// Copywriter is the language-model surface the pipeline needs.
type Copywriter interface {
	ExtractBrandProduct(ctx context.Context, prompt string) (llm.BrandProduct, error)
	AnalyzeBrand(ctx context.Context, prompt string) (llm.BrandAnalysis, error)
	GenerateAdCopy(ctx context.Context, prompt string, ba llm.BrandAnalysis, cc llm.CopyContext) (llm.AdCopy, error)
}

// ImageSource produces the base photograph for a creative.
type ImageSource interface {
	Generate(ctx context.Context, req imagegen.Request) (image.Image, string, error)
}

// Creative is a fully generated ad.
type Creative struct {
	ID            string             `json:"id"`
	Prompt        string             `json:"prompt"`
	Product       string             `json:"product"`
	BrandName     string             `json:"brand_name"`
	Headline      string             `json:"headline"`
	Subheadline   string             `json:"subheadline"`
	BodyText      string             `json:"body_text"`
	CallToAction  string             `json:"call_to_action"`
	ImagePath     string             `json:"image_path"`
	BaseImagePath string             `json:"base_image_path"`
	Layout        string             `json:"layout"`
	Style         string             `json:"style"`
	Analysis      llm.BrandAnalysis  `json:"brand_analysis"`
	Insights      insights.Insights  `json:"social_media_insights"`
	GeneratedAt   time.Time          `json:"generation_time"`
	Error         string             `json:"error,omitempty"`
}

// Generator wires the pipeline stages together.
type Generator struct {
	copywriter Copywriter
	images     ImageSource
	insights   *insights.Searcher
	patterns   *patterns.Database
	engine     *typography.Engine
	outputDir  string
}

func NewGenerator(cw Copywriter, images ImageSource, searcher *insights.Searcher, db *patterns.Database, outputDir string) *Generator {
	return &Generator{
		copywriter: cw,
		images:     images,
		insights:   searcher,
		patterns:   db,
		engine:     typography.NewEngine(),
		outputDir:  outputDir,
	}
}

// CreateAd runs the whole pipeline for a free-text prompt. Individual stage
// failures fall back to deterministic defaults and are noted on the result;
// only a failure to write the final image returns an error.
func (g *Generator) CreateAd(ctx context.Context, prompt string) (*Creative, error) {
	var stageErrs []string

	slog.Info("extracting brand and product", "prompt", prompt)
	extraction, err := g.copywriter.ExtractBrandProduct(ctx, prompt)
	if err != nil {
		slog.Error("brand extraction failed, using fallback", "error", err)
		stageErrs = append(stageErrs, fmt.Sprintf("extract: %v", err))
	}

	slog.Info("analyzing brand", "brand", extraction.BrandName)
	analysis, err := g.copywriter.AnalyzeBrand(ctx, prompt)
	if err != nil {
		slog.Error("brand analysis failed, using defaults", "error", err)
		stageErrs = append(stageErrs, fmt.Sprintf("analyze: %v", err))
		analysis = llm.DefaultBrandAnalysis()
	}

	slog.Info("fetching social insights", "product", extraction.Product)
	social := g.insights.Search(extraction.Product, extraction.BrandName, analysis.Industry)

	copyCtx := g.copyContext(social, analysis.Industry)
	slog.Info("generating ad copy")
	adCopy, err := g.copywriter.GenerateAdCopy(ctx, prompt, analysis, copyCtx)
	if err != nil {
		slog.Error("copy generation failed, using defaults", "error", err)
		stageErrs = append(stageErrs, fmt.Sprintf("copy: %v", err))
		adCopy = llm.DefaultAdCopy(prompt)
	}

	creative, err := g.render(ctx, prompt, extraction, analysis, social, adCopy)
	if err != nil {
		return nil, err
	}
	creative.Error = strings.Join(stageErrs, "; ")
	slog.Info("ad generation completed", "id", creative.ID, "image", creative.ImagePath, "layout", creative.Layout)
	return creative, nil
}

// render generates the base photograph, composites the text and writes the
// finished creative to disk.
func (g *Generator) render(ctx context.Context, prompt string, bp llm.BrandProduct, analysis llm.BrandAnalysis, social insights.Insights, adCopy llm.AdCopy) (*Creative, error) {
	slog.Info("generating base image", "product", bp.Product)
	base, basePath, err := g.images.Generate(ctx, imagegen.Request{
		Product:          bp.Product,
		BrandName:        bp.BrandName,
		Industry:         analysis.Industry,
		ImageDescription: adCopy.ImageDescription,
		VisualFocus:      social.VisualFocus,
	})
	if err != nil {
		return nil, fmt.Errorf("generate base image: %w", err)
	}

	result := g.engine.Compose(base, typography.Content{
		Brand:       bp.BrandName,
		Headline:    adCopy.Headline,
		Subheadline: adCopy.Subheadline,
		Body:        adCopy.BodyText,
		CTA:         adCopy.CallToAction,
	}, typography.Options{
		Style:      analysis.TypographyStyle,
		Industry:   analysis.Industry,
		SchemeHint: analysis.ColorScheme,
		Suggestion: layoutFromPlacement(social.TextPlacement),
	})

	id := ulid.Make().String()
	finalPath, err := g.saveFinal(result.Image, id)
	if err != nil {
		return nil, fmt.Errorf("save composed creative: %w", err)
	}

	return &Creative{
		ID:            id,
		Prompt:        prompt,
		Product:       bp.Product,
		BrandName:     bp.BrandName,
		Headline:      adCopy.Headline,
		Subheadline:   adCopy.Subheadline,
		BodyText:      adCopy.BodyText,
		CallToAction:  adCopy.CallToAction,
		ImagePath:     finalPath,
		BaseImagePath: basePath,
		Layout:        result.Layout,
		Style:         string(result.Style),
		Analysis:      analysis,
		Insights:      social,
		GeneratedAt:   time.Now(),
	}, nil
}

// Recompose re-renders an existing creative's text over its base image,
// used when pattern feedback changes the preferred layout or style.
func (g *Generator) Recompose(base image.Image, c *Creative, placement, style string) (*Creative, error) {
	result := g.engine.Compose(base, typography.Content{
		Brand:       c.BrandName,
		Headline:    c.Headline,
		Subheadline: c.Subheadline,
		Body:        c.BodyText,
		CTA:         c.CallToAction,
	}, typography.Options{
		Style:      style,
		Industry:   c.Analysis.Industry,
		SchemeHint: c.Analysis.ColorScheme,
		Placement:  placement,
	})

	path, err := g.saveFinal(result.Image, c.ID)
	if err != nil {
		return nil, fmt.Errorf("save recomposed creative: %w", err)
	}

	updated := *c
	updated.ImagePath = path
	updated.Layout = result.Layout
	updated.Style = string(result.Style)
	return &updated, nil
}

// copyContext folds the best-performing patterns and the social insight
// profile into hints for the copywriter.
func (g *Generator) copyContext(social insights.Insights, industry string) llm.CopyContext {
	cc := llm.CopyContext{
		RecommendedFormat: social.RecommendedFormat,
		KeyElements:       social.KeyElements,
		TrendingKeywords:  social.TrendingKeywords,
	}
	if g.patterns == nil {
		return cc
	}
	if best, ok := g.patterns.BestPerforming(patterns.TypeHeadline, industry, "", ""); ok {
		cc.CopyPatterns = best.Description
		if cc.CopyPatterns == "" {
			cc.CopyPatterns = best.Template
		}
	}
	return cc
}

// layoutFromPlacement maps free-text placement advice onto a layout name.
// Unknown advice returns empty so the brightness analyzer decides.
func layoutFromPlacement(placement string) string {
	p := strings.ToLower(placement)
	switch {
	case strings.Contains(p, "left"):
		return "left_aligned"
	case strings.Contains(p, "right"):
		return "right_aligned"
	case strings.Contains(p, "bottom"):
		return "bottom_centered"
	case strings.Contains(p, "top"):
		return "top_centered"
	case strings.Contains(p, "center"):
		return "centered"
	default:
		return ""
	}
}

func (g *Generator) saveFinal(img image.Image, id string) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(g.outputDir, fmt.Sprintf("ad_%s.png", id))
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return path, nil
}
