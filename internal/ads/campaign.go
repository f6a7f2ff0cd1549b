package ads

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/forgeworks/adforge/internal/llm"
)

// CampaignCopywriter is the richer model surface the campaign path uses.
type CampaignCopywriter interface {
	EnhanceProductAnalysis(ctx context.Context, product, industry, brandName, trainingNotes string) (llm.ProductAnalysis, error)
	GenerateWinningCopy(ctx context.Context, product, industry, brandName string, analysis llm.ProductAnalysis) (llm.AdCopy, error)
}

// Campaign bundles a campaign analysis with its rendered creative.
type Campaign struct {
	ID        string              `json:"id"`
	Product   string              `json:"product"`
	Industry  string              `json:"industry"`
	BrandName string              `json:"brand_name"`
	Copy      llm.AdCopy          `json:"ad_copy"`
	Analysis  llm.ProductAnalysis `json:"campaign_analysis"`
	Creative  *Creative           `json:"creative"`
	CreatedAt time.Time           `json:"timestamp"`
}

// CampaignGenerator builds full campaigns. Unlike CreateAd, model failures
// here are surfaced rather than papered over; a campaign without real
// analysis is not worth persisting.
type CampaignGenerator struct {
	copywriter CampaignCopywriter
	generator  *Generator
	dataDir    string
}

func NewCampaignGenerator(cw CampaignCopywriter, g *Generator, dataDir string) *CampaignGenerator {
	return &CampaignGenerator{copywriter: cw, generator: g, dataDir: dataDir}
}

// GenerateCampaign produces an analyzed, rendered campaign for a product.
// An empty brandName is derived from the product's first word.
func (cg *CampaignGenerator) GenerateCampaign(ctx context.Context, product, industry, brandName string) (*Campaign, error) {
	if brandName == "" {
		fields := strings.Fields(product)
		if len(fields) > 0 {
			brandName = strings.ToUpper(fields[0])
		} else {
			brandName = "BRAND"
		}
	}

	notes := cg.loadTrainingNotes()
	analysis, err := cg.copywriter.EnhanceProductAnalysis(ctx, product, industry, brandName, notes)
	if err != nil {
		return nil, fmt.Errorf("campaign analysis: %w", err)
	}

	adCopy, err := cg.copywriter.GenerateWinningCopy(ctx, product, industry, brandName, analysis)
	if err != nil {
		return nil, fmt.Errorf("campaign copy: %w", err)
	}

	social := cg.generator.insights.Search(product, brandName, industry)
	brandAnalysis := campaignBrandAnalysis(industry, analysis)

	prompt := strings.TrimSpace(brandName + " " + product)
	creative, err := cg.generator.render(ctx, prompt,
		llm.BrandProduct{Product: product, BrandName: brandName},
		brandAnalysis, social, adCopy)
	if err != nil {
		return nil, fmt.Errorf("campaign creative: %w", err)
	}

	campaign := &Campaign{
		ID:        ulid.Make().String(),
		Product:   product,
		Industry:  industry,
		BrandName: brandName,
		Copy:      adCopy,
		Analysis:  analysis,
		Creative:  creative,
		CreatedAt: time.Now(),
	}
	slog.Info("campaign generated", "id", campaign.ID, "brand", brandName, "product", product)
	return campaign, nil
}

// campaignBrandAnalysis projects the free-form campaign analysis onto the
// fields the typography pipeline reads, falling back to the defaults.
func campaignBrandAnalysis(industry string, pa llm.ProductAnalysis) llm.BrandAnalysis {
	ba := llm.DefaultBrandAnalysis()
	ba.Industry = industry
	if s := lookupString(pa, "color_scheme", "color_scheme_suggestions", "colors"); s != "" {
		ba.ColorScheme = s
	}
	if s := lookupString(pa, "typography", "typography_style", "font_style"); s != "" {
		ba.TypographyStyle = s
	}
	if s := lookupString(pa, "visual_direction", "visual_direction_recommendations"); s != "" {
		ba.VisualDirection = s
	}
	return ba
}

// lookupString finds the first present key with a usable string value,
// flattening lists to their first entry.
func lookupString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			return v
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}

// loadTrainingNotes reads the newest aggregated training file, if any.
// Missing data is normal on a fresh install.
func (cg *CampaignGenerator) loadTrainingNotes() string {
	if cg.dataDir == "" {
		return ""
	}
	pattern := filepath.Join(cg.dataDir, "processed", "ad_training_materials_*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	latest := matches[len(matches)-1]

	raw, err := os.ReadFile(latest)
	if err != nil {
		slog.Error("reading training materials", "file", latest, "error", err)
		return ""
	}
	var doc struct {
		TrendAnalysis json.RawMessage `json:"trend_analysis"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil || len(doc.TrendAnalysis) == 0 {
		return ""
	}
	slog.Info("loaded training materials", "file", latest)
	return string(doc.TrendAnalysis)
}
