// Package insights surfaces social media advertising trends for a product
// or industry. Cached insight files take priority when present under the
// data directory; otherwise a curated per-industry profile is returned.
package insights

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Insights describes how ads for a product category tend to perform on
// social platforms and what creative direction works best.
type Insights struct {
	RecommendedFormat  string   `json:"recommended_format"`
	TextPlacement      string   `json:"text_placement"`
	TextStyle          string   `json:"text_style"`
	KeyElements        []string `json:"key_elements"`
	VisualFocus        string   `json:"visual_focus"`
	ColorScheme        string   `json:"color_scheme"`
	TrendingKeywords   []string `json:"trending_keywords"`
	SuccessfulExamples []string `json:"successful_examples"`
}

// insightsFile is the on-disk shape of a cached insights document.
type insightsFile struct {
	Products   []string `json:"products"`
	Industries []string `json:"industries"`
	Insights   Insights `json:"insights"`
}

// Searcher finds insights for products, preferring cached data under
// dataDir before falling back to built-in industry profiles.
type Searcher struct {
	dataDir string
}

// NewSearcher returns a Searcher rooted at dataDir. An empty dataDir
// disables cached lookups and always uses built-in profiles.
func NewSearcher(dataDir string) *Searcher {
	return &Searcher{dataDir: dataDir}
}

// Search returns social media insights for the given product. Brand and
// industry are optional and refine the match.
func (s *Searcher) Search(product, brandName, industry string) Insights {
	if in, ok := s.loadCached(product, industry); ok {
		slog.Info("loaded cached social insights", "product", product)
		return in
	}
	slog.Info("generating synthetic social insights", "product", product, "industry", industry)
	return syntheticInsights(product, brandName, industry)
}

// loadCached scans the processed and training subdirectories for social
// insight files whose products or industries match.
func (s *Searcher) loadCached(product, industry string) (Insights, bool) {
	if s.dataDir == "" {
		return Insights{}, false
	}
	for _, sub := range []string{"processed", "training"} {
		dir := filepath.Join(s.dataDir, sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasSuffix(name, ".json") || !strings.Contains(name, "social") {
				continue
			}
			raw, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				continue
			}
			var f insightsFile
			if err := json.Unmarshal(raw, &f); err != nil {
				continue
			}
			for _, p := range f.Products {
				if product != "" && strings.Contains(strings.ToLower(p), strings.ToLower(product)) {
					return f.Insights, true
				}
			}
			for _, ind := range f.Industries {
				if industry != "" && strings.Contains(strings.ToLower(ind), strings.ToLower(industry)) {
					return f.Insights, true
				}
			}
		}
	}
	return Insights{}, false
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}

// syntheticInsights builds an industry-appropriate insight profile from
// keywords in the product and industry description.
func syntheticInsights(product, brandName, industry string) Insights {
	p := strings.ToLower(product)
	ind := strings.ToLower(industry)
	brand := strings.ToLower(brandName)

	switch {
	case containsAny(p, "phone", "smartphone", "laptop", "computer", "gadget", "tech") ||
		containsAny(ind, "tech", "electronics", "digital", "computing"):
		return Insights{
			RecommendedFormat: "Product-focused with clean background",
			TextPlacement:     "centered",
			TextStyle:         "modern and minimal",
			KeyElements:       []string{"product close-up", "feature highlight", "tech specs"},
			VisualFocus:       "product details and screen",
			ColorScheme:       "tech blue or minimal dark/white",
			TrendingKeywords:  []string{"innovative", "powerful", "seamless", "experience", "smart"},
			SuccessfulExamples: []string{
				"Apple product photography with minimal text",
				"Samsung feature highlight approach",
				"Clean UI overlays on tech product images",
			},
		}
	case containsAny(p, "cloth", "fashion", "apparel", "shoe", "dress", "wear") ||
		containsAny(ind, "fashion", "apparel", "clothing", "footwear"):
		return Insights{
			RecommendedFormat: "Lifestyle imagery with model",
			TextPlacement:     "left or bottom",
			TextStyle:         "elegant and stylish",
			KeyElements:       []string{"model wearing product", "lifestyle context", "emotional connection"},
			VisualFocus:       "product in use and styling",
			ColorScheme:       "neutral with brand accent",
			TrendingKeywords:  []string{"style", "premium", "essential", "crafted", "design"},
			SuccessfulExamples: []string{
				"High-end fashion photography with minimal text",
				"Lifestyle in-context product usage",
				"Aspirational imagery with subtle branding",
			},
		}
	case containsAny(p, "beauty", "skin", "cream", "makeup", "cosmetic") ||
		containsAny(ind, "beauty", "cosmetic", "skin", "personal care"):
		return Insights{
			RecommendedFormat: "Clean product photography with ingredients visualization",
			TextPlacement:     "right or centered",
			TextStyle:         "elegant and scientific",
			KeyElements:       []string{"product close-up", "texture or application", "results visualization"},
			VisualFocus:       "product design and formula",
			ColorScheme:       "clean whites/pastels with accent colors",
			TrendingKeywords:  []string{"transform", "rejuvenate", "enhance", "protect", "nourish"},
			SuccessfulExamples: []string{
				"Clean product against simple background",
				"Before/after subtle suggestion",
				"Ingredient visualization with product",
			},
		}
	case containsAny(p, "food", "drink", "beverage", "snack", "meal") ||
		containsAny(ind, "food", "beverage", "restaurant", "grocery"):
		return Insights{
			RecommendedFormat: "Appetizing product photography with context",
			TextPlacement:     "top or bottom",
			TextStyle:         "fun and inviting",
			KeyElements:       []string{"appealing food presentation", "emotion/enjoyment", "freshness cues"},
			VisualFocus:       "product appeal and environment",
			ColorScheme:       "warm and appetizing tones",
			TrendingKeywords:  []string{"delicious", "fresh", "crafted", "authentic", "quality"},
			SuccessfulExamples: []string{
				"Close-up of food with steam/freshness cues",
				"Context environmental shots",
				"People enjoying product (partial shots)",
			},
		}
	case containsAny(p, "home", "furniture", "decor", "house", "interior") ||
		containsAny(ind, "home", "furniture", "interior", "decor"):
		return Insights{
			RecommendedFormat: "In-context and standalone product photography",
			TextPlacement:     "bottom or centered",
			TextStyle:         "clean and sophisticated",
			KeyElements:       []string{"product in context", "detail shots", "lifestyle environment"},
			VisualFocus:       "design features and environment",
			ColorScheme:       "neutral with warm accents",
			TrendingKeywords:  []string{"design", "quality", "comfort", "style", "craftsmanship"},
			SuccessfulExamples: []string{
				"Product in beautiful interior setting",
				"Detail shots highlighting quality",
				"Lifestyle context showing usage",
			},
		}
	case containsAny(p, "luxury", "premium", "exclusive", "high-end") ||
		containsAny(ind, "luxury", "premium", "jewelry") ||
		containsAny(brand, "rolex", "louis", "gucci", "prada"):
		return Insights{
			RecommendedFormat: "Minimalist product-focused with premium cues",
			TextPlacement:     "centered or subtle corner",
			TextStyle:         "elegant and minimal",
			KeyElements:       []string{"product craftsmanship", "subtle luxury cues", "premium materials"},
			VisualFocus:       "details and quality",
			ColorScheme:       "dark/black with gold or silver accents",
			TrendingKeywords:  []string{"craftsmanship", "heritage", "excellence", "exclusive", "timeless"},
			SuccessfulExamples: []string{
				"Dramatic lighting on product details",
				"Minimal composition with perfect execution",
				"Subtle luxury environment cues",
			},
		}
	}

	return Insights{
		RecommendedFormat: "Clean product photography with context",
		TextPlacement:     "centered",
		TextStyle:         "professional and balanced",
		KeyElements:       []string{"product clarity", "key feature highlight", "brand presence"},
		VisualFocus:       "product benefits",
		ColorScheme:       "brand-aligned colors",
		TrendingKeywords:  []string{"quality", "innovative", "essential", "value", "premium"},
		SuccessfulExamples: []string{
			"Product against clean background",
			"Lifestyle context showing benefits",
			"Professional studio photography",
		},
	}
}

// DefaultInsights is the safe profile used when search fails entirely.
func DefaultInsights() Insights {
	return Insights{
		RecommendedFormat: "Product-focused with clean background",
		TextPlacement:     "centered",
		TextStyle:         "professional and balanced",
		KeyElements:       []string{"product clarity", "key feature highlight", "brand presence"},
		VisualFocus:       "product benefits",
		ColorScheme:       "brand colors or neutral palette",
	}
}
