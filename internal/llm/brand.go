package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// BrandProduct is what the model teases apart from a free-text request.
type BrandProduct struct {
	Product   string `json:"product"`
	BrandName string `json:"brand_name"`
}

// BrandAnalysis is the strategist pass over a request. Every field feeds a
// later stage: Industry picks palettes and patterns, TypographyStyle picks
// the font plan, ColorScheme seeds the accent color.
type BrandAnalysis struct {
	Industry         string   `json:"industry"`
	BrandLevel       string   `json:"brand_level"`
	Tone             string   `json:"tone"`
	TargetMarket     string   `json:"target_market"`
	KeyBenefits      []string `json:"key_benefits"`
	Competitors      []string `json:"competitors"`
	AdStyle          string   `json:"ad_style"`
	VisualDirection  string   `json:"visual_direction"`
	ColorScheme      string   `json:"color_scheme"`
	TypographyStyle  string   `json:"typography_style"`
	ProductHighlight string   `json:"product_highlight"`
}

// AdCopy is the copywriter pass.
type AdCopy struct {
	Headline         string `json:"headline"`
	Subheadline      string `json:"subheadline"`
	BodyText         string `json:"body_text"`
	CallToAction     string `json:"call_to_action"`
	ImageDescription string `json:"image_description"`
}

// CopyContext carries marketplace and pattern guidance into the copy prompt.
type CopyContext struct {
	RecommendedFormat string
	KeyElements       []string
	TrendingKeywords  []string
	CopyPatterns      string
}

// ExtractBrandProduct splits a request like "Nike running shoes" into a
// product and an upper-cased brand.
func (c *Client) ExtractBrandProduct(ctx context.Context, prompt string) (BrandProduct, error) {
	user := fmt.Sprintf(`Extract the product/service and brand name from this request: %q

If a brand isn't explicitly mentioned, make an educated guess or extract the first word.
Format your response as JSON with:
{
    "product": "the main product or service",
    "brand_name": "the brand name (in ALL CAPS)"
}

Examples:
- For "iPhone 15", extract product="iPhone 15", brand_name="APPLE"
- For "luxury sneakers", extract product="luxury sneakers", brand_name="FASHION"
- For "Nike running shoes", extract product="running shoes", brand_name="NIKE"`, prompt)

	reply, err := c.Chat(ctx, "You extract product and brand information.", user, 0.5)
	if err != nil {
		return FallbackBrandProduct(prompt), fmt.Errorf("extract brand/product: %w", err)
	}

	var bp BrandProduct
	if err := ExtractJSON(reply, &bp); err != nil {
		return FallbackBrandProduct(prompt), fmt.Errorf("parse brand/product: %w", err)
	}

	if bp.BrandName == "" {
		bp.BrandName = firstWord(prompt)
	}
	bp.BrandName = strings.ToUpper(bp.BrandName)
	if bp.Product == "" {
		bp.Product = prompt
	}
	return bp, nil
}

// AnalyzeBrand asks the model for a strategist's read on the request.
func (c *Client) AnalyzeBrand(ctx context.Context, prompt string) (BrandAnalysis, error) {
	user := fmt.Sprintf(`Analyze this brand/product request: %q

Create a comprehensive JSON response with:
{
    "industry": "specific industry category",
    "brand_level": "luxury/premium/mass-market/etc",
    "tone": "brand voice and style",
    "target_market": "detailed audience description",
    "key_benefits": ["main selling points"],
    "competitors": ["similar brands"],
    "ad_style": "recommended advertising approach",
    "visual_direction": "art direction guidelines",
    "color_scheme": "brand-appropriate colors",
    "typography_style": "appropriate font style (modern, classic, bold, elegant, etc.)",
    "product_highlight": "specific feature or aspect to emphasize"
}

Use industry standards and professional marketing terminology.`, prompt)

	system := "You are an expert brand strategist and market analyst with experience developing campaigns for Fortune 500 companies."
	reply, err := c.Chat(ctx, system, user, 0.7)
	if err != nil {
		return DefaultBrandAnalysis(), fmt.Errorf("analyze brand: %w", err)
	}

	var ba BrandAnalysis
	if err := ExtractJSON(reply, &ba); err != nil {
		return DefaultBrandAnalysis(), fmt.Errorf("parse brand analysis: %w", err)
	}
	ba.backfill()

	slog.Info("brand analysis completed", "industry", ba.Industry, "brand_level", ba.BrandLevel)
	return ba, nil
}

// GenerateAdCopy asks the model for headline, subheadline, body and CTA,
// steered by the brand analysis and marketplace guidance.
func (c *Client) GenerateAdCopy(ctx context.Context, prompt string, ba BrandAnalysis, cc CopyContext) (AdCopy, error) {
	format := cc.RecommendedFormat
	if format == "" {
		format = "Product-focused"
	}
	elements := cc.KeyElements
	if len(elements) == 0 {
		elements = []string{"quality", "features"}
	}
	patterns := cc.CopyPatterns
	if patterns == "" {
		patterns = "Use concise, benefit-focused headlines"
	}

	var trending string
	if len(cc.TrendingKeywords) > 0 {
		trending = "Trending Keywords: " + strings.Join(cc.TrendingKeywords, ", ")
	}

	user := fmt.Sprintf(`Create professional ad copy for: %s

Industry: %s
Brand Level: %s
Tone: %s
Target: %s
Key Benefits: %s

Recommended Format: %s
Key Elements: %s
%s

High-Performing Ad Patterns:
%s

Generate JSON with:
{
    "headline": "attention-grabbing headline (max 6-8 words)",
    "subheadline": "supporting message (10-15 words, elaborates on headline)",
    "body_text": "main ad copy (2-3 short sentences, focused on benefits)",
    "call_to_action": "clear CTA (3-5 words, action-oriented)",
    "image_description": "detailed scene description for product photography"
}

IMPORTANT GUIDELINES:
- The headline must be short, impactful, and memorable
- Focus on benefits, not just features
- Use powerful, evocative language
- Write text that fits elegantly in an ad layout (consider space)
- The image description should focus on studio-quality product photography`,
		prompt, ba.Industry, ba.BrandLevel, ba.Tone, ba.TargetMarket,
		strings.Join(ba.KeyBenefits, ", "), format, strings.Join(elements, ", "),
		trending, patterns)

	system := fmt.Sprintf("You are an award-winning copywriter specializing in %s advertising for %s brands.", ba.Industry, ba.BrandLevel)
	reply, err := c.Chat(ctx, system, user, 0.7)
	if err != nil {
		return DefaultAdCopy(prompt), fmt.Errorf("generate ad copy: %w", err)
	}

	var ac AdCopy
	if err := ExtractJSON(reply, &ac); err != nil {
		return DefaultAdCopy(prompt), fmt.Errorf("parse ad copy: %w", err)
	}
	ac.backfill(prompt)

	// keep headlines at an ad-sized length
	if words := strings.Fields(ac.Headline); len(words) > 8 {
		ac.Headline = strings.Join(words[:8], " ")
	}

	slog.Info("ad copy generated", "headline", ac.Headline)
	return ac, nil
}

// FallbackBrandProduct derives a brand and product without a model.
func FallbackBrandProduct(prompt string) BrandProduct {
	return BrandProduct{
		Product:   prompt,
		BrandName: strings.ToUpper(firstWord(prompt)),
	}
}

// DefaultBrandAnalysis is the analysis used when the model is unreachable.
func DefaultBrandAnalysis() BrandAnalysis {
	return BrandAnalysis{
		Industry:         "General",
		BrandLevel:       "Premium",
		Tone:             "Professional",
		TargetMarket:     "General consumers",
		KeyBenefits:      []string{"Quality", "Value", "Innovation"},
		Competitors:      []string{},
		AdStyle:          "Modern",
		VisualDirection:  "Clean and professional",
		ColorScheme:      "Blue and white",
		TypographyStyle:  "Modern sans-serif",
		ProductHighlight: "Overall quality",
	}
}

// DefaultAdCopy is the copy used when the model is unreachable.
func DefaultAdCopy(prompt string) AdCopy {
	return AdCopy{
		Headline:         "EXPERIENCE " + strings.ToUpper(prompt),
		Subheadline:      fmt.Sprintf("Discover the quality and innovation of our premium %s.", prompt),
		BodyText:         fmt.Sprintf("Our %s offers unmatched performance and style. Experience the difference today.", prompt),
		CallToAction:     "SHOP NOW",
		ImageDescription: fmt.Sprintf("Professional product photography of %s with clean background and perfect lighting.", prompt),
	}
}

func (ba *BrandAnalysis) backfill() {
	def := "Not specified"
	fields := []*string{
		&ba.Industry, &ba.BrandLevel, &ba.Tone, &ba.TargetMarket,
		&ba.AdStyle, &ba.VisualDirection, &ba.ColorScheme,
		&ba.TypographyStyle, &ba.ProductHighlight,
	}
	for _, f := range fields {
		if *f == "" {
			*f = def
		}
	}
	if ba.KeyBenefits == nil {
		ba.KeyBenefits = []string{}
	}
	if ba.Competitors == nil {
		ba.Competitors = []string{}
	}
}

func (c *AdCopy) backfill(prompt string) {
	fill := func(f *string, name string) {
		if *f == "" {
			*f = fmt.Sprintf("Default %s for %s", name, prompt)
		}
	}
	fill(&c.Headline, "headline")
	fill(&c.Subheadline, "subheadline")
	fill(&c.BodyText, "body_text")
	fill(&c.CallToAction, "call_to_action")
	fill(&c.ImageDescription, "image_description")
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "BRAND"
	}
	return fields[0]
}
