package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// ProductAnalysis is the free-form campaign analysis the model returns. The
// sections vary by product, so it stays a map rather than a fixed struct.
type ProductAnalysis map[string]any

// EnhanceProductAnalysis asks for a campaign-grade analysis of a product.
// trainingNotes, when non-empty, is appended to the system prompt (aggregated
// trend data from previously collected campaigns).
func (c *Client) EnhanceProductAnalysis(ctx context.Context, product, industry, brandName, trainingNotes string) (ProductAnalysis, error) {
	system := "You are an expert marketing strategist specializing in high-performing ad campaigns."
	if trainingNotes != "" {
		system += "\n\nYou've analyzed thousands of successful ad campaigns and identified these trends:\n" + trainingNotes
	}

	var brandLine string
	if brandName != "" {
		brandLine = fmt.Sprintf("This is for the brand: %s. Ensure the analysis considers the brand's positioning.", brandName)
	}

	user := fmt.Sprintf(`Analyze %s in the %s industry for ad campaign creation.
%s

Provide a comprehensive analysis including:
1. Target audience demographics and psychographics
2. Key value propositions and USPs
3. Emotional triggers that would resonate with the audience
4. Brand tone and style recommendations
5. Visual direction recommendations
6. Suggested messaging themes
7. Competitive landscape insights
8. Brand positioning strategy
9. Color scheme suggestions that work well with this type of product

Format as a detailed JSON object.`, product, industry, brandLine)

	reply, err := c.Chat(ctx, system, user, 0.7)
	if err != nil {
		return nil, fmt.Errorf("enhance product analysis: %w", err)
	}

	var analysis ProductAnalysis
	if err := ExtractJSON(reply, &analysis); err != nil {
		return nil, fmt.Errorf("parse product analysis: %w", err)
	}

	slog.Info("enhanced product analysis completed", "product", product)
	return analysis, nil
}

// GenerateWinningCopy writes campaign copy against a full product analysis.
func (c *Client) GenerateWinningCopy(ctx context.Context, product, industry, brandName string, analysis ProductAnalysis) (AdCopy, error) {
	analysisJSON, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return AdCopy{}, fmt.Errorf("marshal analysis: %w", err)
	}

	system := fmt.Sprintf("You are an expert copywriter specializing in high-conversion %s advertisements.", industry)
	user := fmt.Sprintf(`Create a professional, industry-standard advertisement for %s for the brand %s based on this analysis:

%s

Generate an ad that follows industry best practices with:
1. Headline: A powerful, attention-grabbing headline (5-8 words max)
2. Subheadline: A compelling supporting message (10-15 words max)
3. Body text: Brief but impactful description (2-3 short sentences)
4. Call to action: Clear and concise action prompt
5. Image description: Detailed visual scene for the ad (be specific about composition, elements, mood, colors)

IMPORTANT: The ad must look like a professional advertisement with text overlaid on the image.
Format as a comprehensive JSON object with these exact fields: headline, subheadline, body_text, call_to_action, image_description.`,
		product, brandName, analysisJSON)

	reply, err := c.Chat(ctx, system, user, 0.7)
	if err != nil {
		return AdCopy{}, fmt.Errorf("generate winning copy: %w", err)
	}

	// the model sometimes returns image_description as a nested object,
	// so decode loosely and coerce
	var raw map[string]any
	if err := ExtractJSON(reply, &raw); err != nil {
		return AdCopy{}, fmt.Errorf("parse winning copy: %w", err)
	}

	ac := AdCopy{
		Headline:         stringField(raw, "headline"),
		Subheadline:      stringField(raw, "subheadline"),
		BodyText:         stringField(raw, "body_text"),
		CallToAction:     stringField(raw, "call_to_action"),
		ImageDescription: coerceDescription(raw["image_description"]),
	}
	ac.backfill(product)

	slog.Info("winning ad copy generated", "product", product, "headline", ac.Headline)
	return ac, nil
}

func stringField(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// coerceDescription flattens a non-string image description into prose.
func coerceDescription(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case string:
		return d
	case map[string]any:
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", k, coerceDescription(d[k])))
		}
		return strings.Join(parts, " ")
	case []any:
		parts := make([]string, 0, len(d))
		for _, item := range d {
			parts = append(parts, coerceDescription(item))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(d)
	}
}
