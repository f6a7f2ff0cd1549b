package insights

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSyntheticTechnology(t *testing.T) {
	s := NewSearcher("")
	in := s.Search("wireless smartphone charger", "", "consumer electronics")

	assert.Equal(t, "Product-focused with clean background", in.RecommendedFormat)
	assert.Equal(t, "centered", in.TextPlacement)
	assert.Contains(t, in.TrendingKeywords, "innovative")
}

func TestSearchSyntheticFashion(t *testing.T) {
	s := NewSearcher("")
	in := s.Search("running shoes", "", "")

	assert.Equal(t, "Lifestyle imagery with model", in.RecommendedFormat)
	assert.Equal(t, "left or bottom", in.TextPlacement)
}

func TestSearchLuxuryByBrand(t *testing.T) {
	s := NewSearcher("")
	in := s.Search("chronograph", "Rolex", "")

	assert.Equal(t, "Minimalist product-focused with premium cues", in.RecommendedFormat)
	assert.Contains(t, in.ColorScheme, "gold")
}

func TestSearchDefaultProfile(t *testing.T) {
	s := NewSearcher("")
	in := s.Search("garden hose", "", "outdoor equipment")

	assert.Equal(t, "Clean product photography with context", in.RecommendedFormat)
	assert.Equal(t, "professional and balanced", in.TextStyle)
}

func TestSearchPrefersCachedInsights(t *testing.T) {
	dir := t.TempDir()
	processed := filepath.Join(dir, "processed")
	require.NoError(t, os.MkdirAll(processed, 0o755))

	doc := `{
		"products": ["Espresso Machine Pro"],
		"industries": ["coffee equipment"],
		"insights": {
			"recommended_format": "Barista action shot",
			"text_placement": "top",
			"text_style": "warm and artisanal",
			"key_elements": ["crema detail"],
			"visual_focus": "extraction moment",
			"color_scheme": "espresso browns",
			"trending_keywords": ["artisan"],
			"successful_examples": ["Morning ritual close-up"]
		}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(processed, "social_insights.json"), []byte(doc), 0o644))

	s := NewSearcher(dir)
	in := s.Search("espresso machine", "", "")

	assert.Equal(t, "Barista action shot", in.RecommendedFormat)
	assert.Equal(t, "extraction moment", in.VisualFocus)
}

func TestSearchCachedIndustryMatch(t *testing.T) {
	dir := t.TempDir()
	training := filepath.Join(dir, "training")
	require.NoError(t, os.MkdirAll(training, 0o755))

	doc := `{
		"industries": ["Pet Supplies"],
		"insights": {"recommended_format": "Pet-in-action shot", "text_placement": "bottom"}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(training, "social_pets.json"), []byte(doc), 0o644))

	s := NewSearcher(dir)
	in := s.Search("dog harness", "", "pet supplies")

	assert.Equal(t, "Pet-in-action shot", in.RecommendedFormat)
}

func TestSearchIgnoresNonSocialFiles(t *testing.T) {
	dir := t.TempDir()
	processed := filepath.Join(dir, "processed")
	require.NoError(t, os.MkdirAll(processed, 0o755))

	doc := `{"products": ["running shoes"], "insights": {"recommended_format": "should not load"}}`
	require.NoError(t, os.WriteFile(filepath.Join(processed, "listings.json"), []byte(doc), 0o644))

	s := NewSearcher(dir)
	in := s.Search("running shoes", "", "fashion")

	assert.Equal(t, "Lifestyle imagery with model", in.RecommendedFormat)
}

func TestDefaultInsights(t *testing.T) {
	in := DefaultInsights()

	assert.Equal(t, "Product-focused with clean background", in.RecommendedFormat)
	assert.NotEmpty(t, in.KeyElements)
}
