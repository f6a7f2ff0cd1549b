package insights

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, path string, v any) {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
}

func TestExtractTrends(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "scrape1.json"), []Listing{
		{Category: "Electronics", Title: "Noise cancelling headphones black", Price: "$120.00"},
		{Category: "Electronics", Title: "Bluetooth speaker", Price: "$80"},
		{Category: "Furniture", Title: "Oak dining table", Price: "$1,250.50"},
	})
	writeJSON(t, filepath.Join(dir, "scrape2.json"), map[string]any{
		"data": []Listing{
			{Category: "Electronics", Title: "USB-C hub", Price: "$45.99",
				ImageFeatures: map[string]any{"background": "white"}},
		},
	})

	trends, err := ExtractTrends(dir)
	require.NoError(t, err)

	assert.Equal(t, 4, trends.TotalAdsAnalyzed)
	require.Contains(t, trends.Industries, "Electronics")
	require.Contains(t, trends.Industries, "Furniture")

	elec := trends.Industries["Electronics"]
	assert.Equal(t, 3, elec.AdCount)
	assert.InDelta(t, (4.0+2.0+2.0)/3.0, elec.AvgTitleLength, 0.001)
	assert.InDelta(t, 45.99, elec.CommonPriceRanges.MinPrice, 0.001)
	assert.InDelta(t, 120.0, elec.CommonPriceRanges.MaxPrice, 0.001)
	assert.Len(t, elec.CommonPriceRanges.PriceBrackets, 5)
	assert.NotEmpty(t, elec.VisualTrends.DominantColors)

	furn := trends.Industries["Furniture"]
	assert.Equal(t, 1, furn.AdCount)
	assert.Empty(t, furn.VisualTrends.DominantColors)
}

func TestExtractTrendsWritesSummary(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "listings.json"), []Listing{
		{Category: "Toys", Title: "Wooden train set", Price: "$35"},
	})

	_, err := ExtractTrends(dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, "processed"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "social_trends_")

	raw, err := os.ReadFile(filepath.Join(dir, "processed", entries[0].Name()))
	require.NoError(t, err)
	var saved Trends
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Equal(t, 1, saved.TotalAdsAnalyzed)
}

func TestExtractTrendsSingleListingFile(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "one.json"), Listing{
		Category: "Books", Title: "Antique atlas", Price: "oops",
	})

	trends, err := ExtractTrends(dir)
	require.NoError(t, err)

	books := trends.Industries["Books"]
	assert.Equal(t, 1, books.AdCount)
	assert.Zero(t, books.CommonPriceRanges.MaxPrice)
}

func TestExtractTrendsEmptyFolder(t *testing.T) {
	dir := t.TempDir()

	trends, err := ExtractTrends(dir)
	require.NoError(t, err)
	assert.Zero(t, trends.TotalAdsAnalyzed)
	assert.Empty(t, trends.Industries)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,299.99", 1299.99, true},
		{"45", 45, true},
		{" $10.50 ", 10.5, true},
		{"free", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parsePrice(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.InDelta(t, tt.want, got, 0.001, tt.in)
		}
	}
}

func TestExtractTrendsLargeCorpus(t *testing.T) {
	faker := gofakeit.New(7)
	dir := t.TempDir()

	listings := make([]Listing, 60)
	for i := range listings {
		listings[i] = Listing{
			Category: "Electronics",
			Title:    faker.ProductName(),
			Price:    fmt.Sprintf("$%.2f", faker.Price(20, 2000)),
		}
	}
	writeJSON(t, filepath.Join(dir, "marketplace_bulk.json"), listings)

	trends, err := ExtractTrends(dir)
	require.NoError(t, err)

	electronics := trends.Industries["Electronics"]
	assert.Equal(t, 60, electronics.AdCount)
	assert.Len(t, electronics.CommonPriceRanges.PriceBrackets, 5)
	assert.GreaterOrEqual(t, electronics.CommonPriceRanges.MaxPrice, electronics.CommonPriceRanges.MinPrice)
	assert.Positive(t, electronics.AvgTitleLength)

	total := 0.0
	for _, b := range electronics.CommonPriceRanges.PriceBrackets {
		total += b.Percentage
	}
	assert.InDelta(t, 100.0, total, 0.5)
}
