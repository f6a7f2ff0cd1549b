package jobs

import (
	"context"
	"database/sql"
	"image"
	"image/color"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks/adforge/internal/ads"
	"github.com/forgeworks/adforge/internal/imagegen"
	"github.com/forgeworks/adforge/internal/insights"
	"github.com/forgeworks/adforge/internal/llm"
	"github.com/forgeworks/adforge/internal/patterns"
	"github.com/forgeworks/adforge/storage"
	"github.com/forgeworks/adforge/storage/db"
)

type noopImages struct{}

func (noopImages) Generate(ctx context.Context, req imagegen.Request) (image.Image, string, error) {
	return image.NewNRGBA(image.Rect(0, 0, 200, 200)), "", nil
}

type noopCopywriter struct{}

func (noopCopywriter) ExtractBrandProduct(ctx context.Context, prompt string) (llm.BrandProduct, error) {
	return llm.FallbackBrandProduct(prompt), nil
}

func (noopCopywriter) AnalyzeBrand(ctx context.Context, prompt string) (llm.BrandAnalysis, error) {
	return llm.DefaultBrandAnalysis(), nil
}

func (noopCopywriter) GenerateAdCopy(ctx context.Context, prompt string, ba llm.BrandAnalysis, cc llm.CopyContext) (llm.AdCopy, error) {
	return llm.DefaultAdCopy(prompt), nil
}

func TestRegenerateWorker(t *testing.T) {
	_, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	st := &storage.Storage{Queries: queries}

	outDir := t.TempDir()
	patternsDB, err := patterns.Load("")
	require.NoError(t, err)
	generator := ads.NewGenerator(noopCopywriter{}, noopImages{}, insights.NewSearcher(""), patternsDB, outDir)

	// a real base image on disk for the worker to reopen
	base := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			base.SetNRGBA(x, y, color.NRGBA{60, 60, 70, 255})
		}
	}
	basePath := filepath.Join(outDir, "base.png")
	require.NoError(t, imaging.Save(base, basePath))

	id := ulid.Make().String()
	_, err = queries.CreateCreative(context.Background(), db.CreateCreativeParams{
		ID:            id,
		Prompt:        "artisan coffee",
		Product:       "artisan coffee",
		BrandName:     "ARTISAN",
		Industry:      "food",
		Headline:      "WAKE UP BETTER",
		CallToAction:  "ORDER NOW",
		ImagePath:     filepath.Join(outDir, "old.png"),
		BaseImagePath: basePath,
		Layout:        "centered",
		Style:         "modern",
		AnalysisJson:  sql.NullString{String: `{"industry":"food","color_scheme":"warm tones"}`, Valid: true},
	})
	require.NoError(t, err)

	worker := NewRegenerateWorker(st, generator)
	worker.Enqueue(context.Background(), id, "bottom_centered", "bold")
	worker.Wait()

	row, err := queries.GetCreative(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "bottom_centered", row.Layout)
	assert.Equal(t, "bold", row.Style)
	assert.NotEqual(t, filepath.Join(outDir, "old.png"), row.ImagePath)
}

func TestRegenerateWorkerMissingCreative(t *testing.T) {
	_, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	st := &storage.Storage{Queries: queries}
	patternsDB, err := patterns.Load("")
	require.NoError(t, err)
	generator := ads.NewGenerator(noopCopywriter{}, noopImages{}, insights.NewSearcher(""), patternsDB, t.TempDir())

	worker := NewRegenerateWorker(st, generator)
	worker.Enqueue(context.Background(), "missing", "centered", "modern")
	worker.Wait() // must not panic
}

func TestCreativeFromRowDefaults(t *testing.T) {
	c := creativeFromRow(db.Creative{ID: "x", Industry: "luxury"})
	assert.Equal(t, "luxury", c.Analysis.Industry)
	assert.Equal(t, "Premium", c.Analysis.BrandLevel)
}

func TestTrendIngesterIntervalDefault(t *testing.T) {
	ti := NewTrendIngester("", 0)
	assert.Equal(t, 6*time.Hour, ti.interval)
}
