package service

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/forgeworks/adforge/internal/ads"
	"github.com/forgeworks/adforge/internal/imagegen"
	"github.com/forgeworks/adforge/internal/insights"
	"github.com/forgeworks/adforge/internal/jobs"
	"github.com/forgeworks/adforge/internal/llm"
	"github.com/forgeworks/adforge/internal/patterns"
	"github.com/forgeworks/adforge/storage"
)

// stubModel satisfies both the ad and campaign copywriter interfaces with
// canned responses, keeping route tests offline.
type stubModel struct{}

func (stubModel) ExtractBrandProduct(ctx context.Context, prompt string) (llm.BrandProduct, error) {
	return llm.FallbackBrandProduct(prompt), nil
}

func (stubModel) AnalyzeBrand(ctx context.Context, prompt string) (llm.BrandAnalysis, error) {
	return llm.DefaultBrandAnalysis(), nil
}

func (stubModel) GenerateAdCopy(ctx context.Context, prompt string, ba llm.BrandAnalysis, cc llm.CopyContext) (llm.AdCopy, error) {
	return llm.DefaultAdCopy(prompt), nil
}

func (stubModel) EnhanceProductAnalysis(ctx context.Context, product, industry, brandName, trainingNotes string) (llm.ProductAnalysis, error) {
	return llm.ProductAnalysis{"tone": "confident"}, nil
}

func (stubModel) GenerateWinningCopy(ctx context.Context, product, industry, brandName string, analysis llm.ProductAnalysis) (llm.AdCopy, error) {
	return llm.DefaultAdCopy(product), nil
}

type stubImageSource struct{}

func (stubImageSource) Generate(ctx context.Context, req imagegen.Request) (image.Image, string, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			img.SetNRGBA(x, y, color.NRGBA{70, 75, 90, 255})
		}
	}
	return img, "", nil
}

// setupTestService creates a service instance with an in-memory database and
// stubbed model/image clients.
func setupTestService(t *testing.T) *Service {
	t.Helper()

	_, queries, cleanup, err := storage.NewTestDB()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	store := &storage.Storage{Queries: queries}

	patternsDB, err := patterns.Load("")
	if err != nil {
		t.Fatalf("failed to load pattern database: %v", err)
	}

	searcher := insights.NewSearcher("")
	outputDir := t.TempDir()
	generator := ads.NewGenerator(stubModel{}, stubImageSource{}, searcher, patternsDB, outputDir)

	return &Service{
		storage:   store,
		generator: generator,
		campaigns: ads.NewCampaignGenerator(stubModel{}, generator, ""),
		patterns:  patternsDB,
		insights:  searcher,
		worker:    jobs.NewRegenerateWorker(store, generator),
		ingester:  jobs.NewTrendIngester("", 0),
		jobsCtx:   context.Background(),
		config: &Config{
			Environment: "test",
			Port:        "8080",
			OutputDir:   outputDir,
		},
	}
}

// setupTestEcho creates an Echo instance with routes registered
func setupTestEcho(t *testing.T) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if he, ok := err.(*echo.HTTPError); ok {
			c.Response().WriteHeader(he.Code)
		} else {
			c.Response().WriteHeader(500)
		}
	}

	svc := setupTestService(t)
	svc.RegisterRoutes(e)

	return e, svc
}
