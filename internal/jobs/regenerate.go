package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/semaphore"

	"github.com/forgeworks/adforge/internal/ads"
	"github.com/forgeworks/adforge/internal/insights"
	"github.com/forgeworks/adforge/internal/llm"
	"github.com/forgeworks/adforge/storage"
	"github.com/forgeworks/adforge/storage/db"
)

// MaxConcurrentRecompositions limits how many creatives are re-rendered at once.
const MaxConcurrentRecompositions = 3

// RegenerateWorker re-composes stored creatives in the background when
// feedback changes the preferred layout or style.
type RegenerateWorker struct {
	storage   *storage.Storage
	generator *ads.Generator
	sem       *semaphore.Weighted
	wg        sync.WaitGroup
}

func NewRegenerateWorker(st *storage.Storage, generator *ads.Generator) *RegenerateWorker {
	return &RegenerateWorker{
		storage:   st,
		generator: generator,
		sem:       semaphore.NewWeighted(MaxConcurrentRecompositions),
	}
}

// Enqueue schedules a recomposition. It returns immediately; the work runs
// on a background goroutine bounded by the semaphore.
func (w *RegenerateWorker) Enqueue(ctx context.Context, creativeID, placement, style string) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		if err := w.sem.Acquire(ctx, 1); err != nil {
			slog.Debug("context cancelled while waiting for semaphore", "error", err)
			return
		}
		defer w.sem.Release(1)

		if err := w.recompose(ctx, creativeID, placement, style); err != nil {
			slog.Error("creative recomposition failed", "creative_id", creativeID, "error", err)
		}
	}()
}

// Wait blocks until all enqueued recompositions finish. Used on shutdown
// and in tests.
func (w *RegenerateWorker) Wait() {
	w.wg.Wait()
}

func (w *RegenerateWorker) recompose(ctx context.Context, creativeID, placement, style string) error {
	row, err := w.storage.Queries.GetCreative(ctx, creativeID)
	if err != nil {
		return err
	}
	if row.BaseImagePath == "" {
		slog.Warn("creative has no base image, skipping recomposition", "creative_id", creativeID)
		return nil
	}

	base, err := imaging.Open(row.BaseImagePath)
	if err != nil {
		return err
	}

	creative := creativeFromRow(row)
	updated, err := w.generator.Recompose(base, creative, placement, style)
	if err != nil {
		return err
	}

	if err := w.storage.Queries.UpdateCreativeImage(ctx, db.UpdateCreativeImageParams{
		ImagePath: updated.ImagePath,
		Layout:    updated.Layout,
		Style:     updated.Style,
		ID:        creativeID,
	}); err != nil {
		return err
	}

	slog.Info("creative recomposed", "creative_id", creativeID, "layout", updated.Layout, "style", updated.Style)
	return nil
}

// creativeFromRow rebuilds the pipeline's creative value from a stored row.
func creativeFromRow(row db.Creative) *ads.Creative {
	c := &ads.Creative{
		ID:            row.ID,
		Prompt:        row.Prompt,
		Product:       row.Product,
		BrandName:     row.BrandName,
		Headline:      row.Headline,
		Subheadline:   row.Subheadline,
		BodyText:      row.BodyText,
		CallToAction:  row.CallToAction,
		ImagePath:     row.ImagePath,
		BaseImagePath: row.BaseImagePath,
		Layout:        row.Layout,
		Style:         row.Style,
		GeneratedAt:   row.CreatedAt,
	}
	if row.AnalysisJson.Valid {
		var ba llm.BrandAnalysis
		if err := json.Unmarshal([]byte(row.AnalysisJson.String), &ba); err == nil {
			c.Analysis = ba
		}
	}
	if c.Analysis.Industry == "" {
		c.Analysis = llm.DefaultBrandAnalysis()
		c.Analysis.Industry = row.Industry
	}
	if row.InsightsJson.Valid {
		var in insights.Insights
		if err := json.Unmarshal([]byte(row.InsightsJson.String), &in); err == nil {
			c.Insights = in
		}
	}
	return c
}
