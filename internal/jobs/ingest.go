package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/forgeworks/adforge/internal/insights"
)

// TrendIngester periodically aggregates marketplace dumps in the data
// directory into trend summaries the campaign path can feed to the model.
type TrendIngester struct {
	dataDir  string
	interval time.Duration
}

func NewTrendIngester(dataDir string, interval time.Duration) *TrendIngester {
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	return &TrendIngester{dataDir: dataDir, interval: interval}
}

// Start runs one extraction immediately and then on every tick until the
// context is cancelled.
func (t *TrendIngester) Start(ctx context.Context) {
	go func() {
		t.runOnce()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.runOnce()
			}
		}
	}()
}

func (t *TrendIngester) runOnce() {
	if t.dataDir == "" {
		return
	}
	start := time.Now()
	trends, err := insights.ExtractTrends(t.dataDir)
	if err != nil {
		slog.Error("trend extraction failed", "data_dir", t.dataDir, "error", err)
		return
	}
	slog.Info("trend extraction completed",
		"ads_analyzed", trends.TotalAdsAnalyzed,
		"industries", len(trends.Industries),
		"duration", time.Since(start),
	)
}
