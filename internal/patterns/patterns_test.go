package patterns

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := Load("")
	require.NoError(t, err)
	return db
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	db := loadTestDB(t)
	assert.NotEmpty(t, db.Headlines("technology"))
	assert.NotEmpty(t, db.Universal().CallsToAction)
}

func TestIndustryMatching(t *testing.T) {
	db := loadTestDB(t)
	tests := []struct {
		industry string
		wantID   string
	}{
		{"technology", "tech_problem_solution"},
		{"Consumer Electronics", "tech_problem_solution"},
		{"luxury watches", "luxury_heritage"},
		{"fine dining restaurant", "food_sensory"},
		{"apparel", "fashion_season"},
		{"underwater basket weaving", "tech_problem_solution"}, // default
	}
	for _, tt := range tests {
		headlines := db.Headlines(tt.industry)
		require.NotEmpty(t, headlines, tt.industry)
		found := false
		for _, p := range headlines {
			if p.ID == tt.wantID {
				found = true
			}
		}
		assert.True(t, found, "industry %q should resolve to set containing %s", tt.industry, tt.wantID)
	}
}

func TestBestPerforming(t *testing.T) {
	db := loadTestDB(t)

	// overall engagement picks problem_solution (5.2) over the others
	best, ok := db.BestPerforming(TypeHeadline, "technology", "", "")
	require.True(t, ok)
	assert.Equal(t, "tech_problem_solution", best.ID)

	// instagram performance flips the winner to innovation_focus (5.3)
	best, ok = db.BestPerforming(TypeHeadline, "technology", "instagram", "")
	require.True(t, ok)
	assert.Equal(t, "tech_innovation_focus", best.ID)

	// demographic 35-44 favors problem_solution (5.9)
	best, ok = db.BestPerforming(TypeHeadline, "technology", "", "35-44")
	require.True(t, ok)
	assert.Equal(t, "tech_problem_solution", best.ID)
}

func TestBestPerformingFallsBackToUniversal(t *testing.T) {
	dir := t.TempDir()
	custom := IndustryPatterns{
		HeadlinePatterns: []Pattern{{ID: "auto_only", Pattern: "command", Template: "Drive"}},
	}
	raw, err := json.Marshal(custom)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "automotive_patterns.json"), raw, 0644))

	db, err := Load(dir)
	require.NoError(t, err)

	// automotive has no CTAs of its own, so the universal set answers
	best, ok := db.BestPerforming(TypeCTA, "automotive", "", "")
	require.True(t, ok)
	assert.Equal(t, "universal_shop_now", best.ID)
}

func TestCallsToActionMergesUniversal(t *testing.T) {
	db := loadTestDB(t)
	ctas := db.CallsToAction("food")

	ids := make([]string, 0, len(ctas))
	for _, c := range ctas {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "food_order")
	assert.Contains(t, ids, "universal_shop_now")
	// sorted best first
	assert.Equal(t, "food_order", ctas[0].ID)
}

func TestRecordFeedback(t *testing.T) {
	dir := t.TempDir()
	db, err := Load(dir)
	require.NoError(t, err)

	before, ok := db.BestPerforming(TypeHeadline, "technology", "", "")
	require.True(t, ok)
	rate := before.Metrics.AverageEngagementRate

	updated := db.RecordFeedback(TypeHeadline, "technology", before.ID, FeedbackMetrics{EngagementRate: 10})
	assert.True(t, updated)

	after, _ := db.BestPerforming(TypeHeadline, "technology", "", "")
	assert.InDelta(t, rate*0.9+10*0.1, after.Metrics.AverageEngagementRate, 0.001)

	// persisted to disk
	_, err = os.Stat(filepath.Join(dir, "ad_patterns.json"))
	assert.NoError(t, err)
}

func TestRecordFeedbackUnknownPattern(t *testing.T) {
	db := loadTestDB(t)
	assert.False(t, db.RecordFeedback(TypeHeadline, "technology", "no_such_id", FeedbackMetrics{EngagementRate: 5}))
}

func TestLoadMergesIndustryFiles(t *testing.T) {
	dir := t.TempDir()
	custom := IndustryPatterns{
		HeadlinePatterns: []Pattern{{
			ID:       "auto_power",
			Pattern:  "command",
			Template: "Drive the Future",
			Metrics:  Metrics{AverageEngagementRate: 6.0},
		}},
	}
	raw, err := json.Marshal(custom)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "automotive_patterns.json"), raw, 0644))

	db, err := Load(dir)
	require.NoError(t, err)

	headlines := db.Headlines("automotive")
	require.Len(t, headlines, 1)
	assert.Equal(t, "auto_power", headlines[0].ID)
}

func TestAddPattern(t *testing.T) {
	dir := t.TempDir()
	db, err := Load(dir)
	require.NoError(t, err)

	err = db.AddPattern(TypeHeadline, "technology", Pattern{
		Pattern:  "question",
		Template: "What If Your [Product] Worked For You?",
		Metrics:  Metrics{AverageEngagementRate: 4.0},
	})
	require.NoError(t, err)

	headlines := db.Headlines("technology")
	last := headlines[len(headlines)-1]
	assert.NotEmpty(t, last.ID)
	assert.NotEmpty(t, last.AddedOn)
}
