package patterns

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:embed defaults.json
var defaultsFS embed.FS

// Metrics holds observed engagement numbers for a pattern.
type Metrics struct {
	AverageEngagementRate float64            `json:"average_engagement_rate,omitempty"`
	ClickThroughRate      float64            `json:"click_through_rate,omitempty"`
	ConversionRate        float64            `json:"conversion_rate,omitempty"`
	SocialSharingRate     float64            `json:"social_sharing_rate,omitempty"`
	PlatformPerformance   map[string]float64 `json:"platform_performance,omitempty"`
	ABTestInsights        string             `json:"ab_test_insights,omitempty"`
}

// Pattern is one advertising pattern with its performance record. Which
// fields are set depends on the pattern type: headlines carry Template,
// visuals carry Description and IdealPrompt, CTAs carry Text.
type Pattern struct {
	ID          string `json:"id"`
	Pattern     string `json:"pattern,omitempty"`
	Template    string `json:"template,omitempty"`
	Description string `json:"description,omitempty"`
	Text        string `json:"text,omitempty"`
	IdealPrompt string `json:"ideal_prompt,omitempty"`

	OptimalPosition string `json:"optimal_position,omitempty"`

	AverageWordCount         int     `json:"average_word_count,omitempty"`
	AverageSentenceCount     int     `json:"average_sentence_count,omitempty"`
	FeatureBenefitPercentage float64 `json:"feature_benefit_percentage,omitempty"`

	Metrics                Metrics            `json:"engagement_metrics"`
	BestFor                []string           `json:"best_for,omitempty"`
	DemographicPerformance map[string]float64 `json:"demographic_performance,omitempty"`
	AddedOn                string             `json:"added_on,omitempty"`
}

// IndustryPatterns groups an industry's patterns by type.
type IndustryPatterns struct {
	HeadlinePatterns  []Pattern `json:"headline_patterns,omitempty"`
	VisualApproaches  []Pattern `json:"visual_approaches,omitempty"`
	CopyStructures    []Pattern `json:"copy_structures,omitempty"`
	ColorSchemes      []Pattern `json:"color_schemes,omitempty"`
	EmotionalTriggers []Pattern `json:"emotional_triggers,omitempty"`
	CallsToAction     []Pattern `json:"calls_to_action,omitempty"`
}

// Pattern type names accepted by BestPerforming and RecordFeedback.
const (
	TypeHeadline  = "headline"
	TypeVisual    = "visual"
	TypeCopy      = "copy"
	TypeColor     = "color"
	TypeEmotional = "emotional"
	TypeCTA       = "calls_to_action"
)

func (ip *IndustryPatterns) byType(patternType string) []Pattern {
	switch patternType {
	case TypeHeadline:
		return ip.HeadlinePatterns
	case TypeVisual:
		return ip.VisualApproaches
	case TypeCopy:
		return ip.CopyStructures
	case TypeColor:
		return ip.ColorSchemes
	case TypeEmotional:
		return ip.EmotionalTriggers
	case TypeCTA:
		return ip.CallsToAction
	}
	return nil
}

func (ip *IndustryPatterns) setByType(patternType string, ps []Pattern) {
	switch patternType {
	case TypeHeadline:
		ip.HeadlinePatterns = ps
	case TypeVisual:
		ip.VisualApproaches = ps
	case TypeCopy:
		ip.CopyStructures = ps
	case TypeColor:
		ip.ColorSchemes = ps
	case TypeEmotional:
		ip.EmotionalTriggers = ps
	case TypeCTA:
		ip.CallsToAction = ps
	}
}

type databaseFile struct {
	Industries map[string]IndustryPatterns `json:"industries"`
	Universal  IndustryPatterns            `json:"universal_patterns"`
}

// Database is the pattern store. It starts from the embedded defaults,
// merges any per-industry JSON files found in the data directory, and
// writes feedback updates back to disk.
type Database struct {
	mu         sync.RWMutex
	industries map[string]IndustryPatterns
	universal  IndustryPatterns
	dataPath   string
}

// industryAliases maps common phrasings onto database keys.
var industryAliases = map[string]string{
	"tech":        "technology",
	"software":    "technology",
	"electronics": "technology",
	"gadgets":     "technology",
	"clothing":    "fashion",
	"apparel":     "fashion",
	"wear":        "fashion",
	"restaurant":  "food",
	"dining":      "food",
	"grocery":     "food",
	"watches":     "luxury",
	"jewelry":     "luxury",
}

// Load builds the database. dataDir may be empty; when set, any
// <industry>_patterns.json files there override or extend the defaults, and
// feedback updates are persisted to ad_patterns.json inside it.
func Load(dataDir string) (*Database, error) {
	raw, err := defaultsFS.ReadFile("defaults.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}

	var file databaseFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse embedded defaults: %w", err)
	}

	db := &Database{
		industries: file.Industries,
		universal:  file.Universal,
	}

	if dataDir != "" {
		db.dataPath = filepath.Join(dataDir, "ad_patterns.json")
		db.loadDataDir(dataDir)
	}

	return db, nil
}

// loadDataDir merges the saved database and any individual industry files.
func (db *Database) loadDataDir(dataDir string) {
	if raw, err := os.ReadFile(db.dataPath); err == nil {
		var file databaseFile
		if err := json.Unmarshal(raw, &file); err != nil {
			slog.Warn("saved pattern database unreadable, keeping defaults", "path", db.dataPath, "error", err)
		} else {
			for k, v := range file.Industries {
				db.industries[k] = v
			}
		}
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, "_patterns.json") {
			continue
		}
		industry := strings.TrimSuffix(name, "_patterns.json")
		raw, err := os.ReadFile(filepath.Join(dataDir, name))
		if err != nil {
			continue
		}
		var ip IndustryPatterns
		if err := json.Unmarshal(raw, &ip); err != nil {
			slog.Warn("skipping unparseable pattern file", "file", name, "error", err)
			continue
		}
		db.industries[industry] = ip
		slog.Debug("loaded industry pattern file", "industry", industry)
	}
}

// Save writes the full database to the data path.
func (db *Database) Save() error {
	if db.dataPath == "" {
		return nil
	}
	db.mu.RLock()
	file := databaseFile{Industries: db.industries, Universal: db.universal}
	raw, err := json.MarshalIndent(file, "", "  ")
	db.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal pattern database: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(db.dataPath), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(db.dataPath, raw, 0644); err != nil {
		return fmt.Errorf("write pattern database: %w", err)
	}
	return nil
}

// industryKey resolves free-text industry to a database key. Unknown
// industries fall back to technology.
func (db *Database) industryKey(industry string) string {
	lower := strings.ToLower(strings.TrimSpace(industry))
	if lower == "" {
		return "technology"
	}

	if _, ok := db.industries[lower]; ok {
		return lower
	}

	for key := range db.industries {
		if strings.Contains(lower, key) || strings.Contains(key, lower) {
			return key
		}
	}

	for alias, key := range industryAliases {
		if strings.Contains(lower, alias) {
			if _, ok := db.industries[key]; ok {
				return key
			}
		}
	}

	slog.Debug("no pattern set for industry, using technology", "industry", industry)
	return "technology"
}

// IndustryFor returns the pattern set matched to a free-text industry.
func (db *Database) IndustryFor(industry string) IndustryPatterns {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.industries[db.industryKey(industry)]
}

// Universal returns patterns that work across industries.
func (db *Database) Universal() IndustryPatterns {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.universal
}

// Headlines returns the industry's headline patterns.
func (db *Database) Headlines(industry string) []Pattern {
	ip := db.IndustryFor(industry)
	return ip.HeadlinePatterns
}

// VisualApproaches returns the industry's visual approaches.
func (db *Database) VisualApproaches(industry string) []Pattern {
	ip := db.IndustryFor(industry)
	return ip.VisualApproaches
}

// CopyStructures returns the industry's copy structures, best first.
func (db *Database) CopyStructures(industry string) []Pattern {
	ip := db.IndustryFor(industry)
	ps := append([]Pattern(nil), ip.CopyStructures...)
	sortByEngagement(ps)
	return ps
}

// ColorSchemes returns the industry's color schemes.
func (db *Database) ColorSchemes(industry string) []Pattern {
	ip := db.IndustryFor(industry)
	return ip.ColorSchemes
}

// CallsToAction returns the industry's CTAs followed by the universal ones.
func (db *Database) CallsToAction(industry string) []Pattern {
	ip := db.IndustryFor(industry)

	db.mu.RLock()
	universal := db.universal.CallsToAction
	db.mu.RUnlock()

	out := append([]Pattern(nil), ip.CallsToAction...)
	out = append(out, universal...)
	sortByEngagement(out)
	return out
}

// BestPerforming returns the strongest pattern of a type for the industry.
// When platform or demographic is given and the patterns carry scores for
// it, those scores decide the winner instead of the overall rate.
func (db *Database) BestPerforming(patternType, industry, platform, demographic string) (Pattern, bool) {
	ip := db.IndustryFor(industry)
	ps := ip.byType(patternType)
	if len(ps) == 0 {
		db.mu.RLock()
		ps = db.universal.byType(patternType)
		db.mu.RUnlock()
	}
	if len(ps) == 0 {
		slog.Warn("no patterns of type for industry", "type", patternType, "industry", industry)
		return Pattern{}, false
	}

	type scored struct {
		p     Pattern
		score float64
	}

	var candidates []scored
	if platform != "" {
		lower := strings.ToLower(platform)
		for _, p := range ps {
			if s, ok := p.Metrics.PlatformPerformance[lower]; ok {
				candidates = append(candidates, scored{p, s})
			}
		}
	}
	if len(candidates) == 0 && demographic != "" {
		for _, p := range ps {
			if s, ok := p.DemographicPerformance[demographic]; ok {
				candidates = append(candidates, scored{p, s})
			}
		}
	}
	if len(candidates) == 0 {
		for _, p := range ps {
			candidates = append(candidates, scored{p, p.Metrics.AverageEngagementRate})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates[0].p, true
}

// FeedbackMetrics is engagement observed for a served creative.
type FeedbackMetrics struct {
	EngagementRate float64
	ClickThrough   float64
	Conversion     float64
}

// RecordFeedback folds observed performance into a pattern's metrics with a
// 90/10 weighted average, then persists the database.
func (db *Database) RecordFeedback(patternType, industry, patternID string, fb FeedbackMetrics) bool {
	db.mu.Lock()
	key := db.industryKey(industry)
	ip := db.industries[key]
	ps := ip.byType(patternType)

	updated := false
	for i := range ps {
		if ps[i].ID != patternID {
			continue
		}
		m := &ps[i].Metrics
		m.AverageEngagementRate = blendMetric(m.AverageEngagementRate, fb.EngagementRate)
		m.ClickThroughRate = blendMetric(m.ClickThroughRate, fb.ClickThrough)
		m.ConversionRate = blendMetric(m.ConversionRate, fb.Conversion)
		updated = true
		break
	}
	if updated {
		ip.setByType(patternType, ps)
		db.industries[key] = ip
	}
	db.mu.Unlock()

	if !updated {
		slog.Warn("pattern not found for feedback", "id", patternID, "industry", industry)
		return false
	}

	if err := db.Save(); err != nil {
		slog.Error("failed to persist pattern feedback", "error", err)
	}
	slog.Info("updated pattern performance", "id", patternID, "industry", industry)
	return true
}

// AddPattern registers a new pattern for an industry and persists it.
func (db *Database) AddPattern(patternType, industry string, p Pattern) error {
	if p.ID == "" {
		p.ID = fmt.Sprintf("%s_%s", patternType, uuid.NewString()[:8])
	}
	p.AddedOn = time.Now().UTC().Format(time.RFC3339)

	db.mu.Lock()
	key := strings.ToLower(strings.TrimSpace(industry))
	if key == "" {
		key = "technology"
	}
	ip := db.industries[key]
	ip.setByType(patternType, append(ip.byType(patternType), p))
	db.industries[key] = ip
	db.mu.Unlock()

	return db.Save()
}

func blendMetric(old, observed float64) float64 {
	if observed == 0 {
		return old
	}
	if old == 0 {
		return observed
	}
	return old*0.9 + observed*0.1
}

func sortByEngagement(ps []Pattern) {
	sort.SliceStable(ps, func(i, j int) bool {
		return ps[i].Metrics.AverageEngagementRate > ps[j].Metrics.AverageEngagementRate
	})
}
