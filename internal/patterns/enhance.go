package patterns

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"
)

// PromptContext records which patterns shaped an enhanced prompt, so the
// served creative can be traced back for feedback.
type PromptContext struct {
	Industry        string
	HeadlinePattern Pattern
	VisualApproach  Pattern
	CopyStructure   Pattern
	CTA             Pattern
	Platform        string
	Demographic     string
}

// EnhanceAdPrompt wraps the user's request with the strongest patterns on
// record for the industry, producing the brief handed to the copywriter
// model.
func (db *Database) EnhanceAdPrompt(original, industry, platform, demographic string) (string, PromptContext) {
	headline, _ := db.BestPerforming(TypeHeadline, industry, platform, demographic)
	visual, _ := db.BestPerforming(TypeVisual, industry, platform, demographic)
	copyStructure, _ := db.BestPerforming(TypeCopy, industry, platform, demographic)
	cta, _ := db.BestPerforming(TypeCTA, industry, platform, demographic)

	headlineTemplate := headline.Template
	if headlineTemplate == "" {
		headlineTemplate = "Compelling headline for [Product]"
	}
	visualDescription := visual.Description
	if visualDescription == "" {
		visualDescription = "Professional product photography"
	}
	copyDescription := copyStructure.Description
	if copyDescription == "" {
		copyDescription = "Clear feature-benefit structure"
	}
	wordCount := copyStructure.AverageWordCount
	if wordCount == 0 {
		wordCount = 50
	}
	ctaText := cta.Text
	if ctaText == "" {
		ctaText = "Shop Now"
	}
	ctaPosition := cta.OptimalPosition
	if ctaPosition == "" {
		ctaPosition = "end"
	}

	prompt := fmt.Sprintf(`Create a high-converting advertisement for %s in the %s industry.

Based on pattern analysis of top-performing ads, use these specific elements:

1. HEADLINE PATTERN: %s
   - This pattern has %.1f%% engagement rate
   - Best for: %s

2. VISUAL APPROACH: %s
   - %.1f%% engagement rate

3. COPY STRUCTURE: %s
   - Optimal length: %d words
   - Include %.0f%% feature-benefit statements

4. CALL TO ACTION: %q
   - Optimal placement: %s of ad
   - %.1f%% engagement rate

Generate a complete ad including:
1. Headline following the pattern
2. Subheadline
3. Body copy following the structure
4. Call to action
5. Detailed image description following the visual approach

Format your response as a structured JSON object.`,
		original, industry,
		headlineTemplate, headline.Metrics.AverageEngagementRate, strings.Join(headline.BestFor, ", "),
		visualDescription, visual.Metrics.AverageEngagementRate,
		copyDescription, wordCount, copyStructure.FeatureBenefitPercentage,
		ctaText, ctaPosition, cta.Metrics.AverageEngagementRate)

	ctx := PromptContext{
		Industry:        industry,
		HeadlinePattern: headline,
		VisualApproach:  visual,
		CopyStructure:   copyStructure,
		CTA:             cta,
		Platform:        platform,
		Demographic:     demographic,
	}
	return prompt, ctx
}

// EnhanceImagePrompt rewrites an image brief around the industry's best
// visual approach, substituting the product and color scheme into the
// approach's ideal prompt when one exists.
func (db *Database) EnhanceImagePrompt(original, industry, visualStyle, platform string) string {
	approaches := db.VisualApproaches(industry)

	if visualStyle == "" && len(approaches) > 0 {
		best := approaches[0]
		if platform != "" {
			lower := strings.ToLower(platform)
			bestScore := -1.0
			for _, a := range approaches {
				if s, ok := a.Metrics.PlatformPerformance[lower]; ok && s > bestScore {
					best, bestScore = a, s
				}
			}
		} else {
			for _, a := range approaches {
				if a.Metrics.AverageEngagementRate > best.Metrics.AverageEngagementRate {
					best = a
				}
			}
		}
		visualStyle = best.Pattern
	}

	var ideal string
	for _, a := range approaches {
		if a.Pattern == visualStyle {
			ideal = a.IdealPrompt
			break
		}
	}

	if ideal == "" {
		return fmt.Sprintf("Professional advertisement for %s in %s industry. High-quality product photography, magazine quality, perfect lighting, clean composition.", original, industry)
	}

	enhanced := strings.ReplaceAll(ideal, "[product]", original)

	if schemes := db.ColorSchemes(industry); len(schemes) > 0 {
		enhanced = strings.ReplaceAll(enhanced, "[color]", schemes[0].Description)
	}

	switch strings.ToLower(platform) {
	case "instagram":
		enhanced += ", instagram aesthetic, square format, lifestyle"
	case "facebook":
		enhanced += ", facebook ad style, rectangular format, clear messaging"
	case "pinterest":
		enhanced += ", pinterest style, vertical format, inspirational"
	}
	return enhanced
}

// CopyScore grades copy against the industry's strongest patterns and lists
// what would move it closer to them.
type CopyScore struct {
	HeadlineScore        float64
	HeadlineImprovements []string
	BodyScore            float64
	BodyImprovements     []string
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// ScoreCopy evaluates a headline and body against the industry patterns.
func (db *Database) ScoreCopy(headline, bodyText, industry string) CopyScore {
	score := CopyScore{}

	for _, p := range db.Headlines(industry) {
		s := scoreAgainstPattern(headline, p.Pattern)
		if s > score.HeadlineScore {
			score.HeadlineScore = s
		}
		if s < 0.7 && p.Template != "" {
			score.HeadlineImprovements = append(score.HeadlineImprovements,
				fmt.Sprintf("Try the %s pattern (%.1f%% engagement): %s",
					p.Pattern, p.Metrics.AverageEngagementRate, p.Template))
		}
	}

	structures := db.CopyStructures(industry)
	if len(structures) == 0 {
		return score
	}
	best := structures[0]
	score.BodyScore = scoreAgainstStructure(bodyText, best.Pattern)

	if score.BodyScore < 0.7 {
		sentences := nonEmptySplit(bodyText)
		words := len(strings.Fields(bodyText))

		if best.AverageSentenceCount > 0 && len(sentences) != best.AverageSentenceCount {
			score.BodyImprovements = append(score.BodyImprovements,
				fmt.Sprintf("Adjust to %d sentences for +%.1f%% engagement",
					best.AverageSentenceCount, best.Metrics.AverageEngagementRate))
		}
		if best.AverageWordCount > 0 && abs(words-best.AverageWordCount) > 10 {
			direction := "Extend"
			if words > best.AverageWordCount {
				direction = "Shorten"
			}
			score.BodyImprovements = append(score.BodyImprovements,
				fmt.Sprintf("%s to %d words for optimal engagement", direction, best.AverageWordCount))
		}
		lower := strings.ToLower(bodyText)
		if best.FeatureBenefitPercentage > 50 &&
			!strings.Contains(lower, " so ") && !strings.Contains(lower, "which means") {
			score.BodyImprovements = append(score.BodyImprovements,
				"Add clear feature-benefit statements (X, which means Y)")
		}
	}
	return score
}

// Variant describes one A/B alternative of a served creative, varying a
// single major element against the base.
type Variant struct {
	ID               string
	HeadlinePattern  string
	HeadlineTemplate string
	CopyStructure    string
	CTAText          string
	CTAPosition      string
	Description      string
}

// ABVariants proposes count alternatives drawn from patterns the base did
// not use. Each variant changes exactly one element. A nil rng gets a
// time-seeded one; tests pass their own for determinism.
func (db *Database) ABVariants(industry string, count int, rng *rand.Rand) []Variant {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	headlines := skipFirst(db.Headlines(industry))
	structures := skipFirst(db.CopyStructures(industry))
	ctas := skipFirst(db.CallsToAction(industry))

	variants := make([]Variant, 0, count)
	for i := 0; i < count; i++ {
		v := Variant{ID: fmt.Sprintf("variant_%d", i+1)}

		switch rng.Intn(3) {
		case 0:
			if len(headlines) > 0 {
				p := headlines[rng.Intn(len(headlines))]
				v.HeadlinePattern = p.Pattern
				v.HeadlineTemplate = p.Template
				v.Description = "Alternative headline pattern: " + p.Pattern
			}
		case 1:
			if len(structures) > 0 {
				p := structures[rng.Intn(len(structures))]
				v.CopyStructure = p.Pattern
				v.Description = "Alternative copy structure: " + p.Pattern
			}
		default:
			if len(ctas) > 0 {
				p := ctas[rng.Intn(len(ctas))]
				v.CTAText = p.Text
				v.CTAPosition = p.OptimalPosition
				v.Description = "Alternative CTA: " + p.Text
			}
		}
		variants = append(variants, v)
	}
	return variants
}

// CategorizeHeadline names the pattern a headline follows.
func CategorizeHeadline(headline string) string {
	lower := strings.ToLower(headline)

	switch {
	case strings.Contains(headline, "?"):
		return "question"
	case regexp.MustCompile(`^\d+\s+`).MatchString(headline):
		return "numbered_list"
	case strings.HasPrefix(lower, "how to"):
		return "how_to"
	case containsAny(lower, "tired of", "sick of", "frustrated with", "problem"):
		return "problem_solution"
	case containsAny(lower, "introducing", "new", "announcing", "finally"):
		return "announcement"
	case strings.Contains(lower, " your "):
		return "command"
	}
	return "undefined"
}

// CategorizeCopy names the structure a body text follows.
func CategorizeCopy(text string) string {
	if strings.ContainsAny(text, "•*") {
		return "bullet_list"
	}
	if len(nonEmptySplit(text)) > 1 {
		return "paragraph"
	}
	return "short_form"
}

func scoreAgainstPattern(text, patternType string) float64 {
	lower := strings.ToLower(text)

	switch patternType {
	case "question":
		return boolScore(strings.Contains(text, "?"))
	case "numbered_list":
		return boolScore(regexp.MustCompile(`^\d+\s+`).MatchString(text))
	case "how_to":
		return boolScore(strings.HasPrefix(lower, "how to"))
	case "problem_solution":
		problem := containsAny(lower, "tired of", "sick of", "frustrated with", "problem")
		solution := containsAny(lower, "solution", "solves", "fix", "resolve")
		switch {
		case problem && solution:
			return 1.0
		case problem || solution:
			return 0.5
		}
		return 0.0
	case "announcement":
		return boolScore(containsAny(lower, "introducing", "new", "announcing", "finally"))
	}
	return 0.5
}

func scoreAgainstStructure(text, structureType string) float64 {
	switch structureType {
	case "paragraph":
		return boolScore(len(nonEmptySplit(text)) > 1 && !strings.Contains(text, "•"))
	case "bullet_list":
		return boolScore(strings.ContainsAny(text, "•*"))
	case "feature_benefit":
		lower := strings.ToLower(text)
		return boolScore(containsAny(lower, " so ", " which means ", " that means "))
	}
	return 0.5
}

func nonEmptySplit(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func skipFirst(ps []Pattern) []Pattern {
	if len(ps) > 1 {
		return ps[1:]
	}
	return ps
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func boolScore(b bool) float64 {
	if b {
		return 1.0
	}
	return 0.0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
