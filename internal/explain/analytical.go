package explain

import (
	"context"
	"fmt"
)

type creativityBand struct {
	min        float64
	impact     string
	technical  string
	prediction string
}

// Bands are checked top-down; each lower bound is inclusive.
var creativityBands = []creativityBand{
	{0.8, "🎨 Ultra-high creativity (%d%%) pushes AI to explore unexpected combinations!",
		"Temperature >1.6 samples from probability distribution tails, generating low-probability but novel outputs",
		"Expect: Unique compositions, surprising color combinations, abstract interpretations"},
	{0.6, "🌟 High creativity (%d%%) encourages AI to explore more interesting visual expressions",
		"Moderate randomness adds variations on top of common patterns from training data",
		"Expect: Balanced mix of innovative and traditional elements"},
	{0.4, "⚖️ Medium creativity (%d%%) balances innovation with stability",
		"AI mainly selects common patterns from training data with occasional small variations",
		"Expect: Predictable but well-crafted traditional representations"},
	{0.2, "📏 Low creativity (%d%%) makes AI choose safer, more common representations",
		"AI strictly follows high-frequency patterns from training data",
		"Expect: Classic, conservative, high-quality standard outputs"},
	{0, "🔒 Minimal creativity (%d%%) restricts AI to most conservative content",
		"AI introduces almost no randomness, selecting highest probability outputs",
		"Expect: Cookie-cutter but technically perfect results"},
}

// CreativityAnalysis describes the effect of a creativity slider value.
func CreativityAnalysis(creativity int) string {
	norm := float64(creativity) / 100
	b := creativityBands[len(creativityBands)-1]
	for _, cand := range creativityBands {
		if norm >= cand.min {
			b = cand
			break
		}
	}
	return fmt.Sprintf(b.impact, creativity) +
		"\n💡 Technical: " + b.technical +
		"\n🔮 Prediction: " + b.prediction
}

// StyleAnalysis describes the effect of the style weight. It returns false
// when no style is selected.
func StyleAnalysis(style string, weight int) (string, bool) {
	if style == "" {
		return "", false
	}
	w := float64(weight) / 100
	switch {
	case w >= 0.7:
		return fmt.Sprintf("🎭 Strong style weight (%d%%) makes AI heavily imitate %s's artistic characteristics", weight, style) +
			"\n🎨 Technical: High style guidance dominates the generation process, overriding base content" +
			fmt.Sprintf("\n🖼️ Result: Expect strong %s signature elements like brushstrokes, color palettes, composition patterns", style), true
	case w >= 0.5:
		return fmt.Sprintf("🖼️ Medium style weight (%d%%) blends %s elements with base content", weight, style) +
			"\n⚖️ Technical: Balanced influence between content and style embeddings" +
			fmt.Sprintf("\n🎨 Result: Recognizable %s influence while maintaining prompt clarity", style), true
	case w >= 0.3:
		return fmt.Sprintf("🎨 Light style influence (%d%%) subtly adds %s flavor", weight, style) +
			"\n💫 Technical: Style acts as gentle guidance, not dominant force" +
			fmt.Sprintf("\n✨ Result: Hints of %s in color choices or composition, but content-focused", style), true
	default:
		return fmt.Sprintf("👻 Style weight too low (%d%%), %s influence barely visible", weight, style) +
			"\n📝 Technical: Style embeddings have minimal impact on generation" +
			"\n🤷 Result: Standard generation with negligible artistic style", true
	}
}

// Analytical is the full parameter analysis.
type Analytical struct {
	rng       Rand
	detectors []Detector
}

var _ Strategy = (*Analytical)(nil)

// NewAnalytical returns an Analytical strategy drawing from rng.
func NewAnalytical(rng Rand) *Analytical {
	return &Analytical{rng: rng, detectors: DefaultDetectors()}
}

func (a *Analytical) Mode() Mode { return ModeAnalytical }

// Explain emits, in order: keyword sentence, creativity band, style band,
// combination profile, level insight, detected issues, literacy message.
func (a *Analytical) Explain(_ context.Context, in Input) ([]Fragment, error) {
	var frags []Fragment

	if f, ok := keywordFragment(in); ok {
		frags = append(frags, f)
	}

	frags = append(frags, Fragment{Category: CategoryCreativity, Text: CreativityAnalysis(in.Creativity)})

	if s, ok := StyleAnalysis(in.Style, in.StyleWeight); ok {
		frags = append(frags, Fragment{Category: CategoryStyle, Text: s})
	}

	profile := CombinationProfile(float64(in.Creativity)/100, float64(in.StyleWeight)/100)
	frags = append(frags, Fragment{Category: CategoryCombination, Text: profile.Text()})

	if s, ok := LevelInsight(in.LevelID, in.Style); ok {
		frags = append(frags, Fragment{Category: CategoryTechnical, Text: s})
	}

	for _, issue := range DetectIssues(a.detectors, in) {
		frags = append(frags, Fragment{Category: CategoryWarning, Text: issue.Text()})
	}

	// The gate is drawn on every call so the random sequence does not
	// depend on the level.
	gate := a.rng.Float64() > literacyThreshold
	if gate || in.LevelID == hallucinationDemoLevel || in.LimitationDemo {
		frags = append(frags, Fragment{Category: CategoryEducation, Text: LimitationInsight(in.LevelID, a.rng)})
	}

	return frags, nil
}
