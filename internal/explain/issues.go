package explain

import "strings"

// Issue is a potential problem spotted in an attempt.
type Issue struct {
	Kind      string `json:"kind"`
	Warning   string `json:"warning"`
	Education string `json:"education"`
}

// Text renders the issue as a fragment body.
func (i Issue) Text() string {
	return i.Warning + "\n💡 Learn: " + i.Education
}

// Detector is a rule that flags an issue in an attempt.
type Detector interface {
	Name() string
	Detect(in Input) (Issue, bool)
}

// DefaultDetectors returns the detectors in reporting order.
func DefaultDetectors() []Detector {
	return []Detector{
		&HallucinationDetector{},
		&BiasDetector{},
		&ExtremeRandomnessDetector{},
	}
}

// DetectIssues runs every detector and returns all issues found, in
// detector order.
func DetectIssues(detectors []Detector, in Input) []Issue {
	var issues []Issue
	for _, d := range detectors {
		if issue, ok := d.Detect(in); ok {
			issues = append(issues, issue)
		}
	}
	return issues
}

func containsAny(prompt string, terms []string) bool {
	lp := strings.ToLower(prompt)
	for _, t := range terms {
		if strings.Contains(lp, t) {
			return true
		}
	}
	return false
}

var hallucinationTriggers = []string{
	"impossible", "paradox", "contradiction", "infinite", "zero-dimensional",
	"transparent solid", "liquid gas", "dark light", "silent noise",
	"three-legged", "five-armed", "backwards forward", "inside-out",
}

// HallucinationDetector flags prompts describing physically impossible
// things.
type HallucinationDetector struct{}

func (d *HallucinationDetector) Name() string { return "hallucination" }

func (d *HallucinationDetector) Detect(in Input) (Issue, bool) {
	if !containsAny(in.Prompt, hallucinationTriggers) {
		return Issue{}, false
	}
	return Issue{
		Kind:      d.Name(),
		Warning:   "🚨 Hallucination Risk: This prompt might cause AI to generate physically impossible or nonsensical content",
		Education: "AI doesn't understand physical laws - it recreates visual patterns from training data",
	}, true
}

var biasTriggers = []string{
	"professional", "leader", "doctor", "engineer", "pilot",
	"beautiful", "attractive", "normal", "typical", "standard",
	"family", "wedding", "home", "neighborhood",
}

// BiasDetector flags prompts likely to surface demographic or aesthetic
// bias in training data.
type BiasDetector struct{}

func (d *BiasDetector) Name() string { return "bias" }

func (d *BiasDetector) Detect(in Input) (Issue, bool) {
	if !containsAny(in.Prompt, biasTriggers) {
		return Issue{}, false
	}
	return Issue{
		Kind:      d.Name(),
		Warning:   "⚖️ Bias Alert: This prompt might trigger cultural or demographic biases in AI training data",
		Education: "AI training data reflects human society's biases. Be aware of whose perspectives are represented",
	}, true
}

const extremeCreativity = 90

// ExtremeRandomnessDetector flags creativity above 90.
type ExtremeRandomnessDetector struct{}

func (d *ExtremeRandomnessDetector) Name() string { return "extreme_creativity" }

func (d *ExtremeRandomnessDetector) Detect(in Input) (Issue, bool) {
	if in.Creativity <= extremeCreativity {
		return Issue{}, false
	}
	return Issue{
		Kind:      d.Name(),
		Warning:   "🎲 Extreme Randomness: Very high creativity can produce completely unpredictable results",
		Education: "High temperature parameters make AI sample from unlikely possibilities - results may be nonsensical",
	}, true
}
