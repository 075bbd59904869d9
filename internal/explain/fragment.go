package explain

import "strings"

// Category tags a fragment with the kind of explanation it carries.
type Category string

const (
	CategoryCreativity  Category = "creativity"
	CategoryStyle       Category = "style"
	CategoryCombination Category = "combination"
	CategoryWarning     Category = "warning"
	CategoryEducation   Category = "education"
	CategoryTechnical   Category = "technical"
	CategoryPrediction  Category = "prediction"
	CategoryGeneral     Category = "general"
)

var categoryIcons = map[Category]string{
	CategoryCreativity:  "🎨",
	CategoryStyle:       "🎭",
	CategoryCombination: "⚡",
	CategoryWarning:     "⚠️",
	CategoryEducation:   "🎓",
	CategoryTechnical:   "🔧",
	CategoryPrediction:  "🔮",
	CategoryGeneral:     "💡",
}

var categoryNames = map[Category]string{
	CategoryCreativity:  "Creativity Analysis",
	CategoryStyle:       "Style Analysis",
	CategoryCombination: "Parameter Synergy",
	CategoryWarning:     "AI Limitation Warning",
	CategoryEducation:   "AI Literacy Education",
	CategoryTechnical:   "Technical Insight",
	CategoryPrediction:  "Result Prediction",
	CategoryGeneral:     "General Analysis",
}

// Icon returns the emoji shown next to fragments of this category.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return "💡"
}

// DisplayName returns the heading shown above fragments of this category.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Analysis"
}

// Fragment is one self-contained unit of explanation text.
type Fragment struct {
	Category Category `json:"category"`
	Text     string   `json:"text"`
}

// Lines splits the fragment text on newlines.
func (f Fragment) Lines() []string {
	return strings.Split(f.Text, "\n")
}

// Texts flattens fragments to their text.
func Texts(frags []Fragment) []string {
	out := make([]string, len(frags))
	for i, f := range frags {
		out[i] = f.Text
	}
	return out
}

var classifyRules = []struct {
	category Category
	terms    []string
}{
	{CategoryCreativity, []string{"creativity", "temperature"}},
	{CategoryStyle, []string{"style", "artistic"}},
	{CategoryCombination, []string{"synergy", "combination"}},
	{CategoryWarning, []string{"warning", "risk", "hallucination"}},
	{CategoryEducation, []string{"bias", "limitation", "critical"}},
	{CategoryTechnical, []string{"technical", "parameter"}},
	{CategoryPrediction, []string{"prediction", "expect"}},
}

// Classify infers a category from free text. It is only used for text whose
// origin is unknown, such as model output; generated fragments carry their
// category explicitly.
func Classify(text string) Category {
	lt := strings.ToLower(text)
	for _, r := range classifyRules {
		for _, term := range r.terms {
			if strings.Contains(lt, term) {
				return r.category
			}
		}
	}
	return CategoryGeneral
}
