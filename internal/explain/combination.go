package explain

import (
	"fmt"
	"math"
)

// Profile describes how creativity and style weight interact.
type Profile struct {
	Name     string
	Emoji    string
	Synergy  string
	Expected string
	Tip      string
}

// Profile names.
const (
	ProfileFusion    = "Ultra-Creative Artistic Fusion"
	ProfileChaos     = "Pure Creative Chaos"
	ProfileClassical = "Classical Stylistic Adherence"
	ProfileSafe      = "Safe Standard Generation"
	ProfileBalance   = "Golden Balance Sweet Spot"
	ProfileBlend     = "Moderate Creative-Style Blend"
)

// CombinationProfile classifies normalized creativity and style weight.
// Rules are tried in order; the first match wins.
func CombinationProfile(creativity, styleWeight float64) Profile {
	switch {
	case creativity > 0.7 && styleWeight > 0.7:
		return Profile{
			Name:     ProfileFusion,
			Emoji:    "🚀",
			Synergy:  "Maximum unpredictability with strong artistic guidance",
			Expected: "Highly unique interpretations with strong style signatures",
			Tip:      "Perfect for experimental art, expect surprising but stylistically consistent results",
		}
	case creativity > 0.7 && styleWeight < 0.3:
		return Profile{
			Name:     ProfileChaos,
			Emoji:    "🌪️",
			Synergy:  "Maximum freedom with minimal artistic constraints",
			Expected: "Wild, unpredictable, completely original creations",
			Tip:      "Great for brainstorming and breaking creative boundaries",
		}
	case creativity < 0.3 && styleWeight > 0.7:
		return Profile{
			Name:     ProfileClassical,
			Emoji:    "🏛️",
			Synergy:  "Strong style guidance with conservative interpretation",
			Expected: "Perfect style imitation with predictable compositions",
			Tip:      "Ideal for studying and reproducing classic artistic styles",
		}
	case creativity < 0.3 && styleWeight < 0.3:
		return Profile{
			Name:     ProfileSafe,
			Emoji:    "📐",
			Synergy:  "Minimal risk, maximum predictability",
			Expected: "High-quality but conventional results",
			Tip:      "Best for professional, consistent, reliable outputs",
		}
	case inRange(creativity, 0.4, 0.6) && inRange(styleWeight, 0.4, 0.6):
		return Profile{
			Name:     ProfileBalance,
			Emoji:    "⚖️",
			Synergy:  "Optimal balance between creativity and style control",
			Expected: "Interesting variations with recognizable style elements",
			Tip:      "Recommended for most use cases - reliable yet creative",
		}
	case math.Abs(creativity-styleWeight) > 0.5:
		return dominantProfile(creativity > styleWeight)
	default:
		return Profile{
			Name:     ProfileBlend,
			Emoji:    "🎨",
			Synergy:  "Balanced interaction between creative exploration and style guidance",
			Expected: "Consistent quality with moderate creative variations",
			Tip:      "Adjust either parameter for more dramatic effects",
		}
	}
}

func dominantProfile(creativityLeads bool) Profile {
	label, dominant, other, tip := "Style", "style", "creative", "boosting creativity"
	if creativityLeads {
		label, dominant, other, tip = "Creativity", "creativity", "style", "increasing style weight"
	}
	return Profile{
		Name:     label + "-Dominant Hybrid",
		Emoji:    "🎭",
		Synergy:  fmt.Sprintf("Strong %s influence with subtle %s undertones", dominant, other),
		Expected: fmt.Sprintf("Results heavily influenced by %s parameter", dominant),
		Tip:      fmt.Sprintf("Consider %s for more balanced results", tip),
	}
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// Text renders the profile as a single fragment body.
func (p Profile) Text() string {
	return fmt.Sprintf("%s %s\n🧬 Synergy Effect: %s\n⚡ Expected Output: %s\n🎯 Pro Tip: %s",
		p.Emoji, p.Name, p.Synergy, p.Expected, p.Tip)
}
