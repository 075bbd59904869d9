package explain

import (
	"context"
	"fmt"
	"strings"
)

var keywordExplanations = map[string]string{
	"ladder":    `AI learned the strong association "ladder = climbing tool" from training data, this is the most direct rescue solution`,
	"stairs":    "Stairs are similar to ladders, both related to vertical movement, AI easily makes this connection",
	"slide":     `A creative solution! AI understood the concept of "sliding down" and provided an interesting way to descend`,
	"rope":      "Rope demonstrates AI's deep understanding of climbing tools, this is a practical rescue tool",
	"umbrella":  "AI understands umbrellas can provide shade as well as rain protection, showing multifunctional tool recognition",
	"tree":      "AI connected natural shade concepts, demonstrating environmental understanding",
	"cloud":     "Clouds are natural sunshades, AI shows abstract understanding of natural phenomena",
	"hat":       "AI recognizes the practical function of hats, accurate understanding of everyday items",
	"happy":     "AI learned to transform positive words into bright colors and joyful expressions",
	"beautiful": "AI understands aesthetic concepts, choosing harmonious composition and colors",
	"creative":  "AI is inspired to seek unusual combinations and innovative elements",
}

const basicClosing = "💡 This demonstrates how AI transforms text into visual concepts"

// KeywordExplanation returns the canned sentence for keyword, or a templated
// one when the keyword has no entry.
func KeywordExplanation(keyword string) string {
	if s, ok := keywordExplanations[strings.ToLower(keyword)]; ok {
		return s
	}
	return fmt.Sprintf(`AI found relevant patterns for "%s" in training data and generated corresponding visual representation`, keyword)
}

func keywordFragment(in Input) (Fragment, bool) {
	if len(in.MatchedKeywords) == 0 {
		return Fragment{}, false
	}
	return Fragment{
		Category: CategoryGeneral,
		Text:     "🎯 " + KeywordExplanation(in.MatchedKeywords[0]),
	}, true
}

// Basic explains only the first matched keyword. It is deterministic and
// never fails.
type Basic struct{}

var _ Strategy = Basic{}

func (Basic) Mode() Mode { return ModeBasic }

func (Basic) Explain(_ context.Context, in Input) ([]Fragment, error) {
	var frags []Fragment
	if f, ok := keywordFragment(in); ok {
		frags = append(frags, f)
	}
	return append(frags, Fragment{Category: CategoryGeneral, Text: basicClosing}), nil
}
