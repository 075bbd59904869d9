package explain

import "fmt"

const (
	literacyThreshold      = 0.7
	hallucinationDemoLevel = 3
	advancedLevel          = 6
)

var levelInsights = map[int]string{
	1:  "Great opening play: notice which rescue nouns actually moved the cat. Swap in a different tool next run and compare.",
	2:  "Vocabulary precision time: test one natural shade word versus one engineered solution and watch how the lighting shifts.",
	3:  "Impossible anatomy alert. Study how the AI improvises a third leg, then add supportive details if the pose feels unstable.",
	4:  "Context is king. Make sure every furniture or gadget you add reinforces “robots live here,” not humans.",
	5:  "Abstract joy without people. Layer color, light, and motion words, then prune anything that dulls the energy.",
	6:  "You now control the imagination dial. Keep creativity around 40–60% and iterate adjectives to refine the dreamscape vibe.",
	7:  "High-creativity sandbox: play with metaphors for time (rivers, galaxies, vintage clocks) and see which sticks.",
	8:  "Style weight unlocked. Focus on props, lighting, and textures that scream “vintage” before you crank the dial further.",
	9:  "You’re remixing history. Balance Ada’s Victorian notes with neon tech flourishes, then tweak palette keywords for contrast.",
	10: "Master tier reached! Combine Apollo motifs with geometric data patterns, then iterate on how clearly the story reads.",
}

const styledTimeInsight = "Treat this as a studio session with %s. Push creativity past 70%% and try contrasting metaphors for time."

// LevelInsight returns the pedagogical tip for a level. Level 7 has a
// variant used when a style is selected.
func LevelInsight(levelID int, style string) (string, bool) {
	if levelID == 7 && style != "" {
		return fmt.Sprintf(styledTimeInsight, style), true
	}
	s, ok := levelInsights[levelID]
	return s, ok
}

var levelLimitations = map[int]string{
	1:  `🧠 First AI Lesson: AI doesn't "see" like humans - it recognizes patterns from millions of training images`,
	2:  "🔍 Vocabulary Bias: AI's word associations come from human-created data, which can contain cultural biases",
	3:  "⚠️ AI Hallucination Demo: This impossible request shows AI doesn't understand physical reality - it just follows patterns",
	4:  `🤖 Context Limitation: AI processes your prompt but doesn't truly understand the "why" behind your request`,
	5:  "🎭 Emotional Simulation: AI doesn't feel emotions - it learned visual patterns humans associate with feelings",
	6:  `🎲 Randomness Reality: "Creativity" is actually controlled randomness in mathematical probability distributions`,
	7:  "📊 Parameter Truth: These sliders don't give AI actual artistic taste - they adjust statistical sampling methods",
	8:  "🎨 Style Mimicry: AI doesn't understand art history - it recreates visual patterns it learned from art data",
	9:  "🏗️ No True Understanding: Even with perfect results, AI doesn't comprehend architecture, physics, or aesthetics",
	10: "🎓 Final Truth: You've learned to control AI parameters, but remember - the creative vision is still yours!",
}

var criticalThinkingPrompts = []string{
	"🧪 Experiment Question: What would happen if AI was only trained on art from one culture?",
	"💭 Think Deeper: If AI generates something beautiful, who deserves credit - the AI, programmer, or you?",
	`🔬 Data Detective: This AI was trained on human-created art. How might this affect its "creativity"?`,
	"🌍 Bias Alert: AI training data reflects human society. What biases might show up in generated images?",
	"🎯 Reality Check: AI can create convincing but false information. How can you verify what's real?",
	"⚖️ Ethical Thinking: If AI can create art instantly, how might this impact human artists?",
	"🔮 Future Question: As AI gets more powerful, what skills will remain uniquely human?",
	"🧠 Meta-Cognition: You're learning about AI limitations - but do you know your own thinking limitations?",
}

var foundationalInsights = []string{
	"📚 Foundation: AI learns from human-created data, inheriting both knowledge and limitations",
	"🎯 Key Insight: AI excels at pattern recognition but lacks true understanding or consciousness",
	"🔍 Critical Skill: Always question AI outputs - even impressive results can contain errors or biases",
	"⚖️ Balance Point: AI is a powerful tool that amplifies human creativity rather than replacing it",
	"🌟 Remember: Your judgment, creativity, and ethical thinking remain uniquely valuable",
}

// LimitationInsight returns the AI-literacy message for a level. Levels
// without a dedicated entry draw from the critical-thinking pool (level 6
// and up) or the foundational pool.
func LimitationInsight(levelID int, rng Rand) string {
	if s, ok := levelLimitations[levelID]; ok {
		return s
	}
	if levelID >= advancedLevel {
		return pick(rng, criticalThinkingPrompts)
	}
	return pick(rng, foundationalInsights)
}
