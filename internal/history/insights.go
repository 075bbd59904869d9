package history

import (
	"fmt"
	"time"
)

// CompareEntries describes how current differs from previous. Changes of
// 10 points or less are not mentioned.
func CompareEntries(current, previous Entry) []string {
	dc := current.Creativity - previous.Creativity
	dw := current.StyleWeight - previous.StyleWeight

	var insights []string
	if abs(dc) > 10 {
		direction, effect := "decreased", "more conservative"
		if dc > 0 {
			direction, effect = "increased", "more unpredictable"
		}
		insights = append(insights,
			fmt.Sprintf("🎨 Creativity %s by %d%% - expect %s results", direction, abs(dc), effect))
	}
	if abs(dw) > 10 {
		direction := "weaker"
		if dw > 0 {
			direction = "stronger"
		}
		insights = append(insights,
			fmt.Sprintf("🎭 Style influence became %s by %d%%", direction, abs(dw)))
	}
	if abs(dc) > 20 && abs(dw) > 20 {
		insights = append(insights, "⚡ Major parameter shift detected - results may be dramatically different!")
	}
	return insights
}

// TruncatePrompt keeps the first PromptPreviewLen runes of p, marking a cut
// with "...".
func TruncatePrompt(p string) string {
	r := []rune(p)
	if len(r) <= PromptPreviewLen {
		return p
	}
	return string(r[:PromptPreviewLen]) + "..."
}

// CreativityClass buckets a creativity value for display.
type CreativityClass string

const (
	CreativityVeryLow  CreativityClass = "very-low"
	CreativityLow      CreativityClass = "low"
	CreativityMedium   CreativityClass = "medium"
	CreativityHigh     CreativityClass = "high"
	CreativityVeryHigh CreativityClass = "very-high"
)

// ClassifyCreativity maps 0–100 onto five bands with lower bounds 80, 60,
// 40 and 20.
func ClassifyCreativity(c int) CreativityClass {
	switch {
	case c >= 80:
		return CreativityVeryHigh
	case c >= 60:
		return CreativityHigh
	case c >= 40:
		return CreativityMedium
	case c >= 20:
		return CreativityLow
	default:
		return CreativityVeryLow
	}
}

// TimeAgo renders the time elapsed from then to now in whole minutes or
// hours.
func TimeAgo(then, now time.Time) string {
	minutes := int(now.Sub(then) / time.Minute)
	switch {
	case minutes < 1:
		return "Just now"
	case minutes == 1:
		return "1 min ago"
	case minutes < 60:
		return fmt.Sprintf("%d mins ago", minutes)
	}

	hours := minutes / 60
	if hours == 1 {
		return "1 hour ago"
	}
	return fmt.Sprintf("%d hours ago", hours)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
