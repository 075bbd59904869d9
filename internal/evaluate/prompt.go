package evaluate

// StyledPrompt decorates base with style according to weight (0-100).
func StyledPrompt(base, style string, weight int) string {
	if style == "" || weight <= 0 {
		return base
	}
	w := float64(clamp(weight)) / 100
	switch {
	case w < 0.1:
		return base
	case w < 0.5:
		return base + ", in the style of " + style
	case w < 0.8:
		return base + ", painted in the distinct, expressive style of " + style
	default:
		return "Masterpiece, best quality, " + base + ", perfectly capturing the dramatic and emotional style of " + style
	}
}

const maxTemperature = 2.0

// Temperature maps a creativity slider value onto a sampling temperature in
// [0,2].
func Temperature(creativity int) float64 {
	return min(float64(clamp(creativity))/50, maxTemperature)
}
