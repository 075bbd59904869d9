package explain

// Meter is a coarse gauge of how much randomness a creativity value adds.
type Meter struct {
	Label string `json:"label"`
	Fill  int    `json:"fill"`
}

// RandomnessMeter buckets creativity (0-100) into a labelled fill level.
func RandomnessMeter(creativity int) Meter {
	n := float64(creativity) / 100
	switch {
	case n >= 0.8:
		return Meter{"Very High", 90}
	case n >= 0.6:
		return Meter{"High", 70}
	case n >= 0.4:
		return Meter{"Medium", 50}
	case n >= 0.2:
		return Meter{"Low", 30}
	default:
		return Meter{"Minimal", 10}
	}
}
