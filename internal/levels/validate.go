package levels

import (
	"fmt"
	"strings"
)

// validateLevels checks catalog structure and returns every problem found
// as a single error.
func validateLevels(lv []Level) error {
	var errs []string

	if len(lv) == 0 {
		errs = append(errs, "catalog has no levels")
	}

	for i, l := range lv {
		if l.ID != i+1 {
			errs = append(errs, fmt.Sprintf("level at position %d has id %d, want %d", i, l.ID, i+1))
		}
		if strings.TrimSpace(l.Problem) == "" {
			errs = append(errs, fmt.Sprintf("level %d has empty problem text", l.ID))
		}
		if len(l.SolutionKeywords) == 0 {
			errs = append(errs, fmt.Sprintf("level %d has no solution keywords", l.ID))
		}
		for _, k := range l.SolutionKeywords {
			if strings.TrimSpace(k) == "" {
				errs = append(errs, fmt.Sprintf("level %d has a blank solution keyword", l.ID))
			}
		}
		errs = append(errs, checkThreshold(l.ID, "required_creativity", l.RequiredCreativity)...)
		errs = append(errs, checkThreshold(l.ID, "required_style_weight", l.RequiredStyleWeight)...)
		if !l.UnlockParameters && (l.RequiredCreativity != nil || l.RequiredStyleWeight != nil) {
			errs = append(errs, fmt.Sprintf("level %d sets parameter thresholds without unlock_parameters", l.ID))
		}

		seen := make(map[string]bool, len(l.AvailableStyles))
		for _, s := range l.AvailableStyles {
			if seen[s] {
				errs = append(errs, fmt.Sprintf("level %d lists style %q twice", l.ID, s))
			}
			seen[s] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("level catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

func checkThreshold(id int, name string, v *float64) []string {
	if v == nil {
		return nil
	}
	if *v < 0 || *v > 1 {
		return []string{fmt.Sprintf("level %d %s %.2f is outside [0,1]", id, name, *v)}
	}
	return nil
}
