package levels

import (
	"strings"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestDefault_Loads(t *testing.T) {
	c := Default()
	if c.Total() != 10 {
		t.Fatalf("got %d levels, want 10", c.Total())
	}
	for _, l := range c.All() {
		got, ok := c.Get(l.ID)
		if !ok {
			t.Fatalf("Get(%d) not found", l.ID)
		}
		if got.Problem != l.Problem {
			t.Errorf("Get(%d) problem = %q, want %q", l.ID, got.Problem, l.Problem)
		}
		if len(l.SafeMode.CoreElements) == 0 || len(l.SafeMode.SolutionTools) == 0 || len(l.SafeMode.ActionMethods) == 0 {
			t.Errorf("level %d has incomplete safe-mode options", l.ID)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	c := Default()
	for _, id := range []int{0, -1, 11, 1000} {
		if _, ok := c.Get(id); ok {
			t.Errorf("Get(%d) should not be found", id)
		}
	}
}

func TestNextAndFinal(t *testing.T) {
	c := Default()
	n := c.Total()

	if _, ok := c.Next(n); ok {
		t.Error("Next(last) should be absent")
	}
	next, ok := c.Next(n - 1)
	if !ok || next.ID != n {
		t.Errorf("Next(%d) = %d, %v; want %d", n-1, next.ID, ok, n)
	}
	for id := 1; id <= n; id++ {
		if got := c.IsFinal(id); got != (id == n) {
			t.Errorf("IsFinal(%d) = %v", id, got)
		}
	}
}

func TestShouldUnlockParameters(t *testing.T) {
	c := Default()
	tests := []struct {
		id   int
		want bool
	}{
		{1, false},
		{5, false},
		{6, true},
		{10, true},
		{99, false},
	}
	for _, tt := range tests {
		if got := c.ShouldUnlockParameters(tt.id); got != tt.want {
			t.Errorf("ShouldUnlockParameters(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestHints(t *testing.T) {
	c := Default()
	if h := c.Hints(1); len(h) != 3 {
		t.Errorf("got %d hints for level 1, want 3", len(h))
	}
	if h := c.Hints(42); len(h) != 0 {
		t.Errorf("unknown level returned hints: %v", h)
	}

	h := c.Hints(1)
	h[0] = "mutated"
	if c.Hints(1)[0] == "mutated" {
		t.Error("Hints returned the catalog's backing slice")
	}
}

func TestLevelThresholds(t *testing.T) {
	c := Default()
	l6, _ := c.Get(6)
	if l6.RequiredCreativity == nil || *l6.RequiredCreativity != 0.4 {
		t.Errorf("level 6 required creativity = %v, want 0.4", l6.RequiredCreativity)
	}
	if l6.RequiredStyleWeight != nil {
		t.Error("level 6 should not require a style weight")
	}
	l8, _ := c.Get(8)
	if !l8.HasStyle("vintage") || l8.HasStyle("cyberpunk") {
		t.Errorf("level 8 styles = %v", l8.AvailableStyles)
	}
	l3, _ := c.Get(3)
	if !l3.AILimitationDemo {
		t.Error("level 3 should be the AI limitation demo")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		levels []Level
		want   string
	}{
		{"empty", nil, "no levels"},
		{"gap", []Level{
			{ID: 1, Problem: "a", SolutionKeywords: []string{"x"}},
			{ID: 3, Problem: "b", SolutionKeywords: []string{"y"}},
		}, "has id 3, want 2"},
		{"no keywords", []Level{{ID: 1, Problem: "a"}}, "no solution keywords"},
		{"threshold range", []Level{
			{ID: 1, Problem: "a", SolutionKeywords: []string{"x"}, UnlockParameters: true, RequiredCreativity: f64(1.5)},
		}, "outside [0,1]"},
		{"locked thresholds", []Level{
			{ID: 1, Problem: "a", SolutionKeywords: []string{"x"}, RequiredStyleWeight: f64(0.5)},
		}, "without unlock_parameters"},
		{"duplicate style", []Level{
			{ID: 1, Problem: "a", SolutionKeywords: []string{"x"}, AvailableStyles: []string{"ink", "ink"}},
		}, "twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.levels)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := []Level{{ID: 1, Problem: "orig", SolutionKeywords: []string{"x"}}}
	c, err := New(in)
	if err != nil {
		t.Fatal(err)
	}
	in[0].Problem = "changed"
	l, _ := c.Get(1)
	if l.Problem != "orig" {
		t.Errorf("catalog observed caller mutation: %q", l.Problem)
	}
}

func TestTitle(t *testing.T) {
	short := Level{Problem: "Short one"}
	if short.Title() != "Short one" {
		t.Errorf("Title() = %q", short.Title())
	}
	long := Level{Problem: "A little cat is trapped high up in a tree branch."}
	got := long.Title()
	if got != "A little cat is trapped high up ..." {
		t.Errorf("Title() = %q", got)
	}
}

func TestComposeSafePrompt(t *testing.T) {
	tests := []struct {
		core, tool, action string
		want               string
	}{
		{"cat", "a ladder", "place", "place a ladder to help the cat"},
		{"", "a ladder", "place", "place a ladder"},
		{"cat", "a ladder", "", "a ladder for the cat"},
		{"", "a ladder", "", "a ladder"},
		{"cat", "", "", "cat"},
		{"cat", "", "place", "cat"},
		{"", "", "place", ""},
	}
	for _, tt := range tests {
		if got := ComposeSafePrompt(tt.core, tt.tool, tt.action); got != tt.want {
			t.Errorf("ComposeSafePrompt(%q, %q, %q) = %q, want %q", tt.core, tt.tool, tt.action, got, tt.want)
		}
	}
}

func TestTargets(t *testing.T) {
	c := Default()

	l1, _ := c.Get(1)
	if l1.CreativityTarget() != nil || l1.StyleWeightTarget() != nil {
		t.Error("level 1 should have no parameter targets")
	}

	l9, _ := c.Get(9)
	if got := l9.CreativityTarget(); got == nil || *got != 65 {
		t.Errorf("level 9 creativity target = %v, want 65", got)
	}
	if got := l9.StyleWeightTarget(); got == nil || *got != 60 {
		t.Errorf("level 9 style weight target = %v, want 60", got)
	}
}
