package history

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_NewestFirstAndCapped(t *testing.T) {
	h := New()
	for i := 0; i < MaxEntries+3; i++ {
		h.Add(fmt.Sprintf("prompt %d", i), i, "", 0, "")
	}

	entries := h.Entries()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, "prompt 12", entries[0].Prompt)
	assert.Equal(t, "prompt 3", entries[MaxEntries-1].Prompt)
	assert.Equal(t, "Generated", entries[0].Result)

	seen := map[string]bool{}
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestAdd_TruncatesPrompt(t *testing.T) {
	h := New()
	long := strings.Repeat("a", 60)
	e := h.Add(long, 50, "retro", 30, "Passed")

	assert.Equal(t, strings.Repeat("a", 50)+"...", e.Prompt)
	assert.Equal(t, "Passed", e.Result)
	assert.Equal(t, "retro (30%)", e.StyleInfo())

	exact := strings.Repeat("é", 50)
	assert.Equal(t, exact, TruncatePrompt(exact))
}

func TestEntriesIsACopy(t *testing.T) {
	h := New()
	h.Add("a tree", 50, "", 0, "")
	entries := h.Entries()
	entries[0].Prompt = "changed"

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, "a tree", latest.Prompt)
}

func TestClearAndSeed(t *testing.T) {
	h := New()
	h.Add("a", 1, "", 0, "")
	h.Clear()
	assert.Equal(t, 0, h.Len())
	_, ok := h.Latest()
	assert.False(t, ok)

	seed := make([]Entry, 12)
	for i := range seed {
		seed[i] = Entry{ID: fmt.Sprint(i)}
	}
	h.Seed(seed)
	assert.Equal(t, MaxEntries, h.Len())
	latest, _ := h.Latest()
	assert.Equal(t, "0", latest.ID)
}

func TestCompare(t *testing.T) {
	h := New()
	assert.Nil(t, h.Compare())

	h.Add("a", 40, "", 20, "")
	assert.Nil(t, h.Compare())

	h.Add("b", 70, "", 50, "")
	assert.Equal(t, []string{
		"🎨 Creativity increased by 30% - expect more unpredictable results",
		"🎭 Style influence became stronger by 30%",
		"⚡ Major parameter shift detected - results may be dramatically different!",
	}, h.Compare())
}

func TestCompareEntries(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur Entry
		want      []string
	}{
		{
			name: "small changes are ignored",
			prev: Entry{Creativity: 50, StyleWeight: 50},
			cur:  Entry{Creativity: 60, StyleWeight: 40},
			want: nil,
		},
		{
			name: "creativity decreased",
			prev: Entry{Creativity: 80},
			cur:  Entry{Creativity: 60},
			want: []string{"🎨 Creativity decreased by 20% - expect more conservative results"},
		},
		{
			name: "style weaker only",
			prev: Entry{Creativity: 50, StyleWeight: 90},
			cur:  Entry{Creativity: 50, StyleWeight: 10},
			want: []string{"🎭 Style influence became weaker by 80%"},
		},
		{
			name: "both changed but one by exactly 20 is not major",
			prev: Entry{Creativity: 50, StyleWeight: 50},
			cur:  Entry{Creativity: 70, StyleWeight: 80},
			want: []string{
				"🎨 Creativity increased by 20% - expect more unpredictable results",
				"🎭 Style influence became stronger by 30%",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareEntries(tt.cur, tt.prev))
		})
	}
}

func TestClassifyCreativity(t *testing.T) {
	tests := map[int]CreativityClass{
		0:   CreativityVeryLow,
		19:  CreativityVeryLow,
		20:  CreativityLow,
		40:  CreativityMedium,
		59:  CreativityMedium,
		60:  CreativityHigh,
		80:  CreativityVeryHigh,
		100: CreativityVeryHigh,
	}
	for c, want := range tests {
		assert.Equal(t, want, ClassifyCreativity(c), "creativity %d", c)
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Just now"},
		{59 * time.Second, "Just now"},
		{time.Minute, "1 min ago"},
		{119 * time.Second, "1 min ago"},
		{5 * time.Minute, "5 mins ago"},
		{59 * time.Minute, "59 mins ago"},
		{time.Hour, "1 hour ago"},
		{119 * time.Minute, "1 hour ago"},
		{3 * time.Hour, "3 hours ago"},
		{50 * time.Hour, "50 hours ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TimeAgo(now.Add(-tt.ago), now), tt.ago.String())
	}
}
