// Package history keeps the player's most recent parameter combinations and
// compares consecutive attempts.
package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxEntries is how many attempts are kept; older ones fall off.
	MaxEntries = 10

	// PromptPreviewLen is the number of runes of a prompt kept in an entry.
	PromptPreviewLen = 50

	// ComparisonTitle heads the comparison insights list.
	ComparisonTitle = "🔍 Parameter Comparison Insights"
)

// Entry is one recorded attempt.
type Entry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Prompt      string    `json:"prompt"`
	Creativity  int       `json:"creativity"`
	Style       string    `json:"style,omitempty"`
	StyleWeight int       `json:"style_weight"`
	Result      string    `json:"result"`
}

// StyleInfo renders the style with its weight, or "None".
func (e Entry) StyleInfo() string {
	if e.Style == "" {
		return "None"
	}
	return fmt.Sprintf("%s (%d%%)", e.Style, e.StyleWeight)
}

// History is a newest-first ring of at most MaxEntries entries. It is safe
// for concurrent use.
type History struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
}

// New returns an empty History.
func New() *History {
	return &History{now: time.Now}
}

// Add records an attempt and returns the stored entry. An empty result is
// recorded as "Generated".
func (h *History) Add(prompt string, creativity int, style string, styleWeight int, result string) Entry {
	if result == "" {
		result = "Generated"
	}
	e := Entry{
		ID:          uuid.NewString(),
		Timestamp:   h.now(),
		Prompt:      TruncatePrompt(prompt),
		Creativity:  creativity,
		Style:       style,
		StyleWeight: styleWeight,
		Result:      result,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]Entry{e}, h.entries...)
	if len(h.entries) > MaxEntries {
		h.entries = h.entries[:MaxEntries]
	}
	return e
}

// Seed replaces the contents with entries, given newest first. Extra entries
// beyond MaxEntries are dropped.
func (h *History) Seed(entries []Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := min(len(entries), MaxEntries)
	h.entries = append([]Entry(nil), entries[:n]...)
}

// Entries returns a copy of the entries, newest first.
func (h *History) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Entry(nil), h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Latest returns the newest entry.
func (h *History) Latest() (Entry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[0], true
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}

// Compare returns insights comparing the two newest entries, or nil when
// fewer than two exist.
func (h *History) Compare() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) < 2 {
		return nil
	}
	return CompareEntries(h.entries[0], h.entries[1])
}
