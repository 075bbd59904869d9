package levels

import (
	"errors"
	"slices"
)

// ErrLevelNotFound is returned by helpers that need a level to exist.
// Catalog accessors report absence through their boolean result instead.
var ErrLevelNotFound = errors.New("level not found")

// Catalog is an ordered, immutable set of levels with ids 1..N.
type Catalog struct {
	levels []Level
	byID   map[int]*Level
}

// New validates levels and builds a catalog over a private copy of them.
func New(lv []Level) (*Catalog, error) {
	if err := validateLevels(lv); err != nil {
		return nil, err
	}
	c := &Catalog{
		levels: slices.Clone(lv),
		byID:   make(map[int]*Level, len(lv)),
	}
	for i := range c.levels {
		c.byID[c.levels[i].ID] = &c.levels[i]
	}
	return c, nil
}

// Get returns the level with the given id.
func (c *Catalog) Get(id int) (Level, bool) {
	l, ok := c.byID[id]
	if !ok {
		return Level{}, false
	}
	return *l, true
}

// Total returns the number of levels.
func (c *Catalog) Total() int {
	return len(c.levels)
}

// Next returns the level after id, or false when id is the last one.
func (c *Catalog) Next(id int) (Level, bool) {
	return c.Get(id + 1)
}

// IsFinal reports whether id is the last level.
func (c *Catalog) IsFinal(id int) bool {
	return id == len(c.levels)
}

// ShouldUnlockParameters reports whether the sliders are active for id.
// Unknown ids report false.
func (c *Catalog) ShouldUnlockParameters(id int) bool {
	l, ok := c.byID[id]
	return ok && l.UnlockParameters
}

// Hints returns the hints for id, or nil if the level is unknown.
func (c *Catalog) Hints(id int) []string {
	l, ok := c.byID[id]
	if !ok {
		return nil
	}
	return slices.Clone(l.Hints)
}

// All returns the levels in catalog order.
func (c *Catalog) All() []Level {
	return slices.Clone(c.levels)
}
