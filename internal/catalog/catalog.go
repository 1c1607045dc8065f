// Package catalog holds the vocabulary items a learner studies. The
// scheduling core only ever sees their identifiers.
package catalog

import (
	"strings"

	"github.com/pkg/errors"
)

// Item is one learnable vocabulary entry.
type Item struct {
	ID            string `json:"id"`
	Term          string `json:"term"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Category      string `json:"category,omitempty"`
	Level         string `json:"level,omitempty"` // CEFR level, A1..C2
}

// Catalog is an ordered, id-indexed set of items.
type Catalog struct {
	items []Item
	index map[string]int
}

// New builds a catalog, keeping the given order. Duplicate ids are rejected.
func New(items []Item) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(items))}
	for _, it := range items {
		if err := c.add(it); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Catalog) add(it Item) error {
	if it.ID == "" {
		return errors.New("item without id")
	}
	if _, dup := c.index[it.ID]; dup {
		return errors.Errorf("duplicate item id %q", it.ID)
	}
	c.index[it.ID] = len(c.items)
	c.items = append(c.items, it)
	return nil
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns every item in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// IDs returns every item id in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.items))
	for i, it := range c.items {
		ids[i] = it.ID
	}
	return ids
}

// Get looks an item up by id.
func (c *Catalog) Get(id string) (Item, bool) {
	i, ok := c.index[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, it := range c.items {
		if it.Category != "" && !seen[it.Category] {
			seen[it.Category] = true
			out = append(out, it.Category)
		}
	}
	return out
}

// Filter narrows a catalog. Zero fields match everything.
type Filter struct {
	Category string
	Level    string
	// Search matches case-insensitively against term and translation.
	Search string
}

func (f Filter) match(it Item) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, it.Category) {
		return false
	}
	if f.Level != "" && !strings.EqualFold(f.Level, it.Level) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		return strings.Contains(strings.ToLower(it.Term), q) ||
			strings.Contains(strings.ToLower(it.Translation), q)
	}
	return true
}

// Filter returns the matching items as a new catalog, in order.
func (c *Catalog) Filter(f Filter) *Catalog {
	out := &Catalog{index: make(map[string]int)}
	for _, it := range c.items {
		if f.match(it) {
			out.index[it.ID] = len(out.items)
			out.items = append(out.items, it)
		}
	}
	return out
}
