package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/LexOS/backend/internal/shared/types"
)

// AllCategories is the pseudo-category that matches every entry
const AllCategories = "All"

var (
	// ErrInvalidEntry is returned for an entry missing its id or title
	ErrInvalidEntry = errors.New("invalid catalog entry")
	// ErrDuplicateApp is returned when two entries share an id
	ErrDuplicateApp = errors.New("duplicate app id")
)

// Entry describes one launchable application kind
type Entry struct {
	ID       string                 `json:"id" yaml:"id" toml:"id"`
	Title    string                 `json:"title" yaml:"title" toml:"title"`
	Icon     types.Icon             `json:"icon" yaml:"icon" toml:"icon"`
	Kind     string                 `json:"kind" yaml:"kind" toml:"kind"`
	Category string                 `json:"category" yaml:"category" toml:"category"`
	Props    map[string]interface{} `json:"props,omitempty" yaml:"props,omitempty" toml:"props,omitempty"`
}

// NewContent builds a fresh panel for a window of this entry
func (e Entry) NewContent() types.Content {
	kind := e.Kind
	if kind == "" {
		kind = e.ID
	}
	return NewPanel(e.ID, kind, e.Props)
}

func (e Entry) clone() Entry {
	e.Props = cloneProps(e.Props)
	return e
}

func (e Entry) validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: %s: missing title", ErrInvalidEntry, e.ID)
	}
	return nil
}

// Catalog is an immutable lookup table from app id to entry, in declaration order
type Catalog struct {
	entries []Entry
	byID    map[string]int
}

// New builds a catalog, rejecting invalid and duplicate entries
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[e.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateApp, e.ID)
		}
		if e.Category == "" {
			e.Category = "General"
		}
		c.byID[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// With returns a new catalog holding c's entries followed by extra
func (c *Catalog) With(extra ...Entry) (*Catalog, error) {
	all := make([]Entry, 0, len(c.entries)+len(extra))
	all = append(all, c.entries...)
	all = append(all, extra...)
	return New(all...)
}

// Lookup returns the entry for an app id
func (c *Catalog) Lookup(id string) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i].clone(), true
}

// List returns all entries in declaration order
func (c *Catalog) List() []Entry {
	out := make([]Entry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.clone()
	}
	return out
}

// Len returns the number of entries
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Categories returns AllCategories followed by each distinct category in first-seen order
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	out := []string{AllCategories}
	for _, e := range c.entries {
		if !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	return out
}

// Filter returns entries whose title contains query (case-insensitive) and
// whose category matches. An empty category or AllCategories matches everything.
func (c *Catalog) Filter(query, category string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if q != "" && !strings.Contains(strings.ToLower(e.Title), q) {
			continue
		}
		if category != "" && category != AllCategories && e.Category != category {
			continue
		}
		out = append(out, e.clone())
	}
	return out
}

// Search returns entries whose title, id or category contains query
// (case-insensitive). An empty query returns every entry.
func (c *Catalog) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if q == "" ||
			strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.ID), q) ||
			strings.Contains(strings.ToLower(e.Category), q) {
			out = append(out, e.clone())
		}
	}
	return out
}
