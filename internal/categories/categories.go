// Package categories classifies account numbers into the hierarchical
// Bilanz structure of the HGB (Anlagevermögen, Umlaufvermögen, Eigenkapital,
// Fremdkapital and their subcategories).
//
// The tree is an arena of Category records addressed by Key; parent and child
// links are keys, never pointers. A Map is validated once when it is built and
// is read-only afterwards, so it is safe for concurrent use.
package categories

import (
	"fmt"
	"sort"
)

// Key identifies a category in the tree.
type Key string

// Section is a side of the Bilanz.
type Section string

const (
	Aktiva  Section = "aktiva"
	Passiva Section = "passiva"
	// Unknown is reported for accounts that do not appear on the Bilanz.
	Unknown Section = "unknown"
)

// Category is one node of the category tree.
type Category struct {
	Key       Key
	Name      string
	Parent    Key // empty for main categories
	Children  []Key
	Section   Section
	SortOrder int
}

// IsMain reports whether c is a top-level category.
func (c Category) IsMain() bool {
	return c.Parent == ""
}

// Range maps an inclusive span of 4-digit account numbers to a category.
// Bounds are compared lexicographically.
type Range struct {
	Start    string
	End      string
	Category Key
}

// Contains reports whether number lies inside r.
func (r Range) Contains(number string) bool {
	return r.Start <= number && number <= r.End
}

// Map is the static category tree plus its number-range tables.
type Map struct {
	nodes     []Category
	index     map[Key]int
	ranges    []Range
	fallbacks []Range
}

// New builds and validates a Map. ranges are the explicit number ranges;
// fallbacks are consulted only when no explicit range matches.
func New(nodes []Category, ranges, fallbacks []Range) (*Map, error) {
	m := &Map{
		nodes:     make([]Category, len(nodes)),
		index:     make(map[Key]int, len(nodes)),
		ranges:    append([]Range(nil), ranges...),
		fallbacks: append([]Range(nil), fallbacks...),
	}
	for i, n := range nodes {
		if n.Key == "" {
			return nil, fmt.Errorf("category %d: empty key", i)
		}
		if _, dup := m.index[n.Key]; dup {
			return nil, fmt.Errorf("category %q: duplicate key", n.Key)
		}
		n.Children = append([]Key(nil), n.Children...)
		m.nodes[i] = n
		m.index[n.Key] = i
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// MustNew is like New but panics on an invalid tree.
func MustNew(nodes []Category, ranges, fallbacks []Range) *Map {
	m, err := New(nodes, ranges, fallbacks)
	if err != nil {
		panic("categories: " + err.Error())
	}
	return m
}

func (m *Map) validate() error {
	for _, n := range m.nodes {
		if n.Section != Aktiva && n.Section != Passiva {
			return fmt.Errorf("category %q: invalid section %q", n.Key, n.Section)
		}
		if n.Parent != "" {
			pi, ok := m.index[n.Parent]
			if !ok {
				return fmt.Errorf("category %q: unknown parent %q", n.Key, n.Parent)
			}
			parent := m.nodes[pi]
			if parent.Section != n.Section {
				return fmt.Errorf("category %q: section %s differs from parent %q (%s)", n.Key, n.Section, parent.Key, parent.Section)
			}
			if !containsKey(parent.Children, n.Key) {
				return fmt.Errorf("category %q: parent %q does not list it as a child", n.Key, n.Parent)
			}
		}
		for _, c := range n.Children {
			ci, ok := m.index[c]
			if !ok {
				return fmt.Errorf("category %q: unknown child %q", n.Key, c)
			}
			if m.nodes[ci].Parent != n.Key {
				return fmt.Errorf("category %q: child %q has parent %q", n.Key, c, m.nodes[ci].Parent)
			}
		}
	}

	// Walk every parent chain; a chain longer than the arena is a cycle.
	for _, n := range m.nodes {
		cur := n
		for steps := 0; cur.Parent != ""; steps++ {
			if steps >= len(m.nodes) {
				return fmt.Errorf("category %q: parent chain contains a cycle", n.Key)
			}
			cur = m.nodes[m.index[cur.Parent]]
		}
	}

	if err := m.validateRanges("range", m.ranges); err != nil {
		return err
	}
	return m.validateRanges("fallback", m.fallbacks)
}

func (m *Map) validateRanges(kind string, ranges []Range) error {
	for i, r := range ranges {
		if !isAccountNumber(r.Start) || !isAccountNumber(r.End) {
			return fmt.Errorf("%s %d: bounds %q-%q must be 4 digits", kind, i, r.Start, r.End)
		}
		if r.Start > r.End {
			return fmt.Errorf("%s %d: start %s after end %s", kind, i, r.Start, r.End)
		}
		if _, ok := m.index[r.Category]; !ok {
			return fmt.Errorf("%s %d: unknown category %q", kind, i, r.Category)
		}
		for j := 0; j < i; j++ {
			o := ranges[j]
			if r.Start <= o.End && o.Start <= r.End {
				return fmt.Errorf("%s %s-%s overlaps %s-%s", kind, r.Start, r.End, o.Start, o.End)
			}
		}
	}
	return nil
}

// Get returns the category for k.
func (m *Map) Get(k Key) (Category, bool) {
	i, ok := m.index[k]
	if !ok {
		return Category{}, false
	}
	return m.nodes[i], true
}

// Name returns the display name of k, or the key itself when unknown.
func (m *Map) Name(k Key) string {
	if c, ok := m.Get(k); ok {
		return c.Name
	}
	return string(k)
}

// CategoryFor classifies an account number. Explicit ranges win; otherwise the
// section-level fallback applies. Numbers of Erfolgskonten (4000-9999) and
// malformed numbers have no category.
func (m *Map) CategoryFor(number string) (Key, bool) {
	if !isAccountNumber(number) {
		return "", false
	}
	for _, r := range m.ranges {
		if r.Contains(number) {
			return r.Category, true
		}
	}
	for _, r := range m.fallbacks {
		if r.Contains(number) {
			return r.Category, true
		}
	}
	return "", false
}

// PathToRoot returns the chain of categories from the main category down to k.
// It returns nil for an unknown key.
func (m *Map) PathToRoot(k Key) []Category {
	c, ok := m.Get(k)
	if !ok {
		return nil
	}
	path := []Category{c}
	for c.Parent != "" {
		c = m.nodes[m.index[c.Parent]]
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// MainOf returns the top-level ancestor of k (k itself for a main category).
func (m *Map) MainOf(k Key) (Category, bool) {
	path := m.PathToRoot(k)
	if len(path) == 0 {
		return Category{}, false
	}
	return path[0], true
}

// ChildrenOf returns the direct children of k ordered by SortOrder.
func (m *Map) ChildrenOf(k Key) []Category {
	c, ok := m.Get(k)
	if !ok {
		return nil
	}
	children := make([]Category, 0, len(c.Children))
	for _, ck := range c.Children {
		children = append(children, m.nodes[m.index[ck]])
	}
	sortCategories(children)
	return children
}

// MainCategories returns the top-level categories of section ordered by
// SortOrder. An empty section returns the main categories of both sides.
func (m *Map) MainCategories(section Section) []Category {
	var mains []Category
	for _, n := range m.nodes {
		if !n.IsMain() {
			continue
		}
		if section != "" && n.Section != section {
			continue
		}
		mains = append(mains, n)
	}
	sortCategories(mains)
	return mains
}

// InSection reports whether k belongs to section.
func (m *Map) InSection(k Key, section Section) bool {
	c, ok := m.Get(k)
	return ok && c.Section == section
}

// All returns every category in declaration order.
func (m *Map) All() []Category {
	return append([]Category(nil), m.nodes...)
}

// Ranges returns the explicit number ranges.
func (m *Map) Ranges() []Range {
	return append([]Range(nil), m.ranges...)
}

func sortCategories(cs []Category) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].SortOrder < cs[j].SortOrder })
}

func containsKey(keys []Key, k Key) bool {
	for _, x := range keys {
		if x == k {
			return true
		}
	}
	return false
}

func isAccountNumber(s string) bool {
	if len(s) != 4 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
