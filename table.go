package properties

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Table is a name-keyed collection of resolved properties. Iteration order is
// insertion order: ancestor-derived entries come first, the most specific
// definition of a name replaces the value without moving the key. The table
// is owned by the caller once returned and is not safe for concurrent
// mutation.
type Table[P PropertyInfo] struct {
	om *orderedmap.OrderedMap[string, P]
}

// NewTable creates an empty property table.
func NewTable[P PropertyInfo]() *Table[P] {
	return &Table[P]{om: orderedmap.New[string, P]()}
}

// Put inserts or replaces the property stored under name.
func (t *Table[P]) Put(name string, p P) {
	t.om.Set(name, p)
}

// Get returns the property stored under name.
func (t *Table[P]) Get(name string) (P, bool) {
	return t.om.Get(name)
}

// Len returns the number of properties in the table.
func (t *Table[P]) Len() int {
	return t.om.Len()
}

// Names returns the property names in insertion order.
func (t *Table[P]) Names() []string {
	names := make([]string, 0, t.om.Len())
	for pair := t.om.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Each calls fn for every entry in insertion order until fn returns false.
func (t *Table[P]) Each(fn func(name string, p P) bool) {
	for pair := t.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}
