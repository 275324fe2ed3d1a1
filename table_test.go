package properties

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prop(name string) Accessor {
	return &fieldProperty{name: name, typ: reflect.TypeOf(""), index: []int{0}}
}

func TestTable_InsertionOrder(t *testing.T) {
	tbl := NewTable[Accessor]()
	tbl.Put("b", prop("b"))
	tbl.Put("a", prop("a"))
	tbl.Put("c", prop("c"))

	assert.Equal(t, []string{"b", "a", "c"}, tbl.Names())
	assert.Equal(t, 3, tbl.Len())
}

func TestTable_OverwriteKeepsPosition(t *testing.T) {
	tbl := NewTable[Accessor]()
	tbl.Put("a", prop("first"))
	tbl.Put("b", prop("b"))
	replacement := prop("second")
	tbl.Put("a", replacement)

	assert.Equal(t, []string{"a", "b"}, tbl.Names())
	got, ok := tbl.Get("a")
	require.True(t, ok)
	assert.Same(t, replacement, got)
}

func TestTable_Each(t *testing.T) {
	tbl := NewTable[Accessor]()
	tbl.Put("a", prop("a"))
	tbl.Put("b", prop("b"))
	tbl.Put("c", prop("c"))

	var seen []string
	tbl.Each(func(name string, _ Accessor) bool {
		seen = append(seen, name)
		return name != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestTable_GetMissing(t *testing.T) {
	tbl := NewTable[Mutator]()
	got, ok := tbl.Get("nope")
	assert.False(t, ok)
	assert.Nil(t, got)
}
