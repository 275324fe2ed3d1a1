package document

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Station-Manager/properties"
)

type tagEmbedded struct {
	CreatedAt string `json:"created_at"`
}

type tagTarget struct {
	tagEmbedded
	Name   string `json:"name"`
	Age    int    `json:"age,omitempty"`
	Secret string `json:"-"`
	Plain  string
	hidden int
}

func TestTagWriter_MemberNames(t *testing.T) {
	w := NewTagWriter()

	require.True(t, w.Supports(reflect.TypeOf(tagTarget{})))
	require.True(t, w.Supports(reflect.TypeOf(&tagTarget{})))
	assert.True(t, w.SupportsMemberEnumeration())

	names, err := w.MemberNames(reflect.TypeOf(tagTarget{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"created_at", "name", "age", "Plain"}, names)
}

func TestTagWriter_MemberSet(t *testing.T) {
	w := NewTagWriter()
	typ := reflect.TypeOf(tagTarget{})

	m, err := w.Member(typ, "name")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, reflect.TypeOf(""), m.Type())

	var dst tagTarget
	require.NoError(t, m.Set(&dst, "Jane"))
	assert.Equal(t, "Jane", dst.Name)

	// Embedded fields are flattened and writable.
	created, err := w.Member(typ, "created_at")
	require.NoError(t, err)
	require.NotNil(t, created)
	require.NoError(t, created.Set(&dst, "20260831"))
	assert.Equal(t, "20260831", dst.CreatedAt)

	// Convertible values are converted.
	age, err := w.Member(typ, "age")
	require.NoError(t, err)
	require.NotNil(t, age)
	require.NoError(t, age.Set(&dst, int64(25)))
	assert.Equal(t, 25, dst.Age)

	missing, err := w.Member(typ, "Secret")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTagWriter_SetErrors(t *testing.T) {
	w := NewTagWriter()
	typ := reflect.TypeOf(tagTarget{})

	m, err := w.Member(typ, "name")
	require.NoError(t, err)
	require.NotNil(t, m)

	require.Error(t, m.Set(nil, "x"))
	require.Error(t, m.Set(tagTarget{}, "x"))
	require.Error(t, m.Set(&tagTarget{}, struct{}{}))
}

type nestedPtrTarget struct {
	*tagEmbedded
	Label string `json:"label"`
}

func TestTagWriter_AllocatesNilEmbeddedPointer(t *testing.T) {
	w := NewTagWriter()
	typ := reflect.TypeOf(nestedPtrTarget{})

	m, err := w.Member(typ, "created_at")
	require.NoError(t, err)
	require.NotNil(t, m)

	var dst nestedPtrTarget
	require.NoError(t, m.Set(&dst, "20260101"))
	require.NotNil(t, dst.tagEmbedded)
	assert.Equal(t, "20260101", dst.CreatedAt)
}

func TestResolveMutators_ThroughTagWriter(t *testing.T) {
	cfg := properties.NewBuilder().AddValueWriter(NewTagWriter()).Build()

	mutators, err := properties.ResolveMutators(reflect.TypeOf(tagTarget{}), cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"created_at", "name", "age", "Plain"}, mutators.Names())

	name, ok := mutators.Get("name")
	require.True(t, ok)
	assert.Equal(t, properties.PropertyTypeGeneric, name.PropertyType())

	var dst tagTarget
	require.NoError(t, name.Set(&dst, "Jane"))
	assert.Equal(t, "Jane", dst.Name)
}
