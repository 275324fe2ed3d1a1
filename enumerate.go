package properties

import (
	"reflect"
)

// rawMember is a candidate member found at one level of the hierarchy walk,
// before visibility, validity and convention filtering.
type rawMember struct {
	name   string
	kind   PropertyType
	field  reflect.StructField
	index  []int // full index path from the root type, field members only
	method reflect.Method
	forced bool // the member or its path requires forced access
	class  memberClass
}

// memberEnumerator lists and validates raw members of one kind (field,
// accessor method, mutator method) and builds property records from accepted
// ones. Three instances exist, selected per resolve pass.
type memberEnumerator interface {
	// membersFor lists candidate members declared at this level of the walk.
	// prefix is the index path from the root to this level, forcedPath marks
	// paths crossing an unexported embedded field.
	membersFor(t reflect.Type, root reflect.Type, prefix []int, forcedPath bool) []rawMember
	// isValid reports whether the member has the right structural shape for
	// this kind.
	isValid(m rawMember) bool
	// propertyInfoFor builds the property record for an accepted member.
	propertyInfoFor(root reflect.Type, m rawMember, name string) PropertyInfo
}

var (
	fieldEnumerator    memberEnumerator = fieldMembers{}
	accessorEnumerator memberEnumerator = accessorMethods{}
	mutatorEnumerator  memberEnumerator = mutatorMethods{}
)

// fieldMembers enumerates struct fields declared directly at one level.
// Embedded struct fields are the hierarchy itself, not members, and are
// walked by the resolver.
type fieldMembers struct{}

func (fieldMembers) membersFor(t, root reflect.Type, prefix []int, forcedPath bool) []rawMember {
	members := make([]rawMember, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && isEmbeddedStruct(f.Type) {
			continue
		}
		idx := append(append([]int(nil), prefix...), i)
		members = append(members, rawMember{
			name:   f.Name,
			kind:   PropertyTypeField,
			field:  f,
			index:  idx,
			forced: forcedPath || f.PkgPath != "" || !isExportedType(t),
			class:  classifyField(f, t, root),
		})
	}
	return members
}

func (fieldMembers) isValid(rawMember) bool { return true }

func (fieldMembers) propertyInfoFor(root reflect.Type, m rawMember, name string) PropertyInfo {
	return &fieldProperty{
		name:      name,
		declaring: root,
		typ:       m.field.Type,
		index:     m.index,
		forced:    m.forced,
	}
}

// accessorMethods enumerates the pointer method set of a level type. Methods
// promoted from embedded types show up again at outer levels; they bind by
// name, so re-insertion is harmless.
type accessorMethods struct{}

func (accessorMethods) membersFor(t, root reflect.Type, _ []int, _ bool) []rawMember {
	return methodMembers(t)
}

func (accessorMethods) isValid(m rawMember) bool {
	// Receiver counts as the first input on a reflect.Type method.
	ft := m.method.Func.Type()
	switch {
	case ft.NumIn() != 1:
		return false
	case ft.NumOut() == 1:
		return ft.Out(0) != errorType
	case ft.NumOut() == 2:
		return ft.Out(0) != errorType && ft.Out(1) == errorType
	default:
		return false
	}
}

func (accessorMethods) propertyInfoFor(root reflect.Type, m rawMember, name string) PropertyInfo {
	return &methodAccessor{
		name:      name,
		rawName:   m.method.Name,
		declaring: root,
		typ:       m.method.Func.Type().Out(0),
	}
}

// mutatorMethods enumerates single-argument setter candidates.
type mutatorMethods struct{}

func (mutatorMethods) membersFor(t, root reflect.Type, _ []int, _ bool) []rawMember {
	return methodMembers(t)
}

func (mutatorMethods) isValid(m rawMember) bool {
	ft := m.method.Func.Type()
	if ft.NumIn() != 2 {
		return false
	}
	switch ft.NumOut() {
	case 0:
		return true
	case 1:
		return ft.Out(0) == errorType
	default:
		return false
	}
}

func (mutatorMethods) propertyInfoFor(root reflect.Type, m rawMember, name string) PropertyInfo {
	return &methodMutator{
		name:      name,
		rawName:   m.method.Name,
		declaring: root,
		typ:       m.method.Func.Type().In(1),
	}
}

func methodMembers(t reflect.Type) []rawMember {
	pt := t
	if pt.Kind() != reflect.Ptr {
		pt = reflect.PointerTo(t)
	}
	members := make([]rawMember, 0, pt.NumMethod())
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		members = append(members, rawMember{
			name:   m.Name,
			kind:   PropertyTypeMethod,
			method: m,
			class:  classExported, // reflect enumerates exported methods only
		})
	}
	return members
}

// isEmbeddedStruct reports whether an anonymous field of this type forms a
// hierarchy level (struct or pointer to struct).
func isEmbeddedStruct(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}
