package document

import (
	"reflect"
	"sync"

	"github.com/Station-Manager/errors"

	"github.com/Station-Manager/properties"
)

// TagWriter writes members on struct destinations addressed by their json
// tag names, falling back to the field name when no tag is present. It can
// enumerate members from the type alone, so mutator discovery uses it
// directly. Embedded struct fields are flattened; unexported fields and
// fields tagged "-" are skipped.
type TagWriter struct {
	cache sync.Map // map[reflect.Type]*tagMetadata
}

// NewTagWriter creates a TagWriter with an empty metadata cache.
func NewTagWriter() *TagWriter { return &TagWriter{} }

type tagField struct {
	name  string
	index []int
	typ   reflect.Type
}

type tagMetadata struct {
	names  []string
	byName map[string]*tagField
}

// Supports reports whether t is a struct or pointer to struct.
func (w *TagWriter) Supports(t reflect.Type) bool {
	t = derefType(t)
	return t != nil && t.Kind() == reflect.Struct
}

// SupportsMemberEnumeration is always true for struct types.
func (w *TagWriter) SupportsMemberEnumeration() bool { return true }

// MemberNames lists the writable member names of t in declaration order.
func (w *TagWriter) MemberNames(t reflect.Type) ([]string, error) {
	const op errors.Op = "document.TagWriter.MemberNames"
	meta, err := w.metadata(t)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	names := make([]string, len(meta.names))
	copy(names, meta.names)
	return names, nil
}

// Member returns a handle for the named member, or nil when t has no field
// under that tag or name.
func (w *TagWriter) Member(t reflect.Type, name string) (properties.WriterMember, error) {
	const op errors.Op = "document.TagWriter.Member"
	meta, err := w.metadata(t)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	f, ok := meta.byName[name]
	if !ok {
		return nil, nil
	}
	return tagMember{field: f}, nil
}

func (w *TagWriter) metadata(t reflect.Type) (*tagMetadata, error) {
	const op errors.Op = "document.TagWriter.metadata"
	t = derefType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, errors.New(op).Msg(ErrMsgNotStruct)
	}
	if cached, ok := w.cache.Load(t); ok {
		return cached.(*tagMetadata), nil
	}
	meta := &tagMetadata{byName: make(map[string]*tagField)}
	collectTagFields(t, nil, meta)
	actual, _ := w.cache.LoadOrStore(t, meta)
	return actual.(*tagMetadata), nil
}

func collectTagFields(t reflect.Type, prefix []int, meta *tagMetadata) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				collectTagFields(ft, idx, meta)
				continue
			}
		}
		if f.PkgPath != "" {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("json"); ok {
			for j := 0; j < len(tag); j++ {
				if tag[j] == ',' {
					tag = tag[:j]
					break
				}
			}
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		if existing, seen := meta.byName[name]; seen {
			// Shallower declarations win, matching Go field promotion.
			if len(idx) < len(existing.index) {
				existing.index = idx
				existing.typ = f.Type
			}
			continue
		}
		meta.names = append(meta.names, name)
		meta.byName[name] = &tagField{name: name, index: idx, typ: f.Type}
	}
}

// tagMember sets its field through the index path, allocating nil embedded
// pointers on the way.
type tagMember struct {
	field *tagField
}

func (m tagMember) Type() reflect.Type { return m.field.typ }

func (m tagMember) Set(destination, value any) error {
	const op errors.Op = "document.tagMember.Set"
	if destination == nil {
		return errors.New(op).Msg(ErrMsgNotPointer)
	}
	v := reflect.ValueOf(destination)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.New(op).Msg(ErrMsgNotPointer)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return errors.New(op).Msg(ErrMsgNotPointer)
	}
	for i, idx := range m.field.index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(idx)
	}
	var rv reflect.Value
	if value == nil {
		rv = reflect.Zero(m.field.typ)
	} else {
		rv = reflect.ValueOf(value)
		if !rv.Type().AssignableTo(m.field.typ) {
			if !rv.Type().ConvertibleTo(m.field.typ) {
				return errors.New(op).Errorf("%s: got %s, want %s", ErrMsgBadValueType, rv.Type(), m.field.typ)
			}
			rv = rv.Convert(m.field.typ)
		}
	}
	v.Set(rv)
	return nil
}
