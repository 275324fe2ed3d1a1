package document

import (
	"reflect"
	"sort"

	"github.com/Station-Manager/errors"
	"github.com/spf13/cast"

	"github.com/Station-Manager/properties"
)

// MapReader reads members from map-shaped sources: any map keyed by strings,
// typed strings or interface values. Because Go map iteration order is
// random, member names are reported sorted so repeated resolution of the
// same source yields the same table order.
type MapReader struct{}

// Supports reports whether t is a map with string-compatible keys.
func (MapReader) Supports(t reflect.Type) bool {
	t = derefType(t)
	if t == nil || t.Kind() != reflect.Map {
		return false
	}
	k := t.Key().Kind()
	return k == reflect.String || k == reflect.Interface
}

// MemberNames lists the map keys of source as strings, sorted.
func (MapReader) MemberNames(source any) ([]string, error) {
	const op errors.Op = "document.MapReader.MemberNames"
	v, err := mapValue(source)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	names := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		name, err := cast.ToStringE(k.Interface())
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Member returns a handle for the named key, or nil if source has no such key.
func (MapReader) Member(source any, name string) (properties.Member, error) {
	const op errors.Op = "document.MapReader.Member"
	v, err := mapValue(source)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	mv, ok := mapIndex(v, name)
	if !ok {
		return nil, nil
	}
	return mapMember{key: name, typ: memberType(mv)}, nil
}

// mapMember re-reads its key on every Get so the handle stays valid for any
// source the reader supports, not only the one it was resolved from.
type mapMember struct {
	key string
	typ reflect.Type
}

func (m mapMember) Type() reflect.Type { return m.typ }

func (m mapMember) Get(source any) (any, error) {
	const op errors.Op = "document.mapMember.Get"
	v, err := mapValue(source)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	mv, ok := mapIndex(v, m.key)
	if !ok {
		return nil, nil
	}
	return mv.Interface(), nil
}

func mapValue(source any) (reflect.Value, error) {
	const op errors.Op = "document.mapValue"
	if source == nil {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNotMap)
	}
	v := reflect.ValueOf(source)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, errors.New(op).Msg(ErrMsgNotMap)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Map {
		return reflect.Value{}, errors.New(op).Errorf("%s Got %T.", ErrMsgNotMap, source)
	}
	return v, nil
}

func mapIndex(v reflect.Value, name string) (reflect.Value, bool) {
	kv := reflect.ValueOf(name)
	keyType := v.Type().Key()
	if !kv.Type().AssignableTo(keyType) {
		if !kv.Type().ConvertibleTo(keyType) {
			return reflect.Value{}, false
		}
		kv = kv.Convert(keyType)
	}
	mv := v.MapIndex(kv)
	if !mv.IsValid() {
		return reflect.Value{}, false
	}
	if mv.Kind() == reflect.Interface && !mv.IsNil() {
		mv = mv.Elem()
	}
	return mv, true
}

func memberType(v reflect.Value) reflect.Type {
	if !v.IsValid() {
		return nil
	}
	return v.Type()
}

func derefType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
