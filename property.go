package properties

import (
	"reflect"
	"unsafe"

	"github.com/Station-Manager/errors"
)

// PropertyInfo describes a single resolved property. The logical name is
// fixed at construction time and is exactly the key the property is stored
// under in its Table.
type PropertyInfo interface {
	// Name returns the logical property name produced by the name transformer.
	Name() string
	// Type returns the property value type, or the any type when the source
	// is structural and reports no static type.
	Type() reflect.Type
	// DeclaringType returns the type the property was resolved for, or nil
	// for structural properties which have no static declaring type.
	DeclaringType() reflect.Type
	// PropertyType reports which member kind backs the property.
	PropertyType() PropertyType
}

// Accessor is a readable property of a source instance.
type Accessor interface {
	PropertyInfo
	Get(source any) (any, error)
}

// Mutator is a writable property of a destination instance.
type Mutator interface {
	PropertyInfo
	Set(destination, value any) error
}

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	anyType   = reflect.TypeOf((*any)(nil)).Elem()
)

// fieldProperty backs a property with a struct field reached through an index
// path from the resolved root type. It serves as both Accessor and Mutator.
// When forced is set the field, or some embedded field on the path to it, is
// unexported and access goes through reflect.NewAt.
type fieldProperty struct {
	name      string
	declaring reflect.Type
	typ       reflect.Type
	index     []int
	forced    bool
}

func (p *fieldProperty) Name() string                { return p.name }
func (p *fieldProperty) Type() reflect.Type          { return p.typ }
func (p *fieldProperty) DeclaringType() reflect.Type { return p.declaring }
func (p *fieldProperty) PropertyType() PropertyType  { return PropertyTypeField }

func (p *fieldProperty) Get(source any) (any, error) {
	const op errors.Op = "properties.fieldProperty.Get"
	v, err := structValue(source)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	if p.forced && !v.CanAddr() {
		// Forced reads need an addressable struct; work on a copy.
		addr := reflect.New(v.Type())
		addr.Elem().Set(v)
		v = addr.Elem()
	}
	for i, idx := range p.index {
		if i > 0 {
			if v.Kind() == reflect.Ptr {
				if v.IsNil() {
					return nil, errors.New(op).Msg(ErrMsgNilPath)
				}
				v = v.Elem()
			}
		}
		v = v.Field(idx)
	}
	if v.CanInterface() {
		return v.Interface(), nil
	}
	if !v.CanAddr() {
		return nil, errors.New(op).Msg(ErrMsgNotAddressable)
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Interface(), nil
}

func (p *fieldProperty) Set(destination, value any) error {
	const op errors.Op = "properties.fieldProperty.Set"
	v, err := settableStruct(destination)
	if err != nil {
		return errors.New(op).Err(err)
	}
	for i, idx := range p.index {
		if i > 0 {
			if v.Kind() == reflect.Ptr {
				if v.IsNil() {
					elem := reflect.New(v.Type().Elem())
					if err = assign(v, elem); err != nil {
						return errors.New(op).Err(err)
					}
				}
				v = v.Elem()
			}
		}
		v = v.Field(idx)
	}
	rv, err := coerce(value, p.typ)
	if err != nil {
		return errors.New(op).Err(err)
	}
	if err = assign(v, rv); err != nil {
		return errors.New(op).Err(err)
	}
	return nil
}

// methodAccessor backs a property with a zero-argument method, bound by name
// so that Go method promotion resolves the most specific definition at call
// time.
type methodAccessor struct {
	name      string
	rawName   string
	declaring reflect.Type
	typ       reflect.Type
}

func (p *methodAccessor) Name() string                { return p.name }
func (p *methodAccessor) Type() reflect.Type          { return p.typ }
func (p *methodAccessor) DeclaringType() reflect.Type { return p.declaring }
func (p *methodAccessor) PropertyType() PropertyType  { return PropertyTypeMethod }

func (p *methodAccessor) Get(source any) (any, error) {
	const op errors.Op = "properties.methodAccessor.Get"
	mv, err := boundMethod(source, p.rawName)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	mt := mv.Type()
	if mt.NumIn() != 0 || mt.NumOut() == 0 || mt.NumOut() > 2 {
		return nil, errors.New(op).Msg(ErrMsgBadMethodShape)
	}
	out := mv.Call(nil)
	if len(out) == 2 {
		if !out[1].IsNil() {
			return nil, errors.New(op).Err(out[1].Interface().(error))
		}
	}
	return out[0].Interface(), nil
}

// methodMutator backs a property with a single-argument method.
type methodMutator struct {
	name      string
	rawName   string
	declaring reflect.Type
	typ       reflect.Type
}

func (p *methodMutator) Name() string                { return p.name }
func (p *methodMutator) Type() reflect.Type          { return p.typ }
func (p *methodMutator) DeclaringType() reflect.Type { return p.declaring }
func (p *methodMutator) PropertyType() PropertyType  { return PropertyTypeMethod }

func (p *methodMutator) Set(destination, value any) error {
	const op errors.Op = "properties.methodMutator.Set"
	if destination == nil {
		return errors.New(op).Msg(ErrMsgNilInstance)
	}
	mv := reflect.ValueOf(destination).MethodByName(p.rawName)
	if !mv.IsValid() {
		return errors.New(op).Msg(ErrMsgNoMethod)
	}
	mt := mv.Type()
	if mt.NumIn() != 1 || mt.NumOut() > 1 {
		return errors.New(op).Msg(ErrMsgBadMethodShape)
	}
	rv, err := coerce(value, mt.In(0))
	if err != nil {
		return errors.New(op).Err(err)
	}
	out := mv.Call([]reflect.Value{rv})
	if len(out) == 1 && !out[0].IsNil() {
		return errors.New(op).Err(out[0].Interface().(error))
	}
	return nil
}

// structuralAccessor wraps a ValueReader member handle.
type structuralAccessor struct {
	name   string
	member Member
}

func (p *structuralAccessor) Name() string { return p.name }

func (p *structuralAccessor) Type() reflect.Type {
	if t := p.member.Type(); t != nil {
		return t
	}
	return anyType
}

func (p *structuralAccessor) DeclaringType() reflect.Type { return nil }
func (p *structuralAccessor) PropertyType() PropertyType  { return PropertyTypeGeneric }

func (p *structuralAccessor) Get(source any) (any, error) {
	const op errors.Op = "properties.structuralAccessor.Get"
	val, err := p.member.Get(source)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return val, nil
}

// structuralMutator wraps a ValueWriter member handle.
type structuralMutator struct {
	name   string
	member WriterMember
}

func (p *structuralMutator) Name() string { return p.name }

func (p *structuralMutator) Type() reflect.Type {
	if t := p.member.Type(); t != nil {
		return t
	}
	return anyType
}

func (p *structuralMutator) DeclaringType() reflect.Type { return nil }
func (p *structuralMutator) PropertyType() PropertyType  { return PropertyTypeGeneric }

func (p *structuralMutator) Set(destination, value any) error {
	const op errors.Op = "properties.structuralMutator.Set"
	if err := p.member.Set(destination, value); err != nil {
		return errors.New(op).Err(err)
	}
	return nil
}

// structValue dereferences source down to its struct value.
func structValue(source any) (reflect.Value, error) {
	const op errors.Op = "properties.structValue"
	if source == nil {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNilInstance)
	}
	v := reflect.ValueOf(source)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, errors.New(op).Msg(ErrMsgNilInstance)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNotStruct)
	}
	return v, nil
}

// settableStruct dereferences destination, requiring a non-nil pointer so the
// resulting struct value is addressable.
func settableStruct(destination any) (reflect.Value, error) {
	const op errors.Op = "properties.settableStruct"
	if destination == nil {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNotPointer)
	}
	v := reflect.ValueOf(destination)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNotPointer)
	}
	v = v.Elem()
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}, errors.New(op).Msg(ErrMsgNilInstance)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNotStruct)
	}
	return v, nil
}

// boundMethod looks the named method up on source, taking an addressable copy
// when a value instance hides pointer-receiver methods.
func boundMethod(source any, name string) (reflect.Value, error) {
	const op errors.Op = "properties.boundMethod"
	if source == nil {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNilInstance)
	}
	v := reflect.ValueOf(source)
	mv := v.MethodByName(name)
	if !mv.IsValid() && v.Kind() != reflect.Ptr {
		pv := reflect.New(v.Type())
		pv.Elem().Set(v)
		mv = pv.MethodByName(name)
	}
	if !mv.IsValid() {
		return reflect.Value{}, errors.New(op).Msg(ErrMsgNoMethod)
	}
	return mv, nil
}

// coerce converts value to typ, producing a zero value for nil.
func coerce(value any, typ reflect.Type) (reflect.Value, error) {
	const op errors.Op = "properties.coerce"
	if value == nil {
		return reflect.Zero(typ), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(typ) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(typ) {
		return rv.Convert(typ), nil
	}
	return reflect.Value{}, errors.New(op).Errorf("%s: got %s, want %s", ErrMsgBadValueType, rv.Type(), typ)
}

// assign writes rv into v, going through reflect.NewAt when v was reached
// through an unexported member. Setting the same member twice this way is
// idempotent.
func assign(v, rv reflect.Value) error {
	const op errors.Op = "properties.assign"
	if v.CanSet() {
		v.Set(rv)
		return nil
	}
	if !v.CanAddr() {
		return errors.New(op).Msg(ErrMsgNotAddressable)
	}
	reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Set(rv)
	return nil
}
