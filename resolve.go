package properties

import (
	"reflect"

	"github.com/Station-Manager/errors"
)

// propertyRole selects which side of a mapping is being resolved.
type propertyRole int

const (
	roleAccessor propertyRole = iota
	roleMutator
)

// resolveRequest is the per-call tuple threaded through one hierarchy walk.
// It is built fresh per top-level resolve and never mutated mid-walk.
type resolveRequest struct {
	enumerator   memberEnumerator
	propertyType PropertyType
	cfg          *Config
	accessLevel  AccessLevel
	convention   NamingConvention
	transformer  NameTransformer
}

func newResolveRequest(cfg *Config, role propertyRole, field bool) *resolveRequest {
	req := &resolveRequest{cfg: cfg}
	if role == roleAccessor {
		req.convention = cfg.SourceNamingConvention()
		req.transformer = cfg.SourceNameTransformer()
	} else {
		req.convention = cfg.DestinationNamingConvention()
		req.transformer = cfg.DestinationNameTransformer()
	}
	if field {
		req.propertyType = PropertyTypeField
		req.accessLevel = cfg.FieldAccessLevel()
		req.enumerator = fieldEnumerator
	} else {
		req.propertyType = PropertyTypeMethod
		req.accessLevel = cfg.MethodAccessLevel()
		if role == roleAccessor {
			req.enumerator = accessorEnumerator
		} else {
			req.enumerator = mutatorEnumerator
		}
	}
	return req
}

// ResolveAccessors resolves the readable properties of type t. When a
// registered ValueReader supports t and a concrete source value is supplied,
// the reader's flattened member set is used; otherwise the type hierarchy is
// walked reflectively. A nil t is derived from source. An empty table is a
// valid result.
func ResolveAccessors(source any, t reflect.Type, cfg *Config) (*Table[Accessor], error) {
	const op errors.Op = "properties.ResolveAccessors"
	if cfg == nil {
		cfg = New()
	}
	if t == nil {
		if source == nil {
			return NewTable[Accessor](), nil
		}
		t = reflect.TypeOf(source)
	}
	if r := cfg.ValueReaderFor(t); r != nil && source != nil {
		tbl, err := resolveAccessorsFromReader(source, cfg, r)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		return tbl, nil
	}
	tbl, err := resolveProperties[Accessor](t, roleAccessor, cfg)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return tbl, nil
}

// ResolveMutators resolves the writable properties of type t. When a
// registered ValueWriter supports t and can enumerate members from the type
// alone, its member set is used; otherwise the type hierarchy is walked
// reflectively. An empty table is a valid result.
func ResolveMutators(t reflect.Type, cfg *Config) (*Table[Mutator], error) {
	const op errors.Op = "properties.ResolveMutators"
	if cfg == nil {
		cfg = New()
	}
	if t == nil {
		return NewTable[Mutator](), nil
	}
	if w := cfg.ValueWriterFor(t); w != nil && w.SupportsMemberEnumeration() {
		tbl, err := resolveMutatorsFromWriter(t, cfg, w)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		return tbl, nil
	}
	tbl, err := resolveProperties[Mutator](t, roleMutator, cfg)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	return tbl, nil
}

// resolveProperties runs the reflective passes: fields first when field
// matching is enabled, then methods into the same table so that same-named
// method properties replace field properties.
func resolveProperties[P PropertyInfo](t reflect.Type, role propertyRole, cfg *Config) (*Table[P], error) {
	root := derefType(t)
	tbl := NewTable[P]()
	if cfg.IsFieldMatchingEnabled() {
		if err := resolveInto(tbl, root, root, nil, false, newResolveRequest(cfg, role, true)); err != nil {
			return nil, err
		}
	}
	if err := resolveInto(tbl, root, root, nil, false, newResolveRequest(cfg, role, false)); err != nil {
		return nil, err
	}
	return tbl, nil
}

// resolveInto walks one hierarchy level depth-first: embedded types are
// merged before the type's own members, so a more specific definition of a
// name silently replaces the inherited one. Non-struct and pruned internal
// types contribute nothing.
func resolveInto[P PropertyInfo](tbl *Table[P], root, t reflect.Type, prefix []int, forcedPath bool, req *resolveRequest) error {
	t = derefType(t)
	if t.Kind() != reflect.Struct || req.cfg.isInternal(t) {
		return nil
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous || !isEmbeddedStruct(f.Type) {
			continue
		}
		idx := append(append([]int(nil), prefix...), i)
		if err := resolveInto(tbl, root, f.Type, idx, forcedPath || f.PkgPath != "", req); err != nil {
			return err
		}
	}
	var excluded map[string]struct{}
	if req.propertyType == PropertyTypeMethod {
		// Go promotes methods from embedded types into the outer method set,
		// so methods originating from pruned internal types must be dropped
		// by name or embedding time.Time would leak Day, Hour and friends.
		excluded = make(map[string]struct{})
		prunedMethodNames(t, req.cfg, excluded)
	}
	for _, m := range req.enumerator.membersFor(t, root, prefix, forcedPath) {
		if _, skip := excluded[m.name]; skip {
			continue
		}
		if !canAccess(m.class, req.accessLevel) {
			continue
		}
		if !req.enumerator.isValid(m) {
			continue
		}
		if !req.convention.Applies(m.name, req.propertyType) {
			continue
		}
		name := req.transformer.Transform(m.name, nameableFor(req.propertyType))
		info := req.enumerator.propertyInfoFor(root, m, name)
		p, ok := any(info).(P)
		if !ok {
			continue
		}
		tbl.Put(name, p)
	}
	return nil
}

// resolveAccessorsFromReader wraps every member the reader reports for source
// as an Accessor, keyed by the generic-role transform of the raw name.
func resolveAccessorsFromReader(source any, cfg *Config, r ValueReader) (*Table[Accessor], error) {
	const op errors.Op = "properties.resolveAccessorsFromReader"
	tbl := NewTable[Accessor]()
	tr := cfg.SourceNameTransformer()
	names, err := r.MemberNames(source)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	for _, raw := range names {
		m, err := r.Member(source, raw)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		if m == nil {
			continue
		}
		name := tr.Transform(raw, NameableGeneric)
		tbl.Put(name, &structuralAccessor{name: name, member: m})
	}
	return tbl, nil
}

// resolveMutatorsFromWriter wraps every member the writer reports for t as a
// Mutator. Structural member names are document keys, not Go setter names, so
// both structural tables are keyed by the generic-role transform of the
// source name transformer.
func resolveMutatorsFromWriter(t reflect.Type, cfg *Config, w ValueWriter) (*Table[Mutator], error) {
	const op errors.Op = "properties.resolveMutatorsFromWriter"
	tbl := NewTable[Mutator]()
	tr := cfg.SourceNameTransformer()
	names, err := w.MemberNames(t)
	if err != nil {
		return nil, errors.New(op).Err(err)
	}
	for _, raw := range names {
		m, err := w.Member(t, raw)
		if err != nil {
			return nil, errors.New(op).Err(err)
		}
		if m == nil {
			continue
		}
		name := tr.Transform(raw, NameableGeneric)
		tbl.Put(name, &structuralMutator{name: name, member: m})
	}
	return tbl, nil
}

// prunedMethodNames collects the method names every pruned embedded type
// under t would promote, walking through non-pruned embedded types so
// transitive promotion is covered as well.
func prunedMethodNames(t reflect.Type, cfg *Config, names map[string]struct{}) {
	t = derefType(t)
	if t.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous || !isEmbeddedStruct(f.Type) {
			continue
		}
		ft := derefType(f.Type)
		if cfg.isInternal(ft) {
			pt := reflect.PointerTo(ft)
			for j := 0; j < pt.NumMethod(); j++ {
				names[pt.Method(j).Name] = struct{}{}
			}
			continue
		}
		prunedMethodNames(ft, cfg, names)
	}
}

func derefType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
