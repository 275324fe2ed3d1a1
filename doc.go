// Package properties discovers the named properties of a type that are
// eligible for object mapping: readable accessors on a source side and
// writable mutators on a destination side.
//
// Resolution produces an insertion-ordered, name-keyed Table of properties.
// Two paths feed it:
//
//  1. Reflective: the type's embedded-struct hierarchy is walked depth-first,
//     ancestors before the type's own members, so a more specific definition
//     of a name replaces the inherited one. Fields and methods are separate
//     passes; when field matching is enabled the field pass runs first and
//     same-named method properties win.
//  2. Structural: when a registered ValueReader (for accessors) or a
//     member-enumerating ValueWriter (for mutators) supports the concrete
//     type, the document's flattened member set is wrapped directly, with no
//     hierarchy walk and no access policy.
//
// Types in the configured internal set (time.Time, the sync primitives and
// similar platform types) are pruned from the reflective walk: embedding one
// contributes no fields, and the method names it promotes are excluded from
// the method pass even when the outer type declares its own method under one
// of those names.
//
// # Basic Usage
//
//	cfg := properties.New()
//	accessors, err := properties.ResolveAccessors(src, reflect.TypeOf(src), cfg)
//	mutators, err := properties.ResolveMutators(reflect.TypeOf(dst), cfg)
//
// # Visibility
//
// Four access levels gate member eligibility, relaxing monotonically from
// AccessLevelPublic (exported members only) to AccessLevelPrivate (all
// members, including unexported fields of foreign embedded types). Properties
// resolved from unexported members stay invocable: reads and writes go
// through reflect.NewAt once resolution has marked them forced.
//
// # Naming
//
// A NamingConvention decides which raw member names qualify per role, and a
// NameTransformer derives the logical table key from the raw name. Stock
// implementations cover Go-style accessors and Set-prefixed mutators; both
// are replaceable per Config.
//
// # Structural documents
//
// The document subpackage ships ValueReader/ValueWriter implementations for
// map-shaped sources, JSON documents (raw bytes, null.JSON, sqlboiler
// types.JSON) and json-tagged struct destinations.
//
// # Thread Safety
//
// Resolution is a pure per-call computation. Reader/writer registration uses
// copy-on-write stores and is safe concurrently with resolution.
package properties
