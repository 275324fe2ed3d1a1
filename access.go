package properties

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// AccessLevel controls which members qualify as properties, independent of
// naming conventions. Levels relax monotonically: every level admits all
// members the previous one admits.
//
// Go has no protected or package-private modifiers, so the levels map onto a
// native stratification relative to the type being resolved: AccessLevelPublic
// admits exported members only; AccessLevelProtected additionally admits
// unexported members declared directly on the resolved type;
// AccessLevelPackagePrivate additionally admits unexported members promoted
// from embedded types in the same package; AccessLevelPrivate admits
// everything, including unexported members of foreign-package embedded types.
type AccessLevel int

const (
	AccessLevelPublic AccessLevel = iota
	AccessLevelProtected
	AccessLevelPackagePrivate
	AccessLevelPrivate
)

// memberClass ranks a member by how far from plain-exported it is. Ordered so
// that canAccess reduces to a comparison.
type memberClass int

const (
	classExported memberClass = iota
	classUnexportedRoot
	classUnexportedSamePackage
	classUnexportedForeign
)

// canAccess reports whether a member of the given class qualifies under level.
// Unrecognized levels degrade to the strictest policy.
func canAccess(class memberClass, level AccessLevel) bool {
	switch level {
	case AccessLevelPrivate:
		return true
	case AccessLevelPackagePrivate:
		return class <= classUnexportedSamePackage
	case AccessLevelProtected:
		return class <= classUnexportedRoot
	default:
		return class == classExported
	}
}

// classifyField ranks a struct field found on owner while resolving root.
func classifyField(f reflect.StructField, owner, root reflect.Type) memberClass {
	if f.PkgPath == "" {
		return classExported
	}
	if owner == root {
		return classUnexportedRoot
	}
	if owner.PkgPath() == root.PkgPath() {
		return classUnexportedSamePackage
	}
	return classUnexportedForeign
}

// isExportedType reports whether t is an exported named type. Unnamed types
// count as exported since they carry no access restriction of their own.
func isExportedType(t reflect.Type) bool {
	name := t.Name()
	if name == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
