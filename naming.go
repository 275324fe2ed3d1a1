package properties

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PropertyType identifies which kind of member a resolved property was built
// from.
type PropertyType int

const (
	// PropertyTypeField marks properties backed by a struct field.
	PropertyTypeField PropertyType = iota
	// PropertyTypeMethod marks properties backed by an accessor or mutator method.
	PropertyTypeMethod
	// PropertyTypeGeneric marks properties produced by a ValueReader or ValueWriter.
	PropertyTypeGeneric
)

// NameableType tells a NameTransformer what kind of raw name it is given.
type NameableType int

const (
	NameableField NameableType = iota
	NameableMethod
	NameableGeneric
)

func nameableFor(pt PropertyType) NameableType {
	switch pt {
	case PropertyTypeField:
		return NameableField
	case PropertyTypeMethod:
		return NameableMethod
	default:
		return NameableGeneric
	}
}

// NamingConvention decides whether a raw member name qualifies as a property
// for the role (source or destination) the convention is configured for.
type NamingConvention interface {
	Applies(memberName string, propertyType PropertyType) bool
}

// NamingConventionFunc adapts a plain function to a NamingConvention.
type NamingConventionFunc func(memberName string, propertyType PropertyType) bool

func (f NamingConventionFunc) Applies(memberName string, propertyType PropertyType) bool {
	return f(memberName, propertyType)
}

// NameTransformer derives the logical lookup name from a raw member name.
type NameTransformer interface {
	Transform(memberName string, nameableType NameableType) string
}

// NameTransformerFunc adapts a plain function to a NameTransformer.
type NameTransformerFunc func(memberName string, nameableType NameableType) string

func (f NameTransformerFunc) Transform(memberName string, nameableType NameableType) string {
	return f(memberName, nameableType)
}

// boilerplate holds zero-argument method names that look like accessors but
// belong to fmt/error contracts rather than the type's data.
var boilerplate = map[string]struct{}{
	"String":   {},
	"GoString": {},
	"Error":    {},
}

// NoneNamingConvention accepts every member name for any property type.
var NoneNamingConvention NamingConvention = NamingConventionFunc(
	func(string, PropertyType) bool { return true })

// GoAccessorConvention accepts all fields and any method that is not fmt/error
// boilerplate. Go getters carry no prefix, so the name alone cannot disqualify
// a method; shape validation does the rest.
var GoAccessorConvention NamingConvention = NamingConventionFunc(
	func(name string, pt PropertyType) bool {
		if pt != PropertyTypeMethod {
			return true
		}
		_, skip := boilerplate[name]
		return !skip
	})

// GoMutatorConvention accepts all fields and methods carrying the Set prefix.
var GoMutatorConvention NamingConvention = NamingConventionFunc(
	func(name string, pt PropertyType) bool {
		if pt != PropertyTypeMethod {
			return true
		}
		return hasRolePrefix(name, "Set")
	})

// PrefixAccessorConvention accepts only methods named Get*, Is* or Has*,
// alongside all fields. Useful for codebases following the Java-style
// accessor idiom.
var PrefixAccessorConvention NamingConvention = NamingConventionFunc(
	func(name string, pt PropertyType) bool {
		if pt != PropertyTypeMethod {
			return true
		}
		return hasRolePrefix(name, "Get") || hasRolePrefix(name, "Is") || hasRolePrefix(name, "Has")
	})

// PrefixMutatorConvention accepts only methods named Set*, alongside all fields.
var PrefixMutatorConvention NamingConvention = NamingConventionFunc(
	func(name string, pt PropertyType) bool {
		if pt != PropertyTypeMethod {
			return true
		}
		return hasRolePrefix(name, "Set")
	})

// IdentityNameTransformer keeps raw member names verbatim.
var IdentityNameTransformer NameTransformer = NameTransformerFunc(
	func(name string, _ NameableType) string { return name })

// GoNameTransformer maps raw member names to lower-camel logical names:
// method role prefixes (Get/Set/Is/Has) are stripped, the first rune is
// lowered for fields and methods, and generic (document) names pass through
// untouched so that document keys stay exactly as reported.
var GoNameTransformer NameTransformer = NameTransformerFunc(
	func(name string, nt NameableType) string {
		switch nt {
		case NameableMethod:
			for _, prefix := range []string{"Get", "Set", "Is", "Has"} {
				if hasRolePrefix(name, prefix) {
					name = name[len(prefix):]
					break
				}
			}
			return decapitalize(name)
		case NameableField:
			return decapitalize(name)
		default:
			return name
		}
	})

// hasRolePrefix reports whether name starts with prefix followed by an
// upper-case rune, so that "Settings" is not mistaken for a "Set" mutator.
func hasRolePrefix(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name[len(prefix):])
	return unicode.IsUpper(r)
}

func decapitalize(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsUpper(r) {
		return name
	}
	return string(unicode.ToLower(r)) + name[size:]
}
