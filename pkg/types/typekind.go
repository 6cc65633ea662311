package types

import "strings"

// TypeKind is the closed set of recognized type annotations
type TypeKind string

const (
	TypeAny       TypeKind = "any"
	TypeNumber    TypeKind = "number"
	TypeString    TypeKind = "string"
	TypeBoolean   TypeKind = "boolean"
	TypeVoid      TypeKind = "void"
	TypeNull      TypeKind = "null"
	TypeUndefined TypeKind = "undefined"
	TypeArray     TypeKind = "array"
	TypeEnum      TypeKind = "enum"
	TypeObject    TypeKind = "object"
	TypeFunction  TypeKind = "function"
)

// AccessModifier is the visibility of a class member
type AccessModifier string

const (
	AccessPublic    AccessModifier = "public"
	AccessPrivate   AccessModifier = "private"
	AccessProtected AccessModifier = "protected"
)

var typeKeywords = map[string]TypeKind{
	"any":       TypeAny,
	"number":    TypeNumber,
	"string":    TypeString,
	"boolean":   TypeBoolean,
	"bool":      TypeBoolean,
	"void":      TypeVoid,
	"null":      TypeNull,
	"undefined": TypeUndefined,
	"Array":     TypeArray,
	"array":     TypeArray,
	"enum":      TypeEnum,
	"Object":    TypeObject,
	"object":    TypeObject,
	"Function":  TypeFunction,
	"function":  TypeFunction,
}

// ParseTypeKind maps annotation text to a TypeKind. Unrecognized text is Any.
func ParseTypeKind(annotation string) TypeKind {
	annotation = strings.TrimSpace(annotation)
	if kind, ok := typeKeywords[annotation]; ok {
		return kind
	}
	switch {
	case strings.HasSuffix(annotation, "[]"):
		return TypeArray
	case strings.HasPrefix(annotation, "Array<"):
		return TypeArray
	case strings.Contains(annotation, "=>"):
		return TypeFunction
	}
	return TypeAny
}

// IsTypeKeyword reports whether the annotation is one of the TypeKind keywords
func IsTypeKeyword(annotation string) bool {
	_, ok := typeKeywords[annotation]
	return ok
}

// ParseAccessModifier maps a modifier keyword to an AccessModifier
func ParseAccessModifier(token string) (AccessModifier, bool) {
	switch token {
	case "public":
		return AccessPublic, true
	case "private":
		return AccessPrivate, true
	case "protected":
		return AccessProtected, true
	}
	return AccessPublic, false
}

// Validate checks that the kind is a member of the closed set
func (k TypeKind) Validate() bool {
	switch k {
	case TypeAny, TypeNumber, TypeString, TypeBoolean, TypeVoid, TypeNull,
		TypeUndefined, TypeArray, TypeEnum, TypeObject, TypeFunction:
		return true
	}
	return false
}
