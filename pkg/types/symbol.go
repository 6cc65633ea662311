package types

import (
	"errors"
	"strings"
)

// SymbolKind represents the kind of declaration a symbol came from
type SymbolKind string

const (
	KindModule   SymbolKind = "module"
	KindClass    SymbolKind = "class"
	KindField    SymbolKind = "field"
	KindFunction SymbolKind = "function"
)

// Symbol is a flattened, addressable entry of a CodeModel used for completion and navigation
type Symbol struct {
	// Identification
	Name          string     `json:"name"`
	Kind          SymbolKind `json:"kind"`
	QualifiedName string     `json:"qualified_name"` // Dotted path including the symbol itself, e.g. "App.Models.User.name"
	Container     string     `json:"container"`      // QualifiedName of the enclosing module or class

	// Content
	Signature string         `json:"signature"`           // Display form, e.g. "name: string" or "load(id: number): void"
	Type      TypeKind       `json:"type,omitempty"`      // Field type or function return type
	TypeName  string         `json:"type_name,omitempty"` // Annotation text as written
	Access    AccessModifier `json:"access,omitempty"`

	// Scope
	IsExported bool `json:"exported"`
	Ordinal    int  `json:"ordinal"` // Declaration order within the file
}

// ValidateKind checks if the symbol kind is valid
func (s *Symbol) ValidateKind() error {
	switch s.Kind {
	case KindModule, KindClass, KindField, KindFunction:
		return nil
	default:
		return errors.New("invalid symbol kind")
	}
}

// IsMember returns true for fields and functions
func (s *Symbol) IsMember() bool {
	return s.Kind == KindField || s.Kind == KindFunction
}

// Validate performs comprehensive validation of the symbol
func (s *Symbol) Validate() error {
	if s.Name == "" {
		return errors.New("symbol name is required")
	}

	if err := s.ValidateKind(); err != nil {
		return err
	}

	if s.QualifiedName == "" {
		return errors.New("qualified name is required")
	}

	if !strings.HasSuffix(s.QualifiedName, s.Name) {
		return errors.New("qualified name must end with the symbol name")
	}

	// Members always live inside a class
	if s.IsMember() && s.Container == "" {
		return errors.New("members must have a container")
	}

	if s.Type != "" && !s.Type.Validate() {
		return errors.New("invalid type kind")
	}

	return nil
}
