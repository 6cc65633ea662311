package types

// Literal is an entry of the literal table built by quote extraction.
// Placeholder is the token that replaced the quoted span in the source text.
type Literal struct {
	ID          int    `json:"id"`
	Placeholder string `json:"placeholder"`
	Text        string `json:"text"`
}

// CodeModel is the result of parsing a single source file
type CodeModel struct {
	Literals []Literal `json:"literals"`
	Modules  []*Module `json:"modules"`
}

// Module is one segment of a dotted namespace path
type Module struct {
	Name    string    `json:"name"`
	Modules []*Module `json:"modules,omitempty"`
	Classes []*Class  `json:"classes,omitempty"`
}

// Class represents a class declaration inside a module. Resolved ObjectType
// links are excluded from JSON since classes may reference each other.
// Class names are not deduplicated: a re-declared class is kept as a separate entry.
type Class struct {
	Name       string      `json:"name"`
	IsExported bool        `json:"exported"`
	Fields     []*Field    `json:"fields,omitempty"`
	Functions  []*Function `json:"functions,omitempty"`
}

// Field represents a class member variable
type Field struct {
	Name         string         `json:"name"`
	Access       AccessModifier `json:"access"`
	Type         TypeKind       `json:"type"`
	TypeName     string         `json:"type_name,omitempty"` // Annotation text as written, empty when absent
	ObjectType   *Class         `json:"-"`                   // Set when the annotation names a declared class
	DefaultValue string         `json:"default,omitempty"`   // Initializer token, literal text restored
}

// Function represents a class method signature. Bodies are not parsed.
type Function struct {
	Name             string         `json:"name"`
	Access           AccessModifier `json:"access"`
	ReturnType       TypeKind       `json:"return_type"`
	ReturnTypeName   string         `json:"return_type_name,omitempty"`
	ReturnObjectType *Class         `json:"-"`
	Arguments        []*Argument    `json:"arguments,omitempty"`
}

// Argument represents a single function parameter
type Argument struct {
	Name       string   `json:"name"`
	Type       TypeKind `json:"type"`
	TypeName   string   `json:"type_name,omitempty"`
	ObjectType *Class   `json:"-"`
}

// Child returns the direct child module with the given name, or nil
func (m *Module) Child(name string) *Module {
	for _, child := range m.Modules {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// ChildOrCreate returns the child module with the given name, appending a new one
// when none exists. Child names stay unique within a parent.
func (m *Module) ChildOrCreate(name string) *Module {
	if child := m.Child(name); child != nil {
		return child
	}
	child := &Module{Name: name}
	m.Modules = append(m.Modules, child)
	return child
}

// FindModule resolves a dotted path against the top-level modules
func (cm *CodeModel) FindModule(path string) *Module {
	root := &Module{Modules: cm.Modules}
	current := root
	for _, segment := range splitPath(path) {
		current = current.Child(segment)
		if current == nil {
			return nil
		}
	}
	if current == root {
		return nil
	}
	return current
}

// LiteralText returns the original text of the literal with the given placeholder
func (cm *CodeModel) LiteralText(placeholder string) (string, bool) {
	for _, lit := range cm.Literals {
		if lit.Placeholder == placeholder {
			return lit.Text, true
		}
	}
	return "", false
}

// Walk visits every module depth-first, passing its dotted path
func (cm *CodeModel) Walk(fn func(path string, m *Module)) {
	for _, m := range cm.Modules {
		walkModule(m.Name, m, fn)
	}
}

func walkModule(path string, m *Module, fn func(string, *Module)) {
	fn(path, m)
	for _, child := range m.Modules {
		walkModule(path+"."+child.Name, child, fn)
	}
}

func splitPath(path string) []string {
	var segments []string
	start := 0
	for i := 0; i <= len(path); i++ {
		if i == len(path) || path[i] == '.' {
			if i > start {
				segments = append(segments, path[start:i])
			}
			start = i + 1
		}
	}
	return segments
}
