package symbols

import (
	"strings"

	"github.com/dshills/tscontext-mcp/pkg/types"
)

// Flattener turns a code model into flat, qualified symbols
type Flattener struct {
	// IncludePrivate controls whether private members are emitted
	IncludePrivate bool
}

// New creates a Flattener that emits every member
func New() *Flattener {
	return &Flattener{IncludePrivate: true}
}

// Flatten walks the model depth-first and returns one symbol per module, class,
// field and function, in declaration order
func (f *Flattener) Flatten(model *types.CodeModel) []types.Symbol {
	if model == nil {
		return nil
	}

	out := make([]types.Symbol, 0)
	model.Walk(func(path string, m *types.Module) {
		out = append(out, types.Symbol{
			Name:          m.Name,
			Kind:          types.KindModule,
			QualifiedName: path,
			Container:     parentPath(path),
			Signature:     "module " + path,
			IsExported:    true,
			Ordinal:       len(out),
		})

		for _, c := range m.Classes {
			out = f.appendClass(out, path, c)
		}
	})
	return out
}

func (f *Flattener) appendClass(out []types.Symbol, modulePath string, c *types.Class) []types.Symbol {
	classPath := modulePath + "." + c.Name
	out = append(out, types.Symbol{
		Name:          c.Name,
		Kind:          types.KindClass,
		QualifiedName: classPath,
		Container:     modulePath,
		Signature:     ClassSignature(c),
		Type:          types.TypeObject,
		Access:        types.AccessPublic,
		IsExported:    c.IsExported,
		Ordinal:       len(out),
	})

	for _, field := range c.Fields {
		if !f.IncludePrivate && field.Access == types.AccessPrivate {
			continue
		}
		out = append(out, types.Symbol{
			Name:          field.Name,
			Kind:          types.KindField,
			QualifiedName: classPath + "." + field.Name,
			Container:     classPath,
			Signature:     FieldSignature(field),
			Type:          field.Type,
			TypeName:      field.TypeName,
			Access:        field.Access,
			IsExported:    c.IsExported && field.Access == types.AccessPublic,
			Ordinal:       len(out),
		})
	}

	for _, fn := range c.Functions {
		if !f.IncludePrivate && fn.Access == types.AccessPrivate {
			continue
		}
		out = append(out, types.Symbol{
			Name:          fn.Name,
			Kind:          types.KindFunction,
			QualifiedName: classPath + "." + fn.Name,
			Container:     classPath,
			Signature:     FunctionSignature(fn),
			Type:          fn.ReturnType,
			TypeName:      fn.ReturnTypeName,
			Access:        fn.Access,
			IsExported:    c.IsExported && fn.Access == types.AccessPublic,
			Ordinal:       len(out),
		})
	}
	return out
}

// ClassSignature renders a class header
func ClassSignature(c *types.Class) string {
	if c.IsExported {
		return "export class " + c.Name
	}
	return "class " + c.Name
}

// FieldSignature renders "name: type", omitting the type when unannotated
func FieldSignature(field *types.Field) string {
	var sig strings.Builder
	if field.Access != types.AccessPublic {
		sig.WriteString(string(field.Access))
		sig.WriteString(" ")
	}
	sig.WriteString(field.Name)
	if field.TypeName != "" {
		sig.WriteString(": ")
		sig.WriteString(field.TypeName)
	}
	return sig.String()
}

// FunctionSignature renders "name(arg: type, ...): type"
func FunctionSignature(fn *types.Function) string {
	var sig strings.Builder
	if fn.Access != types.AccessPublic {
		sig.WriteString(string(fn.Access))
		sig.WriteString(" ")
	}
	sig.WriteString(fn.Name)
	sig.WriteString("(")
	for i, arg := range fn.Arguments {
		if i > 0 {
			sig.WriteString(", ")
		}
		sig.WriteString(arg.Name)
		if arg.TypeName != "" {
			sig.WriteString(": ")
			sig.WriteString(arg.TypeName)
		}
	}
	sig.WriteString(")")
	if fn.ReturnTypeName != "" {
		sig.WriteString(": ")
		sig.WriteString(fn.ReturnTypeName)
	}
	return sig.String()
}

func parentPath(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return ""
}

// Flatten flattens model with a default Flattener
func Flatten(model *types.CodeModel) []types.Symbol {
	return New().Flatten(model)
}
