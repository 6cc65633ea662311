package parser

import "github.com/dshills/tscontext-mcp/pkg/types"

// resolveObjectTypes links annotations that name a declared class to that class.
// Both simple names and dotted module-qualified names are recognized; when a
// simple name is declared more than once the first declaration wins.
func resolveObjectTypes(model *types.CodeModel) {
	classes := make(map[string]*types.Class)
	register := func(name string, c *types.Class) {
		if _, exists := classes[name]; !exists {
			classes[name] = c
		}
	}
	model.Walk(func(path string, m *types.Module) {
		for _, c := range m.Classes {
			register(path+"."+c.Name, c)
			register(c.Name, c)
		}
	})
	if len(classes) == 0 {
		return
	}

	lookup := func(typeName string) *types.Class {
		if typeName == "" || types.IsTypeKeyword(typeName) {
			return nil
		}
		return classes[typeName]
	}

	model.Walk(func(_ string, m *types.Module) {
		for _, c := range m.Classes {
			for _, f := range c.Fields {
				if target := lookup(f.TypeName); target != nil {
					f.ObjectType = target
					f.Type = types.TypeObject
				}
			}
			for _, fn := range c.Functions {
				if target := lookup(fn.ReturnTypeName); target != nil {
					fn.ReturnObjectType = target
					fn.ReturnType = types.TypeObject
				}
				for _, arg := range fn.Arguments {
					if target := lookup(arg.TypeName); target != nil {
						arg.ObjectType = target
						arg.Type = types.TypeObject
					}
				}
			}
		}
	})
}
