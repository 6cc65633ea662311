// Package types provides shared type definitions for the tscontext MCP server.
//
// This package defines the code model produced by the parser, the flattened
// symbols derived from it, and the error kinds reported by a failed parse.
//
// # Code Model
//
// A CodeModel is the result of parsing one source file. It owns the literal table
// (quoted strings lifted out of the source before tokenization) and the module tree:
//
//	model, err := parser.Parse(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, m := range model.Modules {
//	    fmt.Println(m.Name, len(m.Classes))
//	}
//
// Dotted module paths (module App.Models { ... }) become a chain of nested Module
// values. Sibling modules are merged by name; classes are never merged, so a
// re-declared class appears twice in its module.
//
// # Type Annotations
//
// Field, argument, and return annotations are mapped onto the closed TypeKind set:
//
//	types.ParseTypeKind("string")     // TypeString
//	types.ParseTypeKind("Array<any>") // TypeArray
//	types.ParseTypeKind("Widget")     // TypeAny (TypeObject once resolved to a class)
//
// Unrecognized annotations are not an error; they degrade to TypeAny.
//
// # Errors
//
// A parse either returns a complete model or fails with one of:
//
//	*SyntaxError               // errors.Is(err, ErrSyntax)
//	*AmbiguousAnnotationError  // errors.Is(err, ErrAmbiguousAnnotation)
//
// A SyntaxError with an empty Actual token additionally matches ErrUnexpectedEOF.
//
// # Symbols
//
// Symbol is the flattened, storage-friendly view of a declaration, keyed by its
// dotted qualified name:
//
//	App.Models              // module
//	App.Models.User         // class
//	App.Models.User.name    // field
//	App.Models.User.save    // function
package types
