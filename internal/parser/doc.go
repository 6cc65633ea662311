// Package parser builds code models from module/class source files.
//
// Parsing is a fixed pipeline of whole-text passes followed by a recursive
// descent over the resulting tokens:
//
//  1. ExtractQuotedStrings lifts every quoted literal out of the text and
//     replaces it with a placeholder token, so delimiters and whitespace
//     inside strings never reach the later passes.
//  2. ExpandDelimiters puts exactly one space around each '{', '}' and ';'.
//  3. NormalizeWhitespace collapses whitespace runs (\r\n, \n, \t, ...) to a
//     single space.
//  4. Tokenize splits on spaces.
//  5. A Cursor walks the tokens while the grammar builds the module tree,
//     restoring literal text for names and values through the placeholder table.
//
// # Basic Usage
//
//	model, err := parser.Parse(`module App.Models { export class User { name: string; } }`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	user := model.FindModule("App.Models").Classes[0]
//	fmt.Println(user.Name, user.Fields[0].Type) // User string
//
// Files are read with a Parser, which also handles UTF-16 input:
//
//	p := parser.New(parser.WithMaxFileSize(1 << 20))
//	model, err := p.ParseFile("/path/to/app.ts")
//
// # Grammar
//
//	file     = { module }
//	module   = "module" path "{" { module | class } "}"
//	class    = [ "export" ] "class" name "{" { field | function } "}"
//	field    = [ access ] name [ ":" type ] [ "=" value ] [ ";" ]
//	function = [ access ] name "(" args ")" [ ":" type ] ( ";" | block )
//
// Dotted paths merge with modules already declared under the same parent; a
// nested module declaration resolves its path from the file root. Function
// bodies are skipped by brace depth and never interpreted.
//
// # Error Handling
//
// There is no recovery: the first mismatch aborts the parse with a
// *types.SyntaxError naming the expected token and the remaining stream, or a
// *types.AmbiguousAnnotationError for a name with more than one ':'.
//
// Quote handling is loose: a literal opened with one quote
// character may be closed by any of the three, matching what existing
// source files rely on.
package parser
