// Package symbols flattens parsed code models into qualified symbols.
//
// Each module, class, field and function becomes one types.Symbol keyed by its
// dotted path, which is what the index stores and completion queries return:
//
//	model, _ := parser.Parse(src)
//	for _, sym := range symbols.New().Flatten(model) {
//	    fmt.Printf("%-8s %s\n", sym.Kind, sym.Signature)
//	}
//
// Duplicate class declarations produce duplicate qualified names; the Ordinal
// field keeps them distinguishable and preserves declaration order.
package symbols
