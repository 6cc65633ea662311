// Package completion answers symbol completion queries against the index.
//
// Three lookups are supported:
//
//	// Prefix anywhere in the project
//	c.Complete(ctx, completion.Request{ProjectID: id, Prefix: "Us"})
//
//	// Members of a class or module
//	c.Complete(ctx, completion.Request{ProjectID: id, Container: "App.Models.User"})
//
//	// Dotted prefix: members of App.Models whose name starts with "Us"
//	c.Complete(ctx, completion.Request{ProjectID: id, Prefix: "App.Models.Us"})
//
// Responses are cached in an LRU keyed by the normalized request. The cache
// does not observe writes, so callers that re-index must call Invalidate.
package completion
