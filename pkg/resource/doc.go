// Package resource binds a backend collection path to typed read, create,
// update and delete operations and exposes their progress as observable cells.
//
// An Accessor is created once per view of a resource:
//
//	products := resource.MustNew[[]model.Product, model.ProductQuery, model.ProductInput](client, "/products")
//	products.FetchCollectionWith(ctx, model.ProductQuery{Search: "widget"})
//
//	if products.IsLoading() { ... }
//	if err := products.Error(); err != nil { ... }
//	if list, ok := products.Value(); ok { ... }
//
// Each operation sets loading=true and clears the error on entry. On exit it
// sets loading=false and writes exactly one of data (success) or error
// (failure). Failures never propagate as Go errors: Create and Update return
// (zero, false), Remove returns false, and the error cell holds the cause.
//
// The three cells are instance-wide. Operations issued concurrently on one
// accessor race and the completion that runs last determines the final cells.
// Callers that need ordering must wait for one call to return before issuing
// the next.
//
// UI code can render directly from the state:
//
//	text := resource.Match(products,
//	    resource.OnLoading[[]model.Product](func() string { return "loading" }),
//	    resource.OnError[[]model.Product](func(err error) string { return err.Error() }),
//	    resource.OnReady(func(p []model.Product) string { return fmt.Sprint(len(p)) }),
//	)
package resource
