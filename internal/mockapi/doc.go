// Package mockapi is an in-memory storefront backend speaking the envelope
// protocol. It backs the transport and CLI tests and the `storefront mock`
// command.
//
//	srv := mockapi.New(mockapi.WithSeed())
//	ts := httptest.NewServer(srv.Handler())
//	defer ts.Close()
//
// Routes (all under the handler root):
//
//	GET    /products            list, paginated (page, per_page, category, search, min_price, max_price, in_stock)
//	GET    /products/{id}
//	POST   /products
//	PUT    /products/{id}
//	DELETE /products/{id}
//
// and the same for /orders (status, user_id) and /users (search, is_active).
package mockapi
