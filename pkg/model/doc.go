// Package model defines the storefront entities exchanged with the backend,
// the partial write payloads used by create and update calls, and the query
// parameter types accepted by list endpoints.
package model
