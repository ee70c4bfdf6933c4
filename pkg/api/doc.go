// Package api is the HTTP transport used by storefront resource accessors.
//
// Every backend response is expected to carry the envelope
//
//	{"success": true, "message": "optional", "data": <payload>}
//
// The Transport interface is the only contract accessors depend on, so tests
// can substitute a scripted fake. Client is the production implementation on
// top of net/http with client-side rate limiting, Prometheus metrics and
// OpenTelemetry spans.
//
// # Usage
//
//	client, err := api.NewClient(api.DefaultConfig(),
//	    api.WithMetrics(api.NewMetrics(api.WithRegistry(reg))),
//	)
//	if err != nil {
//	    return err
//	}
//	resp, err := client.Get(ctx, "/products", url.Values{"page": {"1"}})
//	if err != nil {
//	    return err
//	}
//	page, ok, err := api.Decode[model.Page[model.Product]](resp)
//
// # Failures
//
// Client reports every failure as an error value:
//   - *StatusError for non-2xx responses
//   - *RejectedError for 2xx responses whose envelope says success=false
//   - *DecodeError for bodies that are not valid JSON for the target type
//   - the wrapped net/http error for network failures and timeouts
//
// Kind classifies an error for logs and metrics.
package api
