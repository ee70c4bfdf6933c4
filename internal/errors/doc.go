// Package errors provides structured, actionable error messages for the
// storefront command line.
//
// Each error has a code (e.g. "S101") registered with a category, a short
// message, a longer detail and an optional hint:
//
//	err := errors.New("S101").
//	    WithDetail("GET /products returned 503").
//	    Wrap(cause)
//
//	fmt.Fprint(os.Stderr, err.Format())
//	// ERROR S101: Backend returned an error status
//	//
//	//   GET /products returned 503
//	//
//	//   Hint: Check the backend logs for the request ID.
//
// FromAPI classifies transport failures so the CLI can report them with a
// code and a hint rather than a bare Go error string.
package errors
