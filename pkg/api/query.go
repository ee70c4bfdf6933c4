package api

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// QueryEncoder is implemented by parameter types that build their own query.
type QueryEncoder interface {
	Query() (url.Values, error)
}

// EncodeQuery converts params into URL query values. Supported inputs are
// nil, url.Values, map[string]string, QueryEncoder implementations, and
// structs (or pointers to structs) tagged with `url:"name,omitempty"`.
func EncodeQuery(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string]string:
		values := make(url.Values, len(p))
		for k, v := range p {
			values.Set(k, v)
		}
		return values, nil
	case QueryEncoder:
		return p.Query()
	}

	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
