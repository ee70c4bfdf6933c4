package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/wetigu/ai-playground/pkg/api"
)

// FromAPI converts a failure recorded by a resource accessor into a
// StorefrontError with a code matching its kind.
func FromAPI(err error) *StorefrontError {
	if err == nil {
		return nil
	}

	var status *api.StatusError
	if stderrors.As(err, &status) {
		code := "S101"
		switch status.StatusCode {
		case http.StatusNotFound:
			code = "S106"
		case http.StatusUnauthorized, http.StatusForbidden:
			code = "S107"
		}
		return New(code).
			WithDetail(fmt.Sprintf("%s %s returned %d: %s", status.Method, status.Path, status.StatusCode, status.Message)).
			WithRequestID(status.RequestID).
			Wrap(err)
	}

	switch api.Kind(err) {
	case api.KindRejected:
		var rejected *api.RejectedError
		stderrors.As(err, &rejected)
		return New("S102").WithDetail(rejected.Error()).Wrap(err)
	case api.KindDecode:
		return New("S103").Wrap(err)
	case api.KindTimeout:
		return New("S104").Wrap(err)
	case api.KindCanceled:
		return New("S105").Wrap(err)
	default:
		return New("S100").Wrap(err)
	}
}
