package http

import (
	"vitals-insights/internal/shared/svcerrors"
)

const (
	codeInvalidRequest = "API_1000"
)

// errInvalidRequest returns an error for malformed query or path parameters.
func errInvalidRequest(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRequest, msg, cause)
}
