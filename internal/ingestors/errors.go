package ingestors

import (
	"fmt"

	"vitals-insights/internal/shared/svcerrors"
)

// RollupIngestService errors
const (
	codeValidationFailed = "ING_1000"

	codeInternalRollupStoreFailed = "ING_9000"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errInternalRollupStoreFailed returns an error when a rollup store write fails.
func errInternalRollupStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRollupStoreFailed, fmt.Errorf("rollupStoreFailed: %w", cause))
}
