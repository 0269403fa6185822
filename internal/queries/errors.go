package queries

import (
	"fmt"

	"vitals-insights/internal/shared/svcerrors"
)

const (
	codeInvalidQuery              = "QRY_1000"
	codeInternalStoreScanFailed   = "QRY_9000"
	codeInternalAggregationFailed = "QRY_9001"
)

// errInvalidQuery returns an error when the caller asked for an unsupported
// dimension or sort.
func errInvalidQuery(message string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidQuery, message, cause)
}

// errInternalStoreScanFailed returns an error when an underlying store read
// failed or the request was cancelled mid-scan. The engine never retries;
// retry policy belongs to the storage client.
func errInternalStoreScanFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStoreScanFailed, fmt.Errorf("storeScanFailed: %w", cause))
}

// errInternalAggregationFailed returns an error when aggregation rejected the
// fetched records, typically a malformed stored record.
func errInternalAggregationFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalAggregationFailed, fmt.Errorf("aggregationFailed: %w", cause))
}
