package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vitals-insights/internal/ingestors"
	ingestmocks "vitals-insights/internal/ingestors/mocks"
	"vitals-insights/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newIngestRouter(t *testing.T, ingestService ingestors.RollupIngestService) http.Handler {
	t.Helper()
	logger, err := loggers.New("info")
	require.NoError(t, err)
	return NewRouter(nil, ingestService, nil, logger)
}

func TestIngestRollupHandler_Accepted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ingestService := ingestmocks.NewMockRollupIngestService(ctrl)

	ingestService.EXPECT().
		IngestRollups(gomock.Any(), "application/json", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, r io.Reader) (*ingestors.IngestResult, error) {
			body, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.JSONEq(t, `[{"date": "2025-01-15", "kind": "summary", "pageviews": 10}]`, string(body))
			return &ingestors.IngestResult{StoredCount: 1}, nil
		})

	router := newIngestRouter(t, ingestService)
	req := httptest.NewRequest(http.MethodPost, "/v1/rollups",
		strings.NewReader(`[{"date": "2025-01-15", "kind": "summary", "pageviews": 10}]`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var got map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got["storedCount"])
}

func TestIngestRollupHandler_ValidationErrorMapsTo400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	ingestService := ingestmocks.NewMockRollupIngestService(ctrl)

	ingestService.EXPECT().
		IngestRollups(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errInvalidRequest("rollup records cannot be empty", nil))

	router := newIngestRouter(t, ingestService)
	req := httptest.NewRequest(http.MethodPost, "/v1/rollups", strings.NewReader(`[]`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "rollup records cannot be empty", errResp.ErrorDescription)
	assert.NotEmpty(t, errResp.RequestID)
}
