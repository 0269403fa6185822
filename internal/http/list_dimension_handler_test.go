package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vitals-insights/internal/models"
	"vitals-insights/internal/queries"
	querymocks "vitals-insights/internal/queries/mocks"
	"vitals-insights/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T, queryService queries.QueryService) http.Handler {
	t.Helper()
	logger, err := loggers.New("info")
	require.NoError(t, err)
	return NewRouter(queryService, nil, nil, logger)
}

func TestListDimensionHandler_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	queryService := querymocks.NewMockQueryService(ctrl)

	listing := &queries.DimensionListing{
		Items: []queries.DimensionListItem{
			{Value: "/tv/[id]", Summary: &models.PeriodSummary{RequestCount: 120, Score: 88}},
		},
		Total: 1,
	}
	queryService.EXPECT().
		ListDimension(gomock.Any(), models.KindRoute, 14,
			models.ScopeFilters{Device: "mobile"},
			queries.Sort{Field: queries.SortByScore, Ascending: true}, 5).
		Return(listing, nil)

	router := newTestRouter(t, queryService)
	req := httptest.NewRequest(http.MethodGet, "/v1/dimensions/route?days=14&device=mobile&sortBy=score&sortDir=asc&limit=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got queries.DimensionListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "/tv/[id]", got.Items[0].Value)
}

func TestListDimensionHandler_DefaultsDaysAndNoLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	queryService := querymocks.NewMockQueryService(ctrl)

	queryService.EXPECT().
		ListDimension(gomock.Any(), models.KindCountry, defaultListingDays,
			models.ScopeFilters{}, queries.Sort{Field: queries.SortByRequests}, 0).
		Return(&queries.DimensionListing{}, nil)

	router := newTestRouter(t, queryService)
	req := httptest.NewRequest(http.MethodGet, "/v1/dimensions/country", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListDimensionHandler_BadRequests(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		url  string
	}{
		{name: "unknown kind", url: "/v1/dimensions/galaxy"},
		{name: "non-integer days", url: "/v1/dimensions/route?days=soon"},
		{name: "non-integer limit", url: "/v1/dimensions/route?limit=all"},
		{name: "unknown sort field", url: "/v1/dimensions/route?sortBy=elevation"},
		{name: "unknown sort direction", url: "/v1/dimensions/route?sortDir=up"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			router := newTestRouter(t, querymocks.NewMockQueryService(ctrl))

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
			assert.Equal(t, codeInvalidRequest, errResp.ErrorCode)
		})
	}
}

func TestListDimensionHandler_ServiceErrorPassesThrough(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	queryService := querymocks.NewMockQueryService(ctrl)

	queryService.EXPECT().
		ListDimension(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errInvalidRequest("listing requires a breakdown dimension, not summary", nil))

	router := newTestRouter(t, queryService)
	req := httptest.NewRequest(http.MethodGet, "/v1/dimensions/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
