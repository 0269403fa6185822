package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"vitals-insights/internal/models"
	"vitals-insights/internal/queries"
)

type dimensionSeriesHandler struct {
	queryService queries.QueryService
}

func NewDimensionSeriesHandler(queryService queries.QueryService) AppHttpHandler {
	return &dimensionSeriesHandler{queryService: queryService}
}

// Handle processes GET /v1/dimensions/{kind}/series requests. The dimension
// value travels as a query parameter because route patterns contain slashes.
func (h *dimensionSeriesHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	kind, err := models.NewDimensionKindFromString(chi.URLParam(r, "kind"))
	if err != nil {
		return errInvalidRequest(err.Error(), nil)
	}

	q := r.URL.Query()
	value := q.Get("value")
	if kind != models.KindSummary && value == "" {
		return errInvalidRequest("value parameter is required", nil)
	}
	days, err := intParam(q.Get("days"), defaultListingDays)
	if err != nil {
		return err
	}

	series, svcErr := h.queryService.DimensionTimeSeries(r.Context(), kind, value, days)
	if svcErr != nil {
		return svcErr
	}
	return writeJSON(w, http.StatusOK, series)
}
