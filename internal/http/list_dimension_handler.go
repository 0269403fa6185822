package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vitals-insights/internal/models"
	"vitals-insights/internal/queries"
)

const defaultListingDays = 7

type listDimensionHandler struct {
	queryService queries.QueryService
}

func NewListDimensionHandler(queryService queries.QueryService) AppHttpHandler {
	return &listDimensionHandler{queryService: queryService}
}

// Handle processes GET /v1/dimensions/{kind} requests.
func (h *listDimensionHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	kind, err := models.NewDimensionKindFromString(chi.URLParam(r, "kind"))
	if err != nil {
		return errInvalidRequest(err.Error(), nil)
	}

	q := r.URL.Query()
	days, err := intParam(q.Get("days"), defaultListingDays)
	if err != nil {
		return err
	}
	limit, err := intParam(q.Get("limit"), 0)
	if err != nil {
		return err
	}
	sortBy, err := queries.NewSortFromStrings(q.Get("sortBy"), q.Get("sortDir"))
	if err != nil {
		return errInvalidRequest(err.Error(), nil)
	}
	filters := models.ScopeFilters{
		Device:   q.Get("device"),
		Country:  q.Get("country"),
		Platform: q.Get("platform"),
	}

	listing, svcErr := h.queryService.ListDimension(r.Context(), kind, days, filters, sortBy, limit)
	if svcErr != nil {
		return svcErr
	}
	return writeJSON(w, http.StatusOK, listing)
}

func intParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidRequest(fmt.Sprintf("invalid integer parameter: %q", raw), err)
	}
	return n, nil
}
