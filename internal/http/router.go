package http

import (
	"net/http"

	"vitals-insights/internal/ingestors"
	"vitals-insights/internal/queries"
	"vitals-insights/internal/shared/loggers"
	"vitals-insights/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(queryService queries.QueryService, ingestService ingestors.RollupIngestService, cache *responseCache, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	listDimensionHandler := NewListDimensionHandler(queryService)
	dimensionSeriesHandler := NewDimensionSeriesHandler(queryService)
	ingestRollupHandler := NewIngestRollupHandler(ingestService)

	// Routes. Reads go through the short-TTL response cache; the query
	// engine itself stays cache-free.
	router.Get("/v1/dimensions/{kind}", cache.wrap(errorHandlingAdapter(listDimensionHandler)))
	router.Get("/v1/dimensions/{kind}/series", cache.wrap(errorHandlingAdapter(dimensionSeriesHandler)))
	router.Post("/v1/rollups", errorHandlingAdapter(ingestRollupHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
