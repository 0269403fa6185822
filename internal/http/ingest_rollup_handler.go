package http

import (
	"net/http"

	"vitals-insights/internal/ingestors"
)

type ingestRollupHandler struct {
	ingestService ingestors.RollupIngestService
}

func NewIngestRollupHandler(ingestService ingestors.RollupIngestService) AppHttpHandler {
	return &ingestRollupHandler{ingestService: ingestService}
}

// Handle processes POST /v1/rollups requests.
func (h *ingestRollupHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	result, err := h.ingestService.IngestRollups(r.Context(), contentType(r), r.Body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusAccepted, map[string]int{"storedCount": result.StoredCount})
}
