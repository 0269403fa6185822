package ingestors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mileusna/useragent"

	"vitals-insights/internal/histograms"
	"vitals-insights/internal/models"
	"vitals-insights/internal/rollupkeys"
	"vitals-insights/internal/shared/loggers"
	"vitals-insights/internal/shared/metrics"
	"vitals-insights/internal/shared/svcerrors"
	"vitals-insights/internal/stores"
)

const (
	maxBodyBytes = 2 * 1024 * 1024
	maxValueLen  = 2048
)

const (
	FormatJSON = "json"
)

// IngestResult represents the result of a rollup ingest operation.
type IngestResult struct {
	StoredCount int
}

//go:generate mockgen -source=rollup_ingest_service.go -destination=./mocks/rollup_ingest_service_mock.go -package=mocks
type RollupIngestService interface {
	// IngestRollups validates and stores a batch of daily rollup records from
	// JSON format. Writes are upserts: re-sending a record for the same
	// date/scope/kind/value replaces it.
	IngestRollups(ctx context.Context, format string, r io.Reader) (*IngestResult, error)
}

type rollupIngestService struct {
	store stores.RollupStore
}

func NewRollupIngestService(store stores.RollupStore) RollupIngestService {
	return &rollupIngestService{store: store}
}

func (s *rollupIngestService) IngestRollups(ctx context.Context, format string, r io.Reader) (*IngestResult, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting rollups with format: %s", format)

	records, err := s.validateRollups(format, r)
	if err != nil {
		if svcErr, ok := svcerrors.AsServiceError(err); ok {
			metricRollupsIngestedTotal.WithLabelValues(svcErr.Code).Inc()
		}
		return nil, err
	}

	for _, record := range records {
		if err := s.store.Put(ctx, record); err != nil {
			svcErr := errInternalRollupStoreFailed(err)
			metricRollupsIngestedTotal.WithLabelValues(svcErr.Code).Inc()
			return nil, svcErr
		}
	}

	metricRollupsIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return &IngestResult{StoredCount: len(records)}, nil
}

// rollupInput is the wire shape of one ingested daily rollup.
type rollupInput struct {
	Date  string `json:"date"`
	Kind  string `json:"kind"`
	Value string `json:"value"`

	Device   string `json:"device"`
	Country  string `json:"country"`
	Platform string `json:"platform"`
	// UserAgent may be supplied instead of Device by producers that capture
	// the raw agent string; the device class is derived from it.
	UserAgent string `json:"userAgent"`

	Pageviews    int64 `json:"pageviews"`
	RequestCount int64 `json:"requestCount"`

	Metrics      map[string]*models.PercentileStats `json:"metrics"`
	StatusCodes  *models.StatusCounts               `json:"statusCodes"`
	Dependencies map[string]*models.PercentileStats `json:"dependencies"`

	Score float64 `json:"score"`
}

func (s *rollupIngestService) validateRollups(format string, r io.Reader) ([]*models.RollupRecord, error) {
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}
	if !strings.Contains(strings.ToLower(format), FormatJSON) {
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	buf, err := readWithLimit(r, maxBodyBytes)
	if err != nil {
		return nil, err
	}

	var inputs []*rollupInput
	if err := json.Unmarshal(buf, &inputs); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}
	if len(inputs) == 0 {
		return nil, errValidationFailed("rollup records cannot be empty", nil)
	}

	records := make([]*models.RollupRecord, 0, len(inputs))
	for i, input := range inputs {
		record, err := s.inputToRecord(input, i)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (s *rollupIngestService) inputToRecord(input *rollupInput, index int) (*models.RollupRecord, error) {
	date, err := rollupkeys.ParseDate(input.Date)
	if err != nil {
		return nil, errValidationFailed(fmt.Sprintf("item at index %d: invalid date %q", index, input.Date), err)
	}
	kind, err := models.NewDimensionKindFromString(input.Kind)
	if err != nil {
		return nil, errValidationFailed(fmt.Sprintf("item at index %d: %v", index, err), nil)
	}

	value := strings.TrimSpace(input.Value)
	if kind == models.KindSummary && value != "" {
		return nil, errValidationFailed(fmt.Sprintf("item at index %d: summary records take no value", index), nil)
	}
	if kind != models.KindSummary && value == "" {
		return nil, errValidationFailed(fmt.Sprintf("item at index %d: missing value for kind %q", index, kind), nil)
	}
	if len(value) > maxValueLen {
		return nil, errValidationFailed(fmt.Sprintf("item at index %d: value too long: max %d characters", index, maxValueLen), nil)
	}
	if input.Pageviews < 0 || input.RequestCount < 0 {
		return nil, errValidationFailed(fmt.Sprintf("item at index %d: negative weight", index), nil)
	}
	device := strings.TrimSpace(input.Device)
	if device == "" && input.UserAgent != "" {
		device = deviceClass(input.UserAgent)
	}

	record := &models.RollupRecord{
		Date: date,
		Kind: kind,
		Scope: models.ScopeFilters{
			Device:   device,
			Country:  strings.TrimSpace(input.Country),
			Platform: strings.TrimSpace(input.Platform),
		},
		Value:        value,
		Pageviews:    input.Pageviews,
		RequestCount: input.RequestCount,
		StatusCodes:  input.StatusCodes,
		Score:        input.Score,
	}

	for name, stats := range input.Metrics {
		metric, err := models.NewMetricFromString(name)
		if err != nil {
			return nil, errValidationFailed(fmt.Sprintf("item at index %d: %v", index, err), nil)
		}
		bounds, _ := histograms.Boundaries(metric)
		if err := validateStatsShape(stats, bounds); err != nil {
			return nil, errValidationFailed(fmt.Sprintf("item at index %d metric %s: %v", index, metric, err), nil)
		}
		if record.Metrics == nil {
			record.Metrics = make(map[models.Metric]*models.PercentileStats, len(input.Metrics))
		}
		record.Metrics[metric] = stats
	}
	for name, stats := range input.Dependencies {
		if err := validateStatsShape(stats, histograms.DependencyBoundaries()); err != nil {
			return nil, errValidationFailed(fmt.Sprintf("item at index %d dependency %s: %v", index, name, err), nil)
		}
		if record.Dependencies == nil {
			record.Dependencies = make(map[string]*models.PercentileStats, len(input.Dependencies))
		}
		record.Dependencies[name] = stats
	}
	return record, nil
}

// validateStatsShape enforces the stored-record invariants at the write edge
// so the read path never sees a histogram disagreeing with its count.
func validateStatsShape(stats *models.PercentileStats, bounds []float64) error {
	if stats == nil {
		return fmt.Errorf("missing stats")
	}
	if stats.Count < 0 {
		return fmt.Errorf("negative count %d", stats.Count)
	}
	if stats.Histogram == nil {
		return nil
	}
	if len(stats.Histogram) != len(bounds) {
		return fmt.Errorf("histogram has %d buckets, expected %d", len(stats.Histogram), len(bounds))
	}
	var sum int64
	for _, c := range stats.Histogram {
		if c < 0 {
			return fmt.Errorf("negative bucket count %d", c)
		}
		sum += c
	}
	if sum != stats.Count {
		return fmt.Errorf("histogram buckets sum to %d but count is %d", sum, stats.Count)
	}
	return nil
}

// deviceClass maps a raw user agent string to the device dimension values the
// key scheme stores.
func deviceClass(ua string) string {
	parsed := useragent.Parse(ua)
	switch {
	case parsed.Bot:
		return "bot"
	case parsed.Mobile:
		return "mobile"
	case parsed.Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// readWithLimit reads up to max+1 bytes from r and rejects bodies over max.
func readWithLimit(r io.Reader, max int) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > max {
		return nil, errValidationFailed("batch too large: must be <= 2MB", nil)
	}
	return buf, nil
}
