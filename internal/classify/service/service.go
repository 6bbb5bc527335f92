// Package service orchestrates identifier classification: the pure pkg/pid
// core plus best-effort caching, history, and metrics around it.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pidkit/internal/classify/metrics"
	"pidkit/internal/classify/models"
	"pidkit/pkg/pid"

	dErrors "pidkit/pkg/domain-errors"
)

// HistoryStore records classifications for curation audit.
type HistoryStore interface {
	Append(ctx context.Context, record *models.Record) error
	Recent(ctx context.Context, limit int) ([]models.Record, error)
	Purge(ctx context.Context) (int64, error)
}

// Cache serves repeated classifications of the same value.
type Cache interface {
	Get(ctx context.Context, value string) (models.Classification, bool, error)
	Set(ctx context.Context, value string, classification models.Classification) error
}

const defaultBatchLimit = 500

// Service wraps the classifier with cache, history, and metrics. Cache and
// history are strictly best-effort: their failures are logged, never
// surfaced, because classification itself cannot fail.
type Service struct {
	logger     *slog.Logger
	metrics    *metrics.Metrics
	cache      Cache
	history    HistoryStore
	batchLimit int
	now        func() time.Time
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithHistory(h HistoryStore) Option {
	return func(s *Service) {
		s.history = h
	}
}

func WithBatchLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.batchLimit = limit
		}
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{
		logger:     slog.New(slog.DiscardHandler),
		batchLimit: defaultBatchLimit,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Classify maps a raw value to a scheme and normalized form. It is total and
// never returns an error.
func (s *Service) Classify(ctx context.Context, raw string) models.Classification {
	trimmed := strings.TrimSpace(raw)

	if s.cache != nil && trimmed != "" {
		cached, found, err := s.cache.Get(ctx, trimmed)
		if err != nil {
			s.logger.WarnContext(ctx, "classification cache lookup failed", "error", err.Error())
		} else if found {
			s.metrics.ObserveCacheHit()
			return cached
		} else {
			s.metrics.ObserveCacheMiss()
		}
	}

	result := pid.Classify(raw)
	classification := models.Classification{
		Scheme:          result.Scheme.String(),
		NormalizedValue: result.NormalizedValue,
	}
	s.metrics.ObserveClassification(classification.Scheme)

	if s.cache != nil && trimmed != "" {
		if err := s.cache.Set(ctx, trimmed, classification); err != nil {
			s.logger.WarnContext(ctx, "classification cache store failed", "error", err.Error())
		}
	}
	s.record(ctx, trimmed, classification)

	return classification
}

// ClassifyBatch classifies every value in order. It fails only when the batch
// exceeds the configured limit.
func (s *Service) ClassifyBatch(ctx context.Context, values []string) ([]models.Classification, error) {
	if len(values) > s.batchLimit {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("batch exceeds limit of %d values", s.batchLimit))
	}
	s.metrics.ObserveBatchSize(len(values))

	results := make([]models.Classification, 0, len(values))
	for _, value := range values {
		results = append(results, s.Classify(ctx, value))
	}
	return results, nil
}

// Schemes returns the recognized scheme labels in precedence order.
func (s *Service) Schemes() []string {
	return pid.Schemes()
}

// History returns the most recent classification records.
func (s *Service) History(ctx context.Context, limit int) ([]models.Record, error) {
	if s.history == nil {
		return nil, dErrors.New(dErrors.CodeUnavailable, "history store not configured")
	}
	records, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load history")
	}
	return records, nil
}

// PurgeHistory deletes all classification records and reports how many.
func (s *Service) PurgeHistory(ctx context.Context) (int64, error) {
	if s.history == nil {
		return 0, dErrors.New(dErrors.CodeUnavailable, "history store not configured")
	}
	purged, err := s.history.Purge(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to purge history")
	}
	return purged, nil
}

// record appends a history entry. Empty input is not recorded; it carries no
// audit value.
func (s *Service) record(ctx context.Context, trimmed string, classification models.Classification) {
	if s.history == nil || trimmed == "" {
		return
	}
	entry := &models.Record{
		ID:              uuid.New(),
		RawValue:        trimmed,
		Scheme:          classification.Scheme,
		NormalizedValue: classification.NormalizedValue,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.history.Append(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "history append failed", "error", err.Error())
	}
}
