// Package handler exposes the classification service over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pidkit/internal/classify/models"
	"pidkit/internal/platform/metrics"
	"pidkit/internal/platform/middleware"
	"pidkit/pkg/platform/httputil"

	dErrors "pidkit/pkg/domain-errors"
)

// maxBodyBytes bounds request bodies; identifiers are at most a few hundred
// characters, so even a full batch fits comfortably.
const maxBodyBytes = 1 << 20

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Service defines the classification operations the handler needs.
type Service interface {
	Classify(ctx context.Context, raw string) models.Classification
	ClassifyBatch(ctx context.Context, values []string) ([]models.Classification, error)
	Schemes() []string
	History(ctx context.Context, limit int) ([]models.Record, error)
	PurgeHistory(ctx context.Context) (int64, error)
}

// Handler handles classification endpoints.
type Handler struct {
	logger     *slog.Logger
	svc        Service
	metrics    *metrics.Metrics
	adminToken string
}

// New creates a classification Handler. Metrics may be nil in tests.
func New(svc Service, logger *slog.Logger, m *metrics.Metrics, adminToken string) *Handler {
	return &Handler{
		logger:     logger,
		svc:        svc,
		metrics:    m,
		adminToken: adminToken,
	}
}

// Register mounts the classification routes on the given router.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Recovery(h.logger))
	api.Use(middleware.RequestID)
	api.Use(middleware.Logger(h.logger))
	api.Use(middleware.Timeout(10 * time.Second))
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.Latency(h.metrics))

	api.Post("/classify", h.handleClassify)
	api.Post("/classify/batch", h.handleClassifyBatch)
	api.Get("/schemes", h.handleSchemes)
	api.Get("/healthz", h.handleHealthz)

	admin := chi.NewRouter()
	admin.Use(middleware.RequireAdminToken(h.adminToken, h.logger))
	admin.Get("/history", h.handleHistory)
	admin.Delete("/history", h.handlePurgeHistory)
	api.Mount("/admin", admin)

	r.Mount("/", api)
}

func (h *Handler) handleClassify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.ClassifyRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid classify request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, h.svc.Classify(ctx, req.Value))
}

func (h *Handler) handleClassifyBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.BatchClassifyRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid batch classify request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	results, err := h.svc.ClassifyBatch(ctx, req.Values)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.BatchClassifyResponse{Results: results})
}

func (h *Handler) handleSchemes(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, models.SchemesResponse{Schemes: h.svc.Schemes()})
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	records, err := h.svc.History(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load history",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []models.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, models.HistoryResponse{Records: records})
}

func (h *Handler) handlePurgeHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	purged, err := h.svc.PurgeHistory(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to purge history",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.PurgeResponse{Purged: purged})
}
