package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pidkit/internal/classify/models"
	"pidkit/internal/classify/service"
	"pidkit/internal/classify/store"
	"pidkit/pkg/testutil"
)

const adminToken = "secret-token"

func newRouter(t *testing.T, opts ...service.Option) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	svc := service.New(append([]service.Option{service.WithLogger(logger)}, opts...)...)

	h := New(svc, logger, nil, adminToken)
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestClassifyEndpoint(t *testing.T) {
	router := newRouter(t)

	tests := []struct {
		name           string
		value          string
		wantScheme     string
		wantNormalized string
	}{
		{"DOI resolver URL", "https://doi.org/10.1029/2015EO022207", "DOI", "10.1029/2015EO022207"},
		{"bare arXiv", "2501.13958v3", "arXiv", "2501.13958v3"},
		{"generic URL", "https://example.com/resource", "URL", "https://example.com/resource"},
		{"empty value", "", "unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/classify", models.ClassifyRequest{Value: tt.value})
			rr := testutil.DoRequest(router, req)

			testutil.AssertStatus(t, rr, http.StatusOK)
			got := testutil.UnmarshalResponse[models.Classification](t, rr)
			assert.Equal(t, tt.wantScheme, got.Scheme)
			assert.Equal(t, tt.wantNormalized, got.NormalizedValue)
		})
	}
}

func TestClassifyEndpoint_MalformedBody(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/classify", "{not json")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, "bad_request")
}

func TestClassifyEndpoint_RejectsNonJSONContentType(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewRequestWithBody(t, http.MethodPost, "/classify", `{"value":"x"}`)
	req.Header.Set("Content-Type", "text/plain")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestBatchEndpoint(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/classify/batch", models.BatchClassifyRequest{
		Values: []string{"10.5880/fidgeo.2025.072", "junk"},
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	got := testutil.UnmarshalResponse[models.BatchClassifyResponse](t, rr)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "DOI", got.Results[0].Scheme)
	assert.Equal(t, "unknown", got.Results[1].Scheme)
}

func TestBatchEndpoint_OverLimit(t *testing.T) {
	router := newRouter(t, service.WithBatchLimit(1))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/classify/batch", models.BatchClassifyRequest{
		Values: []string{"a", "b"},
	})
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, "validation_failed")
}

func TestSchemesEndpoint(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/schemes", nil)
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	got := testutil.UnmarshalResponse[models.SchemesResponse](t, rr)
	assert.Equal(t, []string{"DOI", "ARK", "arXiv", "bibcode", "CSTR", "Handle", "URL", "unknown"}, got.Schemes)
}

func TestHealthzEndpoint(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil)
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestAdminHistory_TokenRequired(t *testing.T) {
	router := newRouter(t, service.WithHistory(store.NewMemory()))

	req := testutil.NewJSONRequest(t, http.MethodGet, "/admin/history", nil)
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)

	req = testutil.NewJSONRequest(t, http.MethodGet, "/admin/history", nil)
	req.Header.Set("X-Admin-Token", "wrong")
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminHistory_Flow(t *testing.T) {
	router := newRouter(t, service.WithHistory(store.NewMemory()))

	// Generate two history entries through the public endpoint.
	for _, value := range []string{"10.5880/fidgeo.2025.072", "11234/56789"} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/classify", models.ClassifyRequest{Value: value})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
	}

	req := testutil.NewJSONRequest(t, http.MethodGet, "/admin/history", nil)
	req.Header.Set("X-Admin-Token", adminToken)
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	history := testutil.UnmarshalResponse[models.HistoryResponse](t, rr)
	require.Len(t, history.Records, 2)
	assert.Equal(t, "11234/56789", history.Records[0].RawValue, "newest first")

	req = testutil.NewJSONRequest(t, http.MethodDelete, "/admin/history", nil)
	req.Header.Set("X-Admin-Token", adminToken)
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	purge := testutil.UnmarshalResponse[models.PurgeResponse](t, rr)
	assert.Equal(t, int64(2), purge.Purged)

	req = testutil.NewJSONRequest(t, http.MethodGet, "/admin/history", nil)
	req.Header.Set("X-Admin-Token", adminToken)
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	history = testutil.UnmarshalResponse[models.HistoryResponse](t, rr)
	assert.Empty(t, history.Records)
}

func TestAdminHistory_HistoryLimitValidation(t *testing.T) {
	router := newRouter(t, service.WithHistory(store.NewMemory()))

	req := testutil.NewJSONRequest(t, http.MethodGet, "/admin/history?limit=banana", nil)
	req.Header.Set("X-Admin-Token", adminToken)
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestAdminHistory_UnavailableWithoutStore(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/admin/history", nil)
	req.Header.Set("X-Admin-Token", adminToken)
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.AssertErrorCode(t, rr, "unavailable")
}
