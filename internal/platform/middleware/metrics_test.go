package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"logsviewer/internal/platform/metrics"
)

func TestInstrument(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(Instrument(m))
	r.Get("/logs", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/admin/logs/reload", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	for _, path := range []string{"/logs?page=1", "/logs?page=2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/admin/logs/reload", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin", nil))

	assert.Equal(t, 2.0, promtest.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/logs", "200")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/admin/logs/reload", "503")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.RequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")))
}

func TestInstrumentNilMetrics(t *testing.T) {
	h := Instrument(nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs", nil))
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}
