package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ScoreIngest/internal/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestMetrics_ObserveImport(t *testing.T) {
	m := NewIngestMetrics()
	m.ObserveImport(model.VariantHalfs, true, 3, 1)
	m.ObserveImport(model.VariantHalfs, false, 2, 0)
	m.ObserveImport(model.VariantHalfs, false, 5, 2)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.rows.WithLabelValues("halfs", "preview", "accepted")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.rows.WithLabelValues("halfs", "commit", "accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rows.WithLabelValues("halfs", "commit", "rejected")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.imports.WithLabelValues("halfs", "commit")))
}

func TestIngestMetrics_ObserveCorrection(t *testing.T) {
	m := NewIngestMetrics()
	m.ObserveCorrection(model.VariantCyber, "merge", 4)
	m.ObserveCorrection(model.VariantCyber, "merge", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.corrections.WithLabelValues("cyber", "merge")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.changed.WithLabelValues("cyber", "merge")))
}

func TestIngestMetrics_Handler(t *testing.T) {
	m := NewIngestMetrics()
	m.ObserveImport(model.VariantHalfs, false, 1, 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `scoreingest_rows_total{mode="commit",outcome="accepted",variant="halfs"} 1`))
}
