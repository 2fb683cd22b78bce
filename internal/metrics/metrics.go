package metrics

import (
	"net/http"

	"ScoreIngest/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// IngestMetrics 导入与批量修正的 Prometheus 指标
type IngestMetrics struct {
	registry    *prometheus.Registry
	rows        *prometheus.CounterVec
	imports     *prometheus.CounterVec
	corrections *prometheus.CounterVec
	changed     *prometheus.CounterVec
}

// NewIngestMetrics 在独立 registry 上注册指标
func NewIngestMetrics() *IngestMetrics {
	reg := prometheus.NewRegistry()
	m := &IngestMetrics{
		registry: reg,
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreingest",
			Name:      "rows_total",
			Help:      "Pasted rows processed, by variant, mode and outcome.",
		}, []string{"variant", "mode", "outcome"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreingest",
			Name:      "imports_total",
			Help:      "Import requests, by variant and mode.",
		}, []string{"variant", "mode"}),
		corrections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreingest",
			Name:      "corrections_total",
			Help:      "Bulk correction runs, by variant and operation.",
		}, []string{"variant", "operation"}),
		changed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreingest",
			Name:      "corrected_records_total",
			Help:      "Records changed by bulk corrections, by variant and operation.",
		}, []string{"variant", "operation"}),
	}
	reg.MustRegister(m.rows, m.imports, m.corrections, m.changed)
	return m
}

// ObserveImport 记录一次预览/提交
func (m *IngestMetrics) ObserveImport(variant model.Variant, dryRun bool, accepted, rejected int) {
	mode := "commit"
	if dryRun {
		mode = "preview"
	}
	v := string(variant)
	m.imports.WithLabelValues(v, mode).Inc()
	m.rows.WithLabelValues(v, mode, "accepted").Add(float64(accepted))
	m.rows.WithLabelValues(v, mode, "rejected").Add(float64(rejected))
}

// ObserveCorrection 记录一次批量修正
func (m *IngestMetrics) ObserveCorrection(variant model.Variant, operation string, changed int) {
	m.corrections.WithLabelValues(string(variant), operation).Inc()
	m.changed.WithLabelValues(string(variant), operation).Add(float64(changed))
}

// Registry 供测试读取
func (m *IngestMetrics) Registry() *prometheus.Registry { return m.registry }

// Handler /metrics 处理器
func (m *IngestMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
