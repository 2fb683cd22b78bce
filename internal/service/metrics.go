package service

import "ScoreIngest/internal/model"

// Metrics 导入与批量修正的指标上报
type Metrics interface {
	ObserveImport(variant model.Variant, dryRun bool, accepted, rejected int)
	ObserveCorrection(variant model.Variant, operation string, changed int)
}

// NoOpMetrics 不上报（测试与命令行使用）
type NoOpMetrics struct{}

func (NoOpMetrics) ObserveImport(model.Variant, bool, int, int) {}
func (NoOpMetrics) ObserveCorrection(model.Variant, string, int) {}
