package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ScoreIngest/internal/config"
	"ScoreIngest/internal/ingest"
	"ScoreIngest/internal/interfaces"
	"ScoreIngest/internal/model"
	"ScoreIngest/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// 导入来源
const (
	SourcePaste = "paste"
	SourceXLSX  = "xlsx"
	SourceCLI   = "cli"
)

// ImportService 粘贴文本的预览与提交
type ImportService struct {
	catalog
	batches repository.BatchRepository
	cfg     config.ImportConfig
	metrics Metrics
	logger  *logrus.Logger
}

// NewImportService 创建 ImportService；metrics 为 nil 时不上报
func NewImportService(stores map[model.Variant]interfaces.MatchStore, batches repository.BatchRepository, cfg config.ImportConfig, metrics Metrics, logger *logrus.Logger) *ImportService {
	if metrics == nil {
		metrics = NoOpMetrics{}
	}
	return &ImportService{
		catalog: newCatalog(stores, cfg.PairBoxRows),
		batches: batches,
		cfg:     cfg,
		metrics: metrics,
		logger:  logger,
	}
}

// ImportRequest 预览/提交请求体
type ImportRequest struct {
	RawText string `json:"raw_text"`
}

// PreviewResult 预览结果（不落库）
type PreviewResult struct {
	ParsedCount int                 `json:"parsed_count"`
	ErrorCount  int                 `json:"error_count"`
	ParsedRows  []model.MatchRecord `json:"parsed_rows"`
	Errors      []string            `json:"errors"`
	Warnings    []string            `json:"warnings"`
}

// CommitResult 提交结果。Skipped 为全部拒绝条数，Errors 可能被截断
type CommitResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
	BatchID  string   `json:"batch_id,omitempty"`
}

func (s *ImportService) parse(variant model.Variant, text string) (*ingest.Report, error) {
	schema, err := s.schema(variant)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, invalidf("raw_text is empty")
	}
	return ingest.Run(schema, text), nil
}

// Preview 只解析不写库，相同输入结果相同
func (s *ImportService) Preview(ctx context.Context, variant model.Variant, text string) (*PreviewResult, error) {
	report, err := s.parse(variant, text)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveImport(variant, true, len(report.Accepted), len(report.Rejected))
	s.logger.WithFields(logrus.Fields{
		"variant":  variant,
		"lines":    report.Lines,
		"accepted": len(report.Accepted),
		"rejected": len(report.Rejected),
	}).Debug("导入预览完成")

	return &PreviewResult{
		ParsedCount: len(report.Accepted),
		ErrorCount:  len(report.Rejected),
		ParsedRows:  report.Records(),
		Errors:      report.Errors(0),
		Warnings:    report.Warnings(),
	}, nil
}

// Commit 重新解析文本并在一个事务内写入全部通过的行；部分行被拒绝属于正常结果
func (s *ImportService) Commit(ctx context.Context, variant model.Variant, text, source string) (*CommitResult, error) {
	report, err := s.parse(variant, text)
	if err != nil {
		return nil, err
	}
	store, err := s.store(variant)
	if err != nil {
		return nil, err
	}
	for _, rej := range report.Rejected {
		s.logger.WithFields(logrus.Fields{"variant": variant, "line": rej.Line}).Debug(rej.Reason)
	}

	records := report.Records()
	if err := store.InsertBatch(ctx, records); err != nil {
		return nil, err
	}
	s.metrics.ObserveImport(variant, false, len(records), len(report.Rejected))

	result := &CommitResult{
		Imported: len(records),
		Skipped:  len(report.Rejected),
		Errors:   report.Errors(s.cfg.MaxReportedErrors),
		Warnings: report.Warnings(),
	}
	if source == "" {
		source = SourcePaste
	}
	batch := &model.ImportBatch{
		Variant:  variant,
		Source:   source,
		Lines:    report.Lines,
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Errors:   toJSON(result.Errors),
		Warnings: toJSON(result.Warnings),
	}
	// 审计记录失败不影响已提交的数据
	if err := s.batches.Save(ctx, batch); err != nil {
		s.logger.WithError(err).Warn("保存导入批次失败")
	} else {
		result.BatchID = batch.BatchUUID
	}

	s.logger.WithFields(logrus.Fields{
		"variant":  variant,
		"source":   source,
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"batch":    result.BatchID,
	}).Info("导入提交完成")
	return result, nil
}

// WorkbookText 将上传的 xlsx 转成粘贴文本，之后走同一管道
func (s *ImportService) WorkbookText(data []byte, sheet string) (string, error) {
	if len(data) == 0 {
		return "", invalidf("file is empty")
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(data)) > s.cfg.MaxUploadBytes {
		return "", invalidf("file exceeds %d bytes", s.cfg.MaxUploadBytes)
	}
	text, err := ingest.WorkbookText(data, sheet)
	if err != nil {
		return "", invalidf("%v", err)
	}
	return text, nil
}

// ReadWorkbook 从上传流读取 xlsx，最多读 MaxUploadBytes+1 字节，超出即拒绝
func (s *ImportService) ReadWorkbook(r io.Reader, sheet string) (string, error) {
	if s.cfg.MaxUploadBytes > 0 {
		r = io.LimitReader(r, s.cfg.MaxUploadBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("读取上传文件失败: %w", err)
	}
	return s.WorkbookText(data, sheet)
}

// ListBatches 最近的导入批次
func (s *ImportService) ListBatches(ctx context.Context, variant model.Variant, limit int) ([]*model.ImportBatch, error) {
	if _, err := s.store(variant); err != nil {
		return nil, err
	}
	return s.batches.ListRecent(ctx, variant, limit)
}

// GetBatch 按批次 ID 查询，变体不符按不存在处理
func (s *ImportService) GetBatch(ctx context.Context, variant model.Variant, batchID string) (*model.ImportBatch, error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, invalidf("batch id is required")
	}
	batch, err := s.batches.GetByUUID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Variant != variant {
		return nil, fmt.Errorf("batch %s: %w", batchID, interfaces.ErrRecordNotFound)
	}
	return batch, nil
}

func toJSON(lines []string) datatypes.JSON {
	if lines == nil {
		lines = []string{}
	}
	b, _ := json.Marshal(lines)
	return datatypes.JSON(b)
}
