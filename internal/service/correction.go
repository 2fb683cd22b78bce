package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ScoreIngest/internal/ingest"
	"ScoreIngest/internal/interfaces"
	"ScoreIngest/internal/model"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// 批量修正操作名（指标标签）
const (
	OpNormalizeDates = "normalize_dates"
	OpReplace        = "replace"
	OpMerge          = "merge"
	OpUpdateField    = "update_field"
)

// 替换范围
const (
	ScopeAll        = "all"
	ScopeTournament = "tournament"
)

// CorrectionService 已入库数据的批量修正与单字段编辑
type CorrectionService struct {
	catalog
	metrics Metrics
	logger  *logrus.Logger
}

// NewCorrectionService 创建 CorrectionService
func NewCorrectionService(stores map[model.Variant]interfaces.MatchStore, metrics Metrics, logger *logrus.Logger) *CorrectionService {
	if metrics == nil {
		metrics = NoOpMetrics{}
	}
	return &CorrectionService{
		catalog: newCatalog(stores, true),
		metrics: metrics,
		logger:  logger,
	}
}

// NormalizeResult 日期规范化结果
type NormalizeResult struct {
	Updated     int      `json:"updated"`
	Unparseable []string `json:"unparseable"` // 无法识别、保持原样的记录
	Ambiguous   []string `json:"ambiguous"`   // 按日在前改写、建议人工确认的记录
}

// NormalizeDates 将所有记录的日期改写为 DD.MM.YYYY；已规范的记录不改动也不计数
func (s *CorrectionService) NormalizeDates(ctx context.Context, variant model.Variant) (*NormalizeResult, error) {
	store, err := s.store(variant)
	if err != nil {
		return nil, err
	}
	result := &NormalizeResult{Unparseable: []string{}, Ambiguous: []string{}}
	updated, err := store.Rewrite(ctx, interfaces.MatchFilter{}, func(rec model.MatchRecord) (map[string]interface{}, error) {
		stored := rec.MatchDate()
		res, err := ingest.ParseDate(stored)
		if err != nil {
			result.Unparseable = append(result.Unparseable, fmt.Sprintf("id %d: %v", rec.RecordID(), err))
			return nil, nil
		}
		if res.Canonical == stored {
			return nil, nil
		}
		if res.Ambiguous {
			result.Ambiguous = append(result.Ambiguous, fmt.Sprintf("id %d: %q read as %s", rec.RecordID(), stored, res.Canonical))
		}
		return map[string]interface{}{"date": res.Canonical}, nil
	})
	if err != nil {
		return nil, err
	}
	result.Updated = updated
	s.metrics.ObserveCorrection(variant, OpNormalizeDates, updated)
	s.logger.WithFields(logrus.Fields{
		"variant":     variant,
		"updated":     updated,
		"unparseable": len(result.Unparseable),
		"ambiguous":   len(result.Ambiguous),
	}).Info("日期规范化完成")
	return result, nil
}

// ReplaceRequest 查找替换请求；Field 为空时作用于全部文本列，
// 指定数值列时在其文本形式上替换，结果按该列规则重新校验
type ReplaceRequest struct {
	Find       string `json:"find"`
	Replace    string `json:"replace"`
	Scope      string `json:"scope"`
	Tournament string `json:"tournament"`
	Field      string `json:"field"`
}

// ReplaceResult Replaced 为改动的记录数
type ReplaceResult struct {
	Replaced int      `json:"replaced"`
	Skipped  []string `json:"skipped"` // 替换后字段不合法而未改动的记录
}

// Replace 子串替换。scope=tournament 时只扫描该赛事的记录
func (s *CorrectionService) Replace(ctx context.Context, variant model.Variant, req ReplaceRequest) (*ReplaceResult, error) {
	schema, store, err := s.resolve(variant)
	if err != nil {
		return nil, err
	}
	if req.Find == "" {
		return nil, invalidf("find must not be empty")
	}
	scope := strings.ToLower(strings.TrimSpace(req.Scope))
	if scope == "" {
		scope = ScopeAll
	}
	filter := interfaces.MatchFilter{}
	switch scope {
	case ScopeAll:
	case ScopeTournament:
		filter.Tournament = strings.TrimSpace(req.Tournament)
		if filter.Tournament == "" {
			return nil, invalidf("tournament is required when scope is %q", ScopeTournament)
		}
	default:
		return nil, invalidf("unknown scope %q", req.Scope)
	}

	fields := ingest.TextFields(schema)
	if req.Field != "" {
		f, ok := ingest.FieldByName(schema, req.Field)
		if !ok {
			return nil, invalidf("unknown field %q for %s", req.Field, variant)
		}
		fields = []ingest.FieldSpec{f}
	}

	result := &ReplaceResult{Skipped: []string{}}
	replaced, err := store.Rewrite(ctx, filter, func(rec model.MatchRecord) (map[string]interface{}, error) {
		updates := map[string]interface{}{}
		for _, f := range fields {
			cur, _ := rec.FieldValue(f.Name)
			text, ok := fieldText(cur)
			if !ok || !strings.Contains(text, req.Find) {
				continue
			}
			next := strings.ReplaceAll(text, req.Find, req.Replace)
			if next == text {
				continue
			}
			value, err := ingest.Convert(f, next)
			if err != nil {
				result.Skipped = append(result.Skipped, fmt.Sprintf("id %d: %s: %v", rec.RecordID(), f.Name, err))
				return nil, nil
			}
			if !sameValue(value, cur) {
				updates[f.Name] = value
			}
		}
		return updates, nil
	})
	if err != nil {
		return nil, err
	}
	result.Replaced = replaced
	s.metrics.ObserveCorrection(variant, OpReplace, replaced)
	s.logger.WithFields(logrus.Fields{
		"variant":  variant,
		"scope":    scope,
		"field":    req.Field,
		"replaced": replaced,
		"skipped":  len(result.Skipped),
	}).Info("查找替换完成")
	return result, nil
}

// fieldText 字段值的文本形式；nil（未提供的可空列）不参与替换
func fieldText(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case int:
		return strconv.Itoa(t), true
	case decimal.Decimal:
		return t.String(), true
	}
	return "", false
}

func sameValue(a, b interface{}) bool {
	da, okA := a.(decimal.Decimal)
	db, okB := b.(decimal.Decimal)
	if okA && okB {
		return da.Equal(db)
	}
	return a == b
}

// MergeRequest 赛事合并请求
type MergeRequest struct {
	Sources []string `json:"sources"`
	Target  string   `json:"target"`
}

// MergeResult Updated 为赛事名实际改变的记录数
type MergeResult struct {
	Updated int64 `json:"updated"`
}

// MergeTournaments 将 sources 的记录改为 target。
// 已等于 target 的记录不改写也不计数；记录总数不变
func (s *CorrectionService) MergeTournaments(ctx context.Context, variant model.Variant, req MergeRequest) (*MergeResult, error) {
	store, err := s.store(variant)
	if err != nil {
		return nil, err
	}
	target := strings.TrimSpace(req.Target)
	if target == "" {
		return nil, invalidf("target must not be empty")
	}
	sources := normalizeSources(req.Sources)
	if len(sources) == 0 {
		return nil, invalidf("sources must not be empty")
	}
	effective := make([]string, 0, len(sources))
	for _, src := range sources {
		if src != target {
			effective = append(effective, src)
		}
	}

	updated, err := store.MergeTournaments(ctx, effective, target)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCorrection(variant, OpMerge, int(updated))
	s.logger.WithFields(logrus.Fields{
		"variant": variant,
		"sources": effective,
		"target":  target,
		"updated": updated,
	}).Info("赛事合并完成")
	return &MergeResult{Updated: updated}, nil
}

// normalizeSources 去空白、去空、去重，保持顺序
func normalizeSources(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// UpdateFieldRequest 单字段编辑，Value 可为字符串、数字或 null
type UpdateFieldRequest struct {
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

// UpdateField 按字段规则转换校验后写入；不合法时不做任何修改
func (s *CorrectionService) UpdateField(ctx context.Context, variant model.Variant, id uint64, req UpdateFieldRequest) (model.MatchRecord, error) {
	schema, store, err := s.resolve(variant)
	if err != nil {
		return nil, err
	}
	f, ok := ingest.FieldByName(schema, req.Field)
	if !ok {
		return nil, invalidf("unknown field %q for %s", req.Field, variant)
	}
	raw, err := valueText(req.Value)
	if err != nil {
		return nil, invalidf("%s: %v", f.Name, err)
	}
	value, err := ingest.Convert(f, raw)
	if err != nil {
		return nil, invalidf("%v", err)
	}
	rec, err := store.UpdateField(ctx, id, f.Name, value)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveCorrection(variant, OpUpdateField, 1)
	s.logger.WithFields(logrus.Fields{"variant": variant, "id": id, "field": f.Name}).Info("字段已更新")
	return rec, nil
}

func valueText(v interface{}) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(t), nil
	}
	return "", fmt.Errorf("unsupported value type %T", v)
}
