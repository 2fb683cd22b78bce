package ingest

import (
	"fmt"
	"sort"

	"ScoreIngest/internal/model"

	"github.com/sirupsen/logrus"
)

// Schema 一种记录变体的解析规则
type Schema interface {
	Variant() model.Variant
	CellPolicy() CellPolicy
	// Fields 可编辑/可导出的列，按导出顺序
	Fields() []FieldSpec
	// ParseRow 转换并校验一行
	ParseRow(row RawRow) Outcome
	// Finalize 跨行规则（如技术统计的 H/A 配对），每行仍只对应一个结果
	Finalize(outcomes []Outcome) []Outcome
}

// ========== 全局 Schema 注册表（仅在 init 阶段写入） ==========
var schemaRegistry = make(map[model.Variant]Schema)

// Register 供各变体 init 函数调用
func Register(s Schema) {
	if s == nil {
		panic("schema 不能为 nil")
	}
	if _, exists := schemaRegistry[s.Variant()]; exists {
		logrus.Warnf("变体%s的 schema 已注册，将覆盖原有实现", s.Variant())
	}
	schemaRegistry[s.Variant()] = s
}

// Lookup 获取指定变体的 schema
func Lookup(v model.Variant) (Schema, bool) {
	s, ok := schemaRegistry[v]
	return s, ok
}

// Resolve 同 Lookup，变体未注册时返回错误
func Resolve(v model.Variant) (Schema, error) {
	s, ok := schemaRegistry[v]
	if !ok {
		return nil, fmt.Errorf("变体%s未注册 schema", v)
	}
	return s, nil
}

// ListSchemas 已注册的变体，按名称排序
func ListSchemas() []model.Variant {
	var variants []model.Variant
	for v := range schemaRegistry {
		variants = append(variants, v)
	}
	sort.Slice(variants, func(i, j int) bool { return variants[i] < variants[j] })
	return variants
}

// FieldByName 在 schema 中查找可编辑列
func FieldByName(s Schema, name string) (FieldSpec, bool) {
	for _, f := range s.Fields() {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// TextFields 可参与查找替换的列
func TextFields(s Schema) []FieldSpec {
	var out []FieldSpec
	for _, f := range s.Fields() {
		if f.Text() {
			out = append(out, f)
		}
	}
	return out
}
