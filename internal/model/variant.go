package model

import "strings"

// Variant 比赛记录的结构变体（对应一张表）
type Variant string

const (
	VariantHalfs Variant = "halfs" // 分节/半场比分
	VariantCyber Variant = "cyber" // 球队技术统计（一场比赛两行）
)

// Variants 全部已知变体，顺序固定
func Variants() []Variant {
	return []Variant{VariantHalfs, VariantCyber}
}

// ParseVariant 解析路由/命令行传入的变体名称
func ParseVariant(s string) (Variant, bool) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case VariantHalfs, VariantCyber:
		return v, true
	}
	return "", false
}

// NewRecord 返回该变体的空记录，供 gorm Model/Find 使用
func NewRecord(v Variant) MatchRecord {
	switch v {
	case VariantHalfs:
		return &HalfMatch{}
	case VariantCyber:
		return &BoxMatch{}
	}
	return nil
}
