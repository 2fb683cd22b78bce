package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldKind 字段类型
type FieldKind int

const (
	KindString  FieldKind = iota // 文本
	KindDate                     // 日期，规范化为 DD.MM.YYYY
	KindInt                      // 非负整数计数
	KindDecimal                  // 非负小数，逗号/点均可作小数点
	KindSide                     // 主客标记 H/A
)

func (k FieldKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindInt:
		return "int"
	case KindDecimal:
		return "decimal"
	case KindSide:
		return "side"
	}
	return "unknown"
}

// FieldSpec 单个字段的类型、是否可选及列的容量。
// MaxLen 为文本最大字符数，Precision/Scale 对应 numeric(p,s)；为 0 表示不限制
type FieldSpec struct {
	Name      string
	Kind      FieldKind
	Optional  bool
	MaxLen    int
	Precision int
	Scale     int
}

// Text 是否为文本类字段（可参与查找替换）
func (f FieldSpec) Text() bool {
	return f.Kind == KindString || f.Kind == KindDate || f.Kind == KindSide
}

// Fields 已转换的字段值，key 为列名
type Fields map[string]interface{}

func (f Fields) String(name string) string {
	s, _ := f[name].(string)
	return s
}

func (f Fields) Int(name string) int {
	n, _ := f[name].(int)
	return n
}

func (f Fields) Decimal(name string) decimal.Decimal {
	d, _ := f[name].(decimal.Decimal)
	return d
}

// OptDecimal 可空小数，未提供时为 nil
func (f Fields) OptDecimal(name string) *decimal.Decimal {
	d, ok := f[name].(decimal.Decimal)
	if !ok {
		return nil
	}
	return &d
}

// CoerceField 将单元格文本转换为字段值。warning 仅在日期存在歧义时非空。
// 可选字段缺失时：整数为 0，文本为 ""，小数为 nil（表示未提供）
func CoerceField(f FieldSpec, raw string) (value interface{}, warning string, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		if !f.Optional {
			return nil, "", fmt.Errorf("missing %s", f.Name)
		}
		switch f.Kind {
		case KindInt:
			return 0, "", nil
		case KindDecimal:
			return nil, "", nil
		default:
			return "", "", nil
		}
	}

	switch f.Kind {
	case KindString:
		return s, "", nil
	case KindSide:
		side, ok := parseSide(s)
		if !ok {
			return nil, "", fmt.Errorf("invalid %s %q", f.Name, s)
		}
		return side, "", nil
	case KindDate:
		res, err := ParseDate(s)
		if err != nil {
			return nil, "", err
		}
		if res.Ambiguous {
			warning = fmt.Sprintf("ambiguous date %q read as %s", s, res.Canonical)
		}
		return res.Canonical, warning, nil
	case KindInt:
		d, err := parseDecimal(s)
		if err != nil {
			return nil, "", fmt.Errorf("invalid %s %q", f.Name, s)
		}
		if !d.IsInteger() {
			return nil, "", fmt.Errorf("fractional %s %q", f.Name, s)
		}
		if !d.Abs().LessThan(decimal.NewFromInt(1 << 31)) {
			return nil, "", fmt.Errorf("%s out of range %q", f.Name, s)
		}
		return int(d.IntPart()), "", nil
	case KindDecimal:
		d, err := parseDecimal(s)
		if err != nil {
			return nil, "", fmt.Errorf("invalid %s %q", f.Name, s)
		}
		return d, "", nil
	}
	return nil, "", fmt.Errorf("unsupported field kind %s", f.Kind)
}

// CoerceRow 按 layout 顺序转换单元格，缺失的单元格按空值处理。
// 返回值、歧义提示与全部字段错误（不在第一个错误处停止）
func CoerceRow(layout []FieldSpec, cells []string) (Fields, []string, []error) {
	values := make(Fields, len(layout))
	var warnings []string
	var errs []error
	for i, f := range layout {
		raw := ""
		if i < len(cells) {
			raw = cells[i]
		}
		v, warn, err := CoerceField(f, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if warn != "" {
			warnings = append(warnings, warn)
		}
		values[f.Name] = v
	}
	return values, warnings, errs
}

// 数字单元格的最大字符数
const maxNumberLen = 32

// parseDecimal 同时接受 "1.5" 与 "1,5"；不接受科学计数法
func parseDecimal(s string) (decimal.Decimal, error) {
	if len(s) > maxNumberLen || strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, fmt.Errorf("unsupported number %q", s)
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

func parseSide(s string) (string, bool) {
	switch strings.ToUpper(s) {
	case "H", "HOME":
		return "H", true
	case "A", "AWAY":
		return "A", true
	}
	return "", false
}
