package ingest

import (
	"fmt"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ValidateField 字段级规则：数值必须非负，且不超出列的长度与精度
func ValidateField(f FieldSpec, value interface{}) error {
	switch v := value.(type) {
	case string:
		if n := utf8.RuneCountInString(v); f.MaxLen > 0 && n > f.MaxLen {
			return fmt.Errorf("%s too long (%d characters, max %d)", f.Name, n, f.MaxLen)
		}
	case int:
		if v < 0 {
			return fmt.Errorf("negative %s %d", f.Name, v)
		}
	case decimal.Decimal:
		if v.IsNegative() {
			return fmt.Errorf("negative %s %s", f.Name, v.String())
		}
		if f.Precision > 0 {
			if !v.Equal(v.Truncate(int32(f.Scale))) {
				return fmt.Errorf("%s %s has more than %d decimal places", f.Name, v.String(), f.Scale)
			}
			if digits := len(v.Truncate(0).String()); digits > f.Precision-f.Scale {
				return fmt.Errorf("%s %s out of range (max %d integer digits)", f.Name, v.String(), f.Precision-f.Scale)
			}
		}
	}
	return nil
}

// ValidateFields 对已转换的整行做字段级校验
func ValidateFields(layout []FieldSpec, values Fields) []error {
	var errs []error
	for _, f := range layout {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		if err := ValidateField(f, v); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Convert 单字段编辑/替换使用：转换并校验一个值
func Convert(f FieldSpec, raw string) (interface{}, error) {
	v, _, err := CoerceField(f, raw)
	if err != nil {
		return nil, err
	}
	if err := ValidateField(f, v); err != nil {
		return nil, err
	}
	return v, nil
}
