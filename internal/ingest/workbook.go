package ingest

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ScoreIngest/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// WorkbookText 读取 xlsx 的一个工作表（sheet 为空时取第一个），
// 每行单元格以 Tab 连接，得到与粘贴文本相同的输入，行号与表格行号一致
func WorkbookText(data []byte, sheet string) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("XLSX file has no sheets")
	}
	if sheet == "" {
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte('\t')
			}
			if i < len(raw) && j < len(raw[i]) && raw[i][j] != cell {
				if d, ok := dateCell(f, sheet, j+1, i+1, raw[i][j], date1904); ok {
					cell = d
				}
			}
			sb.WriteString(cell)
		}
	}
	return sb.String(), nil
}

// 内置日期格式编号（不含纯时间格式）
var builtinDateFormats = map[int]bool{14: true, 15: true, 16: true, 17: true, 22: true, 27: true, 30: true, 36: true, 50: true, 57: true}

// dateCell 日期格式的数值单元格按序列号直接转成 DD.MM.YYYY，
// 不依赖显示格式中的日月顺序
func dateCell(f *excelize.File, sheet string, col, row int, raw string, date1904 bool) (string, bool) {
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", false
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", false
	}
	styleID, err := f.GetCellStyle(sheet, name)
	if err != nil {
		return "", false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil || !isDateFormat(style) {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return "", false
	}
	return t.Format(CanonicalDateLayout), true
}

func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		layout := strings.ToLower(*style.CustomNumFmt)
		return strings.Contains(layout, "d") && strings.Contains(layout, "y")
	}
	return builtinDateFormats[style.NumFmt]
}

// WriteWorkbook 导出记录：首行为列名（id + schema 字段），之后每条记录一行
func WriteWorkbook(w io.Writer, schema Schema, records []model.MatchRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := string(schema.Variant())
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	columns := []string{"id"}
	header := []interface{}{"id"}
	for _, field := range schema.Fields() {
		columns = append(columns, field.Name)
		header = append(header, field.Name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			v, _ := rec.FieldValue(col)
			row[j] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

func cellValue(v interface{}) interface{} {
	switch t := v.(type) {
	case nil:
		return ""
	case decimal.Decimal:
		return t.InexactFloat64()
	}
	return v
}
