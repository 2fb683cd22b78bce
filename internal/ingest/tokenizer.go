package ingest

import "strings"

// CellPolicy 空单元格处理策略
type CellPolicy int

const (
	// CellsCompact 丢弃所有空单元格（比分按顺序读取，位置无意义）
	CellsCompact CellPolicy = iota
	// CellsPositional 只去掉行尾空单元格，中间空单元格保留为 ""，列位置不偏移
	CellsPositional
)

// RawRow 粘贴文本中的一行
type RawRow struct {
	Line  int      // 从 1 开始的行号（空行也计数）
	Cells []string // 去空白后的单元格
	Text  string   // 原始行文本（去掉行尾 \r）
}

// Tokenize 按行、按 Tab 切分粘贴文本，空行直接跳过
func Tokenize(text string, policy CellPolicy) []RawRow {
	lines := strings.Split(text, "\n")
	rows := make([]RawRow, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, RawRow{
			Line:  i + 1,
			Cells: splitCells(line, policy),
			Text:  line,
		})
	}
	return rows
}

func splitCells(line string, policy CellPolicy) []string {
	parts := strings.Split(line, "\t")
	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" && policy == CellsCompact {
			continue
		}
		cells = append(cells, p)
	}
	if policy == CellsPositional {
		for len(cells) > 0 && cells[len(cells)-1] == "" {
			cells = cells[:len(cells)-1]
		}
	}
	return cells
}

// CountLines 非空行数，与 Tokenize 的行数一致
func CountLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
