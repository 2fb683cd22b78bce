package ingest

import (
	"ScoreIngest/internal/model"
)

// Report 一次解析的完整结果，纯数据，不含持久化状态
type Report struct {
	Variant  model.Variant
	Lines    int // 非空行数 == len(Accepted) + len(Rejected)
	Accepted []Accepted
	Rejected []Rejected
}

// Run 分词 -> 转换 -> 校验，逐行容错
func Run(schema Schema, text string) *Report {
	return RunRows(schema, Tokenize(text, schema.CellPolicy()))
}

// RunRows 对已切分的行执行解析（工作簿导入复用）
func RunRows(schema Schema, rows []RawRow) *Report {
	outcomes := make([]Outcome, 0, len(rows))
	for _, row := range rows {
		outcomes = append(outcomes, schema.ParseRow(row))
	}
	outcomes = schema.Finalize(outcomes)

	report := &Report{Variant: schema.Variant(), Lines: len(rows)}
	for _, o := range outcomes {
		switch v := o.(type) {
		case Accepted:
			report.Accepted = append(report.Accepted, v)
		case Rejected:
			report.Rejected = append(report.Rejected, v)
		}
	}
	return report
}

// Records 通过校验的记录，按输入顺序
func (r *Report) Records() []model.MatchRecord {
	out := make([]model.MatchRecord, 0, len(r.Accepted))
	for _, a := range r.Accepted {
		out = append(out, a.Record)
	}
	return out
}

// Errors 每个被拒绝行一条可读原因；limit<=0 表示不截断
func (r *Report) Errors(limit int) []string {
	out := make([]string, 0, len(r.Rejected))
	for _, rej := range r.Rejected {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, rej.Error())
	}
	return out
}

// Warnings 日期歧义等提示
func (r *Report) Warnings() []string {
	out := []string{}
	for _, a := range r.Accepted {
		out = append(out, a.Warnings...)
	}
	return out
}
