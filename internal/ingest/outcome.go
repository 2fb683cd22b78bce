package ingest

import (
	"fmt"
	"strings"

	"ScoreIngest/internal/model"
)

// Outcome 单行处理结果：Accepted 或 Rejected
type Outcome interface {
	LineNo() int
	isOutcome()
}

// Accepted 通过校验的行
type Accepted struct {
	Line     int
	Raw      string
	Record   model.MatchRecord
	Warnings []string
}

// Rejected 被拒绝的行及原因
type Rejected struct {
	Line   int
	Raw    string
	Reason string
}

func (a Accepted) LineNo() int { return a.Line }
func (a Accepted) isOutcome()  {}
func (r Rejected) LineNo() int { return r.Line }
func (r Rejected) isOutcome()  {}

// Error 形如 `line 3: too few columns (got 3, need 8): a	b	c`
func (r Rejected) Error() string {
	return fmt.Sprintf("line %d: %s: %s", r.Line, r.Reason, r.Raw)
}

func reject(row RawRow, format string, args ...interface{}) Rejected {
	return Rejected{Line: row.Line, Raw: row.Text, Reason: fmt.Sprintf(format, args...)}
}

func rejectErrs(row RawRow, errs []error) Rejected {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return Rejected{Line: row.Line, Raw: row.Text, Reason: strings.Join(msgs, "; ")}
}
