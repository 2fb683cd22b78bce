package ingest

import (
	"fmt"

	"ScoreIngest/internal/model"
)

func init() {
	Register(boxScoreSchema{pairRows: true})
}

// 列顺序与 Excel 表一致
var boxLayout = []FieldSpec{
	{Name: "date", Kind: KindDate},
	{Name: "tournament", Kind: KindString, MaxLen: model.NameMaxLen},
	{Name: "team", Kind: KindString, MaxLen: model.NameMaxLen},
	{Name: "home_away", Kind: KindSide, Optional: true},
	{Name: "two_pt_made", Kind: KindInt},
	{Name: "two_pt_attempt", Kind: KindInt},
	{Name: "three_pt_made", Kind: KindInt},
	{Name: "three_pt_attempt", Kind: KindInt},
	{Name: "fta_made", Kind: KindInt},
	{Name: "fta_attempt", Kind: KindInt},
	{Name: "off_rebound", Kind: KindInt},
	{Name: "turnovers", Kind: KindInt},
	{Name: "controls", Kind: KindDecimal, Precision: 10, Scale: 2},
	{Name: "points", Kind: KindInt},
	{Name: "opponent", Kind: KindString, MaxLen: model.NameMaxLen},
	{Name: "attak_kef", Kind: KindDecimal, Optional: true, Precision: 10, Scale: 3},
	{Name: "status", Kind: KindString, Optional: true, MaxLen: model.StatusMaxLen},
}

// 到 opponent 为止为必填
const boxMinCells = 15

// 命中数不得超过出手数
var boxShotPairs = [][2]string{
	{"two_pt_made", "two_pt_attempt"},
	{"three_pt_made", "three_pt_attempt"},
	{"fta_made", "fta_attempt"},
}

type boxScoreSchema struct {
	pairRows bool
}

// NewBoxScoreSchema 返回技术统计 schema；pairRows=false 时不做 H/A 配对检查
func NewBoxScoreSchema(pairRows bool) Schema {
	return boxScoreSchema{pairRows: pairRows}
}

func (boxScoreSchema) Variant() model.Variant { return model.VariantCyber }
func (boxScoreSchema) CellPolicy() CellPolicy { return CellsPositional }
func (boxScoreSchema) Fields() []FieldSpec    { return append([]FieldSpec{}, boxLayout...) }

func (boxScoreSchema) ParseRow(row RawRow) Outcome {
	if len(row.Cells) < boxMinCells {
		return reject(row, "too few columns (got %d, need %d)", len(row.Cells), boxMinCells)
	}
	if len(row.Cells) > len(boxLayout) {
		return reject(row, "too many columns (got %d, max %d)", len(row.Cells), len(boxLayout))
	}
	values, warnings, errs := CoerceRow(boxLayout, row.Cells)
	errs = append(errs, ValidateFields(boxLayout, values)...)
	if len(errs) == 0 {
		for _, p := range boxShotPairs {
			if values.Int(p[0]) > values.Int(p[1]) {
				return reject(row, "%s %d exceeds %s %d", p[0], values.Int(p[0]), p[1], values.Int(p[1]))
			}
		}
	}
	if len(errs) > 0 {
		return rejectErrs(row, errs)
	}

	rec := &model.BoxMatch{
		Date:           values.String("date"),
		Tournament:     values.String("tournament"),
		Team:           values.String("team"),
		HomeAway:       values.String("home_away"),
		TwoPtMade:      values.Int("two_pt_made"),
		TwoPtAttempt:   values.Int("two_pt_attempt"),
		ThreePtMade:    values.Int("three_pt_made"),
		ThreePtAttempt: values.Int("three_pt_attempt"),
		FTAMade:        values.Int("fta_made"),
		FTAAttempt:     values.Int("fta_attempt"),
		OffRebound:     values.Int("off_rebound"),
		Turnovers:      values.Int("turnovers"),
		Controls:       values.Decimal("controls"),
		Points:         values.Int("points"),
		Opponent:       values.String("opponent"),
		AttakKef:       values.OptDecimal("attak_kef"),
		Status:         values.String("status"),
	}
	return Accepted{Line: row.Line, Raw: row.Text, Record: rec, Warnings: prefixWarnings(row, warnings)}
}

// Finalize 一场比赛 = 输入中位置相邻的两行（第 1、2 行，第 3、4 行……）：同一赛事，
// 且给出主客标记时必须先 H 后 A。一行被拒绝时其同场另一行也拒绝，之后的配对不受影响；
// 末尾落单的一行也拒绝
func (s boxScoreSchema) Finalize(outcomes []Outcome) []Outcome {
	if !s.pairRows {
		return outcomes
	}
	for i := 0; i+1 < len(outcomes); i += 2 {
		first, okFirst := outcomes[i].(Accepted)
		second, okSecond := outcomes[i+1].(Accepted)
		switch {
		case okFirst && okSecond:
			if reason := pairMismatch(first.Record.(*model.BoxMatch), second.Record.(*model.BoxMatch)); reason != "" {
				outcomes[i] = Rejected{Line: first.Line, Raw: first.Raw, Reason: reason}
				outcomes[i+1] = Rejected{Line: second.Line, Raw: second.Raw, Reason: reason}
			}
		case okFirst:
			outcomes[i] = partnerRejected(first, outcomes[i+1].LineNo())
		case okSecond:
			outcomes[i+1] = partnerRejected(second, outcomes[i].LineNo())
		}
	}
	if len(outcomes)%2 == 1 {
		last := len(outcomes) - 1
		if a, ok := outcomes[last].(Accepted); ok {
			outcomes[last] = Rejected{Line: a.Line, Raw: a.Raw, Reason: "unpaired row (a match needs two team rows)"}
		}
	}
	return outcomes
}

func partnerRejected(a Accepted, partnerLine int) Rejected {
	return Rejected{Line: a.Line, Raw: a.Raw, Reason: fmt.Sprintf("partner row %d rejected", partnerLine)}
}

func pairMismatch(first, second *model.BoxMatch) string {
	if first.Tournament != second.Tournament {
		return "pair mismatch: tournaments differ"
	}
	if first.HomeAway != "" && second.HomeAway != "" && !(first.HomeAway == "H" && second.HomeAway == "A") {
		return "pair mismatch: expected H then A"
	}
	return ""
}
