package ingest

import (
	"fmt"

	"ScoreIngest/internal/model"
)

func init() {
	Register(halfScoreSchema{})
}

// 日期、赛事、主队、客队
var halfPrefix = []FieldSpec{
	{Name: "date", Kind: KindDate},
	{Name: "tournament", Kind: KindString, MaxLen: model.NameMaxLen},
	{Name: "team_home", Kind: KindString, MaxLen: model.NameMaxLen},
	{Name: "team_away", Kind: KindString, MaxLen: model.NameMaxLen},
}

var halfScoreColumns = []string{
	"q1_home", "q1_away", "q2_home", "q2_away",
	"q3_home", "q3_away", "q4_home", "q4_away",
	"ot_home", "ot_away",
}

// 比分列数 -> 写入的列。半场格式：上半场写入 q1，下半场写入 q4
var halfScoreLayouts = map[int][]string{
	4:  {"q1_home", "q1_away", "q4_home", "q4_away"},
	6:  {"q1_home", "q1_away", "q4_home", "q4_away", "ot_home", "ot_away"},
	8:  halfScoreColumns[:8],
	10: halfScoreColumns,
}

const halfMinCells = 8

type halfScoreSchema struct{}

func (halfScoreSchema) Variant() model.Variant { return model.VariantHalfs }
func (halfScoreSchema) CellPolicy() CellPolicy { return CellsCompact }

func (halfScoreSchema) Fields() []FieldSpec {
	fields := append([]FieldSpec{}, halfPrefix...)
	for _, c := range halfScoreColumns {
		fields = append(fields, FieldSpec{Name: c, Kind: KindInt, Optional: true})
	}
	return fields
}

// ParseRow 日期 赛事 主队 客队 + 4/6/8/10 个比分
func (s halfScoreSchema) ParseRow(row RawRow) Outcome {
	if len(row.Cells) < halfMinCells {
		return reject(row, "too few columns (got %d, need %d)", len(row.Cells), halfMinCells)
	}
	scoreCells := row.Cells[len(halfPrefix):]
	columns, ok := halfScoreLayouts[len(scoreCells)]
	if !ok {
		return reject(row, "unexpected score count %d (want 4, 6, 8 or 10)", len(scoreCells))
	}

	layout := append([]FieldSpec{}, halfPrefix...)
	for _, c := range columns {
		layout = append(layout, FieldSpec{Name: c, Kind: KindInt})
	}
	values, warnings, errs := CoerceRow(layout, row.Cells)
	errs = append(errs, ValidateFields(layout, values)...)
	if len(errs) > 0 {
		return rejectErrs(row, errs)
	}

	format := model.FormatQuarters
	if len(scoreCells) <= 6 {
		format = model.FormatHalves
	}
	rec := &model.HalfMatch{
		Date:       values.String("date"),
		Tournament: values.String("tournament"),
		TeamHome:   values.String("team_home"),
		TeamAway:   values.String("team_away"),
		Format:     format,
		Q1Home:     values.Int("q1_home"),
		Q1Away:     values.Int("q1_away"),
		Q2Home:     values.Int("q2_home"),
		Q2Away:     values.Int("q2_away"),
		Q3Home:     values.Int("q3_home"),
		Q3Away:     values.Int("q3_away"),
		Q4Home:     values.Int("q4_home"),
		Q4Away:     values.Int("q4_away"),
		OTHome:     values.Int("ot_home"),
		OTAway:     values.Int("ot_away"),
	}
	return Accepted{Line: row.Line, Raw: row.Text, Record: rec, Warnings: prefixWarnings(row, warnings)}
}

func (halfScoreSchema) Finalize(outcomes []Outcome) []Outcome { return outcomes }

func prefixWarnings(row RawRow, warnings []string) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = fmt.Sprintf("line %d: %s", row.Line, w)
	}
	return out
}
