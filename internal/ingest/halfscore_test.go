package ingest

import (
	"strings"
	"testing"

	"ScoreIngest/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func halfSchema(t *testing.T) Schema {
	t.Helper()
	s, ok := Lookup(model.VariantHalfs)
	require.True(t, ok)
	return s
}

func TestHalfScore_ParseRow(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		want       *model.HalfMatch
		wantReason string
	}{
		{
			name: "halves",
			line: "21.02.2026\tEL\tRealMadrid\tOlympiacos\t20\t18\t22\t19",
			want: &model.HalfMatch{
				Date: "21.02.2026", Tournament: "EL", TeamHome: "RealMadrid", TeamAway: "Olympiacos",
				Format: model.FormatHalves, Q1Home: 20, Q1Away: 18, Q4Home: 22, Q4Away: 19,
			},
		},
		{
			name: "halves with overtime",
			line: "21.02.2026\tEL\tA\tB\t20\t18\t22\t24\t9\t5",
			want: &model.HalfMatch{
				Date: "21.02.2026", Tournament: "EL", TeamHome: "A", TeamAway: "B",
				Format: model.FormatHalves, Q1Home: 20, Q1Away: 18, Q4Home: 22, Q4Away: 24, OTHome: 9, OTAway: 5,
			},
		},
		{
			name: "quarters",
			line: "2026-02-21\tVTB League\tCSKA\tZenit\t20\t18\t22\t19\t17\t21\t25\t16",
			want: &model.HalfMatch{
				Date: "21.02.2026", Tournament: "VTB League", TeamHome: "CSKA", TeamAway: "Zenit",
				Format: model.FormatQuarters,
				Q1Home: 20, Q1Away: 18, Q2Home: 22, Q2Away: 19, Q3Home: 17, Q3Away: 21, Q4Home: 25, Q4Away: 16,
			},
		},
		{
			name: "quarters with overtime and empty cells",
			line: "21.02.2026\t\tEL\tA\tB\t1\t2\t3\t4\t5\t6\t7\t8\t\t9\t10",
			want: &model.HalfMatch{
				Date: "21.02.2026", Tournament: "EL", TeamHome: "A", TeamAway: "B",
				Format: model.FormatQuarters,
				Q1Home: 1, Q1Away: 2, Q2Home: 3, Q2Away: 4, Q3Home: 5, Q3Away: 6, Q4Home: 7, Q4Away: 8,
				OTHome: 9, OTAway: 10,
			},
		},
		{name: "three cells", line: "21.02.2026\tEL\tA", wantReason: "too few columns (got 3, need 8)"},
		{name: "odd score count", line: "21.02.2026\tEL\tA\tB\t1\t2\t3\t4\t5", wantReason: "unexpected score count 5 (want 4, 6, 8 or 10)"},
		{name: "bad date", line: "31.02.2026\tEL\tA\tB\t1\t2\t3\t4", wantReason: `invalid date "31.02.2026"`},
		{name: "negative score", line: "21.02.2026\tEL\tA\tB\t-1\t2\t3\t4", wantReason: "negative q1_home -1"},
		{name: "team too long", line: "21.02.2026\tEL\t" + strings.Repeat("A", 129) + "\tB\t1\t2\t3\t4", wantReason: "team_home too long (129 characters, max 128)"},
		{name: "fractional score", line: "21.02.2026\tEL\tA\tB\t1.5\t2\t3\t4", wantReason: `fractional q1_home "1.5"`},
	}

	schema := halfSchema(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Tokenize(tt.line, schema.CellPolicy())
			require.Len(t, rows, 1)
			out := schema.ParseRow(rows[0])
			if tt.wantReason != "" {
				rej, ok := out.(Rejected)
				require.True(t, ok, "expected rejection, got %#v", out)
				require.Equal(t, tt.wantReason, rej.Reason)
				require.Equal(t, 1, rej.Line)
				return
			}
			acc, ok := out.(Accepted)
			require.True(t, ok, "expected acceptance, got %#v", out)
			if diff := cmp.Diff(tt.want, acc.Record, cmpopts.IgnoreFields(model.HalfMatch{}, "CreatedAt")); diff != "" {
				t.Errorf("record mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHalfScore_HalvesKeepHalfTotals(t *testing.T) {
	schema := halfSchema(t)
	rows := Tokenize("21.02.2026\tEL\tA\tB\t20\t18\t22\t19", schema.CellPolicy())
	acc := schema.ParseRow(rows[0]).(Accepted)
	rec := acc.Record.(*model.HalfMatch)

	h1Home, h1Away := rec.FirstHalf()
	h2Home, h2Away := rec.SecondHalf()
	require.Equal(t, []int{20, 18, 22, 19}, []int{h1Home, h1Away, h2Home, h2Away})
}

func TestHalfScore_AmbiguousDateWarns(t *testing.T) {
	schema := halfSchema(t)
	rows := Tokenize("\n03.04.25\tEL\tA\tB\t1\t2\t3\t4", schema.CellPolicy())
	acc := schema.ParseRow(rows[0]).(Accepted)
	require.Equal(t, "03.04.2025", acc.Record.MatchDate())
	require.Equal(t, []string{`line 2: ambiguous date "03.04.25" read as 03.04.2025`}, acc.Warnings)
}
