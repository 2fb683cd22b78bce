package ingest

import (
	"fmt"
	"strings"
	"testing"

	"ScoreIngest/internal/model"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

// randomHalfPaste 随机生成粘贴文本：合法行、列数不足行、坏日期行与空行混合
func randomHalfPaste(faker *gofakeit.Faker, n int) string {
	var lines []string
	for i := 0; i < n; i++ {
		date := fmt.Sprintf("%02d.%02d.%d", faker.IntRange(1, 28), faker.IntRange(1, 12), faker.IntRange(2015, 2026))
		scores := make([]string, []int{4, 6, 8, 10}[faker.IntRange(0, 3)])
		for j := range scores {
			scores[j] = fmt.Sprint(faker.IntRange(0, 40))
		}
		cells := append([]string{date, faker.City(), faker.Company(), faker.Company()}, scores...)
		switch faker.IntRange(0, 5) {
		case 0:
			cells = cells[:faker.IntRange(1, 7)]
		case 1:
			cells[0] = faker.Word()
		case 2:
			lines = append(lines, "   ")
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return strings.Join(lines, "\n")
}

func TestRun_CountsCoverEveryNonBlankLine(t *testing.T) {
	faker := gofakeit.New(42)
	for _, v := range model.Variants() {
		schema, ok := Lookup(v)
		require.True(t, ok)
		for i := 0; i < 50; i++ {
			text := randomHalfPaste(faker, faker.IntRange(0, 40))
			report := Run(schema, text)
			require.Equal(t, CountLines(text), len(report.Accepted)+len(report.Rejected), "variant %s", v)
			require.Equal(t, report.Lines, CountLines(text))
		}
	}
}

func TestRun_IsPure(t *testing.T) {
	faker := gofakeit.New(7)
	schema := halfSchema(t)
	text := randomHalfPaste(faker, 30)

	first := Run(schema, text)
	second := Run(schema, text)
	require.Equal(t, first.Errors(0), second.Errors(0))
	require.Equal(t, len(first.Accepted), len(second.Accepted))
	for i := range first.Accepted {
		require.Equal(t, first.Accepted[i].Record, second.Accepted[i].Record)
	}
}

func TestRun_PartialSuccess(t *testing.T) {
	schema := halfSchema(t)
	text := "21.02.2026\tEL\tRealMadrid\tOlympiacos\t20\t18\t22\t19\n" +
		"21.02.2026\tEL\tonly\n" +
		"\n" +
		"22.02.2026\tEL\tBarcelona\tMonaco\t21\t17\t20\t25"
	report := Run(schema, text)

	require.Equal(t, 3, report.Lines)
	require.Len(t, report.Accepted, 2)
	require.Len(t, report.Rejected, 1)
	require.Equal(t, []string{"line 2: too few columns (got 3, need 8): 21.02.2026\tEL\tonly"}, report.Errors(0))
	require.Len(t, report.Records(), 2)
	require.Empty(t, report.Warnings())
}

func TestReport_ErrorsLimit(t *testing.T) {
	schema := halfSchema(t)
	text := strings.Repeat("bad\n", 10)
	report := Run(schema, text)
	require.Len(t, report.Rejected, 10)
	require.Len(t, report.Errors(3), 3)
	require.Len(t, report.Errors(0), 10)
}
