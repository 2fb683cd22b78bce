package ingest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		policy CellPolicy
		want   []RawRow
	}{
		{
			name:   "blank lines skipped but counted in line numbers",
			text:   "a\tb\n\n  \n c \t d \r\n",
			policy: CellsCompact,
			want: []RawRow{
				{Line: 1, Cells: []string{"a", "b"}, Text: "a\tb"},
				{Line: 4, Cells: []string{"c", "d"}, Text: " c \t d "},
			},
		},
		{
			name:   "compact drops empty cells",
			text:   "a\t\tb\t",
			policy: CellsCompact,
			want:   []RawRow{{Line: 1, Cells: []string{"a", "b"}, Text: "a\t\tb\t"}},
		},
		{
			name:   "positional keeps interior empty cells",
			text:   "a\t\tb\t\t",
			policy: CellsPositional,
			want:   []RawRow{{Line: 1, Cells: []string{"a", "", "b"}, Text: "a\t\tb\t\t"}},
		},
		{
			name:   "tabs only is blank",
			text:   "\t\t\n",
			policy: CellsPositional,
			want:   []RawRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text, tt.policy)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCountLines(t *testing.T) {
	require.Equal(t, 0, CountLines(""))
	require.Equal(t, 2, CountLines("a\n\n \nb\n"))
}
