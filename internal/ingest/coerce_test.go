package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCoerceField(t *testing.T) {
	tests := []struct {
		name    string
		field   FieldSpec
		raw     string
		want    interface{}
		warn    bool
		wantErr string
	}{
		{name: "string trimmed", field: FieldSpec{Name: "team", Kind: KindString}, raw: "  Real Madrid ", want: "Real Madrid"},
		{name: "missing required string", field: FieldSpec{Name: "tournament", Kind: KindString}, raw: " ", wantErr: "missing tournament"},
		{name: "optional string default", field: FieldSpec{Name: "status", Kind: KindString, Optional: true}, raw: "", want: ""},
		{name: "int", field: FieldSpec{Name: "points", Kind: KindInt}, raw: "87", want: 87},
		{name: "int with zero fraction", field: FieldSpec{Name: "points", Kind: KindInt}, raw: "87,0", want: 87},
		{name: "fractional int rejected", field: FieldSpec{Name: "points", Kind: KindInt}, raw: "12.5", wantErr: "fractional points"},
		{name: "garbage int", field: FieldSpec{Name: "points", Kind: KindInt}, raw: "ten", wantErr: "invalid points"},
		{name: "optional int default", field: FieldSpec{Name: "ot_home", Kind: KindInt, Optional: true}, raw: "", want: 0},
		{name: "decimal comma", field: FieldSpec{Name: "controls", Kind: KindDecimal}, raw: "71,5", want: decimal.RequireFromString("71.5")},
		{name: "decimal period", field: FieldSpec{Name: "controls", Kind: KindDecimal}, raw: "71.25", want: decimal.RequireFromString("71.25")},
		{name: "optional decimal missing", field: FieldSpec{Name: "attak_kef", Kind: KindDecimal, Optional: true}, raw: "", want: nil},
		{name: "side lower case", field: FieldSpec{Name: "home_away", Kind: KindSide}, raw: "h", want: "H"},
		{name: "side word", field: FieldSpec{Name: "home_away", Kind: KindSide}, raw: "Away", want: "A"},
		{name: "side invalid", field: FieldSpec{Name: "home_away", Kind: KindSide}, raw: "X", wantErr: "invalid home_away"},
		{name: "date", field: FieldSpec{Name: "date", Kind: KindDate}, raw: "2026-02-21", want: "21.02.2026"},
		{name: "ambiguous date warns", field: FieldSpec{Name: "date", Kind: KindDate}, raw: "03.04.25", want: "03.04.2025", warn: true},
		{name: "int exponent rejected", field: FieldSpec{Name: "q1_home", Kind: KindInt}, raw: "1e70000000", wantErr: "invalid q1_home"},
		{name: "int upper case exponent rejected", field: FieldSpec{Name: "q1_home", Kind: KindInt}, raw: "2E3", wantErr: "invalid q1_home"},
		{name: "decimal exponent rejected", field: FieldSpec{Name: "controls", Kind: KindDecimal}, raw: "7,1e-2147483000", wantErr: "invalid controls"},
		{name: "overlong number rejected", field: FieldSpec{Name: "points", Kind: KindInt}, raw: strings.Repeat("9", 40), wantErr: "invalid points"},
		{name: "int out of range", field: FieldSpec{Name: "points", Kind: KindInt}, raw: "2147483648", wantErr: "points out of range"},
		{name: "bad date", field: FieldSpec{Name: "date", Kind: KindDate}, raw: "31.02.2026", wantErr: "invalid date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warn, err := CoerceField(tt.field, tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			if d, ok := tt.want.(decimal.Decimal); ok {
				require.True(t, d.Equal(got.(decimal.Decimal)), "got %v", got)
			} else {
				require.Equal(t, tt.want, got)
			}
			require.Equal(t, tt.warn, warn != "")
		})
	}
}

func TestCoerceRow_CollectsAllErrors(t *testing.T) {
	layout := []FieldSpec{
		{Name: "date", Kind: KindDate},
		{Name: "tournament", Kind: KindString},
		{Name: "points", Kind: KindInt},
	}
	values, _, errs := CoerceRow(layout, []string{"bad", "", "x"})
	require.Len(t, errs, 3)
	require.Empty(t, values)
}

func TestConvert_RejectsNegative(t *testing.T) {
	_, err := Convert(FieldSpec{Name: "q1_home", Kind: KindInt}, "-3")
	require.EqualError(t, err, "negative q1_home -3")

	_, err = Convert(FieldSpec{Name: "controls", Kind: KindDecimal}, "-0,5")
	require.Error(t, err)

	v, err := Convert(FieldSpec{Name: "q1_home", Kind: KindInt}, "0")
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func TestCoerceField_ExponentIsFast(t *testing.T) {
	start := time.Now()
	_, _, err := CoerceField(FieldSpec{Name: "q1_home", Kind: KindInt}, "1e70000000")
	require.Error(t, err)
	require.Less(t, time.Since(start), time.Second)
}

func TestValidateField_ColumnLimits(t *testing.T) {
	tests := []struct {
		name    string
		field   FieldSpec
		raw     string
		wantErr string
	}{
		{name: "name at limit", field: FieldSpec{Name: "team", Kind: KindString, MaxLen: 128}, raw: strings.Repeat("a", 128)},
		{name: "name too long", field: FieldSpec{Name: "team", Kind: KindString, MaxLen: 128}, raw: strings.Repeat("a", 129), wantErr: "team too long (129 characters, max 128)"},
		{name: "multibyte counted by character", field: FieldSpec{Name: "status", Kind: KindString, MaxLen: 4}, raw: "ОТМЕ"},
		{name: "status too long", field: FieldSpec{Name: "status", Kind: KindString, MaxLen: 64}, raw: strings.Repeat("x", 65), wantErr: "status too long"},
		{name: "decimal fits", field: FieldSpec{Name: "controls", Kind: KindDecimal, Precision: 10, Scale: 2}, raw: "12345678,99"},
		{name: "trailing zeros fit", field: FieldSpec{Name: "controls", Kind: KindDecimal, Precision: 10, Scale: 2}, raw: "71.500"},
		{name: "too many integer digits", field: FieldSpec{Name: "controls", Kind: KindDecimal, Precision: 10, Scale: 2}, raw: "123456789012", wantErr: "controls 123456789012 out of range (max 8 integer digits)"},
		{name: "too many decimal places", field: FieldSpec{Name: "controls", Kind: KindDecimal, Precision: 10, Scale: 2}, raw: "71,555", wantErr: "controls 71.555 has more than 2 decimal places"},
		{name: "attak_kef scale", field: FieldSpec{Name: "attak_kef", Kind: KindDecimal, Precision: 10, Scale: 3}, raw: "1.0705", wantErr: "more than 3 decimal places"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(tt.field, tt.raw)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
