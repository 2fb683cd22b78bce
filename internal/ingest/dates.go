package ingest

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CanonicalDateLayout 入库日期格式 DD.MM.YYYY
const CanonicalDateLayout = "02.01.2006"

// ErrInvalidDate 无法识别的日期
var ErrInvalidDate = errors.New("invalid date")

var (
	canonicalDateRe = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)
	dateSepRe       = regexp.MustCompile(`[./\\-]`)
)

// DateResult 日期解析结果
type DateResult struct {
	Canonical string // DD.MM.YYYY
	Ambiguous bool   // 日、月均不超过 12 且输入非规范格式，按日在前解析
	Changed   bool   // Canonical 与原始输入不同
}

// ParseDate 按固定优先级解析日期：
//  1. 规范格式 DD.MM.YYYY；
//  2. 年在前 YYYY-MM-DD（可带时间，时间部分丢弃）；
//  3. 三段数字、年在最后：第一段 >12 为日在前，第二段 >12 为月在前，
//     都不超过 12 时按日在前并标记为歧义（点分隔的四位年除外）。
//
// 两位年份 00-69 视为 20xx，70-99 视为 19xx。
func ParseDate(raw string) (DateResult, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return DateResult{}, fmt.Errorf("%w %q", ErrInvalidDate, raw)
	}
	if canonicalDateRe.MatchString(s) {
		t, err := time.Parse(CanonicalDateLayout, s)
		if err != nil {
			return DateResult{}, fmt.Errorf("%w %q", ErrInvalidDate, raw)
		}
		out := t.Format(CanonicalDateLayout)
		return DateResult{Canonical: out, Changed: out != raw}, nil
	}

	datePart := stripTime(s)
	sep := ""
	if loc := dateSepRe.FindStringIndex(datePart); loc != nil {
		sep = datePart[loc[0]:loc[1]]
	}
	parts := dateSepRe.Split(datePart, -1)
	if len(parts) != 3 {
		return DateResult{}, fmt.Errorf("%w %q", ErrInvalidDate, raw)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		if p == "" || !isDigits(p) {
			return DateResult{}, fmt.Errorf("%w %q", ErrInvalidDate, raw)
		}
		nums[i], _ = strconv.Atoi(p)
	}

	var day, month, year int
	ambiguous := false
	switch {
	case len(parts[0]) == 4:
		year, month, day = nums[0], nums[1], nums[2]
	case len(parts[2]) == 4 || len(parts[2]) == 2:
		year = nums[2]
		if len(parts[2]) == 2 {
			year = expandYear(year)
		}
		a, b := nums[0], nums[1]
		switch {
		case a > 12 && b > 12:
			return DateResult{}, fmt.Errorf("%w %q", ErrInvalidDate, raw)
		case a > 12:
			day, month = a, b
		case b > 12:
			day, month = b, a
		default:
			day, month = a, b
			// 点分隔 + 四位年属于规范格式家族（仅缺少补零），不算歧义
			ambiguous = a != b && !(sep == "." && len(parts[2]) == 4)
		}
	default:
		return DateResult{}, fmt.Errorf("%w %q", ErrInvalidDate, raw)
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return DateResult{}, fmt.Errorf("%w %q", ErrInvalidDate, raw)
	}
	out := t.Format(CanonicalDateLayout)
	return DateResult{Canonical: out, Ambiguous: ambiguous, Changed: out != raw}, nil
}

// stripTime 去掉 "2026-02-21 10:00:00" / "2026-02-21T10:00:00" 中的时间部分
func stripTime(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	return s
}

func expandYear(yy int) int {
	if yy <= 69 {
		return 2000 + yy
	}
	return 1900 + yy
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
