package domain

import (
	"fmt"
	"strings"
	"time"

	practice "mindful/internal/modules/practice/domain"
	apperrors "mindful/internal/platform/errors"
)

type Range string

const (
	RangeToday   Range = "today"
	RangeWeek    Range = "week"
	RangeMonth   Range = "month"
	RangeQuarter Range = "quarter"
	RangeYear    Range = "year"
	RangeAll     Range = "all"
)

var Ranges = []Range{RangeToday, RangeWeek, RangeMonth, RangeQuarter, RangeYear, RangeAll}

func ParseRange(s string) (Range, error) {
	r := Range(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Ranges {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown range %q", apperrors.ErrInvalidInput, s)
}

// Next cycles through Ranges, used by the dashboard.
func (r Range) Next() Range {
	for i, known := range Ranges {
		if known == r {
			return Ranges[(i+1)%len(Ranges)]
		}
	}
	return RangeToday
}

// Bounds resolves r to a half-open [start, end) interval of calendar days
// ending after today. RangeAll starts at the earliest recorded date.
func (r Range) Bounds(history practice.History, today time.Time) (time.Time, time.Time, error) {
	today = practice.Day(today)
	end := today.AddDate(0, 0, 1)
	switch r {
	case RangeToday:
		return today, end, nil
	case RangeWeek:
		return today.AddDate(0, 0, -6), end, nil
	case RangeMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), end, nil
	case RangeQuarter:
		first := time.Month((int(today.Month())-1)/3*3 + 1)
		return time.Date(today.Year(), first, 1, 0, 0, 0, 0, time.UTC), end, nil
	case RangeYear:
		return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), end, nil
	case RangeAll:
		dates, err := history.Dates()
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if len(dates) == 0 || dates[0].After(today) {
			return today, end, nil
		}
		return dates[0], end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown range %q", apperrors.ErrInvalidInput, string(r))
	}
}
