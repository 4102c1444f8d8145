package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	attendanceerrors "organizerpro/internal/attendance/errors"
)

// resolvePeriod turns the request-level period filter into an inclusive date
// range. Exactly one period shape must be supplied.
func resolvePeriod(f PeriodFilter) (ListFilter, error) {
	out := ListFilter{
		MemberID:   f.MemberID,
		Role:       f.Role,
		Department: f.Department,
	}

	shapes := 0
	if f.Date != "" {
		shapes++
	}
	if f.Week != "" {
		shapes++
	}
	if f.Month != "" {
		shapes++
	}
	if f.Year != "" {
		shapes++
	}
	if f.StartDate != "" || f.EndDate != "" {
		shapes++
	}
	if shapes != 1 {
		return out, attendanceerrors.ErrInvalidPeriodFilter
	}

	switch {
	case f.Date != "":
		d, err := time.Parse(dateLayout, f.Date)
		if err != nil {
			return out, attendanceerrors.ErrInvalidDateFormat
		}
		out.From, out.To = d, d

	case f.Week != "":
		start, err := parseISOWeek(f.Week)
		if err != nil {
			return out, err
		}
		out.From = start
		out.To = start.AddDate(0, 0, 6)

	case f.Month != "":
		m, err := time.Parse("2006-01", f.Month)
		if err != nil {
			return out, attendanceerrors.ErrInvalidDateFormat
		}
		out.From = m
		out.To = m.AddDate(0, 1, -1)

	case f.Year != "":
		y, err := strconv.Atoi(f.Year)
		if err != nil {
			return out, attendanceerrors.ErrInvalidDateFormat
		}
		out.From = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		out.To = time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC)

	default:
		start, err := time.Parse(dateLayout, f.StartDate)
		if err != nil {
			return out, attendanceerrors.ErrInvalidDateFormat
		}
		end, err := time.Parse(dateLayout, f.EndDate)
		if err != nil {
			return out, attendanceerrors.ErrInvalidDateFormat
		}
		if end.Before(start) {
			return out, attendanceerrors.ErrInvalidPeriodFilter
		}
		out.From, out.To = start, end
	}

	return out, nil
}

// parseISOWeek resolves "2006-W02" to the Monday of that ISO week.
func parseISOWeek(v string) (time.Time, error) {
	parts := strings.SplitN(v, "-W", 2)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid ISO week %q, expected YYYY-Www: %w",
			v, attendanceerrors.ErrInvalidDateFormat)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}
	week, err := strconv.Atoi(parts[1])
	if err != nil || week < 1 || week > 53 {
		return time.Time{}, attendanceerrors.ErrInvalidDateFormat
	}

	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	offset := int(jan4.Weekday())
	if offset == 0 {
		offset = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-offset)
	return week1Monday.AddDate(0, 0, (week-1)*7), nil
}
