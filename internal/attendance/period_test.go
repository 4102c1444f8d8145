package attendance

import (
	"testing"
	"time"

	attendanceerrors "organizerpro/internal/attendance/errors"

	"github.com/stretchr/testify/assert"
)

func TestResolvePeriod(t *testing.T) {
	f, err := resolvePeriod(PeriodFilter{Date: "2025-03-10"})
	assert.NoError(t, err)
	assert.Equal(t, f.From, f.To)
	assert.Equal(t, "2025-03-10", f.From.Format(dateLayout))

	f, err = resolvePeriod(PeriodFilter{Month: "2025-02"})
	assert.NoError(t, err)
	assert.Equal(t, "2025-02-01", f.From.Format(dateLayout))
	assert.Equal(t, "2025-02-28", f.To.Format(dateLayout))

	f, err = resolvePeriod(PeriodFilter{Year: "2024"})
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-01", f.From.Format(dateLayout))
	assert.Equal(t, "2024-12-31", f.To.Format(dateLayout))

	f, err = resolvePeriod(PeriodFilter{StartDate: "2025-01-15", EndDate: "2025-01-20"})
	assert.NoError(t, err)
	assert.Equal(t, "2025-01-15", f.From.Format(dateLayout))
	assert.Equal(t, "2025-01-20", f.To.Format(dateLayout))

	_, err = resolvePeriod(PeriodFilter{StartDate: "2025-01-20", EndDate: "2025-01-15"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriodFilter)

	// Zero and more than one period shape are both rejected.
	_, err = resolvePeriod(PeriodFilter{})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriodFilter)
	_, err = resolvePeriod(PeriodFilter{Date: "2025-03-10", Month: "2025-03"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidPeriodFilter)
}

func TestParseISOWeek(t *testing.T) {
	// 2025-W11 starts Monday 2025-03-10.
	start, err := parseISOWeek("2025-W11")
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-10", start.Format(dateLayout))
	assert.Equal(t, time.Monday, start.Weekday())

	// January 4th anchors week 1: a Monday January 4th is itself the start.
	start, err = parseISOWeek("2021-W01")
	assert.NoError(t, err)
	assert.Equal(t, "2021-01-04", start.Format(dateLayout))

	// Week 1 of 2015 starts in the previous calendar year.
	start, err = parseISOWeek("2015-W01")
	assert.NoError(t, err)
	assert.Equal(t, "2014-12-29", start.Format(dateLayout))

	_, err = parseISOWeek("2025-11")
	assert.Error(t, err)
	_, err = parseISOWeek("2025-W60")
	assert.Error(t, err)
}
