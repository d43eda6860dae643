package mrz

import (
	"strconv"
	"time"
)

// DefaultYearCutoff is the two-digit-year pivot: yy at or below it decodes
// to 20yy, above it to 19yy. It follows the reference behavior but drifts
// forward in real deployments, which is why DecodeDate takes it as a
// parameter instead of hard-coding it.
const DefaultYearCutoff = 30

// DecodeDate converts a six-digit YYMMDD field into a calendar date using
// the given century cutoff. Dates that do not exist on the calendar
// (Feb 30, month 13) fail with InvalidDate.
func DecodeDate(yymmdd string, cutoff int) (time.Time, error) {
	if len(yymmdd) != 6 {
		return time.Time{}, newError(InvalidDate, "expected YYMMDD, got %q", yymmdd)
	}

	yy, err := strconv.Atoi(yymmdd[0:2])
	if err != nil {
		return time.Time{}, newError(InvalidDate, "non-numeric year in %q", yymmdd)
	}
	mm, err := strconv.Atoi(yymmdd[2:4])
	if err != nil {
		return time.Time{}, newError(InvalidDate, "non-numeric month in %q", yymmdd)
	}
	dd, err := strconv.Atoi(yymmdd[4:6])
	if err != nil {
		return time.Time{}, newError(InvalidDate, "non-numeric day in %q", yymmdd)
	}

	year := 1900 + yy
	if yy <= cutoff {
		year = 2000 + yy
	}

	// time.Date normalizes out-of-range components (Feb 30 becomes Mar 1
	// or 2), so round-trip the components to catch impossible dates.
	date := time.Date(year, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if date.Year() != year || date.Month() != time.Month(mm) || date.Day() != dd {
		return time.Time{}, newError(InvalidDate, "%q is not a calendar date", yymmdd)
	}

	return date, nil
}
