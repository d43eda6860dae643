package passport

import (
	"fmt"
	"strings"
	"time"
)

// PrintedIdentity holds identity fields read from the printed (non-MRZ)
// portion of a document by an independent extraction step. Any field may be
// absent: absence is an empty string, and absent fields are excluded from
// the consistency denominator rather than counted as mismatches.
type PrintedIdentity struct {
	FullName       string `json:"full_name,omitempty"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	DateOfBirth    string `json:"date_of_birth,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
}

// Name returns the best available printed name: the full name if present,
// otherwise first and last name joined.
func (p PrintedIdentity) Name() string {
	if p.FullName != "" {
		return p.FullName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// printedDateLayouts are the formats accepted for printed dates, tried in
// order.
var printedDateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
}

// ParsePrintedDate parses a printed-page date string in ISO (2006-01-02) or
// US (MM/DD/YYYY) form.
func ParsePrintedDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range printedDateLayouts {
		if date, err := time.Parse(layout, trimmed); err == nil {
			return date, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}
