// Package mrz parses the two-line machine readable zone printed on the
// biographic page of TD-3 (passport-sized) travel documents, as laid out in
// ICAO Doc 9303. It tolerates realistic OCR noise on the digit-only columns,
// verifies all five check digits and decodes the two-digit-year date fields.
//
// Every function in this package is pure: no I/O, no shared state, safe for
// concurrent use.
package mrz

import "time"

// LineLength is the fixed width of both TD-3 lines.
const LineLength = 44

// Lines holds the two normalized 44-character MRZ lines. Line1 always starts
// with "P<"; both lines are uppercase and drawn from {A-Z, 0-9, <}.
type Lines struct {
	Line1 string
	Line2 string
}

// FieldSet is the raw fourteen TD-3 fields sliced out of the normalized
// lines at their fixed byte offsets, before any decoding. Check digits are
// kept as the single characters found on the document.
type FieldSet struct {
	DocumentType   string // line 1, positions 0-1
	IssuingCountry string // line 1, positions 2-4
	NameField      string // line 1, positions 5-43

	DocumentNumber      string // line 2, positions 0-8
	DocumentNumberCheck byte   // position 9
	Nationality         string // positions 10-12
	DateOfBirth         string // positions 13-18
	DateOfBirthCheck    byte   // position 19
	Sex                 string // position 20
	ExpiryDate          string // positions 21-26
	ExpiryDateCheck     byte   // position 27
	PersonalNumber      string // positions 28-41
	PersonalNumberCheck byte   // position 42
	CompositeCheck      byte   // position 43

	Surname    string // name field before the first "<<", fills as spaces
	GivenNames string // name field after the first "<<", fills as spaces
}

// ChecksumReport holds the outcome of recomputing the five ICAO check digits.
// A mismatch is a result, never an error.
type ChecksumReport struct {
	DocumentNumberValid bool `json:"doc_number_valid"`
	DateOfBirthValid    bool `json:"date_of_birth_valid"`
	ExpiryDateValid     bool `json:"expiry_date_valid"`
	PersonalNumberValid bool `json:"personal_number_valid"`
	CompositeValid      bool `json:"composite_valid"`
	AllValid            bool `json:"all_valid"`
}

// ValidCount returns how many of the five checked fields verified.
func (r ChecksumReport) ValidCount() int {
	count := 0
	for _, ok := range []bool{
		r.DocumentNumberValid,
		r.DateOfBirthValid,
		r.ExpiryDateValid,
		r.PersonalNumberValid,
		r.CompositeValid,
	} {
		if ok {
			count++
		}
	}
	return count
}

// DecodedIdentity is the fully typed identity record decoded from a
// structurally valid MRZ. Fill characters are stripped from the free-form
// fields; dates are real calendar dates.
type DecodedIdentity struct {
	DocumentType   string    `json:"document_type"`
	IssuingCountry string    `json:"issuing_country"`
	DocumentNumber string    `json:"document_number"`
	Nationality    string    `json:"nationality"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Sex            string    `json:"sex"`
	ExpiryDate     time.Time `json:"expiry_date"`
	PersonalNumber string    `json:"personal_number,omitempty"`
	Surname        string    `json:"surname"`
	GivenNames     string    `json:"given_names"`
}

// Result bundles everything a single parse produces.
type Result struct {
	Lines     Lines
	Fields    *FieldSet
	Checksums ChecksumReport
	Identity  *DecodedIdentity
}

// Parse runs the full MRZ pipeline on raw OCR text: normalization,
// structural field extraction, checksum verification and date decoding.
// It returns a *Error on any structural failure; checksum mismatches are
// reported in the result, not as errors. The Y2K window uses
// DefaultYearCutoff; use ParseWithCutoff to override it.
func Parse(text string) (*Result, error) {
	return ParseWithCutoff(text, DefaultYearCutoff)
}

// ParseWithCutoff is Parse with an explicit two-digit-year cutoff
// (see DecodeDate).
func ParseWithCutoff(text string, cutoff int) (*Result, error) {
	lines, err := Normalize(text)
	if err != nil {
		return nil, err
	}

	fields, err := ParseFields(lines)
	if err != nil {
		return nil, err
	}

	dob, err := DecodeDate(fields.DateOfBirth, cutoff)
	if err != nil {
		return nil, err
	}
	expiry, err := DecodeDate(fields.ExpiryDate, cutoff)
	if err != nil {
		return nil, err
	}

	identity := &DecodedIdentity{
		DocumentType:   trimFills(fields.DocumentType),
		IssuingCountry: trimFills(fields.IssuingCountry),
		DocumentNumber: trimFills(fields.DocumentNumber),
		Nationality:    trimFills(fields.Nationality),
		DateOfBirth:    dob,
		Sex:            trimFills(fields.Sex),
		ExpiryDate:     expiry,
		PersonalNumber: trimFills(fields.PersonalNumber),
		Surname:        fields.Surname,
		GivenNames:     fields.GivenNames,
	}

	return &Result{
		Lines:     lines,
		Fields:    fields,
		Checksums: Checksums(fields),
		Identity:  identity,
	}, nil
}
