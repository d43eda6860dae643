package mrz

import (
	"regexp"
	"strings"
)

// TD-3 line 2 layout, fixed widths, 44 characters total:
// document number (9), check digit, nationality (3), date of birth (6),
// check digit, sex, expiry date (6), check digit, personal number (14),
// check digit, composite check digit.
var line2Pattern = regexp.MustCompile(
	`^([A-Z0-9<]{9})([0-9])([A-Z<]{3})([0-9]{6})([0-9])([MF<])([0-9]{6})([0-9])([A-Z0-9<]{14})([0-9<])([0-9])$`)

// Line 1: "P", filler, 3-character issuing state, then the name block.
var line1Pattern = regexp.MustCompile(`^P<([A-Z<]{3})([A-Z<]{39})$`)

// ParseFields slices the fourteen TD-3 fields out of a pair of normalized
// lines. Any deviation from the fixed-width layout is a hard failure: TD-3
// has no optional fields, so a mismatch means the wrong document family was
// fed in.
func ParseFields(lines Lines) (*FieldSet, error) {
	m1 := line1Pattern.FindStringSubmatch(lines.Line1)
	if m1 == nil {
		return nil, newError(InvalidLineFormat, "line 1 does not match the TD-3 layout")
	}

	m2 := line2Pattern.FindStringSubmatch(lines.Line2)
	if m2 == nil {
		return nil, newError(InvalidLineFormat, "line 2 does not match the TD-3 layout")
	}

	surname, givenNames := splitNameField(m1[2])
	if surname == "" {
		return nil, newError(InvalidLineFormat, "name field is empty")
	}

	return &FieldSet{
		DocumentType:   lines.Line1[0:2],
		IssuingCountry: m1[1],
		NameField:      m1[2],

		DocumentNumber:      m2[1],
		DocumentNumberCheck: m2[2][0],
		Nationality:         m2[3],
		DateOfBirth:         m2[4],
		DateOfBirthCheck:    m2[5][0],
		Sex:                 m2[6],
		ExpiryDate:          m2[7],
		ExpiryDateCheck:     m2[8][0],
		PersonalNumber:      m2[9],
		PersonalNumberCheck: m2[10][0],
		CompositeCheck:      m2[11][0],

		Surname:    surname,
		GivenNames: givenNames,
	}, nil
}

// splitNameField splits the 39-character name block on its first "<<"
// delimiter into surname and given names. Remaining single fills act as
// word separators.
func splitNameField(nameField string) (surname, givenNames string) {
	primary, secondary, found := strings.Cut(nameField, "<<")
	if !found {
		return fillsToSpaces(nameField), ""
	}
	return fillsToSpaces(primary), fillsToSpaces(secondary)
}

func fillsToSpaces(s string) string {
	return strings.TrimSpace(strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == '<'
	}), " "))
}
