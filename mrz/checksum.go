package mrz

import "strings"

// checksumWeights cycle over the data left to right, per ICAO Doc 9303.
var checksumWeights = [...]int{7, 3, 1}

// CheckDigit computes the ICAO check digit for data drawn from
// {A-Z, 0-9, <}: fills count 0, digits count themselves, letters count
// A=10..Z=35, each weighted 7,3,1 repeating, summed mod 10. Characters
// outside the MRZ alphabet count 0, like fills.
func CheckDigit(data string) int {
	sum := 0
	for i := 0; i < len(data); i++ {
		sum += charValue(data[i]) * checksumWeights[i%3]
	}
	return sum % 10
}

func charValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	default:
		return 0
	}
}

// Checksums recomputes the five TD-3 check digits and compares them with the
// ones embedded in the field set. The personal-number field is special: when
// it is entirely fill characters its check digit must itself be the fill
// character. The composite digit covers everything on line 2 before the
// final column.
func Checksums(fields *FieldSet) ChecksumReport {
	report := ChecksumReport{
		DocumentNumberValid: matchesCheckDigit(fields.DocumentNumber, fields.DocumentNumberCheck),
		DateOfBirthValid:    matchesCheckDigit(fields.DateOfBirth, fields.DateOfBirthCheck),
		ExpiryDateValid:     matchesCheckDigit(fields.ExpiryDate, fields.ExpiryDateCheck),
		PersonalNumberValid: personalNumberValid(fields),
		CompositeValid:      matchesCheckDigit(compositeData(fields), fields.CompositeCheck),
	}
	report.AllValid = report.DocumentNumberValid &&
		report.DateOfBirthValid &&
		report.ExpiryDateValid &&
		report.PersonalNumberValid &&
		report.CompositeValid
	return report
}

func matchesCheckDigit(data string, embedded byte) bool {
	return embedded == byte('0'+CheckDigit(data))
}

func personalNumberValid(fields *FieldSet) bool {
	if strings.Trim(fields.PersonalNumber, "<") == "" {
		return fields.PersonalNumberCheck == '<'
	}
	return matchesCheckDigit(fields.PersonalNumber, fields.PersonalNumberCheck)
}

func compositeData(fields *FieldSet) string {
	var b strings.Builder
	b.WriteString(fields.DocumentNumber)
	b.WriteByte(fields.DocumentNumberCheck)
	b.WriteString(fields.Nationality)
	b.WriteString(fields.DateOfBirth)
	b.WriteByte(fields.DateOfBirthCheck)
	b.WriteString(fields.Sex)
	b.WriteString(fields.ExpiryDate)
	b.WriteByte(fields.ExpiryDateCheck)
	b.WriteString(fields.PersonalNumber)
	b.WriteByte(fields.PersonalNumberCheck)
	return b.String()
}
