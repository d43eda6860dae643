package mrz

import "strings"

// ocrConfusions maps letters that OCR engines commonly produce in place of
// digits to the digit that was almost certainly printed. It is only ever
// consulted at columns the TD-3 layout mandates to be numeric; everywhere
// else those letters are legitimate (names, country codes).
var ocrConfusions = map[byte]byte{
	'O': '0',
	'I': '1',
	'S': '5',
	'B': '8',
	'G': '6',
	'D': '0',
	'Z': '2',
	'T': '7',
	'A': '4',
	'Q': '0',
}

// digitColumns are the seven line-2 columns corrected for OCR confusion:
// the five check-digit columns (9, 19, 27, 42, 43) and the leading digit
// column of each date block (13, 21).
var digitColumns = [...]int{9, 13, 19, 21, 27, 42, 43}

// Normalize turns a raw OCR text blob into exactly two clean 44-character
// MRZ lines. Whitespace runs act as line separators and blank lines are
// dropped, so surrounding newlines and indentation from the OCR engine are
// tolerated. After the structural checks, the common OCR digit confusions
// are corrected on line 2 only, and only at the columns that must hold
// digits. Normalize is idempotent on its own output.
func Normalize(text string) (Lines, error) {
	if strings.TrimSpace(text) == "" {
		return Lines{}, newError(EmptyInput, "no MRZ text provided")
	}

	candidates := strings.Fields(text)
	if len(candidates) != 2 {
		return Lines{}, newError(WrongLineCount, "expected 2 MRZ lines, got %d", len(candidates))
	}

	line1 := strings.ToUpper(candidates[0])
	line2 := strings.ToUpper(candidates[1])

	if len(line1) != LineLength {
		return Lines{}, newError(WrongLineLength, "line 1 has %d characters, expected %d", len(line1), LineLength)
	}
	if len(line2) != LineLength {
		return Lines{}, newError(WrongLineLength, "line 2 has %d characters, expected %d", len(line2), LineLength)
	}

	if !strings.HasPrefix(line1, "P<") {
		return Lines{}, newError(BadLinePrefix, "line 1 must start with P<, got %q", line1[:2])
	}

	return Lines{Line1: line1, Line2: correctDigitColumns(line2)}, nil
}

// correctDigitColumns applies the OCR confusion table at the mandated digit
// columns of line 2. Characters at every other column are left untouched.
func correctDigitColumns(line2 string) string {
	corrected := []byte(line2)
	for _, col := range digitColumns {
		if digit, ok := ocrConfusions[corrected[col]]; ok {
			corrected[col] = digit
		}
	}
	return string(corrected)
}

func trimFills(s string) string {
	return strings.Trim(s, "<")
}
