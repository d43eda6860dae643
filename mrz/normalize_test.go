package mrz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeTwoCleanLines(t *testing.T) {
	lines, err := Normalize(TestLine1 + "\n" + TestLine2)
	require.NoError(t, err)
	require.Equal(t, TestLine1, lines.Line1)
	require.Equal(t, TestLine2, lines.Line2)
}

func TestNormalizeToleratesSurroundingWhitespace(t *testing.T) {
	raw := "\n\n   " + TestLine1 + "  \r\n\t" + TestLine2 + "\n\n"
	lines, err := Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, TestLine1, lines.Line1)
	require.Equal(t, TestLine2, lines.Line2)
}

func TestNormalizeUppercases(t *testing.T) {
	lines, err := Normalize(strings.ToLower(TestLine1) + "\n" + strings.ToLower(TestLine2))
	require.NoError(t, err)
	require.Equal(t, TestLine1, lines.Line1)
	require.Equal(t, TestLine2, lines.Line2)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first, err := Normalize(TestLine1 + "\n" + TestLine2Noisy)
	require.NoError(t, err)

	second, err := Normalize(first.Line1 + "\n" + first.Line2)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestNormalizeCorrectsOnlyDigitColumns(t *testing.T) {
	lines, err := Normalize(TestLine1 + "\n" + TestLine2Noisy)
	require.NoError(t, err)
	require.Equal(t, TestLine2, lines.Line2)
}

func TestNormalizeNeverTouchesOtherPositions(t *testing.T) {
	// Confusable letters outside the seven digit columns are legitimate
	// data (names, country codes, document numbers) and must survive.
	line2 := "OISBGDZTQ6UTO7408122F3001156ZE184226B<<<<<12"
	lines, err := Normalize(TestLine1 + "\n" + line2)
	require.NoError(t, err)

	corrected := []int{9, 13, 19, 21, 27, 42, 43}
	for i := 0; i < LineLength; i++ {
		if containsInt(corrected, i) {
			continue
		}
		require.Equal(t, line2[i], lines.Line2[i], "position %d must not be altered", i)
	}
	require.Equal(t, TestLine1, lines.Line1, "line 1 must never be altered")
}

func TestNormalizeFailures(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind FailureKind
	}{
		{"empty string", "", EmptyInput},
		{"whitespace only", " \n\t ", EmptyInput},
		{"one line", TestLine1, WrongLineCount},
		{"broken line counts as two", TestLine1[:20] + " " + TestLine1[20:] + "\n" + TestLine2, WrongLineCount},
		{"line 1 too short", TestLine1[:40] + "\n" + TestLine2, WrongLineLength},
		{"line 2 too long", TestLine1 + "\n" + TestLine2 + "<<", WrongLineLength},
		{"visa prefix", "V<UTO" + TestLine1[5:] + "\n" + TestLine2, BadLinePrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.text)
			require.Error(t, err)
			kind, ok := KindOf(err)
			require.True(t, ok)
			require.Equal(t, tt.kind, kind)
		})
	}
}

func containsInt(values []int, v int) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
