package mrz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckDigitIcaoWorkedExample(t *testing.T) {
	// The canonical worked example from ICAO Doc 9303: document number
	// L898902C3 carries check digit 6.
	require.Equal(t, 6, CheckDigit("L898902C3"))
}

func TestCheckDigitKnownValues(t *testing.T) {
	tests := []struct {
		data string
		want int
	}{
		{"740812", 2},
		{"120415", 9},
		{"300115", 6},
		{"ZE184226B<<<<<", 1},
		{"", 0},
		{"<<<<<<", 0},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			require.Equal(t, tt.want, CheckDigit(tt.data))
		})
	}
}

func TestCheckDigitIsDeterministic(t *testing.T) {
	data := "L898902C36UTO7408122F3001156ZE184226B<<<<<1"
	first := CheckDigit(data)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, CheckDigit(data))
	}
}

func TestChecksumsAllValid(t *testing.T) {
	fields, err := ParseFields(Lines{Line1: TestLine1, Line2: TestLine2})
	require.NoError(t, err)

	report := Checksums(fields)
	require.True(t, report.DocumentNumberValid)
	require.True(t, report.DateOfBirthValid)
	require.True(t, report.ExpiryDateValid)
	require.True(t, report.PersonalNumberValid)
	require.True(t, report.CompositeValid)
	require.True(t, report.AllValid)
	require.Equal(t, 5, report.ValidCount())
}

func TestChecksumsDetectCorruptedDocumentNumber(t *testing.T) {
	fields, err := ParseFields(Lines{Line1: TestLine1, Line2: TestLine2Corrupt})
	require.NoError(t, err)

	report := Checksums(fields)
	require.False(t, report.DocumentNumberValid)
	// The flipped character also breaks the composite digit.
	require.False(t, report.CompositeValid)
	require.True(t, report.DateOfBirthValid)
	require.True(t, report.ExpiryDateValid)
	require.True(t, report.PersonalNumberValid)
	require.False(t, report.AllValid)
}

func TestChecksumsAllFillPersonalNumber(t *testing.T) {
	t.Run("fill check digit is valid", func(t *testing.T) {
		fields := &FieldSet{PersonalNumber: "<<<<<<<<<<<<<<", PersonalNumberCheck: '<'}
		require.True(t, personalNumberValid(fields))
	})

	t.Run("digit check on an all-fill field is invalid", func(t *testing.T) {
		fields := &FieldSet{PersonalNumber: "<<<<<<<<<<<<<<", PersonalNumberCheck: '0'}
		require.False(t, personalNumberValid(fields))
	})

	t.Run("fill check digit on a populated field is invalid", func(t *testing.T) {
		fields := &FieldSet{PersonalNumber: "ZE184226B<<<<<", PersonalNumberCheck: '<'}
		require.False(t, personalNumberValid(fields))
	})
}
