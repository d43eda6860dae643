package mrz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFieldsSlicesFixedOffsets(t *testing.T) {
	fields, err := ParseFields(Lines{Line1: TestLine1, Line2: TestLine2})
	require.NoError(t, err)

	require.Equal(t, "P<", fields.DocumentType)
	require.Equal(t, "UTO", fields.IssuingCountry)
	require.Equal(t, "L898902C3", fields.DocumentNumber)
	require.Equal(t, byte('6'), fields.DocumentNumberCheck)
	require.Equal(t, "UTO", fields.Nationality)
	require.Equal(t, "740812", fields.DateOfBirth)
	require.Equal(t, byte('2'), fields.DateOfBirthCheck)
	require.Equal(t, "F", fields.Sex)
	require.Equal(t, "300115", fields.ExpiryDate)
	require.Equal(t, byte('6'), fields.ExpiryDateCheck)
	require.Equal(t, "ZE184226B<<<<<", fields.PersonalNumber)
	require.Equal(t, byte('1'), fields.PersonalNumberCheck)
	require.Equal(t, byte('2'), fields.CompositeCheck)
}

func TestParseFieldsSplitsNames(t *testing.T) {
	tests := []struct {
		name       string
		nameField  string
		surname    string
		givenNames string
	}{
		{"surname and two given names", "ERIKSSON<<ANNA<MARIA", "ERIKSSON", "ANNA MARIA"},
		{"single given name", "SILVA<<JOAO", "SILVA", "JOAO"},
		{"no given names", "MADONNA", "MADONNA", ""},
		{"multi-word surname", "VAN<DER<BERG<<JAN", "VAN DER BERG", "JAN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line1 := "P<UTO" + tt.nameField
			for len(line1) < LineLength {
				line1 += "<"
			}
			fields, err := ParseFields(Lines{Line1: line1, Line2: TestLine2})
			require.NoError(t, err)
			require.Equal(t, tt.surname, fields.Surname)
			require.Equal(t, tt.givenNames, fields.GivenNames)
		})
	}
}

func TestParseFieldsRejectsMalformedLines(t *testing.T) {
	tests := []struct {
		name  string
		lines Lines
	}{
		{"digits in name block", Lines{Line1: "P<UTO1RIKSSON<<ANNA<MARIA<<<<<<<<<<<<<<<<<<<", Line2: TestLine2}},
		{"letter in date of birth", Lines{Line1: TestLine1, Line2: "L898902C36UTO74O8122F3001156ZE184226B<<<<<12"}},
		{"bad sex marker", Lines{Line1: TestLine1, Line2: "L898902C36UTO7408122X3001156ZE184226B<<<<<12"}},
		{"fill as final check digit", Lines{Line1: TestLine1, Line2: "L898902C36UTO7408122F3001156ZE184226B<<<<<1<"}},
		{"empty name field", Lines{Line1: "P<UTO<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<<", Line2: TestLine2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFields(tt.lines)
			require.Error(t, err)
			kind, ok := KindOf(err)
			require.True(t, ok)
			require.Equal(t, InvalidLineFormat, kind)
		})
	}
}
