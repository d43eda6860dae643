package passport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRecognizedCountry(t *testing.T) {
	recognized := []string{"NLD", "BRA", "USA", "D", "GBD", "GBN"}
	for _, code := range recognized {
		require.Truef(t, IsRecognizedCountry(code), "expected %s to be recognized", code)
	}

	unrecognized := []string{"UTO", "XXX", "", "NL", "nld"}
	for _, code := range unrecognized {
		require.Falsef(t, IsRecognizedCountry(code), "expected %s to be unrecognized", code)
	}
}
