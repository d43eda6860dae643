package main

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"os"
	"testing"
	"time"

	"go-passport-validator/mrz"
	"go-passport-validator/passport"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

func newTestJwtCreator(t *testing.T) (*DefaultJwtCreator, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return NewJwtCreatorWithKey(key, "passport_validator"), key
}

func testValidationResult() passport.ValidationResult {
	return passport.ValidationResult{
		Identity: &mrz.DecodedIdentity{
			DocumentType:   "P",
			IssuingCountry: "UTO",
			DocumentNumber: "L898902C3",
			Nationality:    "UTO",
			DateOfBirth:    time.Date(1974, time.August, 12, 0, 0, 0, 0, time.UTC),
			Sex:            "F",
			ExpiryDate:     time.Date(2030, time.January, 15, 0, 0, 0, 0, time.UTC),
			Surname:        "ERIKSSON",
			GivenNames:     "ANNA MARIA",
		},
		Confidence: 0.95,
		Status:     passport.StatusValid,
	}
}

func TestCreateAttestation(t *testing.T) {
	jc, _ := newTestJwtCreator(t)

	token, err := jc.CreateAttestation("session-1", testValidationResult())
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestDecodeValidateAttestation(t *testing.T) {
	jc, key := newTestJwtCreator(t)

	tokenString, err := jc.CreateAttestation("session-1", testValidationResult())
	require.NoError(t, err)

	keyFunc := func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Header["alg"])
		}
		return &key.PublicKey, nil
	}

	parsedJWT, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, keyFunc)
	require.NoError(t, err)
	require.True(t, parsedJWT.Valid)

	claims, ok := parsedJWT.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "passport_validator", claims["iss"])
	require.Equal(t, "session-1", claims["sub"])
	require.Equal(t, "VALID", claims["status"])
	require.Equal(t, 0.95, claims["confidence"])
	require.Equal(t, "L898902C3", claims["documentNumber"])
	require.Equal(t, "ERIKSSON", claims["surname"])
	require.Equal(t, "ANNA MARIA", claims["givenNames"])
	require.Equal(t, "1974-08-12", claims["dateOfBirth"])
	require.Equal(t, "2030-01-15", claims["dateOfExpiry"])
}

func TestAttestationWithoutIdentity(t *testing.T) {
	jc, key := newTestJwtCreator(t)

	result := passport.ValidationResult{
		Status:     passport.StatusInvalid,
		Confidence: 0,
		Issues:     []string{"MRZ parsing failed: structural error"},
	}

	tokenString, err := jc.CreateAttestation("session-2", result)
	require.NoError(t, err)

	parsedJWT, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	})
	require.NoError(t, err)

	claims := parsedJWT.Claims.(jwt.MapClaims)
	require.Equal(t, "INVALID", claims["status"])
	require.NotContains(t, claims, "documentNumber")
}

func TestNewJwtCreator_ErrorCases(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := NewJwtCreator("./nonexistent.pem", "issuer")
		require.Error(t, err)
	})

	t.Run("invalid PEM format", func(t *testing.T) {
		tmpFile, err := os.CreateTemp("", "invalid-*.pem")
		require.NoError(t, err)
		defer func() { _ = os.Remove(tmpFile.Name()) }()

		_, err = tmpFile.Write([]byte("this is not a valid PEM file"))
		require.NoError(t, err)
		require.NoError(t, tmpFile.Close())

		_, err = NewJwtCreator(tmpFile.Name(), "issuer")
		require.Error(t, err)
	})
}
