package main

import (
	"crypto/rsa"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"go-passport-validator/passport"
)

// JwtCreator signs a validation verdict so downstream services can accept
// it without re-running the validation.
type JwtCreator interface {
	CreateAttestation(sessionId string, result passport.ValidationResult) (string, error)
}

type DefaultJwtCreator struct {
	privateKey *rsa.PrivateKey
	issuer     string
	validity   time.Duration
}

// NewJwtCreator reads an RSA private key in PEM form from privateKeyPath.
func NewJwtCreator(privateKeyPath, issuer string) (*DefaultJwtCreator, error) {
	keyBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read jwt private key: %w", err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse jwt private key: %w", err)
	}

	return NewJwtCreatorWithKey(privateKey, issuer), nil
}

// NewJwtCreatorWithKey wraps an already-loaded key; tests use this with a
// generated one.
func NewJwtCreatorWithKey(privateKey *rsa.PrivateKey, issuer string) *DefaultJwtCreator {
	return &DefaultJwtCreator{
		privateKey: privateKey,
		issuer:     issuer,
		validity:   time.Hour,
	}
}

const dateFormatCYMD = "2006-01-02"

func (jc *DefaultJwtCreator) CreateAttestation(sessionId string, result passport.ValidationResult) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":        jc.issuer,
		"sub":        sessionId,
		"iat":        now.Unix(),
		"exp":        now.Add(jc.validity).Unix(),
		"status":     string(result.Status),
		"confidence": result.Confidence,
	}

	if identity := result.Identity; identity != nil {
		claims["documentNumber"] = identity.DocumentNumber
		claims["surname"] = identity.Surname
		claims["givenNames"] = identity.GivenNames
		claims["nationality"] = identity.Nationality
		claims["issuingCountry"] = identity.IssuingCountry
		claims["dateOfBirth"] = identity.DateOfBirth.Format(dateFormatCYMD)
		claims["dateOfExpiry"] = identity.ExpiryDate.Format(dateFormatCYMD)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(jc.privateKey)
}
