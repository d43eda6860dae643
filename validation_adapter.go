package main

import (
	"go-passport-validator/mrz"
	"go-passport-validator/passport"
)

// DocumentValidator is the slice of the validation engine the HTTP server
// needs. Tests substitute a fake to exercise transport behavior without
// constructing real MRZ vectors.
type DocumentValidator interface {
	Validate(rawText string, ocrConfidence float64, printed passport.PrintedIdentity) passport.ValidationResult
	ParseMrz(rawText string) (*mrz.DecodedIdentity, error)
}
