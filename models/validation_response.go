package models

import (
	"go-passport-validator/mrz"
	"go-passport-validator/passport"
)

// StartValidationResponse carries the session credentials for a subsequent
// validate-passport call.
type StartValidationResponse struct {
	SessionId string `json:"session_id"`
	Nonce     string `json:"nonce"`
}

// ValidationResponse wraps the engine's result with a signed attestation of
// the verdict.
type ValidationResponse struct {
	Result      passport.ValidationResult `json:"result"`
	Attestation string                    `json:"attestation,omitempty"`
}

// ParseMrzResponse is the MRZ-only result.
type ParseMrzResponse struct {
	Identity *mrz.DecodedIdentity `json:"identity"`
}
