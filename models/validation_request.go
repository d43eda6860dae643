package models

import "go-passport-validator/passport"

// ValidationRequest is the body of POST /api/validate-passport. The MRZ text
// normally comes straight from the caller's OCR step together with that
// step's confidence; when only an image is available and a remote OCR
// service is configured, ImageData is sent instead of MrzText.
type ValidationRequest struct {
	SessionId     string                   `json:"session_id"`
	Nonce         string                   `json:"nonce"`
	MrzText       string                   `json:"mrz_text,omitempty"`
	OcrConfidence float64                  `json:"ocr_confidence"`
	ImageData     string                   `json:"image_data,omitempty"` // base64, optional
	Printed       passport.PrintedIdentity `json:"printed_identity"`
}

// ParseMrzRequest is the body of POST /api/parse-mrz, the lower-level entry
// point for callers that have no printed-page data yet.
type ParseMrzRequest struct {
	MrzText string `json:"mrz_text"`
}
