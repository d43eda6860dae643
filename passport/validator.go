// Package passport validates passport biographic pages: it parses the MRZ
// through the mrz package, cross-checks the decoded identity against the
// independently extracted printed-page identity and condenses everything
// into a confidence score and a tri-state verdict.
//
// Like the mrz package, everything here is pure and safe for concurrent use;
// callers may share one Validator across goroutines.
package passport

import (
	"fmt"
	"time"

	"go-passport-validator/mrz"
)

// Status is the terminal verdict of a validation.
type Status string

const (
	StatusValid      Status = "VALID"
	StatusSuspicious Status = "SUSPICIOUS"
	StatusInvalid    Status = "INVALID"
)

// Config holds the policy constants of the validator. The defaults
// reproduce the reference behavior; all of them are empirically chosen
// tunables, not derived facts.
type Config struct {
	// YearCutoff is the two-digit-year pivot for MRZ dates (see
	// mrz.DecodeDate).
	YearCutoff int

	// NameMatchThreshold is the minimum blended name similarity for the
	// name dimension to count as matched.
	NameMatchThreshold float64
	// SequenceWeight and TokenWeight blend the character-level similarity
	// and the token overlap into the name score.
	SequenceWeight float64
	TokenWeight    float64

	// ChecksumWeight and OcrWeight weigh the checksum ratio and the OCR
	// confidence in the intrinsic MRZ score. The plausibility term carries
	// its weight as PlausibilityCap.
	ChecksumWeight    float64
	OcrWeight         float64
	PlausibilityBonus float64
	PlausibilityCap   float64

	// MrzBlendWeight and ConsistencyBlendWeight blend the intrinsic MRZ
	// score with the cross-validation result into the final confidence.
	MrzBlendWeight         float64
	ConsistencyBlendWeight float64

	// SuspiciousConsistency and SuspiciousConfidence are the floors below
	// which a structurally valid document is flagged SUSPICIOUS.
	SuspiciousConsistency float64
	SuspiciousConfidence  float64

	// Now supplies the current time; tests pin it. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the reference policy constants.
func DefaultConfig() Config {
	return Config{
		YearCutoff:             mrz.DefaultYearCutoff,
		NameMatchThreshold:     0.8,
		SequenceWeight:         0.6,
		TokenWeight:            0.4,
		ChecksumWeight:         0.6,
		OcrWeight:              0.2,
		PlausibilityBonus:      0.05,
		PlausibilityCap:        0.2,
		MrzBlendWeight:         0.7,
		ConsistencyBlendWeight: 0.3,
		SuspiciousConsistency:  0.5,
		SuspiciousConfidence:   0.7,
		Now:                    time.Now,
	}
}

// ValidationResult is the single caller-facing aggregate produced by
// Validate. Identity is nil only when the MRZ failed structurally.
type ValidationResult struct {
	Identity        *mrz.DecodedIdentity `json:"identity,omitempty"`
	Checksums       mrz.ChecksumReport   `json:"checksums"`
	Consistency     ConsistencyReport    `json:"consistency"`
	Confidence      float64              `json:"confidence"`
	Status          Status               `json:"status"`
	Issues          []string             `json:"issues,omitempty"`
	Recommendations []string             `json:"recommendations,omitempty"`
}

// Validator owns the whole pipeline. The zero value is not usable; construct
// one with NewValidator or NewValidatorWithConfig.
type Validator struct {
	config Config
}

// NewValidator returns a Validator with the default policy constants.
func NewValidator() *Validator {
	return NewValidatorWithConfig(DefaultConfig())
}

// NewValidatorWithConfig returns a Validator with explicit policy constants.
// A nil Now falls back to time.Now.
func NewValidatorWithConfig(config Config) *Validator {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Validator{config: config}
}

// ParseMrz parses and decodes the MRZ side only, for callers that have no
// printed-page data yet. Structural failures come back as *mrz.Error.
func (v *Validator) ParseMrz(rawText string) (*mrz.DecodedIdentity, error) {
	result, err := mrz.ParseWithCutoff(rawText, v.config.YearCutoff)
	if err != nil {
		return nil, err
	}
	return result.Identity, nil
}

// Validate runs the full pipeline: normalize, parse, verify checksums,
// decode dates, cross-validate against the printed identity and score. It
// never returns an error: structural parse failures yield a terminal
// INVALID result naming the failure, and every semantic finding (checksum
// mismatch, expiry, low consistency) is folded into the result.
func (v *Validator) Validate(rawText string, ocrConfidence float64, printed PrintedIdentity) ValidationResult {
	parsed, err := mrz.ParseWithCutoff(rawText, v.config.YearCutoff)
	if err != nil {
		return ValidationResult{
			Status:          StatusInvalid,
			Confidence:      0,
			Issues:          []string{fmt.Sprintf("MRZ parsing failed: %v", err)},
			Recommendations: []string{"Request a new scan of the machine readable zone"},
		}
	}

	consistency := v.config.crossValidate(parsed.Identity, printed)
	mrzConfidence := v.mrzConfidence(parsed, clamp01(ocrConfidence))
	confidence := clamp01(v.config.MrzBlendWeight*mrzConfidence +
		v.config.ConsistencyBlendWeight*consistency.OverallConsistency)

	result := ValidationResult{
		Identity:    parsed.Identity,
		Checksums:   parsed.Checksums,
		Consistency: consistency,
		Confidence:  confidence,
	}
	v.classify(&result)
	return result
}

// mrzConfidence is the intrinsic score of the MRZ side: the checksum ratio,
// the OCR engine's own confidence and a small data-plausibility bonus.
func (v *Validator) mrzConfidence(parsed *mrz.Result, ocrConfidence float64) float64 {
	c := v.config
	checksumRatio := float64(parsed.Checksums.ValidCount()) / 5

	plausibility := 0.0
	identity := parsed.Identity
	today := c.Now()
	if IsRecognizedCountry(identity.IssuingCountry) && IsRecognizedCountry(identity.Nationality) {
		plausibility += c.PlausibilityBonus
	}
	if identity.DateOfBirth.Before(today) {
		plausibility += c.PlausibilityBonus
	}
	if identity.ExpiryDate.After(today) {
		plausibility += c.PlausibilityBonus
	}
	if identity.Surname != "" && identity.GivenNames != "" {
		plausibility += c.PlausibilityBonus
	}
	if plausibility > c.PlausibilityCap {
		plausibility = c.PlausibilityCap
	}

	return clamp01(c.ChecksumWeight*checksumRatio + c.OcrWeight*ocrConfidence + plausibility)
}

// classify assigns the status by precedence (first match wins) and collects
// every issue that applies, since several can co-occur.
func (v *Validator) classify(result *ValidationResult) {
	c := v.config
	expired := result.Identity.ExpiryDate.Before(c.Now())

	if !result.Checksums.AllValid {
		result.Issues = append(result.Issues, "MRZ checksum validation failed")
	}
	if expired {
		result.Issues = append(result.Issues, "Passport is expired")
	}
	if result.Consistency.OverallConsistency < c.SuspiciousConsistency {
		result.Issues = append(result.Issues, "Low consistency between MRZ and printed data")
	}
	if result.Confidence < c.SuspiciousConfidence {
		result.Issues = append(result.Issues, "Low confidence score")
	}

	switch {
	case !result.Checksums.AllValid:
		result.Status = StatusInvalid
		result.Recommendations = append(result.Recommendations,
			"Request a new scan of the machine readable zone")
	case expired:
		result.Status = StatusInvalid
		result.Recommendations = append(result.Recommendations,
			"Reject the document and request a currently valid one")
	case result.Consistency.OverallConsistency < c.SuspiciousConsistency:
		result.Status = StatusSuspicious
		result.Recommendations = append(result.Recommendations,
			"Review the printed page against the machine readable zone manually")
	case result.Confidence < c.SuspiciousConfidence:
		result.Status = StatusSuspicious
		result.Recommendations = append(result.Recommendations,
			"Rescan the document at a higher resolution")
	default:
		result.Status = StatusValid
	}
}

func clamp01(value float64) float64 {
	switch {
	case value < 0:
		return 0
	case value > 1:
		return 1
	default:
		return value
	}
}
