package passport

import (
	"strings"
	"time"
	"unicode"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-passport-validator/mrz"
)

// ConsistencyReport records how well the MRZ identity agrees with the
// independently extracted printed-page identity. Details holds the raw
// similarity scores behind each verdict.
type ConsistencyReport struct {
	NameMatch           bool               `json:"name_match"`
	DateOfBirthMatch    bool               `json:"date_of_birth_match"`
	DocumentNumberMatch bool               `json:"document_number_match"`
	OverallConsistency  float64            `json:"overall_consistency"`
	Details             map[string]float64 `json:"details,omitempty"`
}

// crossValidate compares the decoded MRZ identity against the printed-page
// identity on three dimensions: name, date of birth and document number.
// Dimensions missing on either side are excluded from the denominator, so a
// sparsely populated printed record is not penalized for what it lacks.
func (c Config) crossValidate(identity *mrz.DecodedIdentity, printed PrintedIdentity) ConsistencyReport {
	report := ConsistencyReport{Details: make(map[string]float64)}

	comparable := 0
	matched := 0

	if printedName := printed.Name(); printedName != "" {
		comparable++
		score := c.nameSimilarity(identity, printedName)
		report.Details["name_similarity"] = score
		if score >= c.NameMatchThreshold {
			report.NameMatch = true
			matched++
		}
	}

	if printed.DateOfBirth != "" {
		if printedDOB, err := ParsePrintedDate(printed.DateOfBirth); err == nil {
			comparable++
			if sameDay(identity.DateOfBirth, printedDOB) {
				report.DateOfBirthMatch = true
				matched++
				report.Details["date_of_birth"] = 1
			} else {
				report.Details["date_of_birth"] = 0
			}
		} else {
			// Present but unreadable counts as not comparable, like absent.
			report.Details["date_of_birth_unparseable"] = 0
		}
	}

	if printed.DocumentNumber != "" {
		comparable++
		if normalizeDocumentNumber(printed.DocumentNumber) == normalizeDocumentNumber(identity.DocumentNumber) {
			report.DocumentNumberMatch = true
			matched++
			report.Details["document_number"] = 1
		} else {
			report.Details["document_number"] = 0
		}
	}

	if comparable > 0 {
		report.OverallConsistency = float64(matched) / float64(comparable)
	}
	return report
}

// nameSimilarity blends a character-level sequence similarity with a
// token-set overlap, weighing them SequenceWeight and TokenWeight. The MRZ
// side is tried in both orderings (surname first and given names first),
// since printed pages differ on which comes first, and the best blend wins.
func (c Config) nameSimilarity(identity *mrz.DecodedIdentity, printedName string) float64 {
	printed := normalizeName(printedName)
	if printed == "" {
		return 0
	}

	surnameFirst := normalizeName(identity.Surname + " " + identity.GivenNames)
	givenFirst := normalizeName(identity.GivenNames + " " + identity.Surname)

	best := c.blendedSimilarity(surnameFirst, printed)
	if other := c.blendedSimilarity(givenFirst, printed); other > best {
		best = other
	}
	return best
}

var levenshtein = metrics.NewLevenshtein()

func (c Config) blendedSimilarity(a, b string) float64 {
	sequence := strutil.Similarity(a, b, levenshtein)
	overlap := tokenOverlap(a, b)
	return c.SequenceWeight*sequence + c.TokenWeight*overlap
}

// tokenOverlap is the Jaccard overlap of the word sets of a and b.
func tokenOverlap(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(s) {
		set[token] = struct{}{}
	}
	return set
}

// foldDiacritics strips combining marks so that a printed "JOÃO" compares
// equal to the MRZ transliteration "JOAO".
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeName uppercases, folds diacritics, drops punctuation and
// collapses whitespace, so both sides of a comparison are normalized
// identically.
func normalizeName(name string) string {
	folded, _, err := transform.String(foldDiacritics, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func normalizeDocumentNumber(number string) string {
	cleaned := strings.NewReplacer(" ", "", "-", "", "<", "").Replace(number)
	return strings.ToUpper(cleaned)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
