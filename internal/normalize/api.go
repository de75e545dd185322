package normalize

import (
	"fmt"
	"regexp"

	"github.com/ndwells/wellbook/internal/model"
)

var (
	apiCanonicalRe = regexp.MustCompile(`^\d{2}-\d{3}-\d{5}$`)
	nonDigitRe     = regexp.MustCompile(`\D`)
)

// apiNumber reformats an API well number into the canonical XX-XXX-XXXXX
// shape when exactly ten digits are recoverable. Anything else is left as
// sanitized text and flagged: an eleven-digit read usually means an OCR
// duplication that a human has to resolve.
func apiNumber(v string, findings []model.Finding) (string, []model.Finding) {
	v = Text(v)
	if v == model.TextNA {
		return v, findings
	}
	if apiCanonicalRe.MatchString(v) {
		return v, findings
	}
	digits := nonDigitRe.ReplaceAllString(v, "")
	if len(digits) == 10 {
		return fmt.Sprintf("%s-%s-%s", digits[:2], digits[2:5], digits[5:]), findings
	}
	return v, append(findings, model.Finding{
		Field:  "api_number",
		Value:  v,
		Reason: fmt.Sprintf("expected 10 digits, got %d", len(digits)),
	})
}
