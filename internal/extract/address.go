package extract

import (
	"regexp"
	"strings"
)

// surfaceOwnerRe marks where the address block ends; captures past it bleed
// into the surface-owner field.
var surfaceOwnerRe = regexp.MustCompile(`(?i)Name\s+of\s+Surface\s+Owner|Surface\s+Owner\s+or\s+Tenant`)

var addressRecognizers = []recognizer{
	{re: regexp.MustCompile(`(?i)Field\s+Address[^\n]*\n([A-Z0-9][A-Z0-9\s,#\-\.]+[A-Z]{2}\s+\d{5})`)},
	{re: regexp.MustCompile(`(?i)Address\s+City\s+State\s+Zip\s*Code[^\n]*\n([A-Z0-9][A-Z0-9\s,#\-\.]+[A-Z]{2}\s+\d{5})`)},
}

var ocrAddressFixes = strings.NewReplacer(
	"Broadwayy", "Broadway",
	"P .0.", "P.O.",
	"P. 0.", "P.O.",
	"Cityy", "City",
	" IN 9th", " W 9th",
)

var (
	commaSpacingRe  = regexp.MustCompile(`\s*,\s*`)
	poBoxRe         = regexp.MustCompile(`P\s*\.\s*0\s*\.`)
	digitWordRe     = regexp.MustCompile(`(\d)([A-Z][a-z]+)`)
	wordRunRe       = regexp.MustCompile(`([a-z])([A-Z][a-z]+)`)
	suiteBoxRe      = regexp.MustCompile(`(?i)(Suite|Box)(\d)`)
	poFollowRe      = regexp.MustCompile(`(P\.O\.)([A-Z])`)
	leadingCoRe     = regexp.MustCompile(`(?i)^\s*co\s+`)
)

// normalizeAddressSpacing repairs the run-together spacing PDF extraction
// leaves in address lines: missing spaces around commas, P.O. boxes and
// street keywords.
func normalizeAddressSpacing(addr string) string {
	addr = leadingCoRe.ReplaceAllString(strings.TrimSpace(addr), "")
	addr = commaSpacingRe.ReplaceAllString(addr, ", ")
	addr = poBoxRe.ReplaceAllString(addr, "P.O.")
	addr = digitWordRe.ReplaceAllString(addr, "$1 $2")
	addr = wordRunRe.ReplaceAllString(addr, "$1 $2")
	addr = suiteBoxRe.ReplaceAllString(addr, "$1 $2")
	addr = poFollowRe.ReplaceAllString(addr, "$1 $2")
	return collapseSpace(addr)
}

// ExtractAddress finds the operator address line, truncating the document at
// the surface-owner section first so the capture cannot run into it.
func ExtractAddress(text string) string {
	if loc := surfaceOwnerRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	for _, r := range addressRecognizers {
		if v := r.apply(text); v != "" {
			return normalizeAddressSpacing(ocrAddressFixes.Replace(v))
		}
	}
	return ""
}
