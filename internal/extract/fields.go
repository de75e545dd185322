// Package extract turns raw per-document text and tables into well and
// stimulation records: an ordered pattern library for well attributes, a
// header-synonym table mapper for stimulation rows, and the assembler that
// combines them.
package extract

import (
	"regexp"
	"strings"
)

// recognizer is one (matcher, extractor) pair. Lists are evaluated in order
// and the first non-empty match wins: specific patterns go before generic
// fallbacks, so list order is load-bearing and covered by tests.
type recognizer struct {
	re      *regexp.Regexp
	extract func(m []string) string // nil means capture group 1
}

func (r recognizer) apply(text string) string {
	m := r.re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if r.extract != nil {
		return collapseSpace(r.extract(m))
	}
	return collapseSpace(m[1])
}

var spaceRe = regexp.MustCompile(`\s+`)

func collapseSpace(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// firstMatch runs recognizers in order, returning the first non-empty result.
func firstMatch(text string, recs []recognizer) string {
	for _, r := range recs {
		if v := r.apply(text); v != "" {
			return v
		}
	}
	return ""
}

// surveyBlockRe locates the survey/permit section of a completion report;
// API numbers found there are preferred over matches elsewhere, which are
// often commingling or neighboring-well references.
var surveyBlockRe = regexp.MustCompile(`(?i)(?:Directional\s+Survey|Survey\s+(?:Report|Certification)|Well\s+Completion|APPLICATION\s+FOR\s+PERMIT)[^\n]*(?:.*\n){0,20}`)

func joinAPI(m []string) string {
	return m[1] + "-" + m[2] + "-" + m[3]
}

var apiRecognizers = []recognizer{
	{re: regexp.MustCompile(`(?i)API\s*[#:\s]*(\d{2})-(\d{3})-(\d{5})(?:-\d{2}-\d{2})?`), extract: joinAPI},
	{re: regexp.MustCompile(`(?i)API\s*[:#]?\s*(\d{2})\s*-\s*(\d{3})\s*-\s*(\d{5})`), extract: joinAPI},
	{re: regexp.MustCompile(`(?i)API\s*[:#]?\s*(\d{2})\s*-?\s*(\d{3})\s*-?\s*(\d{5})\b`), extract: joinAPI},
	{re: regexp.MustCompile(`(?i)API\s+(?:No\.?|Number|JOB\s*#?)\s*[:\s]*(\d{2})\s+(\d{3})\s+(\d{5})\b`), extract: joinAPI},
	{re: regexp.MustCompile(`(?i)API\s*[:#]?\s*(\d{10,11})\b`), extract: func(m []string) string {
		raw := m[1]
		switch {
		case len(raw) == 10:
			return raw[:2] + "-" + raw[2:5] + "-" + raw[5:]
		case len(raw) == 11 && strings.HasPrefix(raw, "33"):
			// ND state code with a doubled digit: drop the third.
			return "33-" + raw[3:6] + "-" + raw[6:]
		default:
			return raw[:2] + "-" + raw[2:5] + "-" + raw[5:10]
		}
	}},
	{re: regexp.MustCompile(`\b(33)\s+(\d{3})\s+(\d{5})\b`), extract: joinAPI},
	{re: regexp.MustCompile(`(\d{2})-(\d{3})-(\d{5})\b`), extract: joinAPI},
}

// ExtractAPI finds the API well number, searching the survey/permit block
// before the full document.
func ExtractAPI(text string) string {
	regions := []string{}
	if block := surveyBlockRe.FindString(text); block != "" {
		regions = append(regions, block)
	}
	regions = append(regions, text)

	for _, region := range regions {
		// Within a region the recognizer order, not position, decides.
		for _, r := range apiRecognizers[:5] {
			if v := r.apply(region); v != "" {
				return v
			}
		}
	}
	for _, r := range apiRecognizers[5:] {
		if v := r.apply(text); v != "" {
			return v
		}
	}
	return ""
}

var wellFileFilenameRe = regexp.MustCompile(`(?i)^W(\d+)\.pdf$`)

// WellFileFromFilename recovers the well file number from a W<digits>.pdf
// source filename.
func WellFileFromFilename(name string) string {
	m := wellFileFilenameRe.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1]
}

var wellFileRecognizers = []recognizer{
	{re: regexp.MustCompile(`(?i)Well\s*File\s*(?:#|Number)?[:\s]*(\d{4,6})`)},
	{re: regexp.MustCompile(`(?i)File\s*#\s*(\d{4,6})`)},
}

// wellNameRejectRe matches bare compass strings that the name patterns
// sometimes capture off the spot-description line.
var (
	wellNameRejectRe    = regexp.MustCompile(`^[nsew]{2,6}$`)
	wellNameTruncatedRe = regexp.MustCompile(`\d\s*[-\x{2010}\x{2013}\x{2014}]\s*$`)
)

func rejectedWellName(name string) bool {
	if len(name) < 4 || len(name) >= 200 {
		return true
	}
	if wellNameTruncatedRe.MatchString(name) {
		return true
	}
	return wellNameRejectRe.MatchString(spaceRe.ReplaceAllString(strings.ToLower(name), ""))
}

var wellNameRecognizers = []recognizer{
	{re: regexp.MustCompile(`(?i)Well\s+Name\s+&?\s*No\.?\s*[:\s]+([A-Za-z][A-Za-z0-9\s\-\.&]+?)(?:\n|$)`)},
	{re: regexp.MustCompile(`(?i)Well\s+Name\s+(?:and|an[·.]?d)\s+Number[^\n]*\n([^\n]+)`), extract: func(m []string) string {
		return trimWellNameLine(m[1])
	}},
	{re: regexp.MustCompile(`(?i)Well\s+Name\s*:\s*([A-Za-z][A-Za-z0-9\s\-\.&']+?)(?:\s*API\s*#?|\n|$)`)},
}

// wellNameCutRe trims legal-description and county tails off a name line.
var wellNameCutRe = regexp.MustCompile(`(?i)\s+(?:Before\b|After\b|Sec\.?\s*\d|Spacing\b|T\d{3}N|[SN][EW][SN][EW]\b|LOT\d?\b|All\s+of\s+Sect|McKenzie\s*$|Williams\s*$|Mountrail\s*$|Dunn\s*$|Stark\s*$|~).*$`)

func trimWellNameLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "(") {
		return ""
	}
	return strings.TrimSpace(wellNameCutRe.ReplaceAllString(line, ""))
}

// ocrNameFixes repairs recurring OCR misreads seen across the corpus.
var ocrNameFixes = strings.NewReplacer(
	"Federa1", "Federal",
	"Cc lumbus", "Columbus",
	"Chalmes", "Chalmers",
	"lnnoko", "Innoko",
	"Gramma", "Gamma",
)

// ExtractWellName finds the well name, preferring the same-line label over
// next-line captures, which truncate more often.
func ExtractWellName(text string) string {
	for _, r := range wellNameRecognizers {
		name := r.apply(text)
		if name == "" {
			continue
		}
		name = ocrNameFixes.Replace(name)
		if !rejectedWellName(name) {
			return name
		}
	}
	return ""
}

// nonCountyWords are form labels that sit where a county name would.
var nonCountyWords = map[string]struct{}{
	"range": {}, "township": {}, "section": {}, "field": {}, "pool": {},
	"state": {}, "code": {}, "address": {}, "city": {}, "baker": {}, "bakken": {}, "forks": {},
}

func plausibleCounty(name string) bool {
	if len(name) <= 2 || len(name) >= 50 {
		return false
	}
	if !regexp.MustCompile(`^[A-Za-z]+(?:\s+[A-Za-z]+)?$`).MatchString(name) {
		return false
	}
	_, bad := nonCountyWords[strings.ToLower(name)]
	return !bad
}

var countyRecognizers = []recognizer{
	{re: regexp.MustCompile(`([A-Z][a-zA-Z]+)[ \t]+County,?\s+(?:North\s+Dakota|ND|N\.\s*Dakota)\b`)},
	{re: regexp.MustCompile(`(?i)\bCounty\s*[,:]?\s*\n\s*([A-Za-z]{3,}(?:\s+[A-Za-z]{3,})?)\s*(?:\n|$)`)},
	{re: regexp.MustCompile(`County\s*[,:]\s*([A-Z][a-zA-Z]+)`)},
	{re: regexp.MustCompile(`\b([A-Z][a-zA-Z]{2,})[ \t]+County\b`)},
}

// ExtractCounty finds the county, filtering out form labels that the layout
// places where the value belongs.
func ExtractCounty(text string) string {
	for _, r := range countyRecognizers {
		if v := r.apply(text); v != "" && plausibleCounty(v) {
			return v
		}
	}
	return ""
}

// poolLineRe captures pool names so the field extractor can exclude them:
// a pool is not a field even when the form runs them together.
var poolLineRe = regexp.MustCompile(`(?i)\bPool\s*\n([^\n]+)`)

var fieldBadWords = map[string]struct{}{
	"county": {}, "pool": {}, "field": {}, "address": {}, "city": {},
	"state": {}, "name": {}, "range": {}, "township": {}, "section": {},
	"wildcat": {}, "development": {}, "extension": {},
}

var fieldRecognizers = []recognizer{
	{re: regexp.MustCompile(`(?i)Field\s+(?:I\s+)?(?:Pool|Name)[^\n]*County[^\n]*\n\s*([^\n]+)`)},
	{re: regexp.MustCompile(`(?i)\bField\s*\n([^\n]+)\n\s*Pool\b`)},
	{re: regexp.MustCompile(`(?i)\bField\s*:\s*([A-Za-z]{3,})`)},
	{re: regexp.MustCompile(`Field\s+Name\s*:\s*([A-Z][A-Za-z\s]{2,30})`)},
}

// ExtractField finds the field (producing area) name, excluding pool and
// county words captured off adjacent form cells.
func ExtractField(text string) string {
	pools := map[string]struct{}{}
	for _, pm := range poolLineRe.FindAllStringSubmatch(text, -1) {
		for _, w := range strings.Fields(pm[1]) {
			if len(w) >= 3 {
				pools[strings.ToLower(w)] = struct{}{}
			}
		}
	}

	valid := func(w string) bool {
		if len(w) < 3 || !regexp.MustCompile(`^[A-Za-z]+$`).MatchString(w) {
			return false
		}
		lw := strings.ToLower(w)
		if _, bad := fieldBadWords[lw]; bad {
			return false
		}
		_, pool := pools[lw]
		return !pool
	}

	for _, r := range fieldRecognizers {
		line := r.apply(text)
		if line == "" {
			continue
		}
		for _, w := range strings.Fields(line) {
			if valid(w) {
				return w
			}
		}
	}
	return ""
}

// operatorJunkRe strips trailing checkbox labels off an operator capture.
var operatorJunkRe = regexp.MustCompile(`(?i)\s+(?:TIGHT|YES|NO\b|HOLE|CONFIDENTIAL|Company\s+man|Well[\-\s]*site|Geologist).*$`)

func cleanOperator(cand string) string {
	cand = strings.TrimRight(strings.TrimSpace(operatorJunkRe.ReplaceAllString(collapseSpace(cand), "")), ":")
	lower := strings.ToLower(cand)
	for _, skip := range []string{"address", "company man", "well-site", "wellsite", "geologist"} {
		if strings.HasPrefix(lower, skip) {
			return ""
		}
	}
	if len(cand) < 2 || len(cand) > 120 || !regexp.MustCompile(`^[A-Za-z]`).MatchString(cand) {
		return ""
	}
	return cand
}

var operatorRecognizers = []recognizer{
	{re: regexp.MustCompile(`(?i)Operator\s*:\s*([A-Za-z][A-Za-z0-9\s\-\.&,'()]+?)(?:\s+Well\s+Name|\n)`)},
	{re: regexp.MustCompile(`(?i)(?:^|\n)\s*Operator\b[\s:]+([A-Za-z][A-Za-z0-9\s\-\.&,']+?)\s+\(?\d{3}[\-\s)]`)},
	{re: regexp.MustCompile(`(?i)Company\s*\n\s*([A-Za-z][A-Za-z0-9\s\-\.&,']+?)\s*\n`)},
}

// ExtractOperator finds the operator name, same-line label first, then the
// phone-number line, then the Company block.
func ExtractOperator(text string) string {
	for _, r := range operatorRecognizers {
		if v := cleanOperator(r.apply(text)); v != "" {
			return v
		}
	}
	return ""
}

var (
	permitNumberRecognizers = []recognizer{
		{re: regexp.MustCompile(`(?i)Permit\s*(?:#|Number)?[:\s]*(\d[\d\-A-Za-z]*)`)},
	}
	permitDateRecognizers = []recognizer{
		{re: regexp.MustCompile(`(?i)Permit\s*Date[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)},
		{re: regexp.MustCompile(`(?i)Date\s+of\s+Permit[:\s]*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)},
	}
	totalDepthRecognizers = []recognizer{
		{re: regexp.MustCompile(`(?i)Total\s+Depth\s+Drilled\s*[:\s]\s*(\d[\d,]*\.?\d*)\s*['\x{2032}]`), extract: func(m []string) string { return strings.ReplaceAll(m[1], ",", "") + " ft" }},
		{re: regexp.MustCompile(`(?i)Total\s+(?:Well\s+)?Depth[^\d]*(\d[\d,]*\.?\d*)\s*(?:ft|feet)?`), extract: func(m []string) string { return strings.ReplaceAll(m[1], ",", "") + " ft" }},
	}
)

// formationStopRe rejects captures that ran into legal boilerplate.
var formationStopRe = regexp.MustCompile(`(?i)\b(Director|contact|undersigned|required|please|would allow|information|the contract)\b`)

var formationRecognizers = []recognizer{
	{re: regexp.MustCompile(`(?i)\bFormation\s*[:\s]*([A-Za-z0-9\s\-\.]+?)(?:\n|$|\s{2,})`)},
}

func extractFormation(text string) string {
	v := firstMatch(text, formationRecognizers)
	if v == "" || formationStopRe.MatchString(v) {
		return ""
	}
	return v
}

// Fields runs every well-attribute recognizer list over the document text and
// returns canonical field name to extracted string. Unmatched fields are
// absent from the map; absence is resolved to the missing sentinel by the
// assembler, never treated as an error.
func Fields(text string) map[string]string {
	out := map[string]string{}
	put := func(key, val string) {
		if val != "" {
			out[key] = val
		}
	}

	put("api_number", ExtractAPI(text))
	put("well_file_no", firstMatch(text, wellFileRecognizers))
	put("well_name", ExtractWellName(text))
	put("address", ExtractAddress(text))
	put("county", ExtractCounty(text))
	put("field", ExtractField(text))
	put("operator", ExtractOperator(text))
	put("permit_number", firstMatch(text, permitNumberRecognizers))
	put("permit_date", firstMatch(text, permitDateRecognizers))
	put("total_depth", firstMatch(text, totalDepthRecognizers))
	put("formation", extractFormation(text))
	return out
}
