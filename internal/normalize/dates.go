package normalize

import (
	"regexp"
	"time"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ocrDateSepRe matches the apostrophe/prime glyphs OCR substitutes for
// slashes in handwritten dates.
var ocrDateSepRe = regexp.MustCompile("['’′″“´`]")

// dateLayouts are tried in order after the ISO fast path.
var dateLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"1-2-06",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006/01/02",
}

// CanonicalDate parses any recognized date representation and returns it as
// YYYY-MM-DD. The boolean is false when no layout matches; callers keep the
// original value and record a finding instead of discarding it.
func CanonicalDate(s string) (string, bool) {
	if isoDateRe.MatchString(s) {
		return s, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	// OCR variants: 7'1'2009 and friends.
	if cleaned := ocrDateSepRe.ReplaceAllString(s, "/"); cleaned != s {
		for _, layout := range []string{"1/2/2006", "1/2/06"} {
			if t, err := time.Parse(layout, cleaned); err == nil {
				return t.Format("2006-01-02"), true
			}
		}
	}

	return s, false
}
