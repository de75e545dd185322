package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ndwells/wellbook/internal/model"
)

// dmsGlyphs unifies the degree/minute/second symbol variants OCR produces so
// one pattern set can match all of them.
var dmsGlyphs = strings.NewReplacer(
	"º", "°", "˚", "°", "·", "°", "˙", "°",
	"′", "'", "’", "'", "ʼ", "'", "ʹ", "'", "`", "'", "´", "'",
	"″", `"`, "”", `"`, "ʺ", `"`,
	"~", "",
)

// dmsToDecimal converts split degree/minute/second captures to decimal
// degrees. Minutes or seconds of 60 or more mean a misread, not a value.
func dmsToDecimal(deg, min, sec string) (float64, bool) {
	d, err1 := strconv.ParseFloat(deg, 64)
	m, err2 := strconv.ParseFloat(min, 64)
	s, err3 := strconv.ParseFloat(sec, 64)
	if err1 != nil || err2 != nil || err3 != nil || m >= 60 || s >= 60 {
		return 0, false
	}
	dec := math.Abs(d) + m/60 + s/3600
	return math.Round(dec*1e6) / 1e6, true
}

var latDMSRecognizers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Well\s+Coordinates[^(]*\(\s*(\d+)\s*\x{b0}\s*(\d+)\s*'?\s*([\d.]+)\s*"?\s*N\s*[,)]`),
	regexp.MustCompile(`(?i)Latitude\s+of\s+Well\s+Head[^\d]*(\d+)\s*\x{b0}\s*(\d+)\s*'?\s*([\d.]+)\s*"?`),
	regexp.MustCompile(`(?i)Lat(?:itude|ittude)?\s*[:\s]\s*(\d{2})\s*\x{b0}\s*(\d{1,2})\s*'?\s*([\d.]+)\s*"?\s*N`),
	regexp.MustCompile(`(?i)(\d{2})\s*\x{b0}\s*(\d{1,2})\s*'\s*([\d.]+)\s*"?\s*N\b`),
}

var latDecimalRecognizers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Survey\s+)?Lat(?:itude|ittude)?\s*[:\s]\s*(\d{2}\.\d{2,6})`),
	regexp.MustCompile(`(?i)\bLat(?:itude|ittude)?\b[^\d\n]{0,20}(\d{2}\.\d{2,6})`),
}

var lonDMSRecognizers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Well\s+Coordinates[^)]*N\s*[,)]\s*(\d+)\s*\x{b0}\s*(\d+)\s*'?\s*([\d.]+)\s*"?\s*W`),
	regexp.MustCompile(`(?i)Longitude\s+of\s+Well\s+Head[^\d]*(-?\d+)\s*\x{b0}\s*(\d+)\s*'?\s*([\d.]+)\s*"?\s*W?`),
	regexp.MustCompile(`(?i)Long(?:itude)?\s*[:\s]\s*(\d{2,3})\s*\x{b0}\s*(\d{1,2})\s*'?\s*([\d.]+)\s*"?\s*W`),
	regexp.MustCompile(`(?i)(\d{2,3})\s*\x{b0}\s*(\d{1,2})\s*'\s*([\d.]+)\s*"?\s*W\b`),
}

var lonDecimalRecognizers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Survey\s+)?\bLong(?:itude)?\b\s*[:\s]\s*(-?\d{2,3}\.\d{2,6})`),
	regexp.MustCompile(`(?i)\bLong(?:itude)?\b[^\d\n]{0,20}(-?\d{2,3}\.\d{2,6})`),
}

func ndLatOK(v float64) bool { return v >= model.LatMin-0.1 && v <= model.LatMax+0.1 }
func ndLonOK(v float64) bool {
	a := math.Abs(v)
	return a >= math.Abs(model.LonMax)-0.1 && a <= math.Abs(model.LonMin)+0.1
}

// ExtractLatitude collects every latitude candidate (DMS patterns first,
// then labeled decimals) and prefers the first one plausible for North
// Dakota; with no plausible candidate the first match is kept and left for
// bounds validation to flag.
func ExtractLatitude(text string) (float64, bool) {
	norm := dmsGlyphs.Replace(text)
	var candidates []float64

	for _, re := range latDMSRecognizers {
		if m := re.FindStringSubmatch(norm); m != nil {
			if v, ok := dmsToDecimal(m[1], m[2], m[3]); ok && v <= 90 {
				candidates = append(candidates, v)
			}
		}
	}
	for _, re := range latDecimalRecognizers {
		for _, m := range re.FindAllStringSubmatch(norm, -1) {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && v >= -90 && v <= 90 {
				candidates = append(candidates, round6(v))
			}
		}
	}

	return pickCandidate(candidates, ndLatOK)
}

// ExtractLongitude mirrors ExtractLatitude; positive captures are negated,
// all wells here sit in the western hemisphere.
func ExtractLongitude(text string) (float64, bool) {
	norm := dmsGlyphs.Replace(text)
	var candidates []float64

	for _, re := range lonDMSRecognizers {
		if m := re.FindStringSubmatch(norm); m != nil {
			deg := strings.TrimPrefix(m[1], "-")
			if v, ok := dmsToDecimal(deg, m[2], m[3]); ok && v <= 180 {
				candidates = append(candidates, -v)
			}
		}
	}
	for _, re := range lonDecimalRecognizers {
		for _, m := range re.FindAllStringSubmatch(norm, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil || v < -180 || v > 180 {
				continue
			}
			if v > 0 {
				v = -v
			}
			candidates = append(candidates, round6(v))
		}
	}

	return pickCandidate(candidates, ndLonOK)
}

func pickCandidate(candidates []float64, plausible func(float64) bool) (float64, bool) {
	for _, v := range candidates {
		if plausible(v) {
			return v, true
		}
	}
	if len(candidates) > 0 {
		return candidates[0], true
	}
	return 0, false
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
