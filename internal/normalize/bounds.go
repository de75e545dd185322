package normalize

import (
	"strconv"

	"github.com/twpayne/go-geom"

	"github.com/ndwells/wellbook/internal/model"
)

// ndBounds is the North Dakota bounding box in lon/lat order.
var ndBounds = geom.NewBounds(geom.XY).Set(model.LonMin, model.LatMin, model.LonMax, model.LatMax)

// ValidateCoordinates checks a coordinate pair against the state bounding
// box. Out-of-bounds values are flagged, never clamped or discarded; a
// half-missing pair is flagged as well.
func ValidateCoordinates(lat, lon *float64) []model.Finding {
	if lat == nil && lon == nil {
		return nil
	}

	var findings []model.Finding
	if lat == nil || lon == nil {
		return append(findings, model.Finding{
			Field:  "latitude",
			Reason: "coordinate pair incomplete",
		})
	}

	if !ndBounds.OverlapsPoint(geom.XY, geom.Coord{*lon, *lat}) {
		findings = append(findings, model.Finding{
			Field:  "latitude",
			Value:  strconv.FormatFloat(*lat, 'f', -1, 64) + "," + strconv.FormatFloat(*lon, 'f', -1, 64),
			Reason: "coordinates outside North Dakota bounds",
		})
	}
	return findings
}
