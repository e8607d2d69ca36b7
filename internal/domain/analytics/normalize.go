package analytics

// Scale declares the closed bounds of an ordinal rating field.
type Scale struct {
	Min float64
	Max float64
}

// All ratings are compared on the [1,10] axis regardless of native scale.
const (
	TargetMin = 1.0
	TargetMax = 10.0
)

// ratingScales maps each rating field to its native bounds. Most fields use
// a 5-point scale; punctuality is recorded on a 3-point scale.
var ratingScales = map[string]Scale{
	FieldReception:     {Min: 1, Max: 5},
	FieldTreatment:     {Min: 1, Max: 5},
	FieldFacility:      {Min: 1, Max: 5},
	FieldCommunication: {Min: 1, Max: 5},
	FieldPunctuality:   {Min: 1, Max: 3},
}

// RatingScale returns the declared bounds for a rating field.
func RatingScale(field string) (Scale, bool) {
	s, ok := ratingScales[field]
	return s, ok
}

// Normalize maps a raw rating onto the [TargetMin, TargetMax] axis with an
// affine map. Upstream storage constraints should already guarantee range,
// but out-of-range input is clamped rather than rejected. A degenerate
// scale (Min == Max) maps to TargetMin.
func Normalize(value float64, s Scale) float64 {
	if s.Max <= s.Min {
		return TargetMin
	}
	if value < s.Min {
		value = s.Min
	}
	if value > s.Max {
		value = s.Max
	}
	return (value-s.Min)/(s.Max-s.Min)*(TargetMax-TargetMin) + TargetMin
}
