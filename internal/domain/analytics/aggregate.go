package analytics

import (
	"sort"

	"github.com/clinicpulse/api/internal/domain/response"
)

// Rating field names, used as keys into ratingScales and in API payloads.
const (
	FieldReception     = "reception"
	FieldTreatment     = "treatment"
	FieldFacility      = "facility"
	FieldCommunication = "communication"
	FieldPunctuality   = "punctuality"
)

// ratingFields fixes the field order for API payloads.
var ratingFields = []string{
	FieldReception,
	FieldTreatment,
	FieldFacility,
	FieldCommunication,
	FieldPunctuality,
}

func ratingValue(r *response.SurveyResponse, field string) int {
	switch field {
	case FieldReception:
		return r.ReceptionRating
	case FieldTreatment:
		return r.TreatmentRating
	case FieldFacility:
		return r.FacilityRating
	case FieldCommunication:
		return r.CommunicationRating
	case FieldPunctuality:
		return r.PunctualityRating
	}
	return 0
}

// FieldAverage is the arithmetic mean of one rating field. Avg is nil when
// no valid values were observed, so "no data" stays distinguishable from an
// average of zero.
type FieldAverage struct {
	Field string   `json:"field"`
	Avg   *float64 `json:"avg"`
	Count int      `json:"count"`
}

// FieldAverages computes the per-field mean over the collection. A rating
// outside its declared bounds (including the zero value of a malformed
// record) is excluded from that field's denominator only; it never poisons
// the other fields.
func FieldAverages(rs []*response.SurveyResponse) []FieldAverage {
	out := make([]FieldAverage, 0, len(ratingFields))
	for _, field := range ratingFields {
		scale := ratingScales[field]
		var sum float64
		var n int
		for _, r := range rs {
			v := ratingValue(r, field)
			if float64(v) < scale.Min || float64(v) > scale.Max {
				continue
			}
			sum += float64(v)
			n++
		}
		fa := FieldAverage{Field: field, Count: n}
		if n > 0 {
			avg := sum / float64(n)
			fa.Avg = &avg
		}
		out = append(out, fa)
	}
	return out
}

// CompositeSatisfaction is the mean of a response's normalized ratings on
// the [1,10] axis, so fields on different native scales carry equal weight.
// Malformed fields are skipped; a response with no valid rating scores 0.
func CompositeSatisfaction(r *response.SurveyResponse) float64 {
	var sum float64
	var n int
	for _, field := range ratingFields {
		scale := ratingScales[field]
		v := ratingValue(r, field)
		if float64(v) < scale.Min || float64(v) > scale.Max {
			continue
		}
		sum += Normalize(float64(v), scale)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CompositeAverage is the collection-wide mean of CompositeSatisfaction.
// Nil for the empty collection.
func CompositeAverage(rs []*response.SurveyResponse) *float64 {
	if len(rs) == 0 {
		return nil
	}
	var sum float64
	for _, r := range rs {
		sum += CompositeSatisfaction(r)
	}
	avg := sum / float64(len(rs))
	return &avg
}

// TrendPoint is one observed calendar month of the NPS trend.
type TrendPoint struct {
	Month string `json:"month"` // locale-independent year-month key, e.g. "2025-06"
	NPS   int    `json:"nps"`
	Count int    `json:"count"`
}

// MonthlyTrend groups responses by the UTC calendar month of submission and
// computes NPS per group. Points are sorted in ascending chronological
// order; months with zero responses are not synthesized.
func MonthlyTrend(rs []*response.SurveyResponse) []TrendPoint {
	byMonth := map[string][]int{}
	for _, r := range rs {
		key := r.SubmittedAt.UTC().Format("2006-01")
		byMonth[key] = append(byMonth[key], r.NPSScore)
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	out := make([]TrendPoint, 0, len(months))
	for _, m := range months {
		scores := byMonth[m]
		out = append(out, TrendPoint{Month: m, NPS: ComputeNPS(scores), Count: len(scores)})
	}
	return out
}

// SourceCount is one referral source's share of the responses that named a
// source.
type SourceCount struct {
	Source  string  `json:"source"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ReferralBreakdown counts responses per "how did you know us" category,
// ignoring responses that left it blank, and computes each group's share of
// the non-blank total. Sorted by count descending, source name ascending on
// ties.
func ReferralBreakdown(rs []*response.SurveyResponse) []SourceCount {
	counts := map[string]int{}
	total := 0
	for _, r := range rs {
		src := r.ReferralSource()
		if src == "" {
			continue
		}
		counts[src]++
		total++
	}
	out := make([]SourceCount, 0, len(counts))
	for src, n := range counts {
		sc := SourceCount{Source: src, Label: response.ReferralSourceLabels[src], Count: n}
		if sc.Label == "" {
			sc.Label = src
		}
		if total > 0 {
			sc.Percent = float64(n) / float64(total) * 100
		}
		out = append(out, sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Source < out[j].Source
	})
	return out
}
