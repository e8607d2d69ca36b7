package analytics

import "math"

// Band is the classification of a single respondent's 0-10 recommendation
// score.
type Band string

const (
	BandPromoter  Band = "promoter"
	BandPassive   Band = "passive"
	BandDetractor Band = "detractor"
)

// Classify assigns a recommendation score to exactly one band:
// detractor for 0-6, passive for 7-8, promoter for 9-10.
func Classify(score int) Band {
	switch {
	case score >= 9:
		return BandPromoter
	case score >= 7:
		return BandPassive
	default:
		return BandDetractor
	}
}

// ComputeNPS returns the Net Promoter Score for a set of recommendation
// scores: (%promoters - %detractors) scaled to [-100, 100]. The empty set
// scores 0. Results are rounded half away from zero, since NPS is reported
// as a whole number and the rounding rule shifts edge results.
func ComputeNPS(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	var promoters, detractors int
	for _, s := range scores {
		switch Classify(s) {
		case BandPromoter:
			promoters++
		case BandDetractor:
			detractors++
		}
	}
	return int(math.Round(float64(promoters-detractors) / float64(len(scores)) * 100))
}

// ParseBand validates a band name from a query parameter. Returns "" for
// unknown values.
func ParseBand(s string) Band {
	switch Band(s) {
	case BandPromoter, BandPassive, BandDetractor:
		return Band(s)
	}
	return ""
}
