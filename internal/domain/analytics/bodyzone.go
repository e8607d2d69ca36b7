package analytics

import (
	"sort"

	"github.com/clinicpulse/api/internal/domain/response"
)

// Tier buckets a zone's raw treatment count for presentation coloring.
type Tier string

const (
	TierNone     Tier = "none"
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierVeryHigh Tier = "very-high"
)

// Tier thresholds are configuration constants, not derived from the data
// distribution: 0 / 1-2 / 3-5 / 6-10 / >10.
const (
	tierLowMax    = 2
	tierMediumMax = 5
	tierHighMax   = 10
)

// TierFor maps a raw frequency count to its intensity tier.
func TierFor(count int) Tier {
	switch {
	case count <= 0:
		return TierNone
	case count <= tierLowMax:
		return TierLow
	case count <= tierMediumMax:
		return TierMedium
	case count <= tierHighMax:
		return TierHigh
	default:
		return TierVeryHigh
	}
}

// ZoneCount is one anatomical zone's treatment frequency.
type ZoneCount struct {
	Zone    string  `json:"zone"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
	Tier    Tier    `json:"tier"`
}

// BodyZoneFrequency tallies treatments per anatomical zone. A response with
// the "other" sentinel is tallied under its free-text zone, not under a
// generic "other" bucket. Sorted by count descending, zone name ascending
// on ties.
func BodyZoneFrequency(rs []*response.SurveyResponse) []ZoneCount {
	counts := map[string]int{}
	for _, r := range rs {
		zone := r.EffectiveBodyArea()
		if zone == "" {
			continue
		}
		counts[zone]++
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	out := make([]ZoneCount, 0, len(counts))
	for zone, n := range counts {
		zc := ZoneCount{Zone: zone, Count: n, Tier: TierFor(n)}
		if total > 0 {
			zc.Percent = float64(n) / float64(total) * 100
		}
		out = append(out, zc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Zone < out[j].Zone
	})
	return out
}
