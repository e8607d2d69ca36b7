package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/clinicpulse/api/internal/domain/response"
)

// Filter holds the dashboard's predicates. Zero values mean "no filter":
// an empty search string, empty band/treatment type, nil date bounds and a
// nil HasComments all pass every record, so a "custom" date range with both
// bounds absent is a no-op rather than rejecting everything.
type Filter struct {
	Search        string
	Band          Band
	TreatmentType string
	HasComments   *bool
	From          *time.Time
	To            *time.Time
}

// Matches reports whether a single response passes every predicate.
// Predicates compose conjunctively.
func (f Filter) Matches(r *response.SurveyResponse) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		comment := ""
		if r.AdditionalComments != nil {
			comment = strings.ToLower(*r.AdditionalComments)
		}
		if !strings.Contains(comment, needle) &&
			!strings.Contains(strings.ToLower(r.ID.String()), needle) {
			return false
		}
	}
	if f.Band != "" && Classify(r.NPSScore) != f.Band {
		return false
	}
	if f.TreatmentType != "" && r.TreatmentType != f.TreatmentType {
		return false
	}
	if f.HasComments != nil && r.HasComments() != *f.HasComments {
		return false
	}
	if f.From != nil && r.SubmittedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && r.SubmittedAt.After(*f.To) {
		return false
	}
	return true
}

// SortKey orders the filtered collection.
type SortKey string

const (
	SortNewest           SortKey = "newest"
	SortOldest           SortKey = "oldest"
	SortNPSAsc           SortKey = "nps-asc"
	SortNPSDesc          SortKey = "nps-desc"
	SortSatisfactionAsc  SortKey = "satisfaction-asc"
	SortSatisfactionDesc SortKey = "satisfaction-desc"
)

// ParseSortKey validates a sort key from a query parameter, defaulting to
// newest-first.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortOldest, SortNPSAsc, SortNPSDesc, SortSatisfactionAsc, SortSatisfactionDesc:
		return SortKey(s)
	}
	return SortNewest
}

// Apply filters and orders a snapshot. It always evaluates every predicate
// against the full source collection, never against a previously filtered
// subset, so changing one filter cannot leave stale results. The input
// slice is not modified; ties keep the snapshot's order (stable sort).
func Apply(rs []*response.SurveyResponse, f Filter, key SortKey) []*response.SurveyResponse {
	out := make([]*response.SurveyResponse, 0, len(rs))
	for _, r := range rs {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, less(out, key))
	return out
}

func less(rs []*response.SurveyResponse, key SortKey) func(i, j int) bool {
	switch key {
	case SortOldest:
		return func(i, j int) bool { return rs[i].SubmittedAt.Before(rs[j].SubmittedAt) }
	case SortNPSAsc:
		return func(i, j int) bool { return rs[i].NPSScore < rs[j].NPSScore }
	case SortNPSDesc:
		return func(i, j int) bool { return rs[i].NPSScore > rs[j].NPSScore }
	case SortSatisfactionAsc:
		return func(i, j int) bool { return CompositeSatisfaction(rs[i]) < CompositeSatisfaction(rs[j]) }
	case SortSatisfactionDesc:
		return func(i, j int) bool { return CompositeSatisfaction(rs[i]) > CompositeSatisfaction(rs[j]) }
	default: // SortNewest
		return func(i, j int) bool { return rs[i].SubmittedAt.After(rs[j].SubmittedAt) }
	}
}
