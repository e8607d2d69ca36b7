package analytics

import (
	"testing"
	"time"

	"github.com/clinicpulse/api/internal/domain/response"
)

func TestFilter_EmptyMatchesEverything(t *testing.T) {
	r := makeResp(4, 2, 8, time.Now())
	if !(Filter{}).Matches(r) {
		t.Error("zero-value filter should match every response")
	}
}

func TestFilter_SearchMatchesCommentAndID(t *testing.T) {
	r := makeResp(4, 2, 8, time.Now())
	r.AdditionalComments = strPtr("The STAFF was lovely")

	if !(Filter{Search: "staff"}).Matches(r) {
		t.Error("expected case-insensitive comment match")
	}
	if !(Filter{Search: r.ID.String()[:8]}).Matches(r) {
		t.Error("expected ID prefix match")
	}
	if (Filter{Search: "nonexistent"}).Matches(r) {
		t.Error("expected no match for unrelated term")
	}
}

func TestFilter_Band(t *testing.T) {
	promoter := makeResp(4, 2, 9, time.Now())
	detractor := makeResp(4, 2, 3, time.Now())

	f := Filter{Band: BandPromoter}
	if !f.Matches(promoter) {
		t.Error("expected promoter to match")
	}
	if f.Matches(detractor) {
		t.Error("expected detractor not to match")
	}
}

func TestFilter_DateBoundsInclusive(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	r := makeResp(4, 2, 8, at)

	f := Filter{From: &at, To: &at}
	if !f.Matches(r) {
		t.Error("expected bounds to be inclusive")
	}

	before := at.Add(-time.Second)
	f = Filter{To: &before}
	if f.Matches(r) {
		t.Error("expected response after To not to match")
	}
}

func TestFilter_Conjunctive(t *testing.T) {
	r := makeResp(4, 2, 9, time.Now())
	r.AdditionalComments = strPtr("great")

	yes := true
	f := Filter{Band: BandPromoter, HasComments: &yes, TreatmentType: "physiotherapy"}
	if !f.Matches(r) {
		t.Error("expected all predicates to pass")
	}

	f.TreatmentType = "massage"
	if f.Matches(r) {
		t.Error("one failing predicate must reject the response")
	}
}

func TestApply_FiltersFromFullCollection(t *testing.T) {
	now := time.Now()
	promoter := makeResp(4, 2, 9, now)
	detractor := makeResp(4, 2, 2, now.Add(-time.Hour))
	rs := []*response.SurveyResponse{promoter, detractor}

	// Narrow to promoters, then switch the filter: the detractor hidden by
	// the first filter must come back, proving evaluation always starts from
	// the full snapshot.
	first := Apply(rs, Filter{Band: BandPromoter}, SortNewest)
	if len(first) != 1 || first[0] != promoter {
		t.Fatalf("expected only the promoter, got %d rows", len(first))
	}

	second := Apply(rs, Filter{Band: BandDetractor}, SortNewest)
	if len(second) != 1 || second[0] != detractor {
		t.Fatalf("expected only the detractor, got %d rows", len(second))
	}
}

func TestApply_PredicateOrderIndependent(t *testing.T) {
	now := time.Now()
	var rs []*response.SurveyResponse
	for i, nps := range []int{9, 9, 3, 8, 10} {
		r := makeResp(4, 2, nps, now.Add(time.Duration(i)*time.Minute))
		if i%2 == 0 {
			r.AdditionalComments = strPtr("note")
		}
		rs = append(rs, r)
	}

	yes := true
	band := Filter{Band: BandPromoter}
	comments := Filter{HasComments: &yes}

	// Narrowing by one predicate then the other gives the same set either
	// way round.
	ab := Apply(Apply(rs, band, SortNewest), comments, SortNewest)
	ba := Apply(Apply(rs, comments, SortNewest), band, SortNewest)
	if len(ab) != len(ba) {
		t.Fatalf("order-dependent result: %d vs %d rows", len(ab), len(ba))
	}
	seen := map[string]bool{}
	for _, r := range ab {
		seen[r.ID.String()] = true
	}
	for _, r := range ba {
		if !seen[r.ID.String()] {
			t.Errorf("row %s missing from the other ordering", r.ID)
		}
	}
}

func TestApply_DoesNotModifyInput(t *testing.T) {
	now := time.Now()
	a := makeResp(4, 2, 1, now.Add(-2*time.Hour))
	b := makeResp(4, 2, 9, now)
	rs := []*response.SurveyResponse{a, b}

	Apply(rs, Filter{}, SortNPSDesc)
	if rs[0] != a || rs[1] != b {
		t.Error("input slice order must not change")
	}
}

func TestApply_SortKeys(t *testing.T) {
	now := time.Now()
	old := makeResp(2, 1, 3, now.Add(-time.Hour))
	recent := makeResp(5, 3, 9, now)
	rs := []*response.SurveyResponse{old, recent}

	if got := Apply(rs, Filter{}, SortNewest); got[0] != recent {
		t.Error("newest: expected most recent first")
	}
	if got := Apply(rs, Filter{}, SortOldest); got[0] != old {
		t.Error("oldest: expected least recent first")
	}
	if got := Apply(rs, Filter{}, SortNPSAsc); got[0] != old {
		t.Error("nps-asc: expected lowest score first")
	}
	if got := Apply(rs, Filter{}, SortNPSDesc); got[0] != recent {
		t.Error("nps-desc: expected highest score first")
	}
	if got := Apply(rs, Filter{}, SortSatisfactionAsc); got[0] != old {
		t.Error("satisfaction-asc: expected lowest composite first")
	}
	if got := Apply(rs, Filter{}, SortSatisfactionDesc); got[0] != recent {
		t.Error("satisfaction-desc: expected highest composite first")
	}
}

func TestApply_StableOnTies(t *testing.T) {
	now := time.Now()
	a := makeResp(4, 2, 8, now.Add(-2*time.Hour))
	b := makeResp(4, 2, 8, now.Add(-time.Hour))
	c := makeResp(4, 2, 8, now)
	rs := []*response.SurveyResponse{a, b, c}

	// All scores equal: sorting by score keeps snapshot order.
	got := Apply(rs, Filter{}, SortNPSDesc)
	if got[0] != a || got[1] != b || got[2] != c {
		t.Error("equal keys must keep the snapshot's order")
	}
}

func TestParseSortKey(t *testing.T) {
	if got := ParseSortKey("nps-asc"); got != SortNPSAsc {
		t.Errorf("expected nps-asc, got %s", got)
	}
	if got := ParseSortKey(""); got != SortNewest {
		t.Errorf("expected default newest, got %s", got)
	}
	if got := ParseSortKey("bogus"); got != SortNewest {
		t.Errorf("expected default newest for unknown key, got %s", got)
	}
}
