package response

import "testing"

func sp(s string) *string { return &s }

func TestEffectiveBodyArea(t *testing.T) {
	r := &SurveyResponse{BodyArea: "knee"}
	if got := r.EffectiveBodyArea(); got != "knee" {
		t.Errorf("expected knee, got %q", got)
	}

	r = &SurveyResponse{BodyArea: OtherSentinel, OtherBodyArea: sp(" elbow ")}
	if got := r.EffectiveBodyArea(); got != "elbow" {
		t.Errorf("expected trimmed free text, got %q", got)
	}

	// Blank free text falls back to the sentinel itself.
	r = &SurveyResponse{BodyArea: OtherSentinel, OtherBodyArea: sp("   ")}
	if got := r.EffectiveBodyArea(); got != OtherSentinel {
		t.Errorf("expected sentinel fallback, got %q", got)
	}

	r = &SurveyResponse{BodyArea: OtherSentinel}
	if got := r.EffectiveBodyArea(); got != OtherSentinel {
		t.Errorf("expected sentinel when free text is absent, got %q", got)
	}
}

func TestHasComments(t *testing.T) {
	r := &SurveyResponse{}
	if r.HasComments() {
		t.Error("nil comment should report false")
	}
	r.AdditionalComments = sp("   ")
	if r.HasComments() {
		t.Error("whitespace-only comment should report false")
	}
	r.AdditionalComments = sp("great visit")
	if !r.HasComments() {
		t.Error("expected true for a real comment")
	}
}

func TestReferralSource(t *testing.T) {
	r := &SurveyResponse{}
	if got := r.ReferralSource(); got != "" {
		t.Errorf("expected empty source, got %q", got)
	}
	r.HowDidYouKnowUs = sp("walk-by")
	if got := r.ReferralSource(); got != "walk-by" {
		t.Errorf("expected walk-by, got %q", got)
	}
}

func TestLabelTablesCoverVocabulary(t *testing.T) {
	for v := range validWaitingTimes {
		if WaitingTimeLabels[v] == "" {
			t.Errorf("missing waiting time label for %q", v)
		}
	}
	for v := range validTreatmentTypes {
		if TreatmentTypeLabels[v] == "" {
			t.Errorf("missing treatment type label for %q", v)
		}
	}
	for v := range validBodyAreas {
		if BodyAreaLabels[v] == "" {
			t.Errorf("missing body area label for %q", v)
		}
	}
	for v := range validReferralSources {
		if ReferralSourceLabels[v] == "" {
			t.Errorf("missing referral source label for %q", v)
		}
	}
}
