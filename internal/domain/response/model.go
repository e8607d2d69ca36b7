package response

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SurveyResponse maps to the survey_response table. A record is created
// once by the patient-facing submission path and never mutated afterwards;
// the dashboard side only ever reads snapshots.
type SurveyResponse struct {
	ID          uuid.UUID `db:"id" json:"id"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`

	ReceptionRating     int `db:"reception_rating" json:"reception_rating"`
	TreatmentRating     int `db:"treatment_rating" json:"treatment_rating"`
	FacilityRating      int `db:"facility_rating" json:"facility_rating"`
	CommunicationRating int `db:"communication_rating" json:"communication_rating"`
	PunctualityRating   int `db:"punctuality_rating" json:"punctuality_rating"`

	WaitingTime string `db:"waiting_time" json:"waiting_time"`
	NPSScore    int    `db:"nps_score" json:"nps_score"`

	AppointmentType string  `db:"appointment_type" json:"appointment_type"`
	TreatmentType   string  `db:"treatment_type" json:"treatment_type"`
	OtherTreatment  *string `db:"other_treatment" json:"other_treatment,omitempty"`
	BodyArea        string  `db:"body_area" json:"body_area"`
	OtherBodyArea   *string `db:"other_body_area" json:"other_body_area,omitempty"`

	AdditionalComments *string `db:"additional_comments" json:"additional_comments,omitempty"`
	HowDidYouKnowUs    *string `db:"how_did_you_know_us" json:"how_did_you_know_us,omitempty"`
	ReferralDetails    *string `db:"referral_details" json:"referral_details,omitempty"`
}

// Sentinel value that pairs a categorical field with its free-text
// elaboration.
const OtherSentinel = "other"

// Current waiting time vocabulary. The original four duration buckets were
// remapped to these three qualitative values by migration 002; only the
// three-value vocabulary reaches Go code.
const (
	WaitingGood       = "good"
	WaitingAcceptable = "acceptable"
	WaitingPoor       = "poor"
)

var validWaitingTimes = map[string]bool{
	WaitingGood:       true,
	WaitingAcceptable: true,
	WaitingPoor:       true,
}

var validAppointmentTypes = map[string]bool{
	"first-visit": true,
	"follow-up":   true,
	"post-op":     true,
}

var validTreatmentTypes = map[string]bool{
	"physiotherapy":  true,
	"osteopathy":     true,
	"massage":        true,
	"rehabilitation": true,
	OtherSentinel:    true,
}

var validBodyAreas = map[string]bool{
	"neck":        true,
	"shoulder":    true,
	"back":        true,
	"lower-back":  true,
	"hip":         true,
	"knee":        true,
	"ankle":       true,
	OtherSentinel: true,
}

var validReferralSources = map[string]bool{
	"friend-family":   true,
	"doctor-referral": true,
	"social-media":    true,
	"search-engine":   true,
	"walk-by":         true,
	OtherSentinel:     true,
}

// Static display labels per enum value.
var WaitingTimeLabels = map[string]string{
	WaitingGood:       "Good",
	WaitingAcceptable: "Acceptable",
	WaitingPoor:       "Poor",
}

var TreatmentTypeLabels = map[string]string{
	"physiotherapy":  "Physiotherapy",
	"osteopathy":     "Osteopathy",
	"massage":        "Therapeutic massage",
	"rehabilitation": "Rehabilitation",
	OtherSentinel:    "Other",
}

var BodyAreaLabels = map[string]string{
	"neck":        "Neck",
	"shoulder":    "Shoulder",
	"back":        "Back",
	"lower-back":  "Lower back",
	"hip":         "Hip",
	"knee":        "Knee",
	"ankle":       "Ankle",
	OtherSentinel: "Other",
}

var ReferralSourceLabels = map[string]string{
	"friend-family":   "Friends or family",
	"doctor-referral": "Doctor referral",
	"social-media":    "Social media",
	"search-engine":   "Search engine",
	"walk-by":         "Walked by the clinic",
	OtherSentinel:     "Other",
}

// EffectiveBodyArea resolves the zone a treatment targeted. When the area
// is the "other" sentinel, the paired free-text value becomes the zone key.
func (r *SurveyResponse) EffectiveBodyArea() string {
	if r.BodyArea == OtherSentinel && r.OtherBodyArea != nil {
		if zone := strings.TrimSpace(*r.OtherBodyArea); zone != "" {
			return zone
		}
	}
	return r.BodyArea
}

// HasComments reports whether the response carries a non-empty free-text
// comment.
func (r *SurveyResponse) HasComments() bool {
	return r.AdditionalComments != nil && strings.TrimSpace(*r.AdditionalComments) != ""
}

// ReferralSource returns the "how did you know us" category, or "" when the
// respondent left it blank.
func (r *SurveyResponse) ReferralSource() string {
	if r.HowDidYouKnowUs == nil {
		return ""
	}
	return *r.HowDidYouKnowUs
}
