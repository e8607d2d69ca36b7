package response

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

var exportHeader = []string{
	"id", "submitted_at",
	"reception_rating", "treatment_rating", "facility_rating", "communication_rating", "punctuality_rating",
	"waiting_time", "nps_score",
	"appointment_type", "treatment_type", "other_treatment", "body_area", "other_body_area",
	"additional_comments", "how_did_you_know_us", "referral_details",
}

// ExportCSV renders responses into a CSV blob with a fixed column order.
// Absent optional fields render as empty cells.
func ExportCSV(rs []*SurveyResponse) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range rs {
		rec := []string{
			r.ID.String(),
			r.SubmittedAt.UTC().Format("2006-01-02T15:04:05Z"),
			strconv.Itoa(r.ReceptionRating),
			strconv.Itoa(r.TreatmentRating),
			strconv.Itoa(r.FacilityRating),
			strconv.Itoa(r.CommunicationRating),
			strconv.Itoa(r.PunctualityRating),
			r.WaitingTime,
			strconv.Itoa(r.NPSScore),
			r.AppointmentType,
			r.TreatmentType,
			strVal(r.OtherTreatment),
			r.BodyArea,
			strVal(r.OtherBodyArea),
			strVal(r.AdditionalComments),
			strVal(r.HowDidYouKnowUs),
			strVal(r.ReferralDetails),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
