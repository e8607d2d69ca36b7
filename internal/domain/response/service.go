package response

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicpulse/api/internal/platform/realtime"
)

type Service struct {
	repo   Repository
	events realtime.Publisher
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetEventPublisher attaches an optional realtime publisher notified after
// each insert.
func (s *Service) SetEventPublisher(p realtime.Publisher) {
	s.events = p
}

// Submit validates and persists one survey response. Validation happens at
// this boundary so out-of-range values never reach storage; the database
// CHECK constraints are a second line of defense, not the primary one.
func (s *Service) Submit(ctx context.Context, sr *SurveyResponse) error {
	if err := validate(sr); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, sr); err != nil {
		return err
	}
	if s.events != nil {
		// Best effort: a failed notification must not fail the submission.
		_ = s.events.Publish(ctx, realtime.Event{
			Type:       realtime.EventResponseCreated,
			Topic:      realtime.TopicResponses,
			ResponseID: sr.ID.String(),
			Timestamp:  time.Now().UTC(),
		})
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SurveyResponse, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*SurveyResponse, int, error) {
	return s.repo.List(ctx, limit, offset)
}

// FetchAll returns the full snapshot, ordered by submission time. It
// satisfies the analytics engine's ResponseSource interface.
func (s *Service) FetchAll(ctx context.Context) ([]*SurveyResponse, error) {
	return s.repo.ListAll(ctx)
}

func validate(sr *SurveyResponse) error {
	if err := checkRating("reception_rating", sr.ReceptionRating, 1, 5); err != nil {
		return err
	}
	if err := checkRating("treatment_rating", sr.TreatmentRating, 1, 5); err != nil {
		return err
	}
	if err := checkRating("facility_rating", sr.FacilityRating, 1, 5); err != nil {
		return err
	}
	if err := checkRating("communication_rating", sr.CommunicationRating, 1, 5); err != nil {
		return err
	}
	if err := checkRating("punctuality_rating", sr.PunctualityRating, 1, 3); err != nil {
		return err
	}
	if sr.NPSScore < 0 || sr.NPSScore > 10 {
		return fmt.Errorf("nps_score must be between 0 and 10, got %d", sr.NPSScore)
	}

	if !validWaitingTimes[sr.WaitingTime] {
		return fmt.Errorf("invalid waiting_time: %q", sr.WaitingTime)
	}
	if !validAppointmentTypes[sr.AppointmentType] {
		return fmt.Errorf("invalid appointment_type: %q", sr.AppointmentType)
	}
	if !validTreatmentTypes[sr.TreatmentType] {
		return fmt.Errorf("invalid treatment_type: %q", sr.TreatmentType)
	}
	if !validBodyAreas[sr.BodyArea] {
		return fmt.Errorf("invalid body_area: %q", sr.BodyArea)
	}

	// Conditional free text: required with its sentinel, cleared otherwise
	// so it can never be meaningful without the qualifying category.
	if err := checkConditional("other_treatment", sr.TreatmentType == OtherSentinel, &sr.OtherTreatment); err != nil {
		return err
	}
	if err := checkConditional("other_body_area", sr.BodyArea == OtherSentinel, &sr.OtherBodyArea); err != nil {
		return err
	}

	if sr.HowDidYouKnowUs != nil {
		if !validReferralSources[*sr.HowDidYouKnowUs] {
			return fmt.Errorf("invalid how_did_you_know_us: %q", *sr.HowDidYouKnowUs)
		}
		referralIsOther := *sr.HowDidYouKnowUs == OtherSentinel
		if err := checkConditional("referral_details", referralIsOther, &sr.ReferralDetails); err != nil {
			return err
		}
	} else {
		sr.ReferralDetails = nil
	}

	return nil
}

func checkRating(name string, v, min, max int) error {
	if v < min || v > max {
		return fmt.Errorf("%s must be between %d and %d, got %d", name, min, max, v)
	}
	return nil
}

func checkConditional(name string, required bool, field **string) error {
	if required {
		if *field == nil || strings.TrimSpace(**field) == "" {
			return fmt.Errorf("%s is required when %q is selected", name, OtherSentinel)
		}
		return nil
	}
	*field = nil
	return nil
}
