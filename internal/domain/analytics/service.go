package analytics

import (
	"context"

	"github.com/clinicpulse/api/internal/domain/response"
)

// ResponseSource supplies the full response snapshot the aggregation runs
// over. Injected rather than ambient so the engine is testable against an
// in-memory fake store.
type ResponseSource interface {
	FetchAll(ctx context.Context) ([]*response.SurveyResponse, error)
}

type Service struct {
	src ResponseSource
}

func NewService(src ResponseSource) *Service {
	return &Service{src: src}
}

// DashboardSummary is the aggregate view the staff dashboard renders.
// CompositeSatisfaction is null when no responses exist; a computed average
// of zero is a different state from "no data".
type DashboardSummary struct {
	TotalResponses        int            `json:"total_responses"`
	NPS                   int            `json:"nps"`
	Promoters             int            `json:"promoters"`
	Passives              int            `json:"passives"`
	Detractors            int            `json:"detractors"`
	FieldAverages         []FieldAverage `json:"field_averages"`
	CompositeSatisfaction *float64       `json:"composite_satisfaction"`
	CommentCount          int            `json:"comment_count"`
}

// Dashboard fetches a fresh snapshot and computes the summary. Every
// computation starts from a full collection and produces a full result; a
// newer snapshot simply supersedes an older one.
func (s *Service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	rs, err := s.src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	summary := &DashboardSummary{
		TotalResponses:        len(rs),
		FieldAverages:         FieldAverages(rs),
		CompositeSatisfaction: CompositeAverage(rs),
	}
	scores := make([]int, 0, len(rs))
	for _, r := range rs {
		scores = append(scores, r.NPSScore)
		switch Classify(r.NPSScore) {
		case BandPromoter:
			summary.Promoters++
		case BandPassive:
			summary.Passives++
		default:
			summary.Detractors++
		}
		if r.HasComments() {
			summary.CommentCount++
		}
	}
	summary.NPS = ComputeNPS(scores)
	return summary, nil
}

func (s *Service) Trend(ctx context.Context) ([]TrendPoint, error) {
	rs, err := s.src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlyTrend(rs), nil
}

func (s *Service) BodyZones(ctx context.Context) ([]ZoneCount, error) {
	rs, err := s.src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return BodyZoneFrequency(rs), nil
}

func (s *Service) Referrals(ctx context.Context) ([]SourceCount, error) {
	rs, err := s.src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return ReferralBreakdown(rs), nil
}

// Responses returns the filtered, ordered response table.
func (s *Service) Responses(ctx context.Context, f Filter, key SortKey) ([]*response.SurveyResponse, error) {
	rs, err := s.src.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return Apply(rs, f, key), nil
}
