package response

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const respCols = `id, submitted_at,
	reception_rating, treatment_rating, facility_rating, communication_rating, punctuality_rating,
	waiting_time, nps_score,
	appointment_type, treatment_type, other_treatment, body_area, other_body_area,
	additional_comments, how_did_you_know_us, referral_details`

func (r *repoPG) Create(ctx context.Context, sr *SurveyResponse) error {
	sr.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO survey_response (
			id,
			reception_rating, treatment_rating, facility_rating, communication_rating, punctuality_rating,
			waiting_time, nps_score,
			appointment_type, treatment_type, other_treatment, body_area, other_body_area,
			additional_comments, how_did_you_know_us, referral_details
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16
		) RETURNING submitted_at`,
		sr.ID,
		sr.ReceptionRating, sr.TreatmentRating, sr.FacilityRating, sr.CommunicationRating, sr.PunctualityRating,
		sr.WaitingTime, sr.NPSScore,
		sr.AppointmentType, sr.TreatmentType, sr.OtherTreatment, sr.BodyArea, sr.OtherBodyArea,
		sr.AdditionalComments, sr.HowDidYouKnowUs, sr.ReferralDetails,
	).Scan(&sr.SubmittedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*SurveyResponse, error) {
	return scanResp(r.pool.QueryRow(ctx, `SELECT `+respCols+` FROM survey_response WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, limit, offset int) ([]*SurveyResponse, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM survey_response`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+respCols+` FROM survey_response ORDER BY submitted_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	rs, err := collectResps(rows)
	if err != nil {
		return nil, 0, err
	}
	return rs, total, nil
}

func (r *repoPG) ListAll(ctx context.Context) ([]*SurveyResponse, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+respCols+` FROM survey_response ORDER BY submitted_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResps(rows)
}

func scanResp(row pgx.Row) (*SurveyResponse, error) {
	var sr SurveyResponse
	err := row.Scan(
		&sr.ID, &sr.SubmittedAt,
		&sr.ReceptionRating, &sr.TreatmentRating, &sr.FacilityRating, &sr.CommunicationRating, &sr.PunctualityRating,
		&sr.WaitingTime, &sr.NPSScore,
		&sr.AppointmentType, &sr.TreatmentType, &sr.OtherTreatment, &sr.BodyArea, &sr.OtherBodyArea,
		&sr.AdditionalComments, &sr.HowDidYouKnowUs, &sr.ReferralDetails,
	)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func collectResps(rows pgx.Rows) ([]*SurveyResponse, error) {
	var rs []*SurveyResponse
	for rows.Next() {
		var sr SurveyResponse
		err := rows.Scan(
			&sr.ID, &sr.SubmittedAt,
			&sr.ReceptionRating, &sr.TreatmentRating, &sr.FacilityRating, &sr.CommunicationRating, &sr.PunctualityRating,
			&sr.WaitingTime, &sr.NPSScore,
			&sr.AppointmentType, &sr.TreatmentType, &sr.OtherTreatment, &sr.BodyArea, &sr.OtherBodyArea,
			&sr.AdditionalComments, &sr.HowDidYouKnowUs, &sr.ReferralDetails,
		)
		if err != nil {
			return nil, err
		}
		rs = append(rs, &sr)
	}
	return rs, rows.Err()
}
