package response

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists survey responses. There is no update: records are
// immutable after creation.
type Repository interface {
	Create(ctx context.Context, r *SurveyResponse) error
	GetByID(ctx context.Context, id uuid.UUID) (*SurveyResponse, error)
	List(ctx context.Context, limit, offset int) ([]*SurveyResponse, int, error)
	// ListAll returns the full collection ordered by submission time
	// ascending; it is the analytics snapshot fetch.
	ListAll(ctx context.Context) ([]*SurveyResponse, error)
}
