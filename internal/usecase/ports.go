package usecase

import (
	"context"

	"github.com/seatkit/webinar/internal/domain"
)

// WebinarRepository defines the storage contract the use cases depend on.
// Any store may implement it as long as FindByID reports absence with a
// nil webinar and no error, and Update rejects unknown ids with
// domain.NotFoundError instead of creating a row.
type WebinarRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Webinar, error)
	Create(ctx context.Context, w domain.Webinar) error
	Update(ctx context.Context, w domain.Webinar) error
}
