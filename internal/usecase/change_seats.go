package usecase

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/seatkit/webinar/internal/domain"
)

var tracer = otel.Tracer("usecase")

// ChangeSeatsInput is the validated-at-the-edge payload for a seat change.
// Seats arrives as float64 straight from JSON so malformed values (NaN,
// infinities, fractions) can be rejected here before any storage access.
type ChangeSeatsInput struct {
	User      domain.User
	WebinarID string
	Seats     float64
}

// ChangeSeatsUsecase is the only place the seat-adjustment rules live.
// It depends on the repository port alone; transport and storage details
// stay on the other side of the interfaces.
type ChangeSeatsUsecase struct {
	repo WebinarRepository
}

func NewChangeSeatsUsecase(repo WebinarRepository) *ChangeSeatsUsecase {
	return &ChangeSeatsUsecase{repo: repo}
}

// Execute runs the ordered validation pipeline and persists the new seat
// count. The first failing check wins. The ownership check runs before the
// seat-count checks so callers who don't own the webinar learn nothing
// about capacity rules from differentiated errors.
//
// There is no locking between the read and the write: two concurrent
// increases can both pass the monotonic check against the same stored
// value and the last write wins.
func (uc *ChangeSeatsUsecase) Execute(ctx context.Context, input ChangeSeatsInput) error {
	ctx, span := tracer.Start(ctx, "ChangeSeats.Execute",
		trace.WithAttributes(attribute.String("webinar.id", input.WebinarID)))
	defer span.End()

	if math.IsNaN(input.Seats) || math.IsInf(input.Seats, 0) ||
		input.Seats < 0 || input.Seats != math.Trunc(input.Seats) {
		err := domain.ValidationError{Message: "seats must be a finite non-negative integer"}
		span.RecordError(err)
		return err
	}

	found, err := uc.repo.FindByID(ctx, input.WebinarID)
	if err != nil {
		span.RecordError(errors.Wrap(err, "ChangeSeats: lookup failed"))
		return err
	}
	if found == nil {
		err := domain.NotFoundError{Resource: "webinar"}
		span.RecordError(err)
		return err
	}

	if found.OrganizerID != input.User.ID {
		err := domain.NotOrganizerError{WebinarID: found.ID, UserID: input.User.ID}
		span.RecordError(err)
		return err
	}

	// Both seat-count rules compare in float64: converting first would
	// overflow for integral values beyond the int range and misreport a
	// huge request as a reduction.
	if input.Seats < float64(found.Seats) {
		err := domain.ReduceSeatsError{Current: found.Seats, Requested: int(input.Seats)}
		span.RecordError(err)
		return err
	}
	if input.Seats > float64(domain.MaxSeats) {
		requested := math.MaxInt
		if input.Seats < float64(math.MaxInt) {
			requested = int(input.Seats)
		}
		err := domain.TooManySeatsError{Requested: requested, Limit: domain.MaxSeats}
		span.RecordError(err)
		return err
	}
	seats := int(input.Seats)

	updated, err := found.WithSeats(seats)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := uc.repo.Update(ctx, updated); err != nil {
		span.RecordError(errors.Wrap(err, "ChangeSeats: update failed"))
		return err
	}

	return nil
}
