package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/seatkit/webinar/internal/domain"
	"github.com/seatkit/webinar/internal/infra/database/models"
)

// WebinarRepository persists webinars in postgres through gorm.
type WebinarRepository struct {
	db *gorm.DB
}

func NewWebinarRepository(db *gorm.DB) *WebinarRepository {
	return &WebinarRepository{db: db}
}

func (r *WebinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	var row models.Webinar
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	w := toDomain(row)
	return &w, nil
}

func (r *WebinarRepository) Create(ctx context.Context, w domain.Webinar) error {
	err := r.db.WithContext(ctx).Create(toModel(w)).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ConflictError{Resource: "webinar"}
	}
	return err
}

// Update rewrites the stored row. It never creates: an unknown id comes
// back as domain.NotFoundError via the affected-row count. No row lock is
// taken, so concurrent updates of the same webinar are last-write-wins.
func (r *WebinarRepository) Update(ctx context.Context, w domain.Webinar) error {
	result := r.db.WithContext(ctx).
		Model(&models.Webinar{}).
		Where("id = ?", w.ID).
		Updates(map[string]any{
			"organizer_id": w.OrganizerID,
			"title":        w.Title,
			"start_date":   w.StartDate,
			"end_date":     w.EndDate,
			"seats":        w.Seats,
			"m_date":       gorm.Expr("clock_timestamp()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "webinar"}
	}
	return nil
}

func toDomain(row models.Webinar) domain.Webinar {
	return domain.Webinar{
		ID:          row.ID,
		OrganizerID: row.OrganizerID,
		Title:       row.Title,
		StartDate:   row.StartDate,
		EndDate:     row.EndDate,
		Seats:       row.Seats,
	}
}

func toModel(w domain.Webinar) *models.Webinar {
	return &models.Webinar{
		ID:          w.ID,
		OrganizerID: w.OrganizerID,
		Title:       w.Title,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		Seats:       w.Seats,
	}
}
