package postgres

import (
	"context"

	"capwatch/internal/domain/repository"
	"capwatch/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// eventRepository implements the repository.EventRepository interface.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository is the constructor for eventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{
		db: db,
	}
}

// Seen reports whether the event identifier has already been evaluated.
func (repo *eventRepository) Seen(ctx context.Context, eventID string) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Where("id = ?", eventID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check seen event")
	}

	return count > 0, nil
}

// MarkSeen records the event identifier. A concurrent insert of the same
// identifier is not an error.
func (repo *eventRepository) MarkSeen(ctx context.Context, eventID string) error {
	if err := repo.db.WithContext(ctx).
		Create(&model.EventModel{ID: eventID}).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return nil
		}

		return errors.Wrap(err, "failed to mark event seen")
	}

	return nil
}
