package postgres

import (
	"context"
	"time"

	"capwatch/internal/domain/entity"
	"capwatch/internal/domain/repository"
	"capwatch/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// feedRepository implements the repository.FeedRepository interface.
type feedRepository struct {
	db *gorm.DB
}

// NewFeedRepository is the constructor for feedRepository.
func NewFeedRepository(db *gorm.DB) repository.FeedRepository {
	return &feedRepository{
		db: db,
	}
}

// Find retrieves the recorded validators for a feed URL.
func (repo *feedRepository) Find(ctx context.Context, url string) (*entity.FeedState, error) {
	var feedM model.FeedModel

	if err := repo.db.WithContext(ctx).
		Where("url = ?", url).
		First(&feedM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFeedStateNotFound
		}

		return nil, errors.Wrap(err, "failed to find feed state")
	}

	return toFeedDomain(&feedM), nil
}

// Save creates or updates the validators for a feed URL.
func (repo *feedRepository) Save(ctx context.Context, state *entity.FeedState) error {
	state.UpdatedAt = time.Now()
	feedM := fromFeedDomain(state)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "url"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_modified", "e_tag", "updated_at"}),
		}).
		Create(feedM).Error; err != nil {
		return errors.Wrap(err, "failed to save feed state")
	}

	return nil
}
