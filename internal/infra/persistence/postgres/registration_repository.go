package postgres

import (
	"context"

	"capwatch/internal/domain/entity"
	"capwatch/internal/domain/repository"
	"capwatch/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// registrationRepository implements the repository.RegistrationRepository interface.
type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository is the constructor for registrationRepository.
func NewRegistrationRepository(db *gorm.DB) repository.RegistrationRepository {
	return &registrationRepository{
		db: db,
	}
}

// Create persists a new registration. The composite unique index on
// (subscriber, latitude, longitude) turns duplicate rounded points into
// repository.ErrDuplicateRegistration.
func (repo *registrationRepository) Create(ctx context.Context, registration *entity.Registration) error {
	registrationM := fromRegistrationDomain(registration)

	if err := repo.db.WithContext(ctx).Create(registrationM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRegistration
		}
		if isNotNullConstraintViolation(err) {
			return errors.Wrap(err, "missing required registration information")
		}

		return errors.Wrap(err, "failed to create registration")
	}

	registration.ID = registrationM.ID
	registration.CreatedAt = registrationM.CreatedAt

	return nil
}

// Delete removes the registration matching the subscriber and rounded point.
func (repo *registrationRepository) Delete(ctx context.Context, subscriber string, point entity.Point) error {
	result := repo.db.WithContext(ctx).
		Where("subscriber = ? AND latitude = ? AND longitude = ?", subscriber, point.Latitude, point.Longitude).
		Delete(&model.RegistrationModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete registration")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRegistrationNotFound
	}

	return nil
}

// DeleteBySubscriber removes all registrations of a subscriber.
func (repo *registrationRepository) DeleteBySubscriber(ctx context.Context, subscriber string) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("subscriber = ?", subscriber).
		Delete(&model.RegistrationModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete registrations by subscriber")
	}

	return result.RowsAffected, nil
}

// FindBySubscriber retrieves a subscriber's registrations in creation order.
func (repo *registrationRepository) FindBySubscriber(ctx context.Context, subscriber string) ([]*entity.Registration, error) {
	var registrationModels []*model.RegistrationModel

	if err := repo.db.WithContext(ctx).
		Where("subscriber = ?", subscriber).
		Order("created_at ASC").
		Find(&registrationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find registrations by subscriber")
	}

	return toRegistrationDomainSlice(registrationModels), nil
}

// FindAll retrieves every registration for a matching pass.
func (repo *registrationRepository) FindAll(ctx context.Context) ([]*entity.Registration, error) {
	var registrationModels []*model.RegistrationModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&registrationModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find registrations")
	}

	return toRegistrationDomainSlice(registrationModels), nil
}

// CountBySubscriber returns the number of registrations a subscriber holds.
func (repo *registrationRepository) CountBySubscriber(ctx context.Context, subscriber string) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.RegistrationModel{}).
		Where("subscriber = ?", subscriber).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count registrations by subscriber")
	}

	return count, nil
}

func toRegistrationDomainSlice(registrationModels []*model.RegistrationModel) []*entity.Registration {
	registrations := make([]*entity.Registration, 0, len(registrationModels))
	for _, registrationM := range registrationModels {
		registrations = append(registrations, toRegistrationDomain(registrationM))
	}

	return registrations
}
