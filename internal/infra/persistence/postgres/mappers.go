package postgres

import (
	"capwatch/internal/domain/entity"
	"capwatch/internal/infra/persistence/model"
)

func fromRegistrationDomain(registration *entity.Registration) *model.RegistrationModel {
	return &model.RegistrationModel{
		ID:         registration.ID,
		Subscriber: registration.Subscriber,
		Latitude:   registration.Point.Latitude,
		Longitude:  registration.Point.Longitude,
		CreatedAt:  registration.CreatedAt,
	}
}

func toRegistrationDomain(registrationM *model.RegistrationModel) *entity.Registration {
	return &entity.Registration{
		ID:         registrationM.ID,
		Subscriber: registrationM.Subscriber,
		Point: entity.Point{
			Latitude:  registrationM.Latitude,
			Longitude: registrationM.Longitude,
		},
		CreatedAt: registrationM.CreatedAt,
	}
}

func fromFeedDomain(state *entity.FeedState) *model.FeedModel {
	return &model.FeedModel{
		URL:          state.URL,
		LastModified: state.LastModified,
		ETag:         state.ETag,
		UpdatedAt:    state.UpdatedAt,
	}
}

func toFeedDomain(feedM *model.FeedModel) *entity.FeedState {
	return &entity.FeedState{
		URL:          feedM.URL,
		LastModified: feedM.LastModified,
		ETag:         feedM.ETag,
		UpdatedAt:    feedM.UpdatedAt,
	}
}
