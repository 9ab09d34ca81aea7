package user

import (
	"FoodSaver-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		GetUserByID(ctx context.Context, id string) (*entities.UserProfile, error)
		GetUserByProvider(ctx context.Context, provider string, providerUID string) (*entities.UserProfile, error)
		CreateUser(ctx context.Context, user *entities.UserProfile) error
		UpdateUser(ctx context.Context, user *entities.UserProfile) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.UserProfile, error) {
	var user entities.UserProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByProvider(ctx context.Context, provider string, providerUID string) (*entities.UserProfile, error) {
	var user entities.UserProfile
	if err := r.db.WithContext(ctx).
		Where("provider = ? AND provider_uid = ?", provider, providerUID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.UserProfile) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateUser writes the editable profile columns. Stats are owned by the
// transaction flow and never written from here.
func (r *userRepository) UpdateUser(ctx context.Context, user *entities.UserProfile) error {
	return r.db.WithContext(ctx).Model(user).
		Select("email", "display_name", "photo_url", "location_address", "location_latitude", "location_longitude", "last_sign_in_at", "updated_at").
		Updates(user).Error
}
