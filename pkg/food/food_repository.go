package food

import (
	"FoodSaver-Backend/entities"
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// errItemNotWithdrawn rolls back the history cleanup when the item is no
// longer available.
var errItemNotWithdrawn = errors.New("food item not withdrawn")

type (
	FoodRepository interface {
		CreateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		GetFoodItemsByStatus(ctx context.Context, status string) ([]*entities.FoodItem, error)
		GetFoodItemsByUser(ctx context.Context, userID string) ([]*entities.FoodItem, error)
		AppendFoodItemImage(ctx context.Context, id string, link string) error
		DeleteFoodItem(ctx context.Context, id string) (int64, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) CreateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *foodRepository) GetFoodItemsByStatus(ctx context.Context, status string) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at desc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) GetFoodItemsByUser(ctx context.Context, userID string) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *foodRepository) AppendFoodItemImage(ctx context.Context, id string, link string) error {
	return r.db.WithContext(ctx).Model(&entities.FoodItem{}).
		Where("id = ?", id).
		Update("images", entities.StringList(images)).Error
}

// DeleteFoodItem removes the item only while it is still available, so a
// listing with a live reservation cannot disappear under the receiver.
func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, entities.FoodStatusAvailable).
		Delete(&entities.FoodItem{})
	return res.RowsAffected, res.Error
}
