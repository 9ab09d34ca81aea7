package food

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/entities"
	"FoodSaver-Backend/internal/metrics"
	"FoodSaver-Backend/internal/utils"
	"FoodSaver-Backend/internal/utils/storage"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		CreateFoodItem(ctx context.Context, req domain.CreateFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		GetAvailableFoodItems(ctx context.Context) ([]domain.FoodItemResponse, error)
		GetNearbyFoodItems(ctx context.Context, req domain.GetNearbyFoodItemsRequest) ([]domain.FoodItemResponse, error)
		GetFoodItemByID(ctx context.Context, id string) (domain.FoodItemResponse, error)
		GetUserFoodItems(ctx context.Context, userID string) ([]domain.FoodItemResponse, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id string, userID string) error
	}

	foodService struct {
		foodRepository FoodRepository
		s3             storage.AwsS3
		now            func() time.Time
	}
)

const imageFolder = "food-items"

func NewFoodService(foodRepository FoodRepository, s3 storage.AwsS3) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		s3:             s3,
		now:            time.Now,
	}
}

func (s *foodService) CreateFoodItem(ctx context.Context, req domain.CreateFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	expiryDate, err := time.Parse(domain.DateLayout, strings.TrimSpace(req.ExpiryDate))
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}

	now := s.now()
	foodItem := &entities.FoodItem{
		ID:          uuid.New(),
		UserID:      userUUID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Images:      entities.StringList{},
		ExpiryDate:  expiryDate,
		Location: entities.Location{
			Address:   strings.TrimSpace(req.Address),
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
		Status: entities.FoodStatusAvailable,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.foodRepository.CreateFoodItem(ctx, foodItem); err != nil {
		log.Errorf("create food item for user %s: %v", userID, err)
		return domain.FoodItemResponse{}, err
	}

	metrics.RecordItemShared()
	log.Infof("food item %s shared by user %s", foodItem.ID, userID)
	return ToFoodItemResponse(foodItem), nil
}

func (s *foodService) GetAvailableFoodItems(ctx context.Context) ([]domain.FoodItemResponse, error) {
	items, err := s.foodRepository.GetFoodItemsByStatus(ctx, entities.FoodStatusAvailable)
	if err != nil {
		return nil, err
	}

	res := make([]domain.FoodItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, ToFoodItemResponse(item))
	}
	return res, nil
}

// GetNearbyFoodItems filters the available items by great-circle distance.
// The list keeps the store's ordering (newest first).
func (s *foodService) GetNearbyFoodItems(ctx context.Context, req domain.GetNearbyFoodItemsRequest) ([]domain.FoodItemResponse, error) {
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return nil, domain.ErrInvalidCoordinates
	}

	items, err := s.foodRepository.GetFoodItemsByStatus(ctx, entities.FoodStatusAvailable)
	if err != nil {
		return nil, err
	}

	res := make([]domain.FoodItemResponse, 0)
	for _, item := range items {
		distance := utils.Haversine(req.Latitude, req.Longitude, item.Location.Latitude, item.Location.Longitude)
		if distance > req.Radius {
			continue
		}
		r := ToFoodItemResponse(item)
		r.Distance = &distance
		res = append(res, r)
	}
	return res, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string) (domain.FoodItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
	}

	item, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.FoodItemResponse{}, err
	}
	return ToFoodItemResponse(item), nil
}

func (s *foodService) GetUserFoodItems(ctx context.Context, userID string) ([]domain.FoodItemResponse, error) {
	items, err := s.foodRepository.GetFoodItemsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.FoodItemResponse, 0, len(items))
	for _, item := range items {
		res = append(res, ToFoodItemResponse(item))
	}
	return res, nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.FoodItemResponse, error) {
	item, err := s.foodRepository.GetFoodItemByID(ctx, req.FoodItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.FoodItemResponse{}, err
	}

	if item.UserID.String() != userID {
		return domain.FoodItemResponse{}, domain.ErrUnauthorizedAccess
	}

	objectKey, err := s.s3.UploadFile(ctx, uuid.NewString(), req.Image, imageFolder, storage.AllowImage...)
	if err != nil {
		if errors.Is(err, storage.ErrFileExtensionNotAllowed) {
			return domain.FoodItemResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.FoodItemResponse{}, err
	}

	if err := s.foodRepository.AppendFoodItemImage(ctx, req.FoodItemID, s.s3.GetPublicLinkKey(objectKey)); err != nil {
		if delErr := s.s3.DeleteFile(ctx, objectKey); delErr != nil {
			log.Warnf("cleanup orphaned image %s: %v", objectKey, delErr)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.FoodItemResponse{}, err
	}

	updated, err := s.foodRepository.GetFoodItemByID(ctx, req.FoodItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.FoodItemResponse{}, err
	}
	return ToFoodItemResponse(updated), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string, userID string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrFoodItemNotFound
	}

	item, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFoodItemNotFound
		}
		return err
	}

	if item.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	deleted, err := s.foodRepository.DeleteFoodItem(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrFoodItemNotAvailable
	}

	for _, link := range item.Images {
		if objectKey := s.s3.GetObjectKeyFromLink(link); objectKey != "" {
			if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
				log.Warnf("delete image %s of food item %s: %v", objectKey, id, err)
			}
		}
	}
	return nil
}

func ToFoodItemResponse(item *entities.FoodItem) domain.FoodItemResponse {
	images := []string(item.Images)
	if images == nil {
		images = []string{}
	}
	return domain.FoodItemResponse{
		ID:          item.ID.String(),
		UserID:      item.UserID.String(),
		Title:       item.Title,
		Description: item.Description,
		Images:      images,
		ExpiryDate:  item.ExpiryDate,
		Location: domain.Location{
			Address: item.Location.Address,
			Coordinates: domain.Coordinates{
				Latitude:  item.Location.Latitude,
				Longitude: item.Location.Longitude,
			},
		},
		Status:    item.Status,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
