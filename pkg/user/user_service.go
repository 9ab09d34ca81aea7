package user

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/entities"
	"FoodSaver-Backend/pkg/session"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		UpsertFromIdentity(ctx context.Context, identity domain.Identity) (*entities.UserProfile, error)
		GetProfile(ctx context.Context, userID string) (domain.UserProfileResponse, error)
		UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.UserProfileResponse, error)
		GetSessionUser(ctx context.Context, userID string) (domain.SessionUser, error)
	}

	EventPublisher interface {
		Publish(event session.Event)
	}

	userService struct {
		userRepository UserRepository
		publisher      EventPublisher
		now            func() time.Time
	}
)

func NewUserService(userRepository UserRepository, publisher EventPublisher) UserService {
	return &userService{
		userRepository: userRepository,
		publisher:      publisher,
		now:            time.Now,
	}
}

// UpsertFromIdentity finds the profile for a provider identity or creates it
// with zeroed stats, so the first sign-in is what creates a profile. Email and sign-in time are refreshed on every call;
// display name and photo are only filled when the profile has none, so
// user edits survive later sign-ins.
func (s *userService) UpsertFromIdentity(ctx context.Context, identity domain.Identity) (*entities.UserProfile, error) {
	now := s.now()

	user, err := s.userRepository.GetUserByProvider(ctx, identity.Provider, identity.Subject)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if user == nil {
		user = &entities.UserProfile{
			ID:           uuid.New(),
			Provider:     identity.Provider,
			ProviderUID:  identity.Subject,
			Email:        identity.Email,
			DisplayName:  identity.DisplayName,
			PhotoURL:     identity.PhotoURL,
			LastSignInAt: &now,
			Timestamp: entities.Timestamp{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		err := s.userRepository.CreateUser(ctx, user)
		if err == nil {
			log.Infof("created profile %s for %s user %s", user.ID, identity.Provider, identity.Subject)
			return user, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// a concurrent sign-in created it first
		user, err = s.userRepository.GetUserByProvider(ctx, identity.Provider, identity.Subject)
		if err != nil {
			return nil, err
		}
	}

	if identity.Email != "" {
		user.Email = identity.Email
	}
	if user.DisplayName == "" {
		user.DisplayName = identity.DisplayName
	}
	if user.PhotoURL == "" {
		user.PhotoURL = identity.PhotoURL
	}
	user.LastSignInAt = &now
	user.UpdatedAt = now

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (domain.UserProfileResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.UserProfileResponse{}, err
	}
	return ToUserProfileResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) (domain.UserProfileResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.UserProfileResponse{}, err
	}

	if name := strings.TrimSpace(req.DisplayName); name != "" {
		user.DisplayName = name
	}
	if req.PhotoURL != "" {
		user.PhotoURL = req.PhotoURL
	}
	if address := strings.TrimSpace(req.Address); address != "" {
		user.Location.Address = address
	}
	if req.Latitude != nil {
		if *req.Latitude < -90 || *req.Latitude > 90 {
			return domain.UserProfileResponse{}, domain.ErrInvalidCoordinates
		}
		user.Location.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		if *req.Longitude < -180 || *req.Longitude > 180 {
			return domain.UserProfileResponse{}, domain.ErrInvalidCoordinates
		}
		user.Location.Longitude = *req.Longitude
	}
	user.UpdatedAt = s.now()

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserProfileResponse{}, err
	}

	if s.publisher != nil {
		s.publisher.Publish(session.Event{Type: session.EventProfileUpdated, UserID: userID, At: user.UpdatedAt})
	}
	return ToUserProfileResponse(user), nil
}

func (s *userService) GetSessionUser(ctx context.Context, userID string) (domain.SessionUser, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return domain.SessionUser{}, err
	}
	return ToSessionUser(user), nil
}

func (s *userService) getUser(ctx context.Context, userID string) (*entities.UserProfile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func ToUserProfileResponse(user *entities.UserProfile) domain.UserProfileResponse {
	return domain.UserProfileResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Location: domain.Location{
			Address: user.Location.Address,
			Coordinates: domain.Coordinates{
				Latitude:  user.Location.Latitude,
				Longitude: user.Location.Longitude,
			},
		},
		Stats: domain.UserStats{
			ItemsShared:   user.Stats.ItemsShared,
			ItemsReceived: user.Stats.ItemsReceived,
			FoodSaved:     user.Stats.FoodSaved,
		},
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToSessionUser is the simplified user the client keeps for its session.
func ToSessionUser(user *entities.UserProfile) domain.SessionUser {
	return domain.SessionUser{
		UID:         user.ID.String(),
		Email:       user.Email,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
		Stats: domain.SessionStats{
			Shared:   user.Stats.ItemsShared,
			Received: user.Stats.ItemsReceived,
			Impact:   user.Stats.FoodSaved,
		},
	}
}
