package tips

import (
	"FoodSaver-Backend/domain"
	"context"
	"strings"
)

type (
	TipService interface {
		GetTips(ctx context.Context, category string) ([]domain.TipResponse, error)
	}

	tipService struct {
		tipRepository TipRepository
	}
)

func NewTipService(tipRepository TipRepository) TipService {
	return &tipService{tipRepository: tipRepository}
}

func (s *tipService) GetTips(ctx context.Context, category string) ([]domain.TipResponse, error) {
	tips, err := s.tipRepository.GetTips(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}

	res := make([]domain.TipResponse, 0, len(tips))
	for _, tip := range tips {
		res = append(res, domain.TipResponse{
			ID:          tip.ID,
			Title:       tip.Title,
			Description: tip.Description,
			ImageURL:    tip.ImageURL,
			Category:    tip.Category,
		})
	}
	return res, nil
}
