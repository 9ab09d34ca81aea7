package tips

import (
	"FoodSaver-Backend/entities"
	"context"
	"sort"
	"strings"
)

type TipRepository interface {
	GetTips(ctx context.Context, category string) ([]entities.Tip, error)
}

// DefaultTips is the built-in tips feed. It also seeds an empty collection.
var DefaultTips = []entities.Tip{
	{
		ID:          "1",
		Title:       "Smart Storage Solutions",
		Description: "Learn how to store different types of food to maximize their shelf life.",
		ImageURL:    "https://images.unsplash.com/photo-1606214174585-fe31582dc6ee?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=384&h=216&q=80",
		Category:    "Storage",
		Position:    1,
	},
	{
		ID:          "2",
		Title:       "Meal Planning Basics",
		Description: "Plan your meals effectively to reduce food waste and save money.",
		ImageURL:    "https://images.unsplash.com/photo-1484480974693-6ca0a78fb36b?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=384&h=216&q=80",
		Category:    "Planning",
		Position:    2,
	},
	{
		ID:          "3",
		Title:       "Understanding Date Labels",
		Description: "Know the difference between \"best before\" and \"use by\" dates.",
		ImageURL:    "https://images.unsplash.com/photo-1532634922-8fe0b757fb13?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG90by1wYWdlfHx8fGVufDB8fHx8fA%3D%3D&auto=format&fit=crop&w=384&h=216&q=80",
		Category:    "Education",
		Position:    3,
	},
}

type staticTipRepository struct {
	tips []entities.Tip
}

func NewStaticTipRepository(tips []entities.Tip) TipRepository {
	sorted := append([]entities.Tip(nil), tips...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })
	return &staticTipRepository{tips: sorted}
}

func (r *staticTipRepository) GetTips(_ context.Context, category string) ([]entities.Tip, error) {
	res := make([]entities.Tip, 0, len(r.tips))
	for _, tip := range r.tips {
		if category == "" || strings.EqualFold(tip.Category, category) {
			res = append(res, tip)
		}
	}
	return res, nil
}
