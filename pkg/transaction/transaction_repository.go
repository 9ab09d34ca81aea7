package transaction

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	TransactionRepository interface {
		ReserveFoodItem(ctx context.Context, transaction *entities.Transaction) error
		GetTransactionByID(ctx context.Context, id string) (*entities.Transaction, error)
		GetUserTransactions(ctx context.Context, userID string) ([]*entities.Transaction, error)
		ApplyStatusChange(ctx context.Context, transaction *entities.Transaction, to string) error
		GetStalePendingTransactions(ctx context.Context, before time.Time) ([]*entities.Transaction, error)
	}

	transactionRepository struct {
		db *gorm.DB
	}
)

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// ReserveFoodItem flips the item from available to reserved and records the
// transaction in one database transaction. The flip is conditional on the
// current status, so only one of two concurrent reservations succeeds.
func (r *transactionRepository) ReserveFoodItem(ctx context.Context, transaction *entities.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.FoodItem{}).
			Where("id = ? AND status = ?", transaction.FoodItemID, entities.FoodStatusAvailable).
			Updates(map[string]any{
				"status":     entities.FoodStatusReserved,
				"updated_at": transaction.CreatedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrFoodItemNotAvailable
		}

		return tx.Create(transaction).Error
	})
}

func (r *transactionRepository) GetTransactionByID(ctx context.Context, id string) (*entities.Transaction, error) {
	var transaction entities.Transaction
	if err := r.db.WithContext(ctx).
		Preload("FoodItem").
		Where("id = ?", id).
		First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *transactionRepository) GetUserTransactions(ctx context.Context, userID string) ([]*entities.Transaction, error) {
	var transactions []*entities.Transaction
	if err := r.db.WithContext(ctx).
		Preload("FoodItem").
		Where("donor_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at desc").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// ApplyStatusChange moves the transaction from its loaded status to `to` and
// applies the side effects on the food item and user stats atomically.
func (r *transactionRepository) ApplyStatusChange(ctx context.Context, transaction *entities.Transaction, to string) error {
	now := time.Now()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.Transaction{}).
			Where("id = ? AND status = ?", transaction.ID, transaction.Status).
			Updates(map[string]any{"status": to, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrTransactionAlreadyProcessing
		}

		switch to {
		case entities.TransactionStatusCompleted:
			if err := tx.Model(&entities.FoodItem{}).
				Where("id = ?", transaction.FoodItemID).
				Updates(map[string]any{"status": entities.FoodStatusCompleted, "updated_at": now}).Error; err != nil {
				return err
			}
			if err := tx.Model(&entities.UserProfile{}).
				Where("id = ?", transaction.DonorID).
				Updates(map[string]any{
					"stats_items_shared": gorm.Expr("stats_items_shared + ?", 1),
					"stats_food_saved":   gorm.Expr("stats_food_saved + ?", 1),
				}).Error; err != nil {
				return err
			}
			if err := tx.Model(&entities.UserProfile{}).
				Where("id = ?", transaction.ReceiverID).
				Updates(map[string]any{
					"stats_items_received": gorm.Expr("stats_items_received + ?", 1),
					"stats_food_saved":     gorm.Expr("stats_food_saved + ?", 1),
				}).Error; err != nil {
				return err
			}
		case entities.TransactionStatusCancelled:
			if err := tx.Model(&entities.FoodItem{}).
				Where("id = ? AND status = ?", transaction.FoodItemID, entities.FoodStatusReserved).
				Updates(map[string]any{"status": entities.FoodStatusAvailable, "updated_at": now}).Error; err != nil {
				return err
			}
		}

		transaction.Status = to
		transaction.UpdatedAt = now
		return nil
	})
}

func (r *transactionRepository) GetStalePendingTransactions(ctx context.Context, before time.Time) ([]*entities.Transaction, error) {
	var transactions []*entities.Transaction
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", entities.TransactionStatusPending, before).
		Order("created_at asc").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}
