package transaction

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/entities"
	"FoodSaver-Backend/internal/metrics"
	"FoodSaver-Backend/internal/utils/mailing"
	"FoodSaver-Backend/pkg/food"
	"FoodSaver-Backend/pkg/user"
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	TransactionService interface {
		CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest, receiverID string) (domain.TransactionResponse, error)
		GetUserTransactions(ctx context.Context, userID string) ([]domain.TransactionResponse, error)
		UpdateTransactionStatus(ctx context.Context, id string, req domain.UpdateTransactionStatusRequest, userID string) (domain.TransactionResponse, error)
		CancelStaleReservations(ctx context.Context, before time.Time) (int, error)
	}

	// Mailer sends one HTML mail. mailing.SendMail satisfies it.
	Mailer func(toEmail string, subject string, body string) error

	transactionService struct {
		transactionRepository TransactionRepository
		foodRepository        food.FoodRepository
		userRepository        user.UserRepository
		mailer                Mailer
		appURL                string
		now                   func() time.Time
	}
)

// allowedTransitions lists the statuses reachable from each status.
var allowedTransitions = map[string][]string{
	entities.TransactionStatusPending:  {entities.TransactionStatusAccepted, entities.TransactionStatusCancelled},
	entities.TransactionStatusAccepted: {entities.TransactionStatusCompleted, entities.TransactionStatusCancelled},
}

const notifyTimeout = 30 * time.Second

func NewTransactionService(
	transactionRepository TransactionRepository,
	foodRepository food.FoodRepository,
	userRepository user.UserRepository,
	mailer Mailer,
	appURL string,
) TransactionService {
	return &transactionService{
		transactionRepository: transactionRepository,
		foodRepository:        foodRepository,
		userRepository:        userRepository,
		mailer:                mailer,
		appURL:                appURL,
		now:                   time.Now,
	}
}

func (s *transactionService) CreateTransaction(ctx context.Context, req domain.CreateTransactionRequest, receiverID string) (domain.TransactionResponse, error) {
	receiverUUID, err := uuid.Parse(receiverID)
	if err != nil {
		return domain.TransactionResponse{}, domain.ErrParseUUID
	}

	item, err := s.foodRepository.GetFoodItemByID(ctx, req.FoodItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TransactionResponse{}, domain.ErrFoodItemNotFound
		}
		return domain.TransactionResponse{}, err
	}

	if item.UserID == receiverUUID {
		return domain.TransactionResponse{}, domain.ErrReserveOwnItem
	}
	if item.Status != entities.FoodStatusAvailable {
		return domain.TransactionResponse{}, domain.ErrFoodItemNotAvailable
	}

	now := s.now()
	transaction := &entities.Transaction{
		ID:         uuid.New(),
		FoodItemID: item.ID,
		DonorID:    item.UserID,
		ReceiverID: receiverUUID,
		Status:     entities.TransactionStatusPending,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.transactionRepository.ReserveFoodItem(ctx, transaction); err != nil {
		if !errors.Is(err, domain.ErrFoodItemNotAvailable) {
			log.Errorf("reserve food item %s for user %s: %v", item.ID, receiverID, err)
		}
		return domain.TransactionResponse{}, err
	}

	metrics.RecordTransactionStatus(entities.TransactionStatusPending)
	log.Infof("food item %s reserved by user %s (transaction %s)", item.ID, receiverID, transaction.ID)

	item.Status = entities.FoodStatusReserved
	transaction.FoodItem = item

	if s.mailer != nil {
		go s.notifyDonor(transaction)
	}

	return toTransactionResponse(transaction), nil
}

func (s *transactionService) notifyDonor(transaction *entities.Transaction) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	donor, err := s.userRepository.GetUserByID(ctx, transaction.DonorID.String())
	if err != nil {
		log.Warnf("notify donor of transaction %s: %v", transaction.ID, err)
		return
	}
	if donor.Email == "" {
		return
	}

	var receiverName string
	if receiver, err := s.userRepository.GetUserByID(ctx, transaction.ReceiverID.String()); err == nil {
		receiverName = receiver.DisplayName
	}

	subject, body := mailing.ReservationNotice(s.appURL, donor.DisplayName, transaction.FoodItem.Title, receiverName)
	if err := s.mailer(donor.Email, subject, body); err != nil {
		log.Warnf("send reservation mail for transaction %s: %v", transaction.ID, err)
	}
}

func (s *transactionService) GetUserTransactions(ctx context.Context, userID string) ([]domain.TransactionResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrParseUUID
	}

	transactions, err := s.transactionRepository.GetUserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]domain.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		res = append(res, toTransactionResponse(t))
	}
	return res, nil
}

func (s *transactionService) UpdateTransactionStatus(ctx context.Context, id string, req domain.UpdateTransactionStatusRequest, userID string) (domain.TransactionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.TransactionResponse{}, domain.ErrTransactionNotFound
	}

	transaction, err := s.transactionRepository.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TransactionResponse{}, domain.ErrTransactionNotFound
		}
		return domain.TransactionResponse{}, err
	}

	isDonor := transaction.DonorID.String() == userID
	isReceiver := transaction.ReceiverID.String() == userID
	if !isDonor && !isReceiver {
		return domain.TransactionResponse{}, domain.ErrUnauthorizedTransaction
	}
	// Only the donor can accept a reservation of their own item.
	if req.Status == entities.TransactionStatusAccepted && !isDonor {
		return domain.TransactionResponse{}, domain.ErrUnauthorizedTransaction
	}

	if !canTransition(transaction.Status, req.Status) {
		return domain.TransactionResponse{}, domain.ErrInvalidTransactionStatus
	}

	if err := s.transactionRepository.ApplyStatusChange(ctx, transaction, req.Status); err != nil {
		return domain.TransactionResponse{}, err
	}

	if transaction.FoodItem != nil {
		switch req.Status {
		case entities.TransactionStatusCompleted:
			transaction.FoodItem.Status = entities.FoodStatusCompleted
		case entities.TransactionStatusCancelled:
			transaction.FoodItem.Status = entities.FoodStatusAvailable
		}
	}

	metrics.RecordTransactionStatus(req.Status)
	log.Infof("transaction %s moved to %s by user %s", transaction.ID, req.Status, userID)
	return toTransactionResponse(transaction), nil
}

// CancelStaleReservations cancels pending reservations created before the
// cutoff and returns how many were cancelled.
func (s *transactionService) CancelStaleReservations(ctx context.Context, before time.Time) (int, error) {
	stale, err := s.transactionRepository.GetStalePendingTransactions(ctx, before)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, t := range stale {
		if err := s.transactionRepository.ApplyStatusChange(ctx, t, entities.TransactionStatusCancelled); err != nil {
			if errors.Is(err, domain.ErrTransactionAlreadyProcessing) {
				continue
			}
			return cancelled, err
		}
		metrics.RecordTransactionStatus(entities.TransactionStatusCancelled)
		cancelled++
	}
	return cancelled, nil
}

func canTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func toTransactionResponse(t *entities.Transaction) domain.TransactionResponse {
	res := domain.TransactionResponse{
		ID:         t.ID.String(),
		FoodItemID: t.FoodItemID.String(),
		DonorID:    t.DonorID.String(),
		ReceiverID: t.ReceiverID.String(),
		Status:     t.Status,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if t.FoodItem != nil {
		item := food.ToFoodItemResponse(t.FoodItem)
		res.FoodItem = &item
	}
	return res
}
