package transaction

import (
	"FoodSaver-Backend/domain"
	"FoodSaver-Backend/entities"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func pendingTransaction() *entities.Transaction {
	now := time.Now()
	return &entities.Transaction{
		ID:         uuid.New(),
		FoodItemID: uuid.New(),
		DonorID:    uuid.New(),
		ReceiverID: uuid.New(),
		Status:     entities.TransactionStatusPending,
		Timestamp:  entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
}

func TestRepositoryReserveFoodItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	tr := pendingTransaction()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "food_items" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND status = \$4`).
		WithArgs(entities.FoodStatusReserved, sqlmock.AnyArg(), tr.FoodItemID, entities.FoodStatusAvailable).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(tr.ID.String()))
	mock.ExpectCommit()

	require.NoError(t, repo.ReserveFoodItem(context.Background(), tr))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryReserveFoodItemAlreadyTaken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "food_items" SET "status"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ReserveFoodItem(context.Background(), pendingTransaction())
	assert.ErrorIs(t, err, domain.ErrFoodItemNotAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryApplyStatusChangeCompleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	tr := pendingTransaction()
	tr.Status = entities.TransactionStatusAccepted

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND status = \$4`).
		WithArgs(entities.TransactionStatusCompleted, sqlmock.AnyArg(), tr.ID, entities.TransactionStatusAccepted).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "food_items" SET "status"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "user_profiles" SET "stats_food_saved"=stats_food_saved \+ \$1,"stats_items_shared"=stats_items_shared \+ \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "user_profiles" SET "stats_food_saved"=stats_food_saved \+ \$1,"stats_items_received"=stats_items_received \+ \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ApplyStatusChange(context.Background(), tr, entities.TransactionStatusCompleted))
	assert.Equal(t, entities.TransactionStatusCompleted, tr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryApplyStatusChangeCancelledReleasesItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	tr := pendingTransaction()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions" SET "status"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "food_items" SET "status"=\$1,"updated_at"=\$2 WHERE id = \$3 AND status = \$4`).
		WithArgs(entities.FoodStatusAvailable, sqlmock.AnyArg(), tr.FoodItemID, entities.FoodStatusReserved).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.ApplyStatusChange(context.Background(), tr, entities.TransactionStatusCancelled))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryApplyStatusChangeLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	tr := pendingTransaction()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "transactions" SET "status"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.ApplyStatusChange(context.Background(), tr, entities.TransactionStatusAccepted)
	assert.ErrorIs(t, err, domain.ErrTransactionAlreadyProcessing)
	assert.Equal(t, entities.TransactionStatusPending, tr.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetStalePendingTransactions(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTransactionRepository(db)
	before := time.Now().Add(-48 * time.Hour)

	mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE status = \$1 AND created_at < \$2 ORDER BY created_at asc`).
		WithArgs(entities.TransactionStatusPending, before).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(uuid.NewString(), "pending"))

	res, err := repo.GetStalePendingTransactions(context.Background(), before)
	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
