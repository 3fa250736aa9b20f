package services_test

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/asifrahman99/course_bazaar/models"
	"github.com/asifrahman99/course_bazaar/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gdb, mock
}

func pendingOrderRows(orderID, userID, courseID uuid.UUID, couponCode interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "course_id", "amount", "currency",
		"payment_method", "payment_status", "coupon_code",
	}).AddRow(
		orderID.String(), userID.String(), courseID.String(), 900.0, "BDT",
		"sslcommerz", models.OrderStatusPending, couponCode,
	)
}

func TestCompleteOrder_TransitionsAndEnrolls(t *testing.T) {
	gdb, mock := newMockDB(t)

	orderID := uuid.New()
	userID := uuid.New()
	courseID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(pendingOrderRows(orderID, userID, courseID, "SAVE10"))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "coupons" SET "times_used"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := services.CompleteOrder(gdb, orderID.String(), "TXN123")

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.PaymentStatus)
	require.NotNil(t, order.TransactionID)
	assert.Equal(t, "TXN123", *order.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteOrder_SecondCallIsANoOp(t *testing.T) {
	gdb, mock := newMockDB(t)

	orderID := uuid.New()
	userID := uuid.New()
	courseID := uuid.New()

	completedRows := sqlmock.NewRows([]string{
		"id", "user_id", "course_id", "amount", "currency",
		"payment_method", "payment_status", "transaction_id",
	}).AddRow(
		orderID.String(), userID.String(), courseID.String(), 900.0, "BDT",
		"sslcommerz", models.OrderStatusCompleted, "TXN123",
	)

	// No update, no enrollment insert, no coupon increment: the order is
	// already completed, so the handler just acknowledges.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).WillReturnRows(completedRows)
	mock.ExpectCommit()

	order, err := services.CompleteOrder(gdb, orderID.String(), "TXN999")

	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteOrder_PlaceholderTransactionID(t *testing.T) {
	gdb, mock := newMockDB(t)

	orderID := uuid.New()
	userID := uuid.New()
	courseID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(pendingOrderRows(orderID, userID, courseID, nil))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	order, err := services.CompleteOrder(gdb, orderID.String(), "")

	require.NoError(t, err)
	require.NotNil(t, order.TransactionID)
	assert.Equal(t, services.PlaceholderTxnID, *order.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteOrder_ConcurrentCallersIncrementCouponOnce(t *testing.T) {
	gdb, mock := newMockDB(t)

	orderID := uuid.New()
	userID := uuid.New()
	courseID := uuid.New()

	// First caller wins the transition and runs the side effects.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(pendingOrderRows(orderID, userID, courseID, "SAVE10"))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "enrollments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "coupons" SET "times_used"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Second caller read the order before the first committed, so it
	// also sees pending, but its guarded UPDATE matches no row and it
	// must skip the enrollment, the coupon increment, and the email.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(pendingOrderRows(orderID, userID, courseID, "SAVE10"))
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := services.CompleteOrder(gdb, orderID.String(), "TXN123")
	require.NoError(t, err)

	order, err := services.CompleteOrder(gdb, orderID.String(), "TXN456")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, order.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteOrder_UnknownOrderFails(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := services.CompleteOrder(gdb, uuid.New().String(), "TXN123")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
