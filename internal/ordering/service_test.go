package ordering

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/01moynul/orderquery/internal/database/databasetest"
	"github.com/01moynul/orderquery/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return NewService(databasetest.Open(t), WithClock(func() time.Time { return at }))
}

func TestPlaceOrderSnapshotsPriceAndAddress(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	memberID, err := svc.CreateMember(ctx, "Alice", models.Address{City: "Seoul", Street: "Main", Zipcode: "111"})
	require.NoError(t, err)
	itemID, err := svc.CreateItem(ctx, "JPA Book", decimal.NewFromInt(10))
	require.NoError(t, err)

	orderID, err := svc.PlaceOrder(ctx, memberID, []Line{{ItemID: itemID, Quantity: 2}})
	require.NoError(t, err)

	// later price changes do not touch the order
	_, err = svc.db.Exec("UPDATE items SET price = ? WHERE id = ?", decimal.NewFromInt(99), itemID)
	require.NoError(t, err)

	var (
		unitPrice decimal.Decimal
		quantity  int
		city      string
		status    string
		orderDate int64
		slugValue string
	)
	require.NoError(t, svc.db.QueryRow(
		"SELECT unit_price, quantity FROM order_items WHERE order_id = ?", orderID,
	).Scan(&unitPrice, &quantity))
	assert.True(t, unitPrice.Equal(decimal.NewFromInt(10)), unitPrice.String())
	assert.Equal(t, 2, quantity)

	require.NoError(t, svc.db.QueryRow(
		"SELECT d.city, o.status, o.order_date FROM orders o JOIN deliveries d ON d.id = o.delivery_id WHERE o.id = ?", orderID,
	).Scan(&city, &status, &orderDate))
	assert.Equal(t, "Seoul", city)
	assert.Equal(t, "PLACED", status)
	assert.Equal(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC).UnixMilli(), orderDate)

	require.NoError(t, svc.db.QueryRow("SELECT slug FROM items WHERE id = ?", itemID).Scan(&slugValue))
	assert.Equal(t, "jpa-book", slugValue)
}

func TestPlaceOrderValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	memberID, err := svc.CreateMember(ctx, "Bob", models.Address{})
	require.NoError(t, err)
	itemID, err := svc.CreateItem(ctx, "Pen", decimal.RequireFromString("1.50"))
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, memberID, nil)
	require.ErrorIs(t, err, models.ErrNoLineItems)

	_, err = svc.PlaceOrder(ctx, memberID, []Line{{ItemID: itemID, Quantity: 0}})
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.PlaceOrder(ctx, 999, []Line{{ItemID: itemID, Quantity: 1}})
	require.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.PlaceOrder(ctx, memberID, []Line{{ItemID: 999, Quantity: 1}})
	require.ErrorIs(t, err, models.ErrNotFound)

	var orders int
	require.NoError(t, svc.db.QueryRow("SELECT COUNT(*) FROM orders").Scan(&orders))
	assert.Zero(t, orders, "failed placements leave nothing behind")
}

func TestCreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	_, err := svc.CreateMember(ctx, "  ", models.Address{})
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.CreateItem(ctx, "Free", decimal.Zero)
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.CreateItem(ctx, "Tea Cup", decimal.NewFromInt(3))
	require.NoError(t, err)
	_, err = svc.CreateItem(ctx, "tea  cup", decimal.NewFromInt(4))
	require.ErrorIs(t, err, models.ErrConflict)
}

func TestAddOrderItemAndStatusLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	memberID, err := svc.CreateMember(ctx, "Carol", models.Address{City: "Incheon"})
	require.NoError(t, err)
	itemID, err := svc.CreateItem(ctx, "Mug", decimal.NewFromInt(8))
	require.NoError(t, err)
	orderID, err := svc.PlaceOrder(ctx, memberID, []Line{{ItemID: itemID, Quantity: 1}})
	require.NoError(t, err)

	require.NoError(t, svc.AddOrderItem(ctx, orderID, itemID, 3))

	var lines int
	require.NoError(t, svc.db.QueryRow("SELECT COUNT(*) FROM order_items WHERE order_id = ?", orderID).Scan(&lines))
	assert.Equal(t, 2, lines)

	require.NoError(t, svc.ChangeStatus(ctx, orderID, models.StatusShipped))
	err = svc.AddOrderItem(ctx, orderID, itemID, 1)
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	err = svc.ChangeStatus(ctx, orderID, models.StatusPlaced)
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	require.NoError(t, svc.ChangeStatus(ctx, orderID, models.StatusCompleted))
	var deliveryStatus string
	require.NoError(t, svc.db.QueryRow(
		"SELECT d.status FROM orders o JOIN deliveries d ON d.id = o.delivery_id WHERE o.id = ?", orderID,
	).Scan(&deliveryStatus))
	assert.Equal(t, "COMPLETED", deliveryStatus)

	err = svc.ChangeStatus(ctx, orderID, models.StatusCancelled)
	require.ErrorIs(t, err, models.ErrInvalidTransition, "completed is terminal")

	err = svc.ChangeStatus(ctx, 12345, models.StatusCancelled)
	require.ErrorIs(t, err, models.ErrNotFound)
}

type stubResult struct {
	n   int64
	err error
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestStatusUpdated(t *testing.T) {
	require.NoError(t, statusUpdated(stubResult{n: 1}, 7))

	err := statusUpdated(stubResult{n: 0}, 7)
	require.ErrorIs(t, err, models.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "order 7 changed concurrently")

	driverErr := errors.New("rows affected not supported")
	err = statusUpdated(stubResult{err: driverErr}, 7)
	require.ErrorIs(t, err, driverErr)
	assert.NotErrorIs(t, err, models.ErrInvalidTransition)
}
