package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPlaced, StatusShipped, true},
		{StatusPlaced, StatusCompleted, true},
		{StatusShipped, StatusCompleted, true},
		{StatusPlaced, StatusCancelled, true},
		{StatusShipped, StatusCancelled, true},
		{StatusShipped, StatusPlaced, false},
		{StatusPlaced, StatusPlaced, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPlaced, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestOrderTransition(t *testing.T) {
	o := Order{ID: 1, Status: StatusPlaced}
	require.NoError(t, o.Transition(StatusShipped))
	assert.Equal(t, StatusShipped, o.Status)

	err := o.Transition(StatusPlaced)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusShipped, o.Status)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("shipped")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNewOrderRequiresLines(t *testing.T) {
	_, err := NewOrder(1, nil, time.Now())
	require.ErrorIs(t, err, ErrNoLineItems)

	item := Item{ID: 7, Name: "book", Price: decimal.NewFromInt(10)}
	li, err := NewOrderItem(item, 2)
	require.NoError(t, err)
	assert.True(t, li.UnitPrice.Equal(decimal.NewFromInt(10)))

	o, err := NewOrder(1, []OrderItem{li}, time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("KST", 9*3600)))
	require.NoError(t, err)
	assert.Equal(t, StatusPlaced, o.Status)
	assert.Equal(t, time.UTC, o.OrderDate.Location())
}

func TestNewOrderItemRejectsNonPositiveQuantity(t *testing.T) {
	_, err := NewOrderItem(Item{ID: 1}, 0)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGraphDeduplicatesByIdentity(t *testing.T) {
	g := NewGraph()

	first, isNew := g.PutOrder(Order{ID: 2, Status: StatusPlaced})
	require.True(t, isNew)
	_, isNew = g.PutOrder(Order{ID: 1})
	require.True(t, isNew)
	again, isNew := g.PutOrder(Order{ID: 2, Status: StatusShipped})
	require.False(t, isNew)
	assert.Same(t, first, again)
	assert.Equal(t, StatusPlaced, again.Status)

	assert.Equal(t, []int64{2, 1}, g.OrderIDs())
	assert.Equal(t, 2, g.Len())

	assert.True(t, g.AttachLine(OrderItem{ID: 10, OrderID: 2}))
	assert.True(t, g.AttachLine(OrderItem{ID: 11, OrderID: 2}))
	assert.False(t, g.AttachLine(OrderItem{ID: 10, OrderID: 2}))

	lines, ok := g.Lines(2)
	require.True(t, ok)
	require.Len(t, lines, 2)
	assert.Equal(t, int64(10), lines[0].ID)
	assert.Equal(t, int64(11), lines[1].ID)

	_, ok = g.Lines(1)
	assert.False(t, ok, "collection of order 1 was never loaded")
	g.MarkLinesLoaded(1)
	lines, ok = g.Lines(1)
	assert.True(t, ok)
	assert.Empty(t, lines)
}
