package validation

import "github.com/shopspring/decimal"

// ListQuery is the query string of every list route. Limit stays nil when
// the caller omits it so the Reader can pick a default within its bound.
type ListQuery struct {
	Strategy string `form:"strategy"`
	Offset   int    `form:"offset,default=0" validate:"min=0"`
	Limit    *int   `form:"limit" validate:"omitempty,min=1"`
}

// OrderQuery is the query string of the single-order route.
type OrderQuery struct {
	Strategy string `form:"strategy"`
}

// OrderURI binds the :id path parameter.
type OrderURI struct {
	ID int64 `uri:"id" validate:"required,gt=0"`
}

// LineRequest is one requested line of a new order.
type LineRequest struct {
	ItemID   int64 `json:"itemId" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,min=1"`
}

// PlaceOrderRequest is the payload for POST /api/v1/order. Either the single
// itemId/quantity pair or a non-empty items list must be given.
type PlaceOrderRequest struct {
	MemberID int64         `json:"memberId" validate:"required,gt=0"`
	ItemID   int64         `json:"itemId,omitempty" validate:"omitempty,gt=0"`
	Quantity int           `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Items    []LineRequest `json:"items,omitempty" validate:"omitempty,dive"`
}

// Lines flattens the request into its line list.
func (r PlaceOrderRequest) Lines() []LineRequest {
	if r.ItemID == 0 {
		return r.Items
	}
	return append([]LineRequest{{ItemID: r.ItemID, Quantity: r.Quantity}}, r.Items...)
}

// AddOrderItemRequest is the payload for PUT /api/v1/add-orderitem.
type AddOrderItemRequest struct {
	OrderID  int64 `json:"orderId" validate:"required,gt=0"`
	ItemID   int64 `json:"itemId" validate:"required,gt=0"`
	Quantity int   `json:"quantity" validate:"required,min=1"`
}

// ChangeStatusRequest is the payload for PATCH /api/v1/order/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PLACED SHIPPED CANCELLED COMPLETED"`
}

// CreateMemberRequest is the payload for POST /api/v1/members.
type CreateMemberRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	City    string `json:"city" validate:"max=255"`
	Street  string `json:"street" validate:"max=255"`
	Zipcode string `json:"zipcode" validate:"max=32"`
}

// CreateItemRequest is the payload for POST /api/v1/items.
type CreateItemRequest struct {
	Name  string          `json:"name" validate:"required,max=255"`
	Price decimal.Decimal `json:"price"`
}
