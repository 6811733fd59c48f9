package handlers

import (
	"strconv"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/ordering"
	"github.com/01moynul/orderquery/internal/query"
	"github.com/01moynul/orderquery/internal/response"
	"github.com/01moynul/orderquery/internal/validation"
	"github.com/gin-gonic/gin"
)

//
// --- Order Read Handlers ---
//

// GetOrder is the handler for GET /api/orders/:id?strategy=
func (h *Handlers) GetOrder(c *gin.Context) {
	var q validation.OrderQuery
	if err := validation.BindQuery(c, &q, h.Validate); err != nil {
		h.fail(c, err)
		return
	}
	s, err := query.ParseStrategy(q.Strategy, h.DefaultStrategy)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.getOrder(c, s)
}

// GetOrderWith serves a single-order route pinned to strategy s.
func (h *Handlers) GetOrderWith(s query.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) { h.getOrder(c, s) }
}

func (h *Handlers) getOrder(c *gin.Context, s query.Strategy) {
	// 1. --- Parse Order ID ---
	var uri validation.OrderURI
	if err := validation.BindURI(c, &uri, h.Validate); err != nil {
		h.fail(c, err)
		return
	}

	// 2. --- Fetch ---
	data, err := h.Reader.Order(c.Request.Context(), s, uri.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	// 3. --- Send Response ---
	response.OK(c, response.ReadOrder, data)
}

// ListOrders is the handler for GET /api/orders?strategy=&offset=&limit=
func (h *Handlers) ListOrders(c *gin.Context) {
	h.listOrders(c, "")
}

// ListOrdersWith serves a list route pinned to strategy s.
func (h *Handlers) ListOrdersWith(s query.Strategy) gin.HandlerFunc {
	return func(c *gin.Context) { h.listOrders(c, s) }
}

func (h *Handlers) listOrders(c *gin.Context, pinned query.Strategy) {
	// 1. --- Bind Paging ---
	var q validation.ListQuery
	if err := validation.BindQuery(c, &q, h.Validate); err != nil {
		h.fail(c, err)
		return
	}
	s := pinned
	if s == "" {
		var err error
		if s, err = query.ParseStrategy(q.Strategy, h.DefaultStrategy); err != nil {
			h.fail(c, err)
			return
		}
	}
	limit := h.Reader.DefaultLimit()
	if q.Limit != nil {
		limit = *q.Limit
	}
	page, err := h.Reader.Page(q.Offset, limit)
	if err != nil {
		h.fail(c, err)
		return
	}

	// 2. --- Fetch ---
	data, err := h.Reader.Orders(c.Request.Context(), s, page)
	if err != nil {
		h.fail(c, err)
		return
	}

	// 3. --- Send Response ---
	response.OK(c, response.ReadOrders, data)
}

//
// --- Order Write Handlers ---
//

// PlaceOrder is the handler for POST /api/v1/order
func (h *Handlers) PlaceOrder(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input validation.PlaceOrderRequest
	if err := validation.BindAndValidate(c, &input, h.Validate); err != nil {
		h.fail(c, err)
		return
	}

	// 2. --- Place Order ---
	requested := input.Lines()
	lines := make([]ordering.Line, 0, len(requested))
	for _, l := range requested {
		lines = append(lines, ordering.Line{ItemID: l.ItemID, Quantity: l.Quantity})
	}
	orderID, err := h.Orders.PlaceOrder(c.Request.Context(), input.MemberID, lines)
	if err != nil {
		h.fail(c, err)
		return
	}

	// 3. --- Send Success Response ---
	c.Header("Location", "/api/orders/"+strconv.FormatInt(orderID, 10))
	response.Created(c, response.CreatedOrder, gin.H{"created_order_id": orderID})
}

// AddOrderItem is the handler for PUT /api/v1/add-orderitem. It answers with
// the updated order.
func (h *Handlers) AddOrderItem(c *gin.Context) {
	var input validation.AddOrderItemRequest
	if err := validation.BindAndValidate(c, &input, h.Validate); err != nil {
		h.fail(c, err)
		return
	}

	if err := h.Orders.AddOrderItem(c.Request.Context(), input.OrderID, input.ItemID, input.Quantity); err != nil {
		h.fail(c, err)
		return
	}
	h.respondUpdated(c, input.OrderID)
}

// ChangeOrderStatus is the handler for PATCH /api/v1/order/:id/status
func (h *Handlers) ChangeOrderStatus(c *gin.Context) {
	var uri validation.OrderURI
	if err := validation.BindURI(c, &uri, h.Validate); err != nil {
		h.fail(c, err)
		return
	}
	var input validation.ChangeStatusRequest
	if err := validation.BindAndValidate(c, &input, h.Validate); err != nil {
		h.fail(c, err)
		return
	}
	next, err := models.ParseStatus(input.Status)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.Orders.ChangeStatus(c.Request.Context(), uri.ID, next); err != nil {
		h.fail(c, err)
		return
	}
	h.respondUpdated(c, uri.ID)
}

// respondUpdated re-reads the order from the primary so the caller sees
// its own write even when the read-only pool lags.
func (h *Handlers) respondUpdated(c *gin.Context, orderID int64) {
	data, err := h.PrimaryReader.Order(c.Request.Context(), query.Paged, orderID)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, response.UpdatedOrder, data)
}
