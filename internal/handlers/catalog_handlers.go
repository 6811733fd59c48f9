package handlers

import (
	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/response"
	"github.com/01moynul/orderquery/internal/validation"
	"github.com/gin-gonic/gin"
)

// CreateMember is the handler for POST /api/v1/members
func (h *Handlers) CreateMember(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input validation.CreateMemberRequest
	if err := validation.BindAndValidate(c, &input, h.Validate); err != nil {
		h.fail(c, err)
		return
	}

	// 2. --- Save to Database ---
	addr := models.Address{City: input.City, Street: input.Street, Zipcode: input.Zipcode}
	id, err := h.Orders.CreateMember(c.Request.Context(), input.Name, addr)
	if err != nil {
		h.fail(c, err)
		return
	}

	// 3. --- Send Success Response ---
	response.Created(c, response.CreatedMember, models.Member{ID: id, Name: input.Name, Address: addr})
}

// CreateItem is the handler for POST /api/v1/items
func (h *Handlers) CreateItem(c *gin.Context) {
	var input validation.CreateItemRequest
	if err := validation.BindAndValidate(c, &input, h.Validate); err != nil {
		h.fail(c, err)
		return
	}

	id, err := h.Orders.CreateItem(c.Request.Context(), input.Name, input.Price)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, response.CreatedItem, gin.H{"id": id, "name": input.Name, "price": input.Price})
}

// Ping is the handler for GET /ping. It checks the read-only pool.
func (h *Handlers) Ping(c *gin.Context) {
	if err := h.DBReadOnly.PingContext(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, response.Pong, nil)
}
