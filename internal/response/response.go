// Package response is the uniform JSON envelope every endpoint answers with.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Messages carried in the envelope.
const (
	ReadOrder       = "READ_ORDER"
	ReadOrders      = "READ_ORDERS"
	CreatedOrder    = "CREATED_ORDER"
	UpdatedOrder    = "UPDATED_ORDER"
	CreatedMember   = "CREATED_MEMBER"
	CreatedItem     = "CREATED_ITEM"
	BadRequest      = "BAD_REQUEST"
	NotFound        = "NOT_FOUND"
	Conflict        = "CONFLICT"
	InternalFailure = "INTERNAL_SERVER_ERROR"
	Pong            = "PONG"
)

// Result is the envelope {status_code, message, data}.
type Result struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// Res builds an envelope.
func Res(status int, message string, data any) Result {
	return Result{StatusCode: status, Message: message, Data: data}
}

// OK writes a 200 envelope.
func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Res(http.StatusOK, message, data))
}

// Created writes a 201 envelope.
func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Res(http.StatusCreated, message, data))
}

// Fail aborts the request with an error envelope; detail lands in data.
func Fail(c *gin.Context, status int, message string, detail any) {
	c.AbortWithStatusJSON(status, Res(status, message, detail))
}
