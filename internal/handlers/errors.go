package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/01moynul/orderquery/internal/response"
	"github.com/01moynul/orderquery/internal/validation"
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request id middleware sets.
const RequestIDKey = "requestID"

// fail maps err onto a status code and writes the error envelope. Only
// server-side failures are logged; their detail never reaches the client.
func (h *Handlers) fail(c *gin.Context, err error) {
	var ve *validation.Error
	switch {
	case errors.As(err, &ve):
		response.Fail(c, http.StatusBadRequest, response.BadRequest, ve.Fields)
	case errors.Is(err, models.ErrInvalidArgument), errors.Is(err, models.ErrNoLineItems):
		response.Fail(c, http.StatusBadRequest, response.BadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.NotFound, err.Error())
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrConflict):
		response.Fail(c, http.StatusConflict, response.Conflict, err.Error())
	default:
		log.Printf("ERROR: request %s %s %s: %v", c.GetString(RequestIDKey), c.Request.Method, c.FullPath(), err)
		response.Fail(c, http.StatusInternalServerError, response.InternalFailure, nil)
	}
}
