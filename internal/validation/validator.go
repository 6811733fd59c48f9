// Package validation binds request payloads and checks them with
// go-playground/validator.
package validation

import (
	"errors"
	"fmt"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a validator with the struct-level rules registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterStructValidation(placeOrderStructValidation, PlaceOrderRequest{})
	v.RegisterStructValidation(createItemStructValidation, CreateItemRequest{})
	return v
}

// placeOrderStructValidation requires at least one line, and a quantity
// whenever the single itemId form is used.
func placeOrderStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(PlaceOrderRequest)
	if req.ItemID == 0 && len(req.Items) == 0 {
		sl.ReportError(req.Items, "items", "Items", "required_lines", "")
	}
	if req.ItemID != 0 && req.Quantity < 1 {
		sl.ReportError(req.Quantity, "quantity", "Quantity", "required_with_item", "")
	}
}

func createItemStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(CreateItemRequest)
	if !req.Price.IsPositive() {
		sl.ReportError(req.Price, "price", "Price", "gt", "0")
	}
}

// Error carries per-field messages; it matches models.ErrInvalidArgument.
type Error struct {
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string { return fmt.Sprintf("invalid request: %v", e.Err) }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == models.ErrInvalidArgument }

func invalid(err error) *Error {
	return &Error{Fields: validationErrorsToMap(err), Err: err}
}

// Struct validates out, returning an *Error on failure.
func Struct(v *validatorv10.Validate, out any) error {
	if err := v.Struct(out); err != nil {
		return invalid(err)
	}
	return nil
}

// BindAndValidate binds the JSON body into out and validates it.
func BindAndValidate(c *gin.Context, out any, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return invalid(err)
	}
	return Struct(v, out)
}

// BindQuery binds the query string into out and validates it.
func BindQuery(c *gin.Context, out any, v *validatorv10.Validate) error {
	if err := c.ShouldBindQuery(out); err != nil {
		return invalid(err)
	}
	return Struct(v, out)
}

// BindURI binds path parameters into out and validates it.
func BindURI(c *gin.Context, out any, v *validatorv10.Validate) error {
	if err := c.ShouldBindUri(out); err != nil {
		return invalid(err)
	}
	return Struct(v, out)
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = fe.Error()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
