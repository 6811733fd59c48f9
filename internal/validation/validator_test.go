package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/01moynul/orderquery/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderRequest(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		req     PlaceOrderRequest
		wantErr bool
	}{
		{"single item", PlaceOrderRequest{MemberID: 1, ItemID: 2, Quantity: 3}, false},
		{"items list", PlaceOrderRequest{MemberID: 1, Items: []LineRequest{{ItemID: 2, Quantity: 1}}}, false},
		{"no lines", PlaceOrderRequest{MemberID: 1}, true},
		{"item without quantity", PlaceOrderRequest{MemberID: 1, ItemID: 2}, true},
		{"missing member", PlaceOrderRequest{ItemID: 2, Quantity: 1}, true},
		{"bad line", PlaceOrderRequest{MemberID: 1, Items: []LineRequest{{ItemID: 2, Quantity: 0}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(v, tt.req)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, models.ErrInvalidArgument)
			var ve *Error
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Fields)
		})
	}

	lines := PlaceOrderRequest{MemberID: 1, ItemID: 2, Quantity: 3, Items: []LineRequest{{ItemID: 4, Quantity: 1}}}.Lines()
	assert.Equal(t, []LineRequest{{ItemID: 2, Quantity: 3}, {ItemID: 4, Quantity: 1}}, lines)
}

func TestCreateItemRequestPrice(t *testing.T) {
	v := New()
	assert.NoError(t, Struct(v, CreateItemRequest{Name: "Book", Price: decimal.NewFromInt(10)}))
	assert.ErrorIs(t, Struct(v, CreateItemRequest{Name: "Book", Price: decimal.Zero}), models.ErrInvalidArgument)
}

func TestChangeStatusRequest(t *testing.T) {
	v := New()
	assert.NoError(t, Struct(v, ChangeStatusRequest{Status: "SHIPPED"}))
	assert.Error(t, Struct(v, ChangeStatusRequest{Status: "LOST"}))
}

func newContext(method, target, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindQueryDefaults(t *testing.T) {
	v := New()

	var q ListQuery
	require.NoError(t, BindQuery(newContext(http.MethodGet, "/api/orders", ""), &q, v))
	assert.Equal(t, ListQuery{Offset: 0}, q)
	assert.Nil(t, q.Limit, "an omitted limit is left to the reader")

	q = ListQuery{}
	require.NoError(t, BindQuery(newContext(http.MethodGet, "/api/orders?offset=20&limit=5&strategy=plain", ""), &q, v))
	require.NotNil(t, q.Limit)
	assert.Equal(t, "plain", q.Strategy)
	assert.Equal(t, 20, q.Offset)
	assert.Equal(t, 5, *q.Limit)

	q = ListQuery{}
	err := BindQuery(newContext(http.MethodGet, "/api/orders?limit=0", ""), &q, v)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	q = ListQuery{}
	err = BindQuery(newContext(http.MethodGet, "/api/orders?offset=-1", ""), &q, v)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	q = ListQuery{}
	err = BindQuery(newContext(http.MethodGet, "/api/orders?limit=abc", ""), &q, v)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	var req AddOrderItemRequest
	err := BindAndValidate(newContext(http.MethodPut, "/api/v1/add-orderitem", "{"), &req, New())
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	req = AddOrderItemRequest{}
	err = BindAndValidate(newContext(http.MethodPut, "/api/v1/add-orderitem", `{"orderId":1,"itemId":2,"quantity":3}`), &req, New())
	require.NoError(t, err)
	assert.Equal(t, AddOrderItemRequest{OrderID: 1, ItemID: 2, Quantity: 3}, req)
}
