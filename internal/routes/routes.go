package routes

import (
	"github.com/01moynul/orderquery/internal/handlers"
	"github.com/01moynul/orderquery/internal/query"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CORSMiddleware allows the configured frontend origin to call the API.
func CORSMiddleware(allowOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-Id, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH")

		// Preflight
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestIDMiddleware keeps an incoming X-Request-Id or mints a new one.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(handlers.RequestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// SetupRouter registers every route. The versioned order routes are kept as
// aliases pinned to one retrieval strategy each.
func SetupRouter(h *handlers.Handlers, allowOrigin string) *gin.Engine {
	router := gin.Default()

	router.Use(CORSMiddleware(allowOrigin))
	router.Use(RequestIDMiddleware())

	router.GET("/ping", h.Ping)

	api := router.Group("/api")
	{
		// --- Strategy Selector ---
		api.GET("/orders", h.ListOrders)
		api.GET("/orders/:id", h.GetOrder)

		// --- Single Order Aliases ---
		api.GET("/v1/order/:id", h.GetOrderWith(query.Plain))
		api.GET("/v2/simple-order/:id", h.GetOrderWith(query.JoinToOne))

		// --- Order List Aliases ---
		api.GET("/v1/orders", h.ListOrdersWith(query.Plain))
		api.GET("/v2/orders", h.ListOrdersWith(query.JoinFetch))
		api.GET("/v2.1/orders", h.ListOrdersWith(query.JoinFetchDistinct))
		api.GET("/v3/orders", h.ListOrdersWith(query.JoinFetchDistinct))
		api.GET("/v3.1/orders", h.ListOrdersWith(query.Paged))
		api.GET("/v4/orders", h.ListOrdersWith(query.ProjectionBatched))
		api.GET("/v5/orders", h.ListOrdersWith(query.ProjectionBatched))
		api.GET("/v2/simple-orders", h.ListOrdersWith(query.JoinToOne))
		api.GET("/v3/simple-orders", h.ListOrdersWith(query.Projection))

		// --- Writes ---
		api.POST("/v1/order", h.PlaceOrder)
		api.PUT("/v1/add-orderitem", h.AddOrderItem)
		api.PATCH("/v1/order/:id/status", h.ChangeOrderStatus)
		api.POST("/v1/members", h.CreateMember)
		api.POST("/v1/items", h.CreateItem)
	}

	return router
}
