package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adilbekov/orders-api/internal/database"
)

func NewRouter(db *sql.DB) *gin.Engine {
	r := gin.Default()

	customers := NewCustomerHandler(db)
	orders := NewOrderHandler(db)

	r.GET("/", Welcome)

	r.POST("/customers", customers.CreateCustomer)
	r.GET("/customers/:id", customers.GetCustomer)
	r.DELETE("/customers/:id", customers.DeleteCustomer)
	r.GET("/customers/:id/total-spend", customers.GetTotalSpend)

	r.POST("/orders", orders.CreateOrder)
	r.GET("/orders/:id", orders.GetOrder)
	r.PUT("/orders/:id/status", orders.UpdateOrderStatus)
	r.DELETE("/orders/:id", orders.DeleteOrder)

	return r
}

func Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Orders API",
		"available_routes": gin.H{
			"POST /customers":                 "Create a new customer",
			"GET /customers/{id}":             "Get a customer",
			"DELETE /customers/{id}":          "Delete a customer and all its orders",
			"GET /customers/{id}/total-spend": "Get total spending of a customer",
			"POST /orders":                    "Create a new order with items",
			"GET /orders/{id}":                "Get an order with its items",
			"PUT /orders/{id}/status":         "Update order status",
			"DELETE /orders/{id}":             "Delete order (blocked if shipped)",
		},
	})
}

// respondStoreError maps store errors onto HTTP statuses: missing records
// to 404, business-rule violations to 400, duplicate email to 409.
func respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, database.ErrCustomerNotFound),
		errors.Is(err, database.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrInvalidStatus),
		errors.Is(err, database.ErrOrderShipped):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
