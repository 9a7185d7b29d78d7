package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/adilbekov/orders-api/internal/store"
)

type OrderHandler struct {
	db *sql.DB
}

func NewOrderHandler(db *sql.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

// Numeric fields bind through pointers: a literal 0 is a present value,
// and "required" on a non-pointer would read it as missing.
type createOrderRequest struct {
	CustomerID *int64             `json:"customer_id" binding:"required"`
	Status     string             `json:"status"`
	Items      []orderItemRequest `json:"items" binding:"dive"`
}

type orderItemRequest struct {
	ProductName string   `json:"product_name" binding:"required"`
	Quantity    *int     `json:"quantity" binding:"required"`
	Price       *float64 `json:"price" binding:"required"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	items := make([]store.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, store.OrderItemRequest{
			ProductName: item.ProductName,
			Quantity:    *item.Quantity,
			Price:       decimal.NewFromFloat(*item.Price),
		})
	}

	order, err := store.CreateOrder(c.Request.Context(), h.db, store.CreateOrderRequest{
		CustomerID: *req.CustomerID,
		Status:     req.Status,
		Items:      items,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := store.GetOrder(c.Request.Context(), h.db, id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type updateStatusResponse struct {
	OrderID   int64  `json:"order_id"`
	NewStatus string `json:"new_status"`
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	order, err := store.UpdateOrderStatus(c.Request.Context(), h.db, id, req.Status)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, updateStatusResponse{
		OrderID:   order.ID,
		NewStatus: order.Status,
	})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	if err := store.DeleteOrder(c.Request.Context(), h.db, id); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}
