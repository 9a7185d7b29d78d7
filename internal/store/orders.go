package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/adilbekov/orders-api/internal/database"
	"github.com/adilbekov/orders-api/internal/models"
)

type CreateOrderRequest struct {
	CustomerID int64
	Status     string
	Items      []OrderItemRequest
}

type OrderItemRequest struct {
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// CreateOrder inserts the order and all its items in one transaction, so a
// failed item insert never leaves a partial order behind. An empty status
// falls back to Draft, matching the column default.
func CreateOrder(ctx context.Context, db *sql.DB, req CreateOrderRequest) (*models.Order, error) {
	status := req.Status
	if status == "" {
		status = models.OrderStatusDraft
	}
	if !models.ValidOrderStatus(status) {
		return nil, database.ErrInvalidStatus
	}

	var order *models.Order

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx,
			"SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)",
			req.CustomerID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check customer exists: %w", err)
		}
		if !exists {
			return database.ErrCustomerNotFound
		}

		order = &models.Order{Items: []models.OrderItem{}}
		err = tx.QueryRowContext(ctx,
			`INSERT INTO orders (customer_id, status)
			 VALUES ($1, $2)
			 RETURNING id, customer_id, date, status`,
			req.CustomerID, status).Scan(
			&order.ID,
			&order.CustomerID,
			&order.Date,
			&order.Status,
		)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, item := range req.Items {
			persisted := models.OrderItem{}
			err = tx.QueryRowContext(ctx,
				`INSERT INTO order_items (order_id, product_name, quantity, price)
				 VALUES ($1, $2, $3, $4)
				 RETURNING id, order_id, product_name, quantity, price`,
				order.ID, item.ProductName, item.Quantity, item.Price).Scan(
				&persisted.ID,
				&persisted.OrderID,
				&persisted.ProductName,
				&persisted.Quantity,
				&persisted.Price,
			)
			if err != nil {
				return fmt.Errorf("create order item: %w", err)
			}
			order.Items = append(order.Items, persisted)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return order, nil
}

func GetOrder(ctx context.Context, db *sql.DB, id int64) (*models.Order, error) {
	order := &models.Order{}

	query := `
		SELECT id, customer_id, date, status
		FROM orders
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.Date,
		&order.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id`

	rows, err := db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductName,
			&item.Quantity,
			&item.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	order.Items = items

	return order, nil
}

func UpdateOrderStatus(ctx context.Context, db *sql.DB, id int64, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, database.ErrInvalidStatus
	}

	order := &models.Order{}

	query := `
		UPDATE orders
		SET status = $1
		WHERE id = $2
		RETURNING id, customer_id, date, status`

	err := db.QueryRowContext(ctx, query, status, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.Date,
		&order.Status,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	return order, nil
}

// DeleteOrder refuses to delete shipped orders. The status check and the
// delete run in one transaction so a concurrent status update cannot slip
// between them.
func DeleteOrder(ctx context.Context, db *sql.DB, id int64) error {
	return database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var status string
		err := tx.QueryRowContext(ctx,
			`SELECT status FROM orders WHERE id = $1 FOR UPDATE`,
			id).Scan(&status)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrOrderNotFound
			}
			return fmt.Errorf("get order status: %w", err)
		}

		if status == models.OrderStatusShipped {
			return database.ErrOrderShipped
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete order: %w", err)
		}

		return nil
	})
}
