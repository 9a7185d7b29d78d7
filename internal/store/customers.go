package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/adilbekov/orders-api/internal/database"
	"github.com/adilbekov/orders-api/internal/models"
)

func CreateCustomer(ctx context.Context, db *sql.DB, name, email string) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		INSERT INTO customers (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email`

	err := db.QueryRowContext(ctx, query, name, email).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, database.ErrEmailTaken
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return customer, nil
}

func GetCustomer(ctx context.Context, db *sql.DB, id int64) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		SELECT id, name, email
		FROM customers
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Email,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return customer, nil
}

// DeleteCustomer removes the customer row; the orders and order_items
// foreign keys cascade the rest.
func DeleteCustomer(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrCustomerNotFound
	}

	return nil
}

// TotalSpend sums quantity * price over every item of every order the
// customer owns, regardless of order status.
func TotalSpend(ctx context.Context, db *sql.DB, customerID int64) (decimal.Decimal, error) {
	var exists bool
	err := db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)",
		customerID).Scan(&exists)
	if err != nil {
		return decimal.Zero, fmt.Errorf("check customer exists: %w", err)
	}
	if !exists {
		return decimal.Zero, database.ErrCustomerNotFound
	}

	var total decimal.Decimal

	query := `
		SELECT COALESCE(SUM(oi.price * oi.quantity), 0)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.customer_id = $1`

	err = db.QueryRowContext(ctx, query, customerID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total spend: %w", err)
	}

	return total, nil
}
