package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/adilbekov/orders-api/internal/database"
	"github.com/adilbekov/orders-api/internal/store"
)

func TestCreateCustomer(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	customer, err := store.CreateCustomer(ctx, db, "Alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Create customer: %v", err)
	}

	if customer.ID == 0 {
		t.Error("Customer ID should not be 0")
	}

	fetched, err := store.GetCustomer(ctx, db, customer.ID)
	if err != nil {
		t.Fatalf("Get customer: %v", err)
	}

	if fetched.ID != customer.ID {
		t.Errorf("Expected ID %d, got %d", customer.ID, fetched.ID)
	}
	if fetched.Name != "Alice" {
		t.Errorf("Expected name Alice, got %s", fetched.Name)
	}
	if fetched.Email != "alice@example.com" {
		t.Errorf("Expected email alice@example.com, got %s", fetched.Email)
	}
}

func TestCreateCustomerDuplicateEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	_, err := store.CreateCustomer(ctx, db, "Bob", "bob@example.com")
	if err != nil {
		t.Fatalf("Create customer: %v", err)
	}

	_, err = store.CreateCustomer(ctx, db, "Bobby", "bob@example.com")
	if !errors.Is(err, database.ErrEmailTaken) {
		t.Errorf("Expected email taken error, got: %v", err)
	}

	var count int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM customers WHERE email = $1`,
		"bob@example.com").Scan(&count)
	if err != nil {
		t.Fatalf("Count customers: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 customer with email, got %d", count)
	}
}

func TestTotalSpendNoOrders(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	customer, err := store.CreateCustomer(ctx, db, "Carol", "carol@example.com")
	if err != nil {
		t.Fatalf("Create customer: %v", err)
	}

	total, err := store.TotalSpend(ctx, db, customer.ID)
	if err != nil {
		t.Fatalf("Total spend: %v", err)
	}

	if !total.Equal(decimal.Zero) {
		t.Errorf("Expected total 0, got %s", total)
	}
}

func TestTotalSpendUnknownCustomer(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	_, err := store.TotalSpend(ctx, db, 9999)
	if !errors.Is(err, database.ErrCustomerNotFound) {
		t.Errorf("Expected customer not found error, got: %v", err)
	}
}

func TestDeleteCustomerCascades(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	customer, err := store.CreateCustomer(ctx, db, "Dave", "dave@example.com")
	if err != nil {
		t.Fatalf("Create customer: %v", err)
	}

	order, err := store.CreateOrder(ctx, db, store.CreateOrderRequest{
		CustomerID: customer.ID,
		Items: []store.OrderItemRequest{
			{ProductName: "Widget", Quantity: 2, Price: decimal.NewFromFloat(9.99)},
		},
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	if err := store.DeleteCustomer(ctx, db, customer.ID); err != nil {
		t.Fatalf("Delete customer: %v", err)
	}

	_, err = store.GetCustomer(ctx, db, customer.ID)
	if !errors.Is(err, database.ErrCustomerNotFound) {
		t.Errorf("Expected customer not found error, got: %v", err)
	}

	_, err = store.GetOrder(ctx, db, order.ID)
	if !errors.Is(err, database.ErrOrderNotFound) {
		t.Errorf("Expected order not found error, got: %v", err)
	}

	var count int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM order_items WHERE order_id = $1`,
		order.ID).Scan(&count)
	if err != nil {
		t.Fatalf("Count order items: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 orphaned items, got %d", count)
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	err := store.DeleteCustomer(context.Background(), db, 9999)
	if !errors.Is(err, database.ErrCustomerNotFound) {
		t.Errorf("Expected customer not found error, got: %v", err)
	}
}
