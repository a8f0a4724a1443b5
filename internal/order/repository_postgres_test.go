package order

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
)

func testOrder() Order {
	return Order{
		OrderNumber:     "ORD-20260831-ABCD1234",
		UserID:          7,
		Status:          StatusPending,
		PaymentStatus:   PaymentUnpaid,
		SubTotal:        decimal.RequireFromString("100.00"),
		Tax:             decimal.RequireFromString("10.00"),
		ShippingCost:    decimal.Zero,
		TotalAmount:     decimal.RequireFromString("110.00"),
		ShippingName:    "Anan",
		ShippingAddress: "1 Main Road",
		Items: []Item{{
			ProductID:   1,
			ProductName: "Keyboard",
			UnitPrice:   decimal.RequireFromString("50.00"),
			Quantity:    2,
			LineTotal:   decimal.RequireFromString("100.00"),
		}},
	}
}

func TestCreateFromCartCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "created_at", "updated_at"}).
			AddRow(11, "2026-08-31T00:00:00Z", "2026-08-31T00:00:00Z"))
	mock.ExpectQuery("INSERT INTO order_items").
		WillReturnRows(sqlmock.NewRows([]string{"order_item_id"}).AddRow(21))
	mock.ExpectExec("UPDATE products").
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.CreateFromCart(testOrder())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != 11 || got.Items[0].ID != 21 || got.Items[0].OrderID != 11 {
		t.Fatalf("ids not assigned: %+v", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateFromCartRollsBackOnStockRace(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "created_at", "updated_at"}).
			AddRow(11, "2026-08-31T00:00:00Z", "2026-08-31T00:00:00Z"))
	mock.ExpectQuery("INSERT INTO order_items").
		WillReturnRows(sqlmock.NewRows([]string{"order_item_id"}).AddRow(21))
	// the conditional decrement matches zero rows: another checkout won
	mock.ExpectExec("UPDATE products").
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = repo.CreateFromCart(testOrder())
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) || stockErr.Product != "Keyboard" {
		t.Fatalf("expected named product in error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancelRestockLosingRaceDoesNotRestock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ord := testOrder()
	ord.ID = 11

	// A concurrent cancel already flipped the row, so the guarded update
	// touches nothing and the stock must stay untouched.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(StatusCancelled, 11).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.CancelRestock(ord); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("cancel restock err = %v, want ErrAlreadyCancelled", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCancelRestockTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	ord := testOrder()
	ord.ID = 11

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(StatusCancelled, 11).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("stock_quantity \\+").
		WithArgs(2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.CancelRestock(ord); err != nil {
		t.Fatalf("cancel restock: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
