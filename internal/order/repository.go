package order

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/wichananm65/folio-shop-backend/internal/cart"
	"github.com/wichananm65/folio-shop-backend/internal/product"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("empty cart")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyCancelled  = errors.New("order already cancelled")
	ErrForbidden         = errors.New("forbidden")
)

// InsufficientStockError names the product whose requested quantity
// exceeds the available stock.
type InsufficientStockError struct {
	Product string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.Product)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

type Repository interface {
	// CartLines returns the user's cart joined with live product data.
	CartLines(userID int) ([]cart.Line, error)
	// CreateFromCart persists the order with its items, decrements each
	// product's stock with a conditional update and clears the user's
	// cart, all in one transaction. A conditional decrement touching zero
	// rows aborts the whole transaction with ErrInsufficientStock.
	CreateFromCart(ord Order) (Order, error)
	GetByID(id int) (Order, error)
	GetByPaymentIntent(intentID string) (Order, error)
	ListByUser(userID int) ([]Order, error)
	ListAll() ([]Order, error)
	// UpdateStatus writes status and optional shipped/delivered stamps.
	UpdateStatus(ord Order) error
	UpdatePaymentStatus(id int, ps PaymentStatus) error
	SetPaymentIntent(id int, intentID string) error
	// CancelRestock marks the order cancelled and restores each line's
	// quantity onto the product's stock in one transaction.
	CancelRestock(ord Order) error
}

// InMemoryRepository emulates the transactional behaviour on top of the
// in-memory cart and product repositories; used by the service tests.
type InMemoryRepository struct {
	mu       sync.Mutex
	orders   map[int]Order
	nextID   int
	carts    *cart.InMemoryRepository
	products *product.InMemoryRepository
}

func NewInMemoryRepository(carts *cart.InMemoryRepository, products *product.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{orders: map[int]Order{}, nextID: 1, carts: carts, products: products}
}

func (r *InMemoryRepository) CartLines(userID int) ([]cart.Line, error) {
	return r.carts.Lines(userID)
}

func (r *InMemoryRepository) CreateFromCart(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// validate every decrement before applying any, mirroring the
	// all-or-nothing transaction of the real repository
	snapshot := make([]product.Product, 0, len(ord.Items))
	for _, it := range ord.Items {
		p, err := r.products.GetByID(it.ProductID)
		if err != nil {
			return Order{}, err
		}
		if p.StockQuantity < it.Quantity {
			return Order{}, ErrInsufficientStock
		}
		snapshot = append(snapshot, p)
	}

	for i, it := range ord.Items {
		p := snapshot[i]
		p.StockQuantity -= it.Quantity
		if _, err := r.products.Update(p.ID, p); err != nil {
			return Order{}, err
		}
	}

	ord.ID = r.nextID
	r.nextID++
	for i := range ord.Items {
		ord.Items[i].ID = i + 1
		ord.Items[i].OrderID = ord.ID
	}
	r.orders[ord.ID] = ord

	if err := r.carts.Clear(ord.UserID); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id int) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ord, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return ord, nil
}

func (r *InMemoryRepository) GetByPaymentIntent(intentID string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ord := range r.orders {
		if ord.PaymentIntentID != nil && *ord.PaymentIntentID == intentID {
			return ord, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if ord.UserID == userID {
			out = append(out, ord)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) ListAll() ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, 0, len(r.orders))
	for _, ord := range r.orders {
		out = append(out, ord)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) UpdateStatus(ord Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[ord.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Status = ord.Status
	existing.ShippedAt = ord.ShippedAt
	existing.DeliveredAt = ord.DeliveredAt
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.orders[ord.ID] = existing
	return nil
}

func (r *InMemoryRepository) UpdatePaymentStatus(id int, ps PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	existing.PaymentStatus = ps
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.orders[id] = existing
	return nil
}

func (r *InMemoryRepository) SetPaymentIntent(id int, intentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[id]
	if !ok {
		return ErrNotFound
	}
	existing.PaymentIntentID = &intentID
	r.orders[id] = existing
	return nil
}

func (r *InMemoryRepository) CancelRestock(ord Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[ord.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	for _, it := range existing.Items {
		p, err := r.products.GetByID(it.ProductID)
		if err != nil {
			continue
		}
		p.StockQuantity += it.Quantity
		r.products.Update(p.ID, p)
	}

	existing.Status = StatusCancelled
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	r.orders[ord.ID] = existing
	return nil
}
