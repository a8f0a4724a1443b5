package cart

import (
	"errors"
	"sync"

	"github.com/wichananm65/folio-shop-backend/internal/product"
)

var (
	ErrLineNotFound    = errors.New("cart item not found")
	ErrProductNotFound = errors.New("product not found")
)

type Repository interface {
	Lines(userID int) ([]Line, error)
	LineByID(userID, itemID int) (Line, error)
	// ProductLine returns a zero-quantity Line describing the product,
	// or ErrProductNotFound when the product is missing or inactive.
	ProductLine(productID int) (Line, error)
	// SaveLine upserts the (user, product) pair to the given quantity and
	// returns the cart item id.
	SaveLine(userID, productID, qty int) (int, error)
	SetQuantity(itemID, qty int) error
	DeleteLine(itemID int) error
	Clear(userID int) error
}

// InMemoryRepository backs the service with a product slice for tests.
type InMemoryRepository struct {
	mu       sync.Mutex
	products *product.InMemoryRepository
	lines    map[int]*memLine
	nextID   int
}

type memLine struct {
	itemID    int
	userID    int
	productID int
	qty       int
}

func NewInMemoryRepository(products *product.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{products: products, lines: map[int]*memLine{}, nextID: 1}
}

func (r *InMemoryRepository) toLine(ml *memLine) (Line, error) {
	p, err := r.products.GetByID(ml.productID)
	if err != nil {
		return Line{}, ErrProductNotFound
	}
	return Line{
		ItemID:       ml.itemID,
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductImage: p.ImageURL,
		Price:        p.Price,
		SalePrice:    p.SalePrice,
		Stock:        p.StockQuantity,
		Quantity:     ml.qty,
	}, nil
}

func (r *InMemoryRepository) Lines(userID int) ([]Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Line, 0)
	for _, ml := range r.lines {
		if ml.userID != userID {
			continue
		}
		line, err := r.toLine(ml)
		if err != nil {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

func (r *InMemoryRepository) LineByID(userID, itemID int) (Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ml, ok := r.lines[itemID]
	if !ok || ml.userID != userID {
		return Line{}, ErrLineNotFound
	}
	return r.toLine(ml)
}

func (r *InMemoryRepository) ProductLine(productID int) (Line, error) {
	p, err := r.products.GetByID(productID)
	if err != nil || !p.IsActive {
		return Line{}, ErrProductNotFound
	}
	return Line{
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductImage: p.ImageURL,
		Price:        p.Price,
		SalePrice:    p.SalePrice,
		Stock:        p.StockQuantity,
	}, nil
}

func (r *InMemoryRepository) SaveLine(userID, productID, qty int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ml := range r.lines {
		if ml.userID == userID && ml.productID == productID {
			ml.qty = qty
			return ml.itemID, nil
		}
	}

	id := r.nextID
	r.nextID++
	r.lines[id] = &memLine{itemID: id, userID: userID, productID: productID, qty: qty}
	return id, nil
}

func (r *InMemoryRepository) SetQuantity(itemID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ml, ok := r.lines[itemID]
	if !ok {
		return ErrLineNotFound
	}
	ml.qty = qty
	return nil
}

func (r *InMemoryRepository) DeleteLine(itemID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lines[itemID]; !ok {
		return ErrLineNotFound
	}
	delete(r.lines, itemID)
	return nil
}

func (r *InMemoryRepository) Clear(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, ml := range r.lines {
		if ml.userID == userID {
			delete(r.lines, id)
		}
	}
	return nil
}
