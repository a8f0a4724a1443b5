package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrOutOfStock      = errors.New("product is out of stock")
)

// Service orchestrates cart operations. Every mutation re-checks the
// product's live stock at call time.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func buildCart(lines []Line) Cart {
	cart := Cart{Items: make([]Item, 0, len(lines)), SubTotal: decimal.Zero}
	for _, l := range lines {
		unit := l.UnitPrice()
		lineTotal := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
		cart.Items = append(cart.Items, Item{
			ItemID:    l.ItemID,
			ProductID: l.ProductID,
			Name:      l.ProductName,
			ImageURL:  l.ProductImage,
			UnitPrice: unit,
			Quantity:  l.Quantity,
			LineTotal: lineTotal,
			Stock:     l.Stock,
		})
		cart.SubTotal = cart.SubTotal.Add(lineTotal)
	}
	return cart
}

func (s *Service) Get(userID int) (Cart, error) {
	lines, err := s.repo.Lines(userID)
	if err != nil {
		return Cart{}, err
	}
	return buildCart(lines), nil
}

// Add creates or increments the (user, product) line. The resulting
// quantity is capped at the product's current stock.
func (s *Service) Add(userID, productID, qty int) (Cart, error) {
	if qty < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	info, err := s.repo.ProductLine(productID)
	if err != nil {
		return Cart{}, err
	}
	if info.Stock < 1 {
		return Cart{}, ErrOutOfStock
	}

	current := 0
	lines, err := s.repo.Lines(userID)
	if err != nil {
		return Cart{}, err
	}
	for _, l := range lines {
		if l.ProductID == productID {
			current = l.Quantity
			break
		}
	}

	newQty := current + qty
	if newQty > info.Stock {
		newQty = info.Stock
	}

	if _, err := s.repo.SaveLine(userID, productID, newQty); err != nil {
		return Cart{}, err
	}
	return s.Get(userID)
}

// UpdateQuantity sets a line's quantity. A value of zero or less removes
// the line; anything above the live stock is capped to it.
func (s *Service) UpdateQuantity(userID, itemID, qty int) (Cart, error) {
	line, err := s.repo.LineByID(userID, itemID)
	if err != nil {
		return Cart{}, err
	}

	if qty <= 0 {
		if err := s.repo.DeleteLine(line.ItemID); err != nil {
			return Cart{}, err
		}
		return s.Get(userID)
	}

	if qty > line.Stock {
		qty = line.Stock
	}
	if qty < 1 {
		// stock dropped to zero since the line was added
		if err := s.repo.DeleteLine(line.ItemID); err != nil {
			return Cart{}, err
		}
		return s.Get(userID)
	}

	if err := s.repo.SetQuantity(line.ItemID, qty); err != nil {
		return Cart{}, err
	}
	return s.Get(userID)
}

func (s *Service) Remove(userID, itemID int) (Cart, error) {
	line, err := s.repo.LineByID(userID, itemID)
	if err != nil {
		return Cart{}, err
	}
	if err := s.repo.DeleteLine(line.ItemID); err != nil {
		return Cart{}, err
	}
	return s.Get(userID)
}

func (s *Service) Clear(userID int) error {
	return s.repo.Clear(userID)
}
