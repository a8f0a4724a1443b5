package order

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wichananm65/folio-shop-backend/internal/user"
)

// Service implements the checkout flow and the order/payment state
// machines on top of the repository.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Checkout converts the user's cart into an immutable order. Totals are
// computed once here; persistence and stock adjustment happen atomically
// in the repository.
func (s *Service) Checkout(userID int, in CheckoutInput) (Order, error) {
	lines, err := s.repo.CartLines(userID)
	if err != nil {
		return Order{}, err
	}
	if len(lines) == 0 {
		return Order{}, ErrEmptyCart
	}

	subTotal := decimal.Zero
	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		if l.Quantity > l.Stock {
			return Order{}, &InsufficientStockError{Product: l.ProductName}
		}
		unit := l.UnitPrice()
		lineTotal := unit.Mul(decimal.NewFromInt(int64(l.Quantity)))
		items = append(items, Item{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductImage: l.ProductImage,
			UnitPrice:    unit,
			Quantity:     l.Quantity,
			LineTotal:    lineTotal,
		})
		subTotal = subTotal.Add(lineTotal)
	}

	tax := subTotal.Mul(TaxRate).Round(2)

	shipping := FlatShippingFee
	if subTotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	if in.ShippingOverride != nil {
		shipping = *in.ShippingOverride
	}

	ord := Order{
		OrderNumber:     NewOrderNumber(time.Now()),
		UserID:          userID,
		Status:          StatusPending,
		PaymentStatus:   PaymentUnpaid,
		PaymentMethod:   in.PaymentMethod,
		SubTotal:        subTotal,
		Tax:             tax,
		ShippingCost:    shipping,
		TotalAmount:     subTotal.Add(tax).Add(shipping),
		ShippingName:    in.ShippingName,
		ShippingPhone:   in.ShippingPhone,
		ShippingAddress: in.ShippingAddress,
		Notes:           in.Notes,
		Items:           items,
	}

	return s.repo.CreateFromCart(ord)
}

// Get returns the order when the caller owns it or is an admin.
func (s *Service) Get(userID int, role string, orderID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID && role != user.RoleAdmin {
		return Order{}, ErrForbidden
	}
	return ord, nil
}

// List returns the caller's orders, or every order for an admin.
func (s *Service) List(userID int, role string) ([]Order, error) {
	if role == user.RoleAdmin {
		return s.repo.ListAll()
	}
	return s.repo.ListByUser(userID)
}

// SetStatus applies an admin-driven fulfilment transition. The target must
// be in the closed set and reachable from the current state; shipped and
// delivered stamp their timestamps.
func (s *Service) SetStatus(orderID int, next Status) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if !ord.Status.CanTransitionTo(next) {
		return Order{}, ErrInvalidTransition
	}

	if next == StatusCancelled {
		if err := s.repo.CancelRestock(ord); err != nil {
			return Order{}, err
		}
		return s.repo.GetByID(orderID)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	switch next {
	case StatusShipped:
		ord.ShippedAt = &now
	case StatusDelivered:
		ord.DeliveredAt = &now
	}
	ord.Status = next

	if err := s.repo.UpdateStatus(ord); err != nil {
		return Order{}, err
	}
	return s.repo.GetByID(orderID)
}

// SetPaymentStatus applies a payment transition via the payment table.
func (s *Service) SetPaymentStatus(orderID int, next PaymentStatus) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if !ord.PaymentStatus.CanTransitionTo(next) {
		return Order{}, ErrInvalidTransition
	}
	if err := s.repo.UpdatePaymentStatus(orderID, next); err != nil {
		return Order{}, err
	}
	return s.repo.GetByID(orderID)
}

// Cancel cancels an order and restores the decremented stock. A regular
// user may only cancel their own pending order; an admin may cancel any
// order that is not already in a terminal state. Cancelling a cancelled
// order is rejected, not silently ignored.
func (s *Service) Cancel(userID int, role string, orderID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}

	if role != user.RoleAdmin {
		if ord.UserID != userID {
			return Order{}, ErrForbidden
		}
		if ord.Status != StatusPending {
			return Order{}, ErrInvalidTransition
		}
	}

	if ord.Status == StatusCancelled {
		return Order{}, ErrAlreadyCancelled
	}
	if ord.Status.Terminal() {
		return Order{}, ErrInvalidTransition
	}

	if err := s.repo.CancelRestock(ord); err != nil {
		return Order{}, err
	}
	return s.repo.GetByID(orderID)
}

// MarkPaymentResult is invoked by the payment webhook, keyed by intent id.
// Failure events leave the order unpaid.
func (s *Service) MarkPaymentResult(intentID string, succeeded bool) (Order, error) {
	ord, err := s.repo.GetByPaymentIntent(intentID)
	if err != nil {
		return Order{}, err
	}
	if !succeeded {
		return ord, nil
	}
	if ord.PaymentStatus == PaymentPaid {
		// duplicate delivery of the same event
		return ord, nil
	}
	if !ord.PaymentStatus.CanTransitionTo(PaymentPaid) {
		return Order{}, ErrInvalidTransition
	}
	if err := s.repo.UpdatePaymentStatus(ord.ID, PaymentPaid); err != nil {
		return Order{}, err
	}
	return s.repo.GetByID(ord.ID)
}

// AttachPaymentIntent stores the gateway's intent id on the order.
func (s *Service) AttachPaymentIntent(orderID int, intentID string) error {
	return s.repo.SetPaymentIntent(orderID, intentID)
}
