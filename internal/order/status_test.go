package order

import (
	"errors"
	"testing"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		if _, err := ParseStatus(raw); err != nil {
			t.Errorf("ParseStatus(%q): %v", raw, err)
		}
	}
	for _, raw := range []string{"", "PENDING", "done", "paid"} {
		if _, err := ParseStatus(raw); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("ParseStatus(%q) accepted", raw)
		}
	}
}

func TestParsePaymentStatus(t *testing.T) {
	for _, raw := range []string{"unpaid", "paid", "refunded"} {
		if _, err := ParsePaymentStatus(raw); err != nil {
			t.Errorf("ParsePaymentStatus(%q): %v", raw, err)
		}
	}
	if _, err := ParsePaymentStatus("pending"); !errors.Is(err, ErrInvalidStatus) {
		t.Error("ParsePaymentStatus accepted a fulfilment status")
	}
}

func TestStatusTransitionTable(t *testing.T) {
	allowed := map[[2]Status]bool{
		{StatusPending, StatusProcessing}:  true,
		{StatusPending, StatusCancelled}:   true,
		{StatusProcessing, StatusShipped}:  true,
		{StatusProcessing, StatusCancelled}: true,
		{StatusShipped, StatusDelivered}:   true,
		{StatusShipped, StatusCancelled}:   true,
	}

	all := []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]Status{from, to}]
			if got := from.CanTransitionTo(to); got != want {
				t.Errorf("%s -> %s = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for s, terminal := range map[Status]bool{
		StatusPending:    false,
		StatusProcessing: false,
		StatusShipped:    false,
		StatusDelivered:  true,
		StatusCancelled:  true,
	} {
		if s.Terminal() != terminal {
			t.Errorf("%s.Terminal() = %v, want %v", s, s.Terminal(), terminal)
		}
	}
}
