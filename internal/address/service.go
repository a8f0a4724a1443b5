package address

import "errors"

var ErrInvalidAddress = errors.New("recipient and detail are required")

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(userID int) ([]Address, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) Create(userID int, a Address) (Address, error) {
	if a.Recipient == "" || a.Detail == "" {
		return Address{}, ErrInvalidAddress
	}
	a.UserID = userID
	return s.repo.Create(a)
}

func (s *Service) Update(userID, id int, a Address) (Address, error) {
	if a.Recipient == "" || a.Detail == "" {
		return Address{}, ErrInvalidAddress
	}
	return s.repo.Update(userID, id, a)
}

func (s *Service) Delete(userID, id int) error {
	return s.repo.Delete(userID, id)
}
