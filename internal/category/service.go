package category

import "errors"

var ErrInvalidCategory = errors.New("category name is required")

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() []Category {
	items, err := s.repo.List()
	if err != nil {
		return []Category{}
	}
	return items
}

func (s *Service) Create(c Category) (Category, error) {
	if c.Name == "" {
		return Category{}, ErrInvalidCategory
	}
	return s.repo.Create(c)
}

func (s *Service) Update(id int, c Category) (Category, error) {
	if c.Name == "" {
		return Category{}, ErrInvalidCategory
	}
	return s.repo.Update(id, c)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
