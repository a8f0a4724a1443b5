package todo

import "errors"

var ErrInvalidTodo = errors.New("todo title is required")

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(userID int) ([]Todo, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) Create(userID int, title string) (Todo, error) {
	if title == "" {
		return Todo{}, ErrInvalidTodo
	}
	return s.repo.Create(Todo{UserID: userID, Title: title})
}

func (s *Service) Update(userID, id int, title string, done bool) (Todo, error) {
	if title == "" {
		return Todo{}, ErrInvalidTodo
	}
	return s.repo.Update(userID, id, Todo{Title: title, Done: done})
}

func (s *Service) Delete(userID, id int) error {
	return s.repo.Delete(userID, id)
}
