package project

import "errors"

var ErrInvalidProject = errors.New("project title is required")

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() ([]Project, error) {
	return s.repo.List()
}

func (s *Service) Create(p Project) (Project, error) {
	if p.Title == "" {
		return Project{}, ErrInvalidProject
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Project) (Project, error) {
	if p.Title == "" {
		return Project{}, ErrInvalidProject
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
