package post

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidPost = errors.New("title, slug and body are required")

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns published posts only unless includeDrafts is set.
func (s *Service) List(includeDrafts bool) ([]Post, error) {
	return s.repo.List(!includeDrafts)
}

// GetBySlug returns a post by slug. Drafts are hidden unless
// includeDrafts is set.
func (s *Service) GetBySlug(slug string, includeDrafts bool) (Post, error) {
	p, err := s.repo.GetBySlug(slug)
	if err != nil {
		return Post{}, err
	}
	if !p.Published && !includeDrafts {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func validate(p Post) error {
	if p.Title == "" || p.Slug == "" || p.Body == "" {
		return ErrInvalidPost
	}
	if !slugPattern.MatchString(strings.ToLower(p.Slug)) {
		return ErrInvalidPost
	}
	return nil
}

func (s *Service) Create(p Post) (Post, error) {
	if err := validate(p); err != nil {
		return Post{}, err
	}
	return s.repo.Create(p)
}

func (s *Service) Update(id int, p Post) (Post, error) {
	if err := validate(p); err != nil {
		return Post{}, err
	}
	return s.repo.Update(id, p)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
