package post

import (
	"errors"
	"strings"
	"sync"
)

var (
	ErrNotFound   = errors.New("post not found")
	ErrSlugExists = errors.New("slug already in use")
)

type Repository interface {
	List(publishedOnly bool) ([]Post, error)
	GetBySlug(slug string) (Post, error)
	Create(p Post) (Post, error)
	Update(id int, p Post) (Post, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	posts  []Post
	nextID int
}

func NewInMemoryRepository(seed []Post) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	maxID := 0
	for _, p := range seed {
		r.posts = append(r.posts, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(publishedOnly bool) ([]Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Post, 0)
	for _, p := range r.posts {
		if publishedOnly && !p.Published {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(slug string) (Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posts {
		if strings.EqualFold(p.Slug, slug) {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

func (r *InMemoryRepository) Create(p Post) (Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.posts {
		if strings.EqualFold(existing.Slug, p.Slug) {
			return Post{}, ErrSlugExists
		}
	}
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.posts = append(r.posts, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, upd Post) (Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.posts {
		if existing.ID != id && strings.EqualFold(existing.Slug, upd.Slug) {
			return Post{}, ErrSlugExists
		}
	}
	for i, p := range r.posts {
		if p.ID == id {
			upd.ID = id
			r.posts[i] = upd
			return upd, nil
		}
	}
	return Post{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.posts {
		if p.ID == id {
			r.posts = append(r.posts[:i], r.posts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
