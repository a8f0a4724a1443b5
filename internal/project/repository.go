package project

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("project not found")

type Repository interface {
	List() ([]Project, error)
	Create(p Project) (Project, error)
	Update(id int, p Project) (Project, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	projects []Project
	nextID   int
}

func NewInMemoryRepository(seed []Project) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	maxID := 0
	for _, p := range seed {
		r.projects = append(r.projects, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Project, len(r.projects))
	copy(out, r.projects)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ord != out[j].Ord {
			return out[i].Ord < out[j].Ord
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) Create(p Project) (Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	}
	r.projects = append(r.projects, p)
	return p, nil
}

func (r *InMemoryRepository) Update(id int, upd Project) (Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.projects {
		if p.ID == id {
			upd.ID = id
			r.projects[i] = upd
			return upd, nil
		}
	}
	return Project{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.projects {
		if p.ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
