package todo

import (
	"errors"
	"sync"
)

var ErrNotFound = errors.New("todo not found")

type Repository interface {
	ListByUser(userID int) ([]Todo, error)
	Create(t Todo) (Todo, error)
	Update(userID, id int, t Todo) (Todo, error)
	Delete(userID, id int) error
}

// InMemoryRepository is used for tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	todos  []Todo
	nextID int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Todo, 0)
	for _, t := range r.todos {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) Create(t Todo) (Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.todos = append(r.todos, t)
	return t, nil
}

func (r *InMemoryRepository) Update(userID, id int, upd Todo) (Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.todos {
		if t.ID == id && t.UserID == userID {
			upd.ID = id
			upd.UserID = userID
			r.todos[i] = upd
			return upd, nil
		}
	}
	return Todo{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.todos {
		if t.ID == id && t.UserID == userID {
			r.todos = append(r.todos[:i], r.todos[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
