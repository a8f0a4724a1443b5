package skill

import (
	"errors"
	"sort"
	"sync"
)

var ErrNotFound = errors.New("skill not found")

type Repository interface {
	List() ([]Skill, error)
	Create(s Skill) (Skill, error)
	Update(id int, s Skill) (Skill, error)
	Delete(id int) error
}

// InMemoryRepository is used for tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	skills []Skill
	nextID int
}

func NewInMemoryRepository(seed []Skill) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1}
	maxID := 0
	for _, s := range seed {
		r.skills = append(r.skills, s)
		if s.ID > maxID {
			maxID = s.ID
		}
	}
	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List() ([]Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Skill, len(r.skills))
	copy(out, r.skills)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ord != out[j].Ord {
			return out[i].Ord < out[j].Ord
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *InMemoryRepository) Create(s Skill) (Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.nextID
		r.nextID++
	}
	r.skills = append(r.skills, s)
	return s, nil
}

func (r *InMemoryRepository) Update(id int, upd Skill) (Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.skills {
		if s.ID == id {
			upd.ID = id
			r.skills[i] = upd
			return upd, nil
		}
	}
	return Skill{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.skills {
		if s.ID == id {
			r.skills = append(r.skills[:i], r.skills[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
