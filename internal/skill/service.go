package skill

import "errors"

var ErrInvalidSkill = errors.New("skill name is required and level must be between 0 and 100")

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List() ([]Skill, error) {
	return s.repo.List()
}

func validate(sk Skill) error {
	if sk.Name == "" || sk.Level < 0 || sk.Level > 100 {
		return ErrInvalidSkill
	}
	return nil
}

func (s *Service) Create(sk Skill) (Skill, error) {
	if err := validate(sk); err != nil {
		return Skill{}, err
	}
	return s.repo.Create(sk)
}

func (s *Service) Update(id int, sk Skill) (Skill, error) {
	if err := validate(sk); err != nil {
		return Skill{}, err
	}
	return s.repo.Update(id, sk)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
