package user

import "golang.org/x/crypto/bcrypt"

// AdminList decides which registering emails receive the admin role.
// Roles come from configuration, never from user-supplied data.
type AdminList interface {
	IsAdminEmail(email string) bool
}

type ServiceInterface interface {
	List() []User
	GetByID(id int) (User, error)
	Register(user User) (User, error)
	Authenticate(login, password string) (User, error)
	Update(id int, user User) (User, error)
	Delete(id int) error
}

type Service struct {
	repo   Repository
	admins AdminList
}

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository, admins AdminList) *Service {
	return &Service{repo: repo, admins: admins}
}

func (s *Service) List() []User {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}
	if u.Username != "" {
		if _, err := s.repo.GetByLogin(u.Username); err == nil {
			return User{}, ErrUsernameExists
		} else if err != ErrNotFound {
			return User{}, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	u.Role = RoleUser
	if s.admins != nil && s.admins.IsAdminEmail(u.Email) {
		u.Role = RoleAdmin
	}

	return s.repo.Create(u)
}

func (s *Service) Authenticate(login, password string) (User, error) {
	u, err := s.repo.GetByLogin(login)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

func (s *Service) Update(id int, u User) (User, error) {
	return s.repo.Update(id, u)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
