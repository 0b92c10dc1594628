package service

import (
	"database/sql"
	"errors"
	"strings"

	"user-management/internal/models"
)

// UserService covers the single-record operations: list with pagination
// and search, point lookup, create, update, delete.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// List returns one page of records, newest first. Pages are zero-indexed.
func (s *UserService) List(page, size int, search string) ([]models.User, int, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}
	return s.users.FindAll(size, page*size, strings.TrimSpace(search))
}

func (s *UserService) Get(id int64) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create validates the draft and persists it. The store assigns identity
// and creation timestamp and defaults a blank status to ACTIVE.
func (s *UserService) Create(req models.UserRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.ErrNameRequired
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, models.ErrEmailRequired
	}
	if !strings.Contains(email, "@") {
		return nil, models.ErrEmailInvalid
	}

	taken, err := s.emailTaken(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.ErrEmailTaken
	}

	user := &models.User{
		Name:   name,
		Email:  email,
		Status: strings.ToUpper(strings.TrimSpace(req.Status)),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update changes name and status, and email only when it differs from the
// current value and is still unique.
func (s *UserService) Update(id int64, req models.UserRequest) (*models.User, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, models.ErrNameRequired
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, models.ErrEmailRequired
	}
	if !strings.Contains(email, "@") {
		return nil, models.ErrEmailInvalid
	}

	if !strings.EqualFold(existing.Email, email) {
		taken, err := s.emailTaken(email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.ErrEmailTaken
		}
		existing.Email = email
	}

	existing.Name = name
	existing.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if existing.Status == "" {
		existing.Status = models.DefaultStatus
	}

	if err := s.users.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *UserService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.users.Delete(id)
}

func (s *UserService) emailTaken(email string) (bool, error) {
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return existing != nil, nil
}
