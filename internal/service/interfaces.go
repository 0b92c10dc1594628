package service

import "user-management/internal/models"

// UserStore is the persistence capability the use cases need from the
// record store. The sqlx repository is the production implementation;
// tests use an in-memory one.
type UserStore interface {
	FindAll(limit, offset int, search string) ([]models.User, int, error)
	FindByID(id int64) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id int64) error
}

// OperatorStore backs operator authentication.
type OperatorStore interface {
	FindByUsername(username string) (*models.Operator, error)
	FindByEmail(email string) (*models.Operator, error)
	FindByID(id int) (*models.Operator, error)
	Create(operator *models.Operator) error
}
