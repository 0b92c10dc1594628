package repository

import (
	"time"

	"user-management/internal/models"

	"github.com/jmoiron/sqlx"
)

type OperatorRepository struct {
	db *sqlx.DB
}

func NewOperatorRepository(db *sqlx.DB) *OperatorRepository {
	return &OperatorRepository{db: db}
}

func (r *OperatorRepository) FindByUsername(username string) (*models.Operator, error) {
	var operator models.Operator
	query := "SELECT * FROM operators WHERE username = ? LIMIT 1"
	err := r.db.Get(&operator, query, username)
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *OperatorRepository) FindByEmail(email string) (*models.Operator, error) {
	var operator models.Operator
	query := "SELECT * FROM operators WHERE email = ? LIMIT 1"
	err := r.db.Get(&operator, query, email)
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *OperatorRepository) FindByID(id int) (*models.Operator, error) {
	var operator models.Operator
	query := "SELECT * FROM operators WHERE id = ? LIMIT 1"
	err := r.db.Get(&operator, query, id)
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *OperatorRepository) Create(operator *models.Operator) error {
	operator.CreatedAt = time.Now()
	query := `INSERT INTO operators (name, username, email, password_hash, role, is_active, created_at)
	          VALUES (:name, :username, :email, :password_hash, :role, :is_active, :created_at)`
	result, err := r.db.NamedExec(query, operator)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	operator.ID = int(id)
	return nil
}
