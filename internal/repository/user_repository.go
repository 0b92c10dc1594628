package repository

import (
	"errors"
	"fmt"
	"time"

	"user-management/internal/models"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindAll returns one page of records ordered by creation date, newest
// first. When search is non-empty it matches name or email as a
// case-insensitive substring.
func (r *UserRepository) FindAll(limit, offset int, search string) ([]models.User, int, error) {
	var users []models.User
	var total int

	// Build query with search
	whereClause := ""
	args := []interface{}{}

	if search != "" {
		whereClause = "WHERE LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)"
		searchPattern := "%" + search + "%"
		args = append(args, searchPattern, searchPattern)
	}

	// Get total count
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM users %s", whereClause)
	err := r.db.Get(&total, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	// Get paginated data
	query := fmt.Sprintf(`
		SELECT id,
		       name,
		       email,
		       COALESCE(status, '') as status,
		       created_at
		FROM users %s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, whereClause)
	args = append(args, limit, offset)
	err = r.db.Select(&users, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) FindByID(id int64) (*models.User, error) {
	var user models.User
	query := "SELECT * FROM users WHERE id = ? LIMIT 1"
	err := r.db.Get(&user, query, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail compares case-insensitively, matching the unique index on
// the email column.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	query := "SELECT * FROM users WHERE LOWER(email) = LOWER(?) LIMIT 1"
	err := r.db.Get(&user, query, email)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create assigns the identity and creation timestamp and defaults a blank
// status to ACTIVE.
func (r *UserRepository) Create(user *models.User) error {
	if user.Status == "" {
		user.Status = models.DefaultStatus
	}
	user.CreatedAt = time.Now()

	query := `INSERT INTO users (name, email, status, created_at)
	          VALUES (:name, :email, :status, :created_at)`
	result, err := r.db.NamedExec(query, user)
	if err != nil {
		if isDuplicateEntry(err) {
			return models.ErrEmailTaken
		}
		return err
	}
	id, _ := result.LastInsertId()
	user.ID = id
	return nil
}

func (r *UserRepository) Update(user *models.User) error {
	query := `UPDATE users SET name = :name, email = :email, status = :status
	          WHERE id = :id`
	_, err := r.db.NamedExec(query, user)
	if err != nil && isDuplicateEntry(err) {
		return models.ErrEmailTaken
	}
	return err
}

// isDuplicateEntry reports whether err is a MySQL unique index violation
// (error 1062). The unique index on email is the backstop for imports
// racing each other on the same new address.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func (r *UserRepository) Delete(id int64) error {
	query := "DELETE FROM users WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}
