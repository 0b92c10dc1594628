package service

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"user-management/internal/models"
)

// memStore is an in-memory UserStore used by the service tests. It
// mirrors the sqlx repository's contract: sql.ErrNoRows on misses,
// models.ErrEmailTaken on unique violations, id and created_at assigned
// on insert, blank status defaulted.
type memStore struct {
	nextID int64
	users  []models.User

	// blindDuringRun hides records created through this store from
	// FindByEmail, simulating a store whose writes are not immediately
	// visible to reads.
	blindDuringRun bool
	createdIDs     map[int64]struct{}

	// noUniqueIndex disables the duplicate check in Create, simulating
	// a store without the email unique index backstop.
	noUniqueIndex bool

	findByEmailErr error
}

func newMemStore(seed ...models.User) *memStore {
	m := &memStore{createdIDs: map[int64]struct{}{}}
	for _, u := range seed {
		u.ID = m.nextIDValue()
		if u.Status == "" {
			u.Status = models.DefaultStatus
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now()
		}
		m.users = append(m.users, u)
	}
	return m
}

func (m *memStore) nextIDValue() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) FindAll(limit, offset int, search string) ([]models.User, int, error) {
	var matched []models.User
	needle := strings.ToLower(search)
	for _, u := range m.users {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) {
			matched = append(matched, u)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	if offset >= total {
		return []models.User{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *memStore) FindByID(id int64) (*models.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) FindByEmail(email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	for i := range m.users {
		if !strings.EqualFold(m.users[i].Email, email) {
			continue
		}
		if m.blindDuringRun {
			if _, created := m.createdIDs[m.users[i].ID]; created {
				continue
			}
		}
		u := m.users[i]
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memStore) Create(user *models.User) error {
	if !m.noUniqueIndex {
		for _, u := range m.users {
			if strings.EqualFold(u.Email, user.Email) {
				return models.ErrEmailTaken
			}
		}
	}
	if user.Status == "" {
		user.Status = models.DefaultStatus
	}
	user.ID = m.nextIDValue()
	user.CreatedAt = time.Now()
	m.users = append(m.users, *user)
	m.createdIDs[user.ID] = struct{}{}
	return nil
}

func (m *memStore) Update(user *models.User) error {
	for i := range m.users {
		if m.users[i].ID == user.ID {
			m.users[i] = *user
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore) Delete(id int64) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}
