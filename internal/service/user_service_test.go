package service

import (
	"testing"
	"time"

	"user-management/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Create(t *testing.T) {
	store := newMemStore()
	svc := NewUserService(store)

	user, err := svc.Create(models.UserRequest{Name: "  Maria  ", Email: " maria@example.com ", Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, "Maria", user.Name)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.Equal(t, "ACTIVE", user.Status)
	assert.NotZero(t, user.ID)
}

func TestUserService_CreateValidation(t *testing.T) {
	store := newMemStore(models.User{Name: "Taken", Email: "taken@example.com"})
	svc := NewUserService(store)

	cases := []struct {
		name string
		req  models.UserRequest
		want error
	}{
		{"blank name", models.UserRequest{Name: "  ", Email: "a@example.com"}, models.ErrNameRequired},
		{"blank email", models.UserRequest{Name: "Ana", Email: ""}, models.ErrEmailRequired},
		{"no at sign", models.UserRequest{Name: "Ana", Email: "ana.example.com"}, models.ErrEmailInvalid},
		{"taken email", models.UserRequest{Name: "Ana", Email: "taken@example.com"}, models.ErrEmailTaken},
		{"taken email different case", models.UserRequest{Name: "Ana", Email: "TAKEN@example.com"}, models.ErrEmailTaken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUserService_Get(t *testing.T) {
	store := newMemStore(models.User{Name: "Maria", Email: "maria@example.com"})
	svc := NewUserService(store)

	user, err := svc.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Maria", user.Name)

	_, err = svc.Get(99)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserService_Update(t *testing.T) {
	store := newMemStore(
		models.User{Name: "Maria", Email: "maria@example.com"},
		models.User{Name: "John", Email: "john@example.com"},
	)
	svc := NewUserService(store)

	user, err := svc.Update(1, models.UserRequest{Name: "Maria Silva", Email: "maria@example.com", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", user.Name)
	assert.Equal(t, "INACTIVE", user.Status)

	// Keeping the same email in a different case is not a collision.
	user, err = svc.Update(1, models.UserRequest{Name: "Maria Silva", Email: "MARIA@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.Equal(t, models.DefaultStatus, user.Status)

	_, err = svc.Update(1, models.UserRequest{Name: "Maria Silva", Email: "john@example.com"})
	assert.ErrorIs(t, err, models.ErrEmailTaken)

	_, err = svc.Update(99, models.UserRequest{Name: "Ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserService_Delete(t *testing.T) {
	store := newMemStore(models.User{Name: "Maria", Email: "maria@example.com"})
	svc := NewUserService(store)

	require.NoError(t, svc.Delete(1))
	_, err := svc.Get(1)
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	assert.ErrorIs(t, svc.Delete(1), models.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newMemStore(
		models.User{Name: "Oldest", Email: "a@example.com", CreatedAt: base},
		models.User{Name: "Middle", Email: "b@example.com", CreatedAt: base.Add(time.Hour)},
		models.User{Name: "Newest", Email: "c@example.com", CreatedAt: base.Add(2 * time.Hour)},
	)
	svc := NewUserService(store)

	// Page zero holds the newest records.
	users, total, err := svc.List(0, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, users, 2)
	assert.Equal(t, "Newest", users[0].Name)
	assert.Equal(t, "Middle", users[1].Name)

	users, _, err = svc.List(1, 2, "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Oldest", users[0].Name)

	// Out-of-range page is empty, not an error.
	users, total, err = svc.List(5, 2, "")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, users)

	// Negative page and zero size fall back to defaults.
	users, _, err = svc.List(-3, 0, "")
	require.NoError(t, err)
	assert.Len(t, users, 3)
}

func TestUserService_ListSearch(t *testing.T) {
	store := newMemStore(
		models.User{Name: "Maria Silva", Email: "maria@example.com"},
		models.User{Name: "John Doe", Email: "john@silvanet.org"},
		models.User{Name: "Ana Souza", Email: "ana@example.com"},
	)
	svc := NewUserService(store)

	users, total, err := svc.List(0, 10, "silva")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, users, 2)
}
