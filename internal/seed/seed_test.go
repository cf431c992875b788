package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
)

type fakeWriter struct {
	existing int64
	created  []model.User
}

func (f *fakeWriter) Count(context.Context) (int64, error) {
	return f.existing, nil
}

func (f *fakeWriter) Create(_ context.Context, name, email, passwordHash string, role model.Role, active bool) (uint64, error) {
	f.created = append(f.created, model.User{
		Name: name, Email: email, PasswordHash: passwordHash, Role: role, IsActive: active,
	})
	return uint64(len(f.created)), nil
}

func TestFakeUsersPopulatesEmptyTable(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, FakeUsers(context.Background(), w, auth.NewHasher(4)))

	require.Len(t, w.created, 19)

	byRole := map[model.Role]int{}
	emails := map[string]bool{}
	for _, u := range w.created {
		byRole[u.Role]++
		assert.True(t, u.IsActive)
		assert.False(t, emails[u.Email], "emails must be unique")
		emails[u.Email] = true
	}
	assert.Equal(t, 10, byRole[model.RoleClient])
	assert.Equal(t, 5, byRole[model.RoleVIPClient])
	assert.Equal(t, 4, byRole[model.RoleAdmin])

	// Seeded accounts all share the development password.
	assert.True(t, auth.NewHasher(4).Verify(w.created[0].PasswordHash, "1"))
}

func TestFakeUsersSkipsNonEmptyTable(t *testing.T) {
	w := &fakeWriter{existing: 3}
	require.NoError(t, FakeUsers(context.Background(), w, auth.NewHasher(4)))
	assert.Empty(t, w.created)
}
