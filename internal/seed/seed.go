// Package seed populates an empty users table with fake accounts so that a
// fresh deployment has something to log in with. All seeded accounts are
// active and share the password "1"; this is development tooling, not a
// provisioning mechanism.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
)

// UserWriter is the slice of the user repository the seeder needs.
type UserWriter interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, name, email, passwordHash string, role model.Role, active bool) (uint64, error)
}

var (
	firstNames = []string{
		"Alice", "Bruno", "Carla", "Derek", "Elena", "Farid", "Greta",
		"Hugo", "Irene", "Jonas", "Katya", "Leo", "Mina", "Nils",
		"Olga", "Pavel", "Quinn", "Rosa", "Sven",
	}
	lastNames = []string{
		"Abbott", "Becker", "Costa", "Dubois", "Eriksen", "Fischer",
		"Garcia", "Hansen", "Ivanov", "Jensen", "Keller", "Larsen",
		"Moreau", "Novak", "Olsen", "Petrov", "Quist", "Rossi", "Silva",
	}
)

// FakeUsers inserts 10 CLIENT, 5 VIP_CLIENT and 4 ADMIN accounts when the
// table is empty. Existing data is never touched.
func FakeUsers(ctx context.Context, users UserWriter, hasher *auth.Hasher) error {
	n, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("seed: users table not empty (%d rows), skipping", n)
		return nil
	}

	hash, err := hasher.Hash("1")
	if err != nil {
		return err
	}

	plan := []struct {
		role  model.Role
		count int
	}{
		{model.RoleClient, 10},
		{model.RoleVIPClient, 5},
		{model.RoleAdmin, 4},
	}

	i := 0
	for _, p := range plan {
		for k := 0; k < p.count; k++ {
			first := firstNames[rand.Intn(len(firstNames))]
			last := lastNames[rand.Intn(len(lastNames))]
			name := first + " " + last
			// Suffix keeps emails unique across random name collisions.
			email := fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i)
			if _, err := users.Create(ctx, name, email, hash, p.role, true); err != nil {
				return err
			}
			i++
		}
	}
	log.Printf("seed: created %d fake users", i)
	return nil
}
