// Package memory provides the in-memory credential store. It exists so the
// rest of the system only ever sees the UserRepository port; a persistent
// implementation can replace it without touching services or middleware.
package memory

import (
	"context"
	"sync"

	"github.com/sirpyerre/posts-gateway/internal/core/domain"
)

// UserRepository is a mutex-guarded map of users keyed by username. Reads take
// the shared lock; Create checks uniqueness and inserts under one exclusive
// lock, so of two concurrent registrations with the same username exactly one
// succeeds.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	nextID int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User), nextID: 1}
}

// SeedDemoUsers inserts the two demo accounts: admin/admin123 with the admin
// role and user/user123 with the base role.
func (r *UserRepository) SeedDemoUsers() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insertLocked(&domain.User{
		Username: "admin",
		Email:    "admin@example.com",
		// bcrypt("admin123")
		PasswordHash: "$2a$10$RpbX3yQpRClKBcRY/LDTAOk8SoU2JjwL/2c6xTJKXTF49KQjezE6G",
		Roles:        []domain.Role{domain.RoleUser, domain.RoleAdmin},
		Enabled:      true,
	})
	r.insertLocked(&domain.User{
		Username: "user",
		Email:    "user@example.com",
		// bcrypt("user123")
		PasswordHash: "$2a$10$YOu6PL6p5RRzCrAclLHie.0289455SEEBk9QzuaOLDryLNxCAdTq.",
		Roles:        []domain.Role{domain.RoleUser},
		Enabled:      true,
	})
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[username]
	return ok, nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.emailTakenLocked(email), nil
}

// Create assigns the next sequential id and stores the user. It never
// overwrites: a username or email already present fails with
// ErrDuplicateIdentity, re-checked under the write lock to close the race
// between an exists check and the insert.
func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrDuplicateIdentity
	}
	if r.emailTakenLocked(user.Email) {
		return nil, domain.ErrDuplicateIdentity
	}

	stored := r.insertLocked(cloneUser(user))
	return cloneUser(stored), nil
}

func (r *UserRepository) insertLocked(user *domain.User) *domain.User {
	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	r.users[user.Username] = user
	return user
}

func (r *UserRepository) emailTakenLocked(email string) bool {
	for _, u := range r.users {
		if u.Email == email {
			return true
		}
	}
	return false
}

// cloneUser copies a user so callers never alias the stored record.
func cloneUser(u *domain.User) *domain.User {
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}
