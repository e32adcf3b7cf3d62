package inmem

import (
	"context"
	"time"

	"coursehub/internal/domain"

	"github.com/google/uuid"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.db.users[user.ID] = *user
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := u
	return &out, nil
}

// Promote flips the admin flag directly, standing in for the out-of-band
// promotion a real deployment does in the database.
func (r *UserRepository) Promote(id uuid.UUID) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if u, ok := r.db.users[id]; ok {
		u.IsAdmin = true
		r.db.users[id] = u
	}
}
