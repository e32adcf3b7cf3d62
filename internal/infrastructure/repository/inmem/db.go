// Package inmem provides in-memory implementations of the repository and
// media-store contracts. They mirror the postgres/S3 behavior closely enough
// for tests to run without external services.
package inmem

import (
	"sync"

	"coursehub/internal/domain"

	"github.com/google/uuid"
)

type DB struct {
	mu sync.Mutex

	users      map[uuid.UUID]domain.User
	categories []domain.Category
	courses    map[uuid.UUID]domain.Course
	topics     map[uuid.UUID][]domain.Topic // by course id, in position order
	enrolled   map[uuid.UUID][]uuid.UUID    // user id -> course ids

	// insertion order of courses, newest appended last
	courseOrder []uuid.UUID
}

func NewDB() *DB {
	return &DB{
		users:    make(map[uuid.UUID]domain.User),
		courses:  make(map[uuid.UUID]domain.Course),
		topics:   make(map[uuid.UUID][]domain.Topic),
		enrolled: make(map[uuid.UUID][]uuid.UUID),
	}
}
