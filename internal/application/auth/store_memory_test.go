package auth_test

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/proveedores-api/internal/domain"
	"github.com/jhoicas/proveedores-api/internal/domain/entity"
)

// memoryStore fake en memoria del IdentityRepository para los tests del caso de
// uso. Replica la semántica atómica del almacén real (ventana de fallos incluida)
// bajo un mutex.
type memoryStore struct {
	mu      sync.Mutex
	byID    map[string]*entity.Identity
	byEmail map[string]*entity.Identity
	now     func() time.Time
	err     error // si está seteado, toda operación falla con él
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		byID:    make(map[string]*entity.Identity),
		byEmail: make(map[string]*entity.Identity),
		now:     now,
	}
}

func (s *memoryStore) Create(_ context.Context, identity *entity.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, exists := s.byEmail[identity.Email]; exists {
		return domain.ErrEmailAlreadyExists
	}
	cp := *identity
	s.byID[cp.ID] = &cp
	s.byEmail[cp.Email] = &cp
	return nil
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (*entity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	identity, ok := s.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *identity
	return &cp, nil
}

func (s *memoryStore) RecordFailedAttempt(_ context.Context, id string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	identity := s.byID[id]
	now := s.now()
	if identity.LastFailedAt == nil || identity.LastFailedAt.Before(now.Add(-window)) {
		identity.FailedAttempts = 1
	} else {
		identity.FailedAttempts++
	}
	identity.LastFailedAt = &now
	return identity.FailedAttempts, nil
}

func (s *memoryStore) ResetFailedAttempts(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	identity := s.byID[id]
	identity.FailedAttempts = 0
	identity.LastFailedAt = nil
	return nil
}

func (s *memoryStore) SetLockout(_ context.Context, id string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	identity := s.byID[id]
	identity.LockoutUntil = &until
	identity.FailedAttempts = 0
	return nil
}

func (s *memoryStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

func (s *memoryStore) failWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *memoryStore) setClaims(email string, claims map[string]string, roles []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity := s.byEmail[email]
	identity.Claims = claims
	identity.Roles = roles
}
