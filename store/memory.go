package store

import (
	"context"
	"sync"
	"time"

	"github.com/authgate/authgate"
)

// MemoryUserStore is a map-backed authgate.UserStore with the same
// semantics as the Redis store. Intended for tests and development mode.
type MemoryUserStore struct {
	mu      sync.RWMutex
	byID    map[string]authgate.UserRecord
	byEmail map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		byID:    make(map[string]authgate.UserRecord),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (authgate.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return authgate.UserRecord{}, authgate.ErrUserNotFound
	}
	return s.byID[id], nil
}

func (s *MemoryUserStore) GetByID(_ context.Context, id string) (authgate.UserRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.byID[id]
	if !ok {
		return authgate.UserRecord{}, authgate.ErrUserNotFound
	}
	return record, nil
}

func (s *MemoryUserStore) Create(_ context.Context, record authgate.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[record.Email]; taken {
		return authgate.ErrEmailTaken
	}
	s.byEmail[record.Email] = record.ID
	s.byID[record.ID] = record
	return nil
}

func (s *MemoryUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return nil
	}
	delete(s.byEmail, record.Email)
	delete(s.byID, id)
	return nil
}

func (s *MemoryUserStore) MarkVerified(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return authgate.ErrUserNotFound
	}
	record.EmailVerified = true
	record.VerificationCode = ""
	record.VerificationExpires = time.Time{}
	s.byID[id] = record
	return nil
}

func (s *MemoryUserStore) SetResetCode(_ context.Context, id, code string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return authgate.ErrUserNotFound
	}
	record.ResetCode = code
	record.ResetExpires = expires
	s.byID[id] = record
	return nil
}

func (s *MemoryUserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return authgate.ErrUserNotFound
	}
	record.PasswordHash = passwordHash
	record.ResetCode = ""
	record.ResetExpires = time.Time{}
	s.byID[id] = record
	return nil
}
