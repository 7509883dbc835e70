package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/vastrado/vastrado-api/internal/domain"
)

// OTPStore is the default process-local OTP store: one pending record per
// email, no persistence across restarts. Acceptable because codes are
// short-lived. The mutex makes same-email races resolve to a clean
// last-write-wins; cross-email requests never contend on anything but the
// map itself.
type OTPStore struct {
	mu      sync.RWMutex
	records map[string]domain.OTPRecord
}

func NewOTPStore() *OTPStore {
	return &OTPStore{records: make(map[string]domain.OTPRecord)}
}

// Put stores the record, unconditionally replacing any pending one for the
// same email.
func (s *OTPStore) Put(_ context.Context, rec *domain.OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Email] = *rec
	return nil
}

func (s *OTPStore) Get(_ context.Context, email string) (*domain.OTPRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[email]
	if !ok {
		return nil, fmt.Errorf("otp record for %q: %w", email, domain.ErrNotFound)
	}
	return &rec, nil
}

func (s *OTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, email)
	return nil
}
