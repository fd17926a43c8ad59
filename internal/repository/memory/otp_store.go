package memory

import (
	"alvant-portal/internal/domain"
	"context"
	"strings"
	"sync"
	"time"
)

// OTPStore keeps challenges in process memory. Used when Redis is not configured.
type OTPStore struct {
	mu      sync.Mutex
	entries map[string]domain.OTPChallenge
	now     func() time.Time
}

func NewOTPStore() *OTPStore {
	return &OTPStore{
		entries: make(map[string]domain.OTPChallenge),
		now:     time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (s *OTPStore) WithClock(now func() time.Time) *OTPStore {
	s.now = now
	return s
}

func (s *OTPStore) Save(_ context.Context, email string, ch domain.OTPChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key(email)] = ch
	return nil
}

func (s *OTPStore) Get(_ context.Context, email string) (*domain.OTPChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.live(key(email))
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ch, nil
}

func (s *OTPStore) IncrementAttempts(_ context.Context, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(email)
	ch, ok := s.live(k)
	if !ok {
		return 0, domain.ErrNotFound
	}
	ch.Attempts++
	s.entries[k] = ch
	return ch.Attempts, nil
}

func (s *OTPStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key(email))
	return nil
}

// live returns the challenge under k, evicting it if expired. Caller holds mu.
func (s *OTPStore) live(k string) (domain.OTPChallenge, bool) {
	ch, ok := s.entries[k]
	if !ok {
		return domain.OTPChallenge{}, false
	}
	if !s.now().Before(ch.ExpiresAt) {
		delete(s.entries, k)
		return domain.OTPChallenge{}, false
	}
	return ch, true
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
