package admin_test

import (
	"alvant-portal/internal/client/api"
	"alvant-portal/internal/domain"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) RequestOTP(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) VerifyOTP(ctx context.Context, email, code string, remember bool) (*domain.AdminToken, error) {
	args := m.Called(ctx, email, code, remember)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminToken), args.Error(1)
}

func (m *MockAuthenticator) VerifyToken(ctx context.Context, token string) (*api.TokenStatus, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TokenStatus), args.Error(1)
}

func (m *MockAuthenticator) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type MockRecordSource struct {
	mock.Mock
}

func (m *MockRecordSource) ListRegistrants(ctx context.Context, token string) ([]domain.Registrant, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Registrant), args.Error(1)
}

func (m *MockRecordSource) ListContacts(ctx context.Context, token string) ([]domain.ContactMessage, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContactMessage), args.Error(1)
}
