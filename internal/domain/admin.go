package domain

import (
	"context"
	"time"
)

// OTPRequest is the body of POST /api/admin/request-otp
type OTPRequest struct {
	Email string `json:"email" validate:"portal_email"`
}

// OTPVerifyRequest is the body of POST /api/admin/verify-otp
type OTPVerifyRequest struct {
	Email    string `json:"email" validate:"portal_email"`
	OTP      string `json:"otp" validate:"required,max=6"`
	Remember bool   `json:"remember"`
}

// AdminToken is returned on successful OTP verification.
type AdminToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminClaims is what a valid bearer token proves.
type AdminClaims struct {
	Email     string    `json:"email"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// OTPChallenge is the server-side state of one outstanding passcode.
// Secret is the HOTP key the code was derived from; the code itself is never stored.
type OTPChallenge struct {
	Secret    string    `json:"secret"`
	Attempts  int       `json:"attempts"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// OTPStore keeps at most one challenge per admin email.
type OTPStore interface {
	// Save replaces any existing challenge for email; it expires at ch.ExpiresAt.
	Save(ctx context.Context, email string, ch OTPChallenge) error
	// Get returns ErrNotFound when there is no live challenge.
	Get(ctx context.Context, email string) (*OTPChallenge, error)
	IncrementAttempts(ctx context.Context, email string) (int, error)
	Delete(ctx context.Context, email string) error
}

// TokenDenylist records logged-out token ids until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// OTPMailer delivers a passcode to an admin.
type OTPMailer interface {
	SendOTP(ctx context.Context, to, code string, ttl time.Duration) error
}

// ContactNotifier forwards a stored contact message to the site inbox.
type ContactNotifier interface {
	NotifyContact(ctx context.Context, m *ContactMessage) error
}

// TokenIssuer mints and parses admin bearer tokens.
type TokenIssuer interface {
	Issue(email string, ttl time.Duration) (*AdminToken, error)
	Parse(token string) (*AdminClaims, error)
}

// AdminAuthUsecase is the server half of the OTP login.
type AdminAuthUsecase interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, req *OTPVerifyRequest) (*AdminToken, error)
	VerifyToken(ctx context.Context, token string) (*AdminClaims, error)
	Logout(ctx context.Context, claims *AdminClaims) error
}
