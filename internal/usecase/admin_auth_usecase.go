package usecase

import (
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/apperror"
	"alvant-portal/pkg/logger"
	"alvant-portal/pkg/security"
	"alvant-portal/pkg/validation"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

const (
	msgNotAdmin        = "This email is not authorized for admin access"
	msgOTPSendFailed   = "Failed to send OTP email. Please try again later."
	msgOTPInvalid      = "Invalid or expired OTP. Please request a new one."
	msgOTPLocked       = "Too many incorrect attempts. Please request a new OTP."
	msgInvalidToken    = "Invalid token"
	msgMissingOTPInput = "Provide email address and OTP"
)

// Each challenge has its own secret, so a single counter value is enough.
const otpCounter = 0

var otpOpts = hotp.ValidateOpts{
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// AdminAuthConfig carries the login policy.
type AdminAuthConfig struct {
	AdminEmails      []string
	OTPTTL           time.Duration
	MaxAttempts      int
	TokenTTL         time.Duration
	RememberTokenTTL time.Duration
}

type adminAuthUsecase struct {
	cfg       AdminAuthConfig
	admins    map[string]struct{}
	otpStore  domain.OTPStore
	denylist  domain.TokenDenylist
	mailer    domain.OTPMailer
	issuer    domain.TokenIssuer
	secLogger *security.SecurityLogger
	validate  *validator.Validate
	now       func() time.Time
}

func NewAdminAuthUsecase(
	cfg AdminAuthConfig,
	otpStore domain.OTPStore,
	denylist domain.TokenDenylist,
	mailer domain.OTPMailer,
	issuer domain.TokenIssuer,
	secLogger *security.SecurityLogger,
	validate *validator.Validate,
) domain.AdminAuthUsecase {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.OTPTTL <= 0 {
		cfg.OTPTTL = 10 * time.Minute
	}
	if secLogger == nil {
		secLogger = security.NewNopLogger()
	}

	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		admins[normalizeEmail(e)] = struct{}{}
	}

	return &adminAuthUsecase{
		cfg:       cfg,
		admins:    admins,
		otpStore:  otpStore,
		denylist:  denylist,
		mailer:    mailer,
		issuer:    issuer,
		secLogger: secLogger,
		validate:  validate,
		now:       time.Now,
	}
}

func (u *adminAuthUsecase) RequestOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if msg := validation.ValidateEmail(email); msg != "" {
		return apperror.Validation(msg, validation.FieldErrors{"email": msg})
	}

	if !u.isAdmin(email) {
		u.secLogger.Log(ctx, security.SecurityEvent{Event: security.EventOTPDenied, Email: email})
		return apperror.Forbidden(msgNotAdmin)
	}

	key, err := hotp.Generate(hotp.GenerateOpts{
		Issuer:      "Alvant Export",
		AccountName: email,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return apperror.Internal(fmt.Errorf("generate otp secret: %w", err))
	}
	code, err := hotp.GenerateCodeCustom(key.Secret(), otpCounter, otpOpts)
	if err != nil {
		return apperror.Internal(fmt.Errorf("generate otp code: %w", err))
	}

	now := u.now()
	challenge := domain.OTPChallenge{
		Secret:    key.Secret(),
		IssuedAt:  now,
		ExpiresAt: now.Add(u.cfg.OTPTTL),
	}
	if err := u.otpStore.Save(ctx, email, challenge); err != nil {
		return apperror.Internal(fmt.Errorf("save otp challenge: %w", err))
	}

	if err := u.mailer.SendOTP(ctx, email, code, u.cfg.OTPTTL); err != nil {
		// a code nobody received must not stay redeemable
		if derr := u.otpStore.Delete(ctx, email); derr != nil {
			logger.Log.Error("failed to drop undelivered otp challenge", "error", derr)
		}
		return apperror.BadGateway(msgOTPSendFailed, err)
	}

	u.secLogger.Log(ctx, security.SecurityEvent{Event: security.EventOTPRequested, Email: email})
	return nil
}

func (u *adminAuthUsecase) VerifyOTP(ctx context.Context, req *domain.OTPVerifyRequest) (*domain.AdminToken, error) {
	email := normalizeEmail(req.Email)
	code := strings.TrimSpace(req.OTP)
	if email == "" || code == "" {
		return nil, apperror.BadRequest(msgMissingOTPInput)
	}
	req.Email, req.OTP = email, code
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.Validation(msgMissingOTPInput, validation.FormatFieldErrors(err))
	}

	challenge, err := u.otpStore.Get(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		u.secLogger.Log(ctx, security.SecurityEvent{
			Event: security.EventOTPFailed, Email: email,
			Details: map[string]interface{}{"reason": "no_challenge"},
		})
		return nil, apperror.Unauthorized(msgOTPInvalid)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load otp challenge: %w", err))
	}

	// a locked challenge whose delete failed stays unusable until it expires
	if challenge.Attempts >= u.cfg.MaxAttempts {
		return nil, apperror.TooManyRequests(msgOTPLocked)
	}

	ok, _ := hotp.ValidateCustom(code, otpCounter, challenge.Secret, otpOpts)
	if !ok {
		return nil, u.recordFailure(ctx, email)
	}

	// single use
	if err := u.otpStore.Delete(ctx, email); err != nil {
		return nil, apperror.Internal(fmt.Errorf("consume otp challenge: %w", err))
	}

	ttl := u.cfg.TokenTTL
	if req.Remember {
		ttl = u.cfg.RememberTokenTTL
	}
	token, err := u.issuer.Issue(email, ttl)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.secLogger.Log(ctx, security.SecurityEvent{
		Event: security.EventAdminLoginSuccess, Email: email,
		Details: map[string]interface{}{"remember": req.Remember},
	})
	return token, nil
}

// recordFailure counts a wrong code and destroys the challenge once the budget is spent.
func (u *adminAuthUsecase) recordFailure(ctx context.Context, email string) error {
	attempts, err := u.otpStore.IncrementAttempts(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.Unauthorized(msgOTPInvalid)
	}
	if err != nil {
		return apperror.Internal(fmt.Errorf("count otp attempt: %w", err))
	}

	if attempts >= u.cfg.MaxAttempts {
		if err := u.otpStore.Delete(ctx, email); err != nil {
			logger.Log.Error("failed to delete locked otp challenge", "error", err)
		}
		u.secLogger.Log(ctx, security.SecurityEvent{
			Event: security.EventOTPLocked, Email: email,
			Details: map[string]interface{}{"attempts": attempts},
		})
		return apperror.TooManyRequests(msgOTPLocked)
	}

	u.secLogger.Log(ctx, security.SecurityEvent{
		Event: security.EventOTPFailed, Email: email,
		Details: map[string]interface{}{"attempts": attempts},
	})
	return apperror.Unauthorized(msgOTPInvalid)
}

func (u *adminAuthUsecase) VerifyToken(ctx context.Context, token string) (*domain.AdminClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperror.Unauthorized(msgInvalidToken)
	}

	claims, err := u.issuer.Parse(token)
	if err != nil {
		u.rejectToken(ctx, "", "invalid")
		return nil, apperror.Unauthorized(msgInvalidToken)
	}

	revoked, err := u.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("check token denylist: %w", err))
	}
	if revoked {
		u.rejectToken(ctx, claims.Email, "revoked")
		return nil, apperror.Unauthorized(msgInvalidToken)
	}

	// admins removed from the list lose access at once
	if !u.isAdmin(claims.Email) {
		u.rejectToken(ctx, claims.Email, "not_admin")
		return nil, apperror.Unauthorized(msgInvalidToken)
	}
	return claims, nil
}

func (u *adminAuthUsecase) Logout(ctx context.Context, claims *domain.AdminClaims) error {
	if claims == nil || claims.TokenID == "" {
		return apperror.Unauthorized(msgInvalidToken)
	}
	if err := u.denylist.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return apperror.Internal(fmt.Errorf("revoke token: %w", err))
	}
	u.secLogger.Log(ctx, security.SecurityEvent{Event: security.EventAdminLogout, Email: claims.Email})
	return nil
}

func (u *adminAuthUsecase) rejectToken(ctx context.Context, email, reason string) {
	u.secLogger.Log(ctx, security.SecurityEvent{
		Event: security.EventTokenRejected, Email: email,
		Details: map[string]interface{}{"reason": reason},
	})
}

func (u *adminAuthUsecase) isAdmin(email string) bool {
	_, ok := u.admins[normalizeEmail(email)]
	return ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
