// Package admin is the client half of the admin dashboard: the OTP login,
// token persistence, and browsing of submitted records.
package admin

import (
	"alvant-portal/internal/client/api"
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/logger"
	"alvant-portal/pkg/validation"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

// State of the admin session.
type State int

const (
	Anonymous State = iota
	OtpRequested
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case OtpRequested:
		return "otp_requested"
	case Authenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrBusy means a login request is already pending.
	ErrBusy             = errors.New("a login request is already in flight")
	// ErrInvalidInput means the request was refused locally; nothing was sent.
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionEnded means Logout ran while the request was in flight; its result was dropped.
	ErrSessionEnded     = errors.New("session ended before the request completed")
)

const (
	MsgEnterEmail       = "Enter your email address"
	MsgInvalidEmail     = "Please enter a valid email address"
	MsgMissingOTP       = "Provide email address and OTP"
	MsgOTPTooLong       = "OTP must be at most 6 characters"
	MsgCannotConnect    = "Cannot connect to server. Please make sure the backend server is running."
	MsgRequestOTPFailed = "Failed to request OTP"
	MsgVerifyOTPFailed  = "Failed to verify OTP"
	MsgSaveFailed       = "Failed to save the login on this device"
	MsgOTPSent          = "OTP sent to your email address. Check your inbox or the server console for the OTP code."

	maxOTPLength = 6
)

// Authenticator is the server side of the login; *api.Client implements it.
type Authenticator interface {
	RequestOTP(ctx context.Context, email string) (string, error)
	VerifyOTP(ctx context.Context, email, code string, remember bool) (*domain.AdminToken, error)
	VerifyToken(ctx context.Context, token string) (*api.TokenStatus, error)
	Logout(ctx context.Context, token string) error
}

// Auth drives the OTP login. Only one request runs at a time; the token is
// kept in memory and in the CredentialStore and is never logged.
type Auth struct {
	mu    sync.Mutex
	svc   Authenticator
	store CredentialStore

	state  State
	email  string
	token  string
	busy   bool
	banner string
	notice string

	// gen is bumped by Logout; a request started under an older gen commits nothing.
	gen uint64
}

func NewAuth(svc Authenticator, store CredentialStore) *Auth {
	return &Auth{svc: svc, store: store}
}

// RequestOTP checks the address locally, then asks the server to send a code.
func (a *Auth) RequestOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return ErrBusy
	}
	a.banner, a.notice = "", ""
	if msg := checkEmail(email); msg != "" {
		a.banner = msg
		a.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}
	a.busy = true
	gen := a.gen
	a.mu.Unlock()

	_, err := a.svc.RequestOTP(ctx, email)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.busy = false
	if a.gen != gen {
		return ErrSessionEnded
	}

	if err != nil {
		a.banner = failureMessage(err, MsgRequestOTPFailed)
		logger.Log.Error("otp request failed", "error", err)
		return err
	}
	a.email = email
	if a.state != Authenticated {
		a.state = OtpRequested
	}
	a.notice = MsgOTPSent
	return nil
}

// VerifyOTP exchanges the code for a token and persists it: durably when
// remember is set, for this session only otherwise.
func (a *Auth) VerifyOTP(ctx context.Context, email, code string, remember bool) error {
	email = strings.TrimSpace(email)
	code = strings.TrimSpace(code)

	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return ErrBusy
	}
	a.banner, a.notice = "", ""
	if msg := checkOTPInput(email, code); msg != "" {
		a.banner = msg
		a.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
	}
	a.busy = true
	gen := a.gen
	a.mu.Unlock()

	tok, err := a.svc.VerifyOTP(ctx, email, code, remember)

	a.mu.Lock()
	a.busy = false
	if a.gen != gen {
		a.mu.Unlock()
		if err == nil {
			a.revoke(ctx, tok.Token)
		}
		return ErrSessionEnded
	}
	defer a.mu.Unlock()

	if err != nil {
		a.banner = failureMessage(err, MsgVerifyOTPFailed)
		logger.Log.Error("otp verification failed", "error", err)
		return err
	}

	if remember {
		err = a.store.WriteDurable(tok.Token)
	} else {
		err = a.store.WriteEphemeral(tok.Token)
	}
	if err != nil {
		a.banner = MsgSaveFailed
		logger.Log.Error("persist admin token failed", "error", err)
		return err
	}

	a.token = tok.Token
	a.email = ""
	a.state = Authenticated
	return nil
}

// Bootstrap restores a persisted token. It is trusted only after the server
// answers a token check with JSON 2xx; on anything else it is purged from both
// stores and the session stays Anonymous.
func (a *Auth) Bootstrap(ctx context.Context) (bool, error) {
	a.mu.Lock()
	if a.busy {
		a.mu.Unlock()
		return false, ErrBusy
	}
	saved, err := a.store.Read()
	if err != nil {
		a.mu.Unlock()
		return false, err
	}
	if saved == "" {
		a.mu.Unlock()
		return false, nil
	}
	a.busy = true
	gen := a.gen
	a.mu.Unlock()

	_, verr := a.svc.VerifyToken(ctx, saved)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.busy = false
	if a.gen != gen {
		return false, ErrSessionEnded
	}

	if verr != nil {
		logger.Log.Warn("stored admin token rejected", "error", verr)
		a.token = ""
		a.state = Anonymous
		if err := a.store.Clear(); err != nil {
			return false, errors.Join(verr, err)
		}
		return false, verr
	}

	a.token = saved
	a.state = Authenticated
	return true, nil
}

// Logout forgets the token locally, then asks the server to revoke it.
// A failed revocation is logged only; the local session is gone either way.
func (a *Auth) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.gen++
	token := a.token
	a.token = ""
	a.email = ""
	a.state = Anonymous
	a.banner, a.notice = "", ""
	clearErr := a.store.Clear()
	a.mu.Unlock()

	if token != "" {
		a.revoke(ctx, token)
	}
	return clearErr
}

func (a *Auth) revoke(ctx context.Context, token string) {
	if err := a.svc.Logout(ctx, token); err != nil {
		logger.Log.Warn("server-side logout failed", "error", err)
	}
}

func (a *Auth) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Token is the bearer token of an authenticated session, "" otherwise.
func (a *Auth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

// Busy reports whether a request is pending; send and verify are disabled meanwhile.
func (a *Auth) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

func (a *Auth) Banner() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.banner
}

func (a *Auth) Notice() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notice
}

func checkEmail(email string) string {
	if email == "" {
		return MsgEnterEmail
	}
	if validation.ValidateEmail(email) != "" {
		return MsgInvalidEmail
	}
	return ""
}

func checkOTPInput(email, code string) string {
	if email == "" || code == "" {
		return MsgMissingOTP
	}
	if utf8.RuneCountInString(code) > maxOTPLength {
		return MsgOTPTooLong
	}
	return ""
}

// failureMessage keeps "cannot reach the server" apart from "the server
// answered with something that is not our API" and from a real rejection.
func failureMessage(err error, fallback string) string {
	var (
		transport  *api.TransportError
		unexpected *api.UnexpectedResponseError
		rejection  *api.RejectionError
		storeDown  *api.StorageUnavailableError
	)
	switch {
	case errors.As(err, &transport):
		return MsgCannotConnect
	case errors.As(err, &unexpected):
		return fmt.Sprintf("Server error: %d. Please check if the server is running.", unexpected.Status)
	case errors.As(err, &rejection):
		if rejection.Message != "" {
			return rejection.Message
		}
	case errors.As(err, &storeDown):
		return storeDown.Message
	}
	return fallback
}
