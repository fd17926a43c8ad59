package admin_test

import (
	"alvant-portal/internal/client/admin"
	"alvant-portal/internal/client/api"
	"alvant-portal/internal/domain"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const adminEmail = "admin@alvant.example"

type authFixture struct {
	auth    *admin.Auth
	svc     *MockAuthenticator
	durable *admin.MemoryKV
	session *admin.MemoryKV
}

func newAuth() *authFixture {
	f := &authFixture{
		svc:     new(MockAuthenticator),
		durable: admin.NewMemoryKV(),
		session: admin.NewMemoryKV(),
	}
	f.auth = admin.NewAuth(f.svc, admin.NewDualStore(f.durable, f.session))
	return f
}

func TestAuth_RequestOTP(t *testing.T) {
	ctx := context.Background()

	t.Run("bad input never reaches the server", func(t *testing.T) {
		f := newAuth()
		for input, msg := range map[string]string{
			"   ":          admin.MsgEnterEmail,
			"not-an-email": admin.MsgInvalidEmail,
			"a b@c.d":      admin.MsgInvalidEmail,
		} {
			err := f.auth.RequestOTP(ctx, input)
			assert.ErrorIs(t, err, admin.ErrInvalidInput)
			assert.Equal(t, msg, f.auth.Banner())
		}
		f.svc.AssertNotCalled(t, "RequestOTP", mock.Anything, mock.Anything)
		assert.Equal(t, admin.Anonymous, f.auth.State())
	})

	t.Run("success moves to OtpRequested", func(t *testing.T) {
		f := newAuth()
		f.svc.On("RequestOTP", mock.Anything, adminEmail).Return("OTP sent", nil)

		require.NoError(t, f.auth.RequestOTP(ctx, " "+adminEmail+" "))
		assert.Equal(t, admin.OtpRequested, f.auth.State())
		assert.Equal(t, admin.MsgOTPSent, f.auth.Notice())
		assert.Empty(t, f.auth.Banner())
	})

	failures := []struct {
		name   string
		err    error
		banner string
	}{
		{"unreachable server", &api.TransportError{Op: "POST", Err: errors.New("dial tcp: refused")}, admin.MsgCannotConnect},
		{"html error page", &api.UnexpectedResponseError{Status: http.StatusBadGateway, ContentType: "text/html"}, "Server error: 502. Please check if the server is running."},
		{"server rejection", &api.RejectionError{Status: http.StatusForbidden, Message: "This email is not authorized for admin access"}, "This email is not authorized for admin access"},
		{"rejection without message", &api.RejectionError{Status: http.StatusInternalServerError}, admin.MsgRequestOTPFailed},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			f := newAuth()
			f.svc.On("RequestOTP", mock.Anything, adminEmail).Return("", tc.err)

			err := f.auth.RequestOTP(ctx, adminEmail)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, tc.banner, f.auth.Banner())
			assert.Equal(t, admin.Anonymous, f.auth.State())
			assert.False(t, f.auth.Busy())
		})
	}
}

func TestAuth_VerifyOTP(t *testing.T) {
	ctx := context.Background()
	token := &domain.AdminToken{Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}

	t.Run("remember=false stores only in the session store", func(t *testing.T) {
		f := newAuth()
		f.svc.On("VerifyOTP", mock.Anything, adminEmail, "123456", false).Return(token, nil)

		require.NoError(t, f.auth.VerifyOTP(ctx, adminEmail, "123456", false))

		assert.Equal(t, admin.Authenticated, f.auth.State())
		assert.Equal(t, "tok-1", f.auth.Token())
		v, ok, _ := f.session.Get(admin.TokenKey)
		assert.True(t, ok)
		assert.Equal(t, "tok-1", v)
		_, ok, _ = f.durable.Get(admin.TokenKey)
		assert.False(t, ok)
	})

	t.Run("remember=true stores only in the durable store", func(t *testing.T) {
		f := newAuth()
		require.NoError(t, f.session.Set(admin.TokenKey, "stale"))
		f.svc.On("VerifyOTP", mock.Anything, adminEmail, "123456", true).Return(token, nil)

		require.NoError(t, f.auth.VerifyOTP(ctx, adminEmail, "123456", true))

		v, ok, _ := f.durable.Get(admin.TokenKey)
		assert.True(t, ok)
		assert.Equal(t, "tok-1", v)
		_, ok, _ = f.session.Get(admin.TokenKey)
		assert.False(t, ok)
	})

	t.Run("local checks", func(t *testing.T) {
		f := newAuth()
		assert.ErrorIs(t, f.auth.VerifyOTP(ctx, "", "123456", false), admin.ErrInvalidInput)
		assert.Equal(t, admin.MsgMissingOTP, f.auth.Banner())
		assert.ErrorIs(t, f.auth.VerifyOTP(ctx, adminEmail, "1234567", false), admin.ErrInvalidInput)
		assert.Equal(t, admin.MsgOTPTooLong, f.auth.Banner())
		f.svc.AssertNotCalled(t, "VerifyOTP", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wrong code keeps the session anonymous", func(t *testing.T) {
		f := newAuth()
		rej := &api.RejectionError{Status: http.StatusUnauthorized, Message: "Invalid or expired OTP. Please request a new one."}
		f.svc.On("VerifyOTP", mock.Anything, adminEmail, "000000", false).Return(nil, rej)

		assert.ErrorIs(t, f.auth.VerifyOTP(ctx, adminEmail, "000000", false), rej)
		assert.Equal(t, rej.Message, f.auth.Banner())
		assert.Equal(t, admin.Anonymous, f.auth.State())
		assert.Empty(t, f.auth.Token())
	})

	t.Run("only one request at a time", func(t *testing.T) {
		f := newAuth()
		release := make(chan struct{})
		f.svc.On("VerifyOTP", mock.Anything, adminEmail, "123456", false).
			Run(func(mock.Arguments) { <-release }).
			Return(token, nil).Once()

		done := make(chan error, 1)
		go func() { done <- f.auth.VerifyOTP(ctx, adminEmail, "123456", false) }()

		require.Eventually(t, f.auth.Busy, time.Second, time.Millisecond)
		assert.ErrorIs(t, f.auth.RequestOTP(ctx, adminEmail), admin.ErrBusy)
		assert.ErrorIs(t, f.auth.VerifyOTP(ctx, adminEmail, "123456", false), admin.ErrBusy)

		close(release)
		require.NoError(t, <-done)
		f.svc.AssertNumberOfCalls(t, "VerifyOTP", 1)
	})
}

func TestAuth_Bootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing stored", func(t *testing.T) {
		f := newAuth()
		ok, err := f.auth.Bootstrap(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		f.svc.AssertNotCalled(t, "VerifyToken", mock.Anything, mock.Anything)
	})

	t.Run("valid token authenticates", func(t *testing.T) {
		f := newAuth()
		require.NoError(t, f.session.Set(admin.TokenKey, "tok-1"))
		f.svc.On("VerifyToken", mock.Anything, "tok-1").Return(&api.TokenStatus{Valid: true, Email: adminEmail}, nil)

		ok, err := f.auth.Bootstrap(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, admin.Authenticated, f.auth.State())
		assert.Equal(t, "tok-1", f.auth.Token())
	})

	rejected := map[string]error{
		"non-2xx":     &api.RejectionError{Status: http.StatusUnauthorized, Message: "Invalid token"},
		"non-JSON":    &api.UnexpectedResponseError{Status: http.StatusOK, ContentType: "text/html"},
		"unreachable": &api.TransportError{Op: "GET", Err: errors.New("refused")},
	}
	for name, verr := range rejected {
		t.Run(name+" purges both stores", func(t *testing.T) {
			f := newAuth()
			require.NoError(t, f.durable.Set(admin.TokenKey, "tok-1"))
			require.NoError(t, f.session.Set(admin.TokenKey, "tok-2"))
			f.svc.On("VerifyToken", mock.Anything, "tok-1").Return(nil, verr)

			ok, err := f.auth.Bootstrap(ctx)
			assert.False(t, ok)
			assert.ErrorIs(t, err, verr)
			assert.Equal(t, admin.Anonymous, f.auth.State())
			assert.Empty(t, f.auth.Token())

			_, inDurable, _ := f.durable.Get(admin.TokenKey)
			_, inSession, _ := f.session.Get(admin.TokenKey)
			assert.False(t, inDurable)
			assert.False(t, inSession)
		})
	}
}

func TestAuth_Logout(t *testing.T) {
	ctx := context.Background()
	f := newAuth()
	f.svc.On("VerifyOTP", mock.Anything, adminEmail, "123456", true).
		Return(&domain.AdminToken{Token: "tok-1"}, nil)
	f.svc.On("Logout", mock.Anything, "tok-1").Return(errors.New("server down"))

	require.NoError(t, f.auth.VerifyOTP(ctx, adminEmail, "123456", true))
	require.NoError(t, f.auth.Logout(ctx))

	assert.Equal(t, admin.Anonymous, f.auth.State())
	assert.Empty(t, f.auth.Token())
	_, ok, _ := f.durable.Get(admin.TokenKey)
	assert.False(t, ok)
	f.svc.AssertCalled(t, "Logout", mock.Anything, "tok-1")
}

func TestAuth_LogoutDuringRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("late verify commits nothing and revokes its token", func(t *testing.T) {
		f := newAuth()
		release := make(chan struct{})
		f.svc.On("VerifyOTP", mock.Anything, adminEmail, "123456", true).
			Run(func(mock.Arguments) { <-release }).
			Return(&domain.AdminToken{Token: "tok-late"}, nil).Once()
		f.svc.On("Logout", mock.Anything, "tok-late").Return(nil).Once()

		done := make(chan error, 1)
		go func() { done <- f.auth.VerifyOTP(ctx, adminEmail, "123456", true) }()
		require.Eventually(t, f.auth.Busy, time.Second, time.Millisecond)

		require.NoError(t, f.auth.Logout(ctx))
		close(release)

		assert.ErrorIs(t, <-done, admin.ErrSessionEnded)
		assert.Equal(t, admin.Anonymous, f.auth.State())
		assert.Empty(t, f.auth.Token())
		assert.False(t, f.auth.Busy())
		_, inDurable, _ := f.durable.Get(admin.TokenKey)
		_, inSession, _ := f.session.Get(admin.TokenKey)
		assert.False(t, inDurable)
		assert.False(t, inSession)
		f.svc.AssertCalled(t, "Logout", mock.Anything, "tok-late")
	})

	t.Run("late bootstrap does not restore the session", func(t *testing.T) {
		f := newAuth()
		require.NoError(t, f.session.Set(admin.TokenKey, "tok-1"))
		release := make(chan struct{})
		f.svc.On("VerifyToken", mock.Anything, "tok-1").
			Run(func(mock.Arguments) { <-release }).
			Return(&api.TokenStatus{Valid: true, Email: adminEmail}, nil).Once()

		type result struct {
			ok  bool
			err error
		}
		done := make(chan result, 1)
		go func() {
			ok, err := f.auth.Bootstrap(ctx)
			done <- result{ok, err}
		}()
		require.Eventually(t, f.auth.Busy, time.Second, time.Millisecond)

		require.NoError(t, f.auth.Logout(ctx))
		close(release)

		res := <-done
		assert.False(t, res.ok)
		assert.ErrorIs(t, res.err, admin.ErrSessionEnded)
		assert.Equal(t, admin.Anonymous, f.auth.State())
		assert.Empty(t, f.auth.Token())
		_, inSession, _ := f.session.Get(admin.TokenKey)
		assert.False(t, inSession)
	})

	t.Run("a new login after logout works", func(t *testing.T) {
		f := newAuth()
		f.svc.On("VerifyOTP", mock.Anything, adminEmail, "123456", false).
			Return(&domain.AdminToken{Token: "tok-2"}, nil)
		f.svc.On("Logout", mock.Anything, "tok-2").Return(nil)

		require.NoError(t, f.auth.VerifyOTP(ctx, adminEmail, "123456", false))
		require.NoError(t, f.auth.Logout(ctx))
		require.NoError(t, f.auth.VerifyOTP(ctx, adminEmail, "123456", false))
		assert.Equal(t, admin.Authenticated, f.auth.State())
		assert.Equal(t, "tok-2", f.auth.Token())
	})
}
