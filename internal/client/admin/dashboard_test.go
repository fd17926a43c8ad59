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

func TestBrowser_FailedRefreshKeepsPreviousData(t *testing.T) {
	ctx := context.Background()
	src := new(MockRecordSource)
	b := admin.NewBrowser(src)

	loaded := []domain.Registrant{{ID: "1", CompanyName: "Acme Foods"}}
	src.On("ListRegistrants", mock.Anything, "tok").Return(loaded, nil).Once()
	src.On("ListRegistrants", mock.Anything, "tok").Return(nil, &api.RejectionError{Status: http.StatusInternalServerError}).Once()

	require.NoError(t, b.RefreshRegistrants(ctx, "tok"))
	assert.Equal(t, loaded, b.Registrants())
	assert.Empty(t, b.Banner())

	assert.Error(t, b.RefreshRegistrants(ctx, "tok"))
	assert.Equal(t, loaded, b.Registrants())
	assert.Equal(t, admin.MsgFetchRegistrantsFailed, b.Banner())
	assert.False(t, b.Loading())

	src.On("ListContacts", mock.Anything, "tok").Return(nil, &api.TransportError{Op: "GET", Err: errors.New("refused")})
	assert.Error(t, b.RefreshContacts(ctx, "tok"))
	assert.Equal(t, admin.MsgFetchContactsFailed, b.Banner())
	assert.Empty(t, b.Contacts())
}

func TestBrowser_FilteredContactsUsesClock(t *testing.T) {
	src := new(MockRecordSource)
	b := admin.NewBrowser(src).WithClock(func() time.Time {
		return time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	})
	src.On("ListContacts", mock.Anything, "").Return([]domain.ContactMessage{
		{ID: "in", CreatedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "out", CreatedAt: time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)},
	}, nil)

	require.NoError(t, b.RefreshContacts(context.Background(), ""))
	got := b.FilteredContacts(admin.RangeWeek)
	require.Len(t, got, 1)
	assert.Equal(t, "in", got[0].ID)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	svc := new(MockAuthenticator)
	src := new(MockRecordSource)
	auth := admin.NewAuth(svc, admin.NewDualStore(admin.NewMemoryKV(), admin.NewMemoryKV()))
	d := admin.NewDashboard(auth, admin.NewBrowser(src))

	assert.ErrorIs(t, d.Refresh(ctx), admin.ErrNotAuthenticated)

	svc.On("VerifyOTP", mock.Anything, adminEmail, "123456", false).Return(&domain.AdminToken{Token: "tok"}, nil)
	src.On("ListRegistrants", mock.Anything, "tok").Return([]domain.Registrant{{ID: "r1"}}, nil)
	src.On("ListContacts", mock.Anything, "tok").Return([]domain.ContactMessage{{ID: "c1"}}, nil)
	svc.On("Logout", mock.Anything, "tok").Return(nil)

	require.NoError(t, d.Login(ctx, adminEmail, "123456", false))
	assert.Len(t, d.Browser.Registrants(), 1)
	src.AssertNotCalled(t, "ListContacts", mock.Anything, mock.Anything)

	require.NoError(t, d.Show(ctx, admin.SectionContacted))
	assert.Len(t, d.Browser.Contacts(), 1)
	assert.Error(t, d.Show(ctx, admin.Section("billing")))

	require.NoError(t, d.Logout(ctx))
	assert.Equal(t, admin.Anonymous, d.Auth.State())
	assert.Empty(t, d.Browser.Registrants())
	assert.Empty(t, d.Browser.Contacts())
}

func TestBrowser_ClearDiscardsRefreshInFlight(t *testing.T) {
	ctx := context.Background()
	src := new(MockRecordSource)
	b := admin.NewBrowser(src)

	release := make(chan struct{})
	src.On("ListContacts", mock.Anything, "tok").
		Run(func(mock.Arguments) { <-release }).
		Return([]domain.ContactMessage{{ID: "c1"}}, nil).Once()

	done := make(chan error, 1)
	go func() { done <- b.RefreshContacts(ctx, "tok") }()
	require.Eventually(t, b.Loading, time.Second, time.Millisecond)

	b.Clear()
	close(release)

	assert.ErrorIs(t, <-done, admin.ErrSessionEnded)
	assert.Empty(t, b.Contacts())
	assert.False(t, b.Loading())

	src.On("ListContacts", mock.Anything, "tok").Return([]domain.ContactMessage{{ID: "c2"}}, nil).Once()
	require.NoError(t, b.RefreshContacts(ctx, "tok"))
	assert.Len(t, b.Contacts(), 1)
}

func TestDashboard_LogoutDuringRefresh(t *testing.T) {
	ctx := context.Background()
	svc := new(MockAuthenticator)
	src := new(MockRecordSource)
	d := admin.NewDashboard(admin.NewAuth(svc, admin.NewDualStore(admin.NewMemoryKV(), admin.NewMemoryKV())), admin.NewBrowser(src))

	svc.On("VerifyOTP", mock.Anything, adminEmail, "123456", false).Return(&domain.AdminToken{Token: "tok"}, nil)
	svc.On("Logout", mock.Anything, "tok").Return(nil)
	src.On("ListRegistrants", mock.Anything, "tok").Return([]domain.Registrant{{ID: "r1"}}, nil).Once()
	require.NoError(t, d.Login(ctx, adminEmail, "123456", false))

	release := make(chan struct{})
	src.On("ListRegistrants", mock.Anything, "tok").
		Run(func(mock.Arguments) { <-release }).
		Return([]domain.Registrant{{ID: "r1"}, {ID: "r2"}}, nil).Once()

	done := make(chan error, 1)
	go func() { done <- d.Refresh(ctx) }()
	require.Eventually(t, d.Browser.Loading, time.Second, time.Millisecond)

	require.NoError(t, d.Logout(ctx))
	close(release)

	assert.ErrorIs(t, <-done, admin.ErrSessionEnded)
	assert.Equal(t, admin.Anonymous, d.Auth.State())
	assert.Empty(t, d.Browser.Registrants())
}
