package form_test

import (
	"alvant-portal/internal/client/api"
	"alvant-portal/internal/client/form"
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/validation"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) SubmitRegistration(ctx context.Context, r *domain.Registrant) (*api.Ack, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Ack), args.Error(1)
}

func (m *MockSubmitter) SubmitContact(ctx context.Context, c *domain.ContactMessage) (*api.Ack, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Ack), args.Error(1)
}

func fillRegistration(t *testing.T, s *form.Session[domain.Registrant]) {
	t.Helper()
	for name, value := range map[string]string{
		"companyName":  "Acme Foods",
		"firstName":    "Jane",
		"lastName":     "Doe",
		"jobTitle":     "Buyer",
		"phone":        "+971 (50) 123-4567",
		"email":        "jane@acme.example",
		"hasUAE":       "Yes",
		"multiCountry": "No",
	} {
		require.NoError(t, s.UpdateField(name, value))
	}
	require.NoError(t, s.ToggleSetMember("lineOfBusiness", "Distributor"))
	require.NoError(t, s.ToggleSetMember("productInterest", "Spices"))
}

func TestSession_ToggleSetMember(t *testing.T) {
	s := form.NewRegistrationForm(new(MockSubmitter))

	require.NoError(t, s.ToggleSetMember("lineOfBusiness", "Manufacturer"))
	require.NoError(t, s.ToggleSetMember("lineOfBusiness", "Others"))
	before := s.Draft().LineOfBusiness

	require.NoError(t, s.ToggleSetMember("lineOfBusiness", "Distributor"))
	require.NoError(t, s.ToggleSetMember("lineOfBusiness", "Distributor"))
	assert.Equal(t, before, s.Draft().LineOfBusiness)

	require.NoError(t, s.ToggleSetMember("lineOfBusiness", "Manufacturer"))
	require.NoError(t, s.ToggleSetMember("lineOfBusiness", "Manufacturer"))
	assert.ElementsMatch(t, []string{"Manufacturer", "Others"}, s.Draft().LineOfBusiness)

	t.Run("unknown field and option", func(t *testing.T) {
		assert.ErrorIs(t, s.ToggleSetMember("companyName", "x"), form.ErrUnknownField)
		assert.ErrorIs(t, s.ToggleSetMember("lineOfBusiness", "Pirate"), form.ErrUnknownOption)
		assert.ErrorIs(t, s.UpdateField("lineOfBusiness", "x"), form.ErrUnknownField)
		assert.ErrorIs(t, s.UpdateField("favouriteColour", "x"), form.ErrUnknownField)
	})
}

func TestSession_SubmitInvalidMakesNoCall(t *testing.T) {
	sub := new(MockSubmitter)
	s := form.NewRegistrationForm(sub)
	fillRegistration(t, s)
	require.NoError(t, s.UpdateField("phone", "12345"))

	err := s.Submit(context.Background())

	assert.ErrorIs(t, err, form.ErrInvalidDraft)
	assert.Equal(t, form.Failed, s.Status())
	assert.Equal(t, form.MsgFixHighlighted, s.Banner())
	assert.Equal(t, validation.FieldErrors{"phone": "Phone number must contain at least 10 digits"}, s.Errors())
	sub.AssertNotCalled(t, "SubmitRegistration", mock.Anything, mock.Anything)
}

func TestSession_SubmitSuccessResetsDraft(t *testing.T) {
	sub := new(MockSubmitter)
	s := form.NewRegistrationForm(sub)
	fillRegistration(t, s)
	sub.On("SubmitRegistration", mock.Anything, mock.MatchedBy(func(r *domain.Registrant) bool {
		return r.CompanyName == "Acme Foods" && len(r.ProductInterest) == 1
	})).Return(&api.Ack{ID: "r1"}, nil).Once()

	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, form.Succeeded, s.Status())
	assert.Equal(t, domain.Registrant{LineOfBusiness: []string{}, ProductInterest: []string{}}, s.Draft())
	assert.Empty(t, s.Errors())
	assert.Equal(t, form.RegistrationNotice, s.Notice())
	assert.Empty(t, s.Banner())
	sub.AssertExpectations(t)

	// the next edit starts a new round
	require.NoError(t, s.UpdateField("companyName", "Globex"))
	assert.Equal(t, form.Idle, s.Status())
	assert.Empty(t, s.Notice())
}

func TestSession_DirtyErrorPolicy(t *testing.T) {
	s := form.NewContactForm(new(MockSubmitter))

	// no error before the field was ever validated
	require.NoError(t, s.UpdateField("email", "bad"))
	assert.Empty(t, s.Errors())

	require.NoError(t, s.Blur("email"))
	assert.Equal(t, "Please provide a valid email address", s.Errors()["email"])

	// once shown, the error tracks every edit
	require.NoError(t, s.UpdateField("email", ""))
	assert.Equal(t, "Email is required", s.Errors()["email"])
	require.NoError(t, s.UpdateField("email", "sam@example.com"))
	assert.NotContains(t, s.Errors(), "email")

	assert.ErrorIs(t, s.Blur("nope"), form.ErrUnknownField)
}

func TestSession_FailureBanners(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		banner     string
		wantFields validation.FieldErrors
	}{
		{
			name:       "field errors from the server are merged",
			err:        &api.RejectionError{Status: http.StatusBadRequest, Message: "Please correct the errors below", Fields: validation.FieldErrors{"email": "Email already registered"}},
			banner:     "Please correct the errors below",
			wantFields: validation.FieldErrors{"email": "Email already registered"},
		},
		{
			name:       "field errors without a summary",
			err:        &api.RejectionError{Status: http.StatusBadRequest, Fields: validation.FieldErrors{"name": "Name is taken"}},
			banner:     form.MsgFixBelow,
			wantFields: validation.FieldErrors{"name": "Name is taken"},
		},
		{
			name:   "rejection without fields uses the server message",
			err:    &api.RejectionError{Status: http.StatusConflict, Message: "Duplicate submission"},
			banner: "Duplicate submission",
		},
		{
			name:   "rejection without anything",
			err:    &api.RejectionError{Status: http.StatusInternalServerError},
			banner: form.MsgSubmissionFailed,
		},
		{
			name:   "storage unavailable",
			err:    &api.StorageUnavailableError{Message: "Database not connected"},
			banner: form.MsgStoreDown,
		},
		{
			name:   "transport failure",
			err:    &api.TransportError{Op: "POST /contact", Err: errors.New("connection refused")},
			banner: form.MsgNetwork,
		},
		{
			name:   "non-JSON body",
			err:    &api.UnexpectedResponseError{Status: http.StatusBadGateway, ContentType: "text/html"},
			banner: form.MsgInvalidResponse,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := new(MockSubmitter)
			s := form.NewContactForm(sub)
			require.NoError(t, s.UpdateField("name", "Sam"))
			require.NoError(t, s.UpdateField("email", "sam@example.com"))
			sub.On("SubmitContact", mock.Anything, mock.Anything).Return(nil, tc.err)

			err := s.Submit(context.Background())

			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, form.Failed, s.Status())
			assert.Equal(t, tc.banner, s.Banner())
			if tc.wantFields == nil {
				assert.Empty(t, s.Errors())
			} else {
				assert.Equal(t, tc.wantFields, s.Errors())
			}
			// draft survives a failure
			assert.Equal(t, "Sam", s.Draft().Name)

			require.NoError(t, s.UpdateField("message", "hello"))
			assert.Equal(t, form.Idle, s.Status())
		})
	}
}

func TestSession_SubmitIsExclusive(t *testing.T) {
	sub := new(MockSubmitter)
	s := form.NewContactForm(sub)
	require.NoError(t, s.UpdateField("name", "Sam"))
	require.NoError(t, s.UpdateField("email", "sam@example.com"))

	release := make(chan struct{})
	sub.On("SubmitContact", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(&api.Ack{ID: "c1"}, nil).Once()

	done := make(chan error, 1)
	go func() { done <- s.Submit(context.Background()) }()

	require.Eventually(t, func() bool { return s.Status() == form.Submitting }, time.Second, time.Millisecond)
	assert.False(t, s.CanSubmit())
	assert.ErrorIs(t, s.Submit(context.Background()), form.ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.True(t, s.CanSubmit())
	assert.Equal(t, form.ContactNotice, s.Notice())
	sub.AssertNumberOfCalls(t, "SubmitContact", 1)
}

func TestContactForm_OptionalFields(t *testing.T) {
	sub := new(MockSubmitter)
	s := form.NewContactForm(sub)
	require.NoError(t, s.UpdateField("name", "Sam"))
	require.NoError(t, s.UpdateField("email", "sam@example.com"))
	require.NoError(t, s.UpdateField("phone", "call me"))

	assert.ErrorIs(t, s.Submit(context.Background()), form.ErrInvalidDraft)
	assert.Equal(t, "Please provide a valid phone number", s.Errors()["phone"])

	require.NoError(t, s.UpdateField("phone", ""))
	assert.Empty(t, s.Errors())

	opts, err := s.Options("categories")
	require.NoError(t, err)
	assert.Equal(t, domain.ContactCategoryOptions, opts)
}
