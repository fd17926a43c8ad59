package api_test

import (
	"alvant-portal/internal/client/api"
	"alvant-portal/internal/domain"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *api.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 5*time.Second)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_SubmitRegistration(t *testing.T) {
	t.Run("posts the draft as JSON", func(t *testing.T) {
		var got domain.Registrant
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/register", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Empty(t, r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeJSON(w, http.StatusCreated, map[string]string{"message": "ok", "id": "r1"})
		})

		ack, err := c.SubmitRegistration(context.Background(), &domain.Registrant{CompanyName: "Acme"})
		require.NoError(t, err)
		assert.Equal(t, "r1", ack.ID)
		assert.Equal(t, "Acme", got.CompanyName)
	})

	t.Run("field errors become a rejection", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Please correct the errors below",
				"errors": map[string]string{"phone": "Please provide a valid phone number"},
			})
		})

		_, err := c.SubmitRegistration(context.Background(), &domain.Registrant{})
		var rej *api.RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, http.StatusBadRequest, rej.Status)
		assert.Equal(t, "Please correct the errors below", rej.Message)
		assert.Equal(t, "Please provide a valid phone number", rej.Fields["phone"])
	})

	t.Run("503 with the marker is storage unavailability", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Database not connected"})
		})

		_, err := c.SubmitContact(context.Background(), &domain.ContactMessage{})
		var su *api.StorageUnavailableError
		assert.True(t, errors.As(err, &su))
	})

	t.Run("503 without the marker is a plain rejection", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "Maintenance"})
		})

		_, err := c.SubmitContact(context.Background(), &domain.ContactMessage{})
		var rej *api.RejectionError
		assert.True(t, errors.As(err, &rej))
	})

	t.Run("HTML error pages are unexpected responses", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		})

		_, err := c.SubmitContact(context.Background(), &domain.ContactMessage{})
		var ur *api.UnexpectedResponseError
		require.True(t, errors.As(err, &ur))
		assert.Equal(t, http.StatusBadGateway, ur.Status)
	})

	t.Run("malformed JSON is an unexpected response", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not json"))
		})

		_, err := c.SubmitContact(context.Background(), &domain.ContactMessage{})
		var ur *api.UnexpectedResponseError
		assert.True(t, errors.As(err, &ur))
	})
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := api.New(url, time.Second)
	_, err := c.RequestOTP(context.Background(), "admin@alvant.example")

	var te *api.TransportError
	assert.True(t, errors.As(err, &te))
}

func TestClient_BearerHeader(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/verify-token":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, map[string]interface{}{"valid": true, "email": "admin@alvant.example"})
		case "/api/contact":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, []domain.ContactMessage{{ID: "c1"}, {ID: "c2"}})
		case "/api/register":
			assert.Empty(t, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization header required"})
		default:
			http.NotFound(w, r)
		}
	})

	st, err := c.VerifyToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.True(t, st.Valid)

	contacts, err := c.ListContacts(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Len(t, contacts, 2)

	_, err = c.ListRegistrants(context.Background(), "")
	var rej *api.RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, http.StatusUnauthorized, rej.Status)
}

func TestClient_VerifyOTP(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body domain.OTPVerifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.OTP != "123456" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired OTP. Please request a new one."})
			return
		}
		assert.True(t, body.Remember)
		writeJSON(w, http.StatusOK, map[string]string{"token": "tok-1", "expiresAt": "2024-02-01T00:00:00Z"})
	})

	tok, err := c.VerifyOTP(context.Background(), "admin@alvant.example", "123456", true)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok.Token)

	_, err = c.VerifyOTP(context.Background(), "admin@alvant.example", "000000", true)
	var rej *api.RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, "Invalid or expired OTP. Please request a new one.", rej.Message)
}
