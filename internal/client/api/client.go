package api

import (
	"alvant-portal/internal/domain"
	"alvant-portal/pkg/validation"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// maxBodyBytes bounds what is read from any response.
const maxBodyBytes = 4 << 20

// Ack is the body of a successful submission.
type Ack struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// TokenStatus is the body of a successful token check.
type TokenStatus struct {
	Valid     bool      `json:"valid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type errorBody struct {
	Error  string                 `json:"error"`
	Errors validation.FieldErrors `json:"errors"`
}

// Client speaks the portal's JSON contract. Bearer tokens only ever travel in the
// Authorization header and never appear in returned errors.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API rooted at baseURL (without the /api suffix).
func New(baseURL string, timeout time.Duration) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api",
		httpClient: hc,
	}
}

func (c *Client) SubmitRegistration(ctx context.Context, r *domain.Registrant) (*Ack, error) {
	var ack Ack
	if err := c.do(ctx, http.MethodPost, "/register", "", r, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

func (c *Client) SubmitContact(ctx context.Context, m *domain.ContactMessage) (*Ack, error) {
	var ack Ack
	if err := c.do(ctx, http.MethodPost, "/contact", "", m, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}

// RequestOTP asks the server to send a passcode to email.
func (c *Client) RequestOTP(ctx context.Context, email string) (string, error) {
	var ack Ack
	if err := c.do(ctx, http.MethodPost, "/admin/request-otp", "", domain.OTPRequest{Email: email}, &ack); err != nil {
		return "", err
	}
	return ack.Message, nil
}

func (c *Client) VerifyOTP(ctx context.Context, email, code string, remember bool) (*domain.AdminToken, error) {
	var tok domain.AdminToken
	req := domain.OTPVerifyRequest{Email: email, OTP: code, Remember: remember}
	if err := c.do(ctx, http.MethodPost, "/admin/verify-otp", "", req, &tok); err != nil {
		return nil, err
	}
	if tok.Token == "" {
		return nil, &UnexpectedResponseError{Status: http.StatusOK, ContentType: "application/json", Err: errors.New("token missing from response")}
	}
	return &tok, nil
}

// VerifyToken succeeds only on a JSON 2xx.
func (c *Client) VerifyToken(ctx context.Context, token string) (*TokenStatus, error) {
	var st TokenStatus
	if err := c.do(ctx, http.MethodGet, "/admin/verify-token", token, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Logout asks the server to revoke token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/admin/logout", token, nil, nil)
}

// ListRegistrants attaches token when it is non-empty.
func (c *Client) ListRegistrants(ctx context.Context, token string) ([]domain.Registrant, error) {
	var out []domain.Registrant
	if err := c.do(ctx, http.MethodGet, "/register", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListContacts(ctx context.Context, token string) ([]domain.ContactMessage, error) {
	var out []domain.ContactMessage
	if err := c.do(ctx, http.MethodGet, "/contact", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out interface{}) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}

	contentType := resp.Header.Get("Content-Type")
	if !isJSON(contentType) {
		return &UnexpectedResponseError{Status: resp.StatusCode, ContentType: contentType}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(bytes.TrimSpace(raw)) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &UnexpectedResponseError{Status: resp.StatusCode, ContentType: contentType, Err: err}
		}
		return nil
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return &UnexpectedResponseError{Status: resp.StatusCode, ContentType: contentType, Err: err}
	}
	if resp.StatusCode == http.StatusServiceUnavailable && eb.Error == domain.StoreUnavailableMessage {
		return &StorageUnavailableError{Message: eb.Error}
	}
	return &RejectionError{Status: resp.StatusCode, Message: eb.Error, Fields: eb.Errors}
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
