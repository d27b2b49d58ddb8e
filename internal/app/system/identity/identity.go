// Package identity verifies bearer tokens against the external identity
// provider (Stytch). The service never mints or stores credentials; it
// only asks the provider whether a presented session token is live and,
// if so, which provider user it belongs to.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidToken is returned when the provider rejects the token
// (expired, revoked, or never valid).
var ErrInvalidToken = errors.New("invalid or expired session token")

// Verifier resolves a bearer token to a provider user ID.
type Verifier interface {
	Authenticate(ctx context.Context, token string) (stytchID string, err error)
}

// VerifierFunc adapts a plain function to the Verifier interface.
type VerifierFunc func(ctx context.Context, token string) (string, error)

func (f VerifierFunc) Authenticate(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}

// Client calls the provider's session-authenticate endpoint over HTTPS
// using project credentials from configuration.
type Client struct {
	baseURL   string
	projectID string
	secret    string
	http      *http.Client
	log       *zap.Logger
}

// NewClient builds a provider client. baseURL is the API root without a
// trailing slash (e.g. https://api.stytch.com).
func NewClient(baseURL, projectID, secret string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		projectID: projectID,
		secret:    secret,
		http:      &http.Client{Timeout: 10 * time.Second},
		log:       logger,
	}
}

type authenticateRequest struct {
	SessionToken string `json:"session_token"`
}

type authenticateResponse struct {
	Session struct {
		UserID string `json:"user_id"`
	} `json:"session"`
}

// Authenticate checks the token with the provider and returns the
// provider user ID it belongs to. A 4xx from the provider means the
// token is bad (ErrInvalidToken); anything else is a transport or
// provider failure.
func (c *Client) Authenticate(ctx context.Context, token string) (string, error) {
	body, err := json.Marshal(authenticateRequest{SessionToken: token})
	if err != nil {
		return "", err
	}

	url := c.baseURL + "/v1/sessions/authenticate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.projectID, c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return "", ErrInvalidToken
	default:
		c.log.Warn("identity provider error",
			zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("identity provider returned %d", resp.StatusCode)
	}

	var out authenticateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode identity response: %w", err)
	}
	if out.Session.UserID == "" {
		return "", ErrInvalidToken
	}
	return out.Session.UserID, nil
}
