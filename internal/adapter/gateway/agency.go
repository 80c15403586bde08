package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"herald-hub/internal/domain"
)

// loginRequest is the agency backend's login payload.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the agency backend's login result. The role arrives
// as a free-form string and is validated into the closed set here, at
// the boundary.
type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID             string          `json:"id"`
		Username       string          `json:"username"`
		Email          string          `json:"email"`
		FirstName      string          `json:"firstName"`
		LastName       string          `json:"lastName"`
		Role           string          `json:"role"`
		Area           string          `json:"area"`
		DefaultAddress *domain.Address `json:"defaultAddress"`
	} `json:"user"`
}

// AgencyGateway talks to the agency backend's REST API.
// Implements domain.AuthGateway and domain.ResourceFetcher.
type AgencyGateway struct {
	baseURL    string
	httpClient *http.Client
}

// NewAgencyGateway creates a new agency gateway with tuned HTTP transport.
func NewAgencyGateway(baseURL string, timeout time.Duration) *AgencyGateway {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
	}

	return &AgencyGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Login exchanges credentials for a bearer token and user profile.
func (g *AgencyGateway) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", domain.User{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %w", domain.ErrAgencyUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %w", domain.ErrAgencyUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to decoding.
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", domain.User{}, domain.ErrInvalidCredentials
	default:
		return "", domain.User{}, fmt.Errorf("%w: auth API returned status %d", domain.ErrAgencyUnavailable, resp.StatusCode)
	}

	var result loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %w", domain.ErrAgencyUnavailable, err)
	}

	if result.Token == "" || result.User.ID == "" {
		return "", domain.User{}, fmt.Errorf("%w: incomplete login response", domain.ErrAgencyUnavailable)
	}

	role, err := domain.ParseRole(result.User.Role)
	if err != nil {
		return "", domain.User{}, err
	}

	user := domain.User{
		ID:             result.User.ID,
		Username:       result.User.Username,
		Email:          result.User.Email,
		FirstName:      result.User.FirstName,
		LastName:       result.User.LastName,
		Role:           role,
		Area:           result.User.Area,
		DefaultAddress: result.User.DefaultAddress,
	}
	return result.Token, user, nil
}

// Logout revokes the bearer token server-side.
func (g *AgencyGateway) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/auth/logout", nil)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAgencyUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrAgencyUnavailable, err)
	}
	defer resp.Body.Close()

	// An already-invalid token means the server side is logged out too.
	if resp.StatusCode >= 200 && resp.StatusCode < 300 || resp.StatusCode == http.StatusUnauthorized {
		return nil
	}
	return fmt.Errorf("%w: auth API returned status %d", domain.ErrAgencyUnavailable, resp.StatusCode)
}

// Fetch reads an opaque backend resource with the bearer token attached.
// The body and status are passed through untouched; this hub does not
// interpret domain payloads.
func (g *AgencyGateway) Fetch(ctx context.Context, token, backendPath string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+backendPath, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrAgencyUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrAgencyUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrAgencyUnavailable, err)
	}
	return body, resp.StatusCode, nil
}
