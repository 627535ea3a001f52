package partyapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/partyhub/party-ui-api/internal/ports"
)

// Login endpoint paths, one per principal family.
const (
	adminLoginPath        = "/auth/login"
	personLoginPath       = "/persons/login"
	organizationLoginPath = "/organizations/login"
)

// tokenResponse is the backend's login reply.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type usernameLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin exchanges admin credentials for a bearer token.
func (c *Client) AdminLogin(ctx context.Context, in ports.LoginInput) (string, error) {
	if in.Email == "" || in.Password == "" {
		return "", errors.New("email and password are required")
	}
	return c.login(ctx, adminLoginPath, adminLoginRequest{Email: in.Email, Password: in.Password})
}

// PersonLogin exchanges person credentials for a bearer token.
func (c *Client) PersonLogin(ctx context.Context, in ports.LoginInput) (string, error) {
	if in.Username == "" || in.Password == "" {
		return "", errors.New("username and password are required")
	}
	return c.login(ctx, personLoginPath, usernameLoginRequest{Username: in.Username, Password: in.Password})
}

// OrganizationLogin exchanges organization credentials for a bearer token.
func (c *Client) OrganizationLogin(ctx context.Context, in ports.LoginInput) (string, error) {
	if in.Username == "" || in.Password == "" {
		return "", errors.New("username and password are required")
	}
	return c.login(ctx, organizationLoginPath, usernameLoginRequest{Username: in.Username, Password: in.Password})
}

func (c *Client) login(ctx context.Context, path string, body any) (string, error) {
	var resp tokenResponse
	if err := c.postJSON(ctx, path, body, &resp); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			return "", fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errors.New("login response missing access_token")
	}
	return resp.AccessToken, nil
}
