// Package api is the HTTP client for the identity server's REST interface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/famly-app/identity/internal/common"
)

// Account is the server's public projection of an account.
type Account struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password, name string) (*Account, error) {
	body := registerRequest{Email: email, Password: password, Name: name}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, c.asError(resp)
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	return &account, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := loginRequest{Email: email, Password: password}

	resp, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", c.asError(resp)
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("error decoding response: %w", err)
	}
	return lr.AccessToken, nil
}

// Me resolves the account behind the token.
func (c *Client) Me(ctx context.Context, token string) (*Account, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.asError(resp)
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}
	return &account, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body any) (*http.Response, error) {

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.http.Do(req)
}

// asError maps an unsuccessful response to a sentinel error where one
// applies, falling back to the server's error message.
func (c *Client) asError(resp *http.Response) error {
	var er errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&er)

	switch resp.StatusCode {
	case http.StatusConflict:
		return common.ErrAlreadyExists
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	}

	if er.Error != "" {
		return fmt.Errorf("server error (status %d): %s", resp.StatusCode, er.Error)
	}
	return fmt.Errorf("server error (status %d)", resp.StatusCode)
}
