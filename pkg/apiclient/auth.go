package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
)

// LoginRequest carries the credentials sent to the login endpoint
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the login endpoint reply. Token may be empty when the
// server answered without issuing one.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest carries the fields of a new account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthClient talks to the unauthenticated login and register endpoints
type AuthClient struct {
	t *transport
}

func NewAuthClient(opts Options) *AuthClient {
	return &AuthClient{t: newTransport(opts)}
}

// Login exchanges credentials for a token. The token is not stored.
func (c *AuthClient) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	body, err := jsonBody(req)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("login: encode: %w", err)
	}

	resp, err := c.t.send(ctx, request{
		op:          "login",
		method:      http.MethodPost,
		path:        loginPath,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return LoginResponse{}, err
	}

	var out LoginResponse
	if err := c.t.decode(resp, &out); err != nil {
		return LoginResponse{}, err
	}

	c.t.log(ctx).Info("Login request successful",
		zap.String("email", req.Email),
		zap.Bool("token_received", out.Token != ""))
	return out, nil
}

// Register creates an account and returns the HTTP status of the reply
func (c *AuthClient) Register(ctx context.Context, req RegisterRequest) (int, error) {
	body, err := jsonBody(req)
	if err != nil {
		return 0, fmt.Errorf("register: encode: %w", err)
	}

	resp, err := c.t.send(ctx, request{
		op:          "register",
		method:      http.MethodPost,
		path:        registerPath,
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return 0, err
	}

	c.t.log(ctx).Info("Register request finished",
		zap.String("email", req.Email),
		zap.Int("status", resp.status))
	return resp.status, nil
}
