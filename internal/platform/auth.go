package platform

import "context"

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse represents a registration response.
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// RefreshRequest represents a refresh-token exchange request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// User represents a platform user.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`
}

// Login authenticates with the platform and returns the token pair. The
// access token is set on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var loginResp LoginResponse
	if err := c.post(ctx, "/api/v1/auth/login", req, &loginResp); err != nil {
		return nil, err
	}

	c.SetToken(loginResp.AccessToken)

	return &loginResp, nil
}

// Register creates a new user account. It does not log in; callers
// follow up with Login to obtain tokens.
func (c *Client) Register(ctx context.Context, fullName, email, password string) (*RegisterResponse, error) {
	req := RegisterRequest{
		FullName: fullName,
		Email:    email,
		Password: password,
	}

	var regResp RegisterResponse
	if err := c.post(ctx, "/api/v1/auth/register", req, &regResp); err != nil {
		return nil, err
	}

	return &regResp, nil
}

// Logout invalidates the server-side session for the current token.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/v1/auth/logout", nil, nil)
}

// RefreshSession exchanges a refresh token for a fresh token pair. The
// new access token is set on the client.
func (c *Client) RefreshSession(ctx context.Context, refreshToken string) (*LoginResponse, error) {
	req := RefreshRequest{RefreshToken: refreshToken}

	var loginResp LoginResponse
	if err := c.post(ctx, "/api/v1/auth/refresh", req, &loginResp); err != nil {
		return nil, err
	}

	c.SetToken(loginResp.AccessToken)

	return &loginResp, nil
}

// GetCurrentUser retrieves the currently authenticated user's profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/v1/users/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
