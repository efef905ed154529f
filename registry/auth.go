package registry

import (
	"context"
	"net/http"
)

// Credentials are exchanged for an access token.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the authenticated operator.
type User struct {
	Username string `json:"username"`
}

// Login exchanges credentials for an access token. It does not need an existing session.
func (c *Client) Login(ctx context.Context, creds Credentials) (Token, error) {
	var token Token
	err := c.do(ctx, call{
		op:     OpLogin,
		method: http.MethodPost,
		path:   "/auth/login",
		body:   creds,
		out:    &token,
		public: true,
	})
	return token, err
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, call{
		op:     OpMe,
		method: http.MethodGet,
		path:   "/auth/me",
		out:    &user,
	})
	return user, err
}
