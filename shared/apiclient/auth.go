package apiclient

import (
	"context"
	"net/http"

	"github.com/folio-cms/folio/shared/api"
)

func (c *APIClient) Login(ctx context.Context, email, password string) (api.LoginResponse, error) {
	var resp api.LoginResponse
	err := c.call(ctx, http.MethodPost, "/v1/auth/login", "", api.LoginRequest{Email: email, Password: password}, &resp)
	return resp, err
}

func (c *APIClient) Me(ctx context.Context, token string) (api.MeResponse, error) {
	var resp api.MeResponse
	err := c.call(ctx, http.MethodGet, "/v1/auth/me", token, nil, &resp)
	return resp, err
}
