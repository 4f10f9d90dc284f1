package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/loccar/loccar-web/internal/core/domain"
	"github.com/loccar/loccar-web/internal/core/ports"
)

var errNoToken = errors.New("login response carried no token")

// backendUser is the profile shape returned by /user/find/email and nested
// in auth responses. Field names vary between backend revisions.
type backendUser struct {
	ID            json.RawMessage `json:"id,omitempty"`
	IDCustomer    json.RawMessage `json:"idCustomer,omitempty"`
	Username      string          `json:"username,omitempty"`
	Name          string          `json:"name,omitempty"`
	Email         string          `json:"email,omitempty"`
	Cellphone     string          `json:"cellphone,omitempty"`
	CellPhone     string          `json:"cellPhone,omitempty"`
	DriverLicense string          `json:"driverLicense,omitempty"`
	Roles         []string        `json:"roles,omitempty"`
	Role          string          `json:"role,omitempty"`
}

// toDomain is the one place raw role identifiers become a domain.Role.
func (u *backendUser) toDomain() *domain.User {
	if u == nil {
		return nil
	}
	user := &domain.User{
		ID:            rawID(u.ID),
		Username:      u.Username,
		Email:         u.Email,
		DriverLicense: u.DriverLicense,
		CellPhone:     u.CellPhone,
		Role:          domain.RoleFromClaims(u.Roles),
	}
	if user.ID == "" {
		user.ID = rawID(u.IDCustomer)
	}
	if user.Username == "" {
		user.Username = u.Name
	}
	if user.CellPhone == "" {
		user.CellPhone = u.Cellphone
	}
	if user.Role == domain.RoleUnknown && u.Role != "" {
		user.Role = domain.ParseRole(u.Role)
	}
	return user
}

func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginData is the object form of the data field: {token, user}.
type loginData struct {
	Token string       `json:"token"`
	User  *backendUser `json:"user,omitempty"`
}

// Login posts the credentials. The canonical answer is the
// {code, message, data} envelope where data is the JWT itself or an object
// carrying it with the profile.
func (c *Client) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	var env envelope
	if err := c.do(anonymous(ctx), http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &env); err != nil {
		return nil, err
	}

	res, err := parseLoginData(env.Data)
	if err != nil {
		return nil, &domain.AuthError{Kind: domain.KindServer, Status: http.StatusOK, Message: domain.ErrServer.Message, Err: err}
	}
	return res, nil
}

func parseLoginData(data json.RawMessage) (*ports.LoginResult, error) {
	if isNull(data) {
		return nil, errNoToken
	}

	var token string
	if err := json.Unmarshal(data, &token); err == nil {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, errNoToken
		}
		return &ports.LoginResult{Token: token}, nil
	}

	var obj loginData
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj.Token == "" {
		return nil, errNoToken
	}
	return &ports.LoginResult{Token: obj.Token, User: obj.User.toDomain()}, nil
}

type registerRequest struct {
	Username      string `json:"username"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	DriverLicense string `json:"driverLicense"`
	CellPhone     string `json:"cellPhone"`
}

type registerResponse struct {
	User    *backendUser `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	var resp registerResponse
	err := c.do(anonymous(ctx), http.MethodPost, "/auth/register", registerRequest{
		Username:      in.Username,
		Email:         in.Email,
		Password:      in.Password,
		DriverLicense: in.DriverLicense,
		CellPhone:     in.CellPhone,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &ports.RegisterResult{User: resp.User.toDomain(), Message: resp.Message}, nil
}

// Logout asks the backend to revoke the session's token.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil)
}

// FindUserByEmail fetches the full profile for email.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := getData[*backendUser](ctx, c, "/user/find/email?email="+url.QueryEscape(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.NewStatusError(http.StatusNotFound, "empty profile", nil)
	}
	return u.toDomain(), nil
}
