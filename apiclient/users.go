package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-faster/errors"

	"github.com/aromanza/gateway/models"
)

// ErrNoUser is returned when the backend reply carries no account
var ErrNoUser = errors.New("no user in backend reply")

// UserPaths are the admin paths of accounts
var UserPaths = Paths{
	List:   "/usuarios/listaDeUser",
	Create: "/usuarios",
	Update: "/usuarios/%d",
	Delete: "/usuarios/%d",
}

// Users talks to the account and session endpoints
type Users struct {
	client *Client
}

func NewUsers(client *Client) *Users {
	return &Users{client: client}
}

// Login opens a backend session. The returned header carries the session
// cookies to relay to the browser.
func (u *Users) Login(ctx context.Context, creds models.Credentials) (*models.User, http.Header, error) {
	var raw json.RawMessage
	header, err := u.client.Do(ctx, Request{Method: http.MethodPost, Path: "/usuarios/login", Body: creds}, &raw)
	if err != nil {
		return nil, nil, err
	}
	user, _ := decodeUser(raw)
	return user, header, nil
}

// Logout closes the backend session
func (u *Users) Logout(ctx context.Context) (http.Header, error) {
	return u.client.Do(ctx, Request{Method: http.MethodPost, Path: "/usuarios/logout", Body: struct{}{}}, nil)
}

// Profile returns the signed-in account. The backend answers either
// {"usuario": {...}} or the bare user.
func (u *Users) Profile(ctx context.Context) (*models.User, error) {
	var raw json.RawMessage
	if err := u.client.Get(ctx, "/usuarios/perfil", nil, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

// UpdateProfile edits the signed-in account
func (u *Users) UpdateProfile(ctx context.Context, payload models.UserPayload) (*models.User, error) {
	var raw json.RawMessage
	if err := u.client.Put(ctx, "/usuarios/perfil", payload, &raw); err != nil {
		return nil, err
	}
	return decodeUser(raw)
}

// Register creates a customer account
func (u *Users) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	var raw json.RawMessage
	if err := u.client.Post(ctx, "/register", reg, &raw); err != nil {
		return nil, err
	}
	user, _ := decodeUser(raw)
	return user, nil
}

// ForgotPassword asks the backend to mail a reset link
func (u *Users) ForgotPassword(ctx context.Context, email string) error {
	return u.client.Post(ctx, "/usuarios/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword sets a new password using the mailed token
func (u *Users) ResetPassword(ctx context.Context, token, email, newPassword string) error {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	_, err := u.client.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/usuarios/reset-password",
		Query:  q,
		Body:   map[string]string{"newPassword": newPassword},
	}, nil)
	return err
}

func decodeUser(raw json.RawMessage) (*models.User, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrNoUser
	}
	var env models.UserEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && env.User != nil {
		return env.User, nil
	}
	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, errors.Wrap(ErrNoUser, err.Error())
	}
	if user.ID == 0 && user.Email == "" {
		return nil, ErrNoUser
	}
	return &user, nil
}
