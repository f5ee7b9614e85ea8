package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/middleware"
	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// newBackend starts a stub of the REST backend and a client pointed at it
func newBackend(t *testing.T, mux *http.ServeMux) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Config{
		BaseURL:       srv.URL,
		Timeout:       2 * time.Second,
		RetryInterval: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(utils.SessionName, cookie.NewStore([]byte("test-secret"))))
	r.Use(apiclient.ForwardCredentials(utils.SessionName))
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// sessionCookie returns the last session cookie the gateway set
func sessionCookie(resp utils.TestResponse) []*http.Cookie {
	var last *http.Cookie
	for _, ck := range resp.Cookies {
		if ck.Name == utils.SessionName {
			last = ck
		}
	}
	if last == nil {
		return nil
	}
	return []*http.Cookie{last}
}

type stubProfiles struct {
	user *models.User
}

func (s stubProfiles) Profile(context.Context) (*models.User, error) {
	return s.user, nil
}

func signedIn(user *models.User) *middleware.Guard {
	return middleware.NewGuard(stubProfiles{user: user}, []byte("test-secret"), 0)
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func asList(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}

type brokenStore struct{}

func (brokenStore) Load(context.Context, string) ([]byte, error) { return nil, errBroken }
func (brokenStore) Save(context.Context, string, []byte) error   { return errBroken }
func (brokenStore) Delete(context.Context, string) error         { return errBroken }

var errBroken = errors.New("connection refused")

func decodeBody(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
