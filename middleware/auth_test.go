package middleware

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

type stubProfiles struct {
	user  *models.User
	err   error
	calls int
}

func (s *stubProfiles) Profile(context.Context) (*models.User, error) {
	s.calls++
	return s.user, s.err
}

func setupRouter(guard *Guard) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions(utils.SessionName, cookie.NewStore([]byte("test-secret"))))
	r.GET("/perfil", guard.RequireUser(), func(c *gin.Context) {
		utils.Success(c, "ok", gin.H{"id": UserFrom(c).ID})
	})
	r.GET("/admin", guard.RequireAdmin(), func(c *gin.Context) {
		utils.Success(c, "ok", nil)
	})
	return r
}

func TestRequireUser_AnonymousIsRedirected(t *testing.T) {
	profiles := &stubProfiles{err: &apiclient.StatusError{Status: http.StatusUnauthorized}}
	r := setupRouter(NewGuard(profiles, []byte("k"), time.Minute))

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/perfil"})

	utils.AssertResponse(t, resp, http.StatusFound, "redirect")
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Equal(t, "/login", utils.ResponseData(resp)["redirect"])
}

func TestRequireUser_SignedInPassesThrough(t *testing.T) {
	profiles := &stubProfiles{user: &models.User{ID: 7, Role: models.RoleUser}}
	r := setupRouter(NewGuard(profiles, []byte("k"), time.Minute))

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/perfil"})

	utils.AssertResponse(t, resp, http.StatusOK, "success")
	assert.Equal(t, float64(7), utils.ResponseData(resp)["id"])
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		profiles *stubProfiles
		code     int
	}{
		{"admin", &stubProfiles{user: &models.User{ID: 1, Role: models.RoleAdmin}}, http.StatusOK},
		{"customer", &stubProfiles{user: &models.User{ID: 2, Role: models.RoleUser}}, http.StatusFound},
		{"anonymous", &stubProfiles{err: &apiclient.StatusError{Status: http.StatusForbidden}}, http.StatusFound},
		{"empty reply", &stubProfiles{err: apiclient.ErrNoUser}, http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(NewGuard(tt.profiles, []byte("k"), time.Minute))
			resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/admin"})
			assert.Equal(t, tt.code, resp.StatusCode)
			if tt.code == http.StatusFound {
				assert.Equal(t, "/login", resp.Header.Get("Location"))
			}
		})
	}
}

func TestGuard_BackendDownIsNotARedirect(t *testing.T) {
	profiles := &stubProfiles{err: apiclient.ErrBackendUnavailable}
	r := setupRouter(NewGuard(profiles, []byte("k"), time.Minute))

	resp := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/perfil"})

	utils.AssertResponse(t, resp, http.StatusServiceUnavailable, "error")
	assert.Empty(t, resp.Header.Get("Location"))
}

func TestGuard_CachesProfileInSession(t *testing.T) {
	profiles := &stubProfiles{user: &models.User{ID: 3, Email: "ana@example.com", Role: models.RoleAdmin}}
	r := setupRouter(NewGuard(profiles, []byte("k"), time.Minute))

	first := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/admin"})
	require.Equal(t, http.StatusOK, first.StatusCode)
	require.NotEmpty(t, first.Cookies)

	second := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/admin", Cookies: first.Cookies})
	assert.Equal(t, http.StatusOK, second.StatusCode)
	assert.Equal(t, 1, profiles.calls)
}

func TestGuard_ZeroTTLDisablesCache(t *testing.T) {
	profiles := &stubProfiles{user: &models.User{ID: 3, Role: models.RoleUser}}
	r := setupRouter(NewGuard(profiles, []byte("k"), 0))

	first := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/perfil"})
	require.Equal(t, http.StatusOK, first.StatusCode)
	utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/perfil", Cookies: first.Cookies})

	assert.Equal(t, 2, profiles.calls)
}

func TestGuard_TamperedCacheIsIgnored(t *testing.T) {
	profiles := &stubProfiles{user: &models.User{ID: 3, Role: models.RoleUser}}
	r := setupRouter(NewGuard(profiles, []byte("k"), time.Minute))
	first := utils.MakeTestRequest(t, r, utils.TestRequest{Method: http.MethodGet, Path: "/perfil"})
	require.Equal(t, http.StatusOK, first.StatusCode)

	other := setupRouter(NewGuard(profiles, []byte("another-key"), time.Minute))
	// same cookie store secret, different token secret
	resp := utils.MakeTestRequest(t, other, utils.TestRequest{Method: http.MethodGet, Path: "/perfil", Cookies: first.Cookies})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, profiles.calls)
}
