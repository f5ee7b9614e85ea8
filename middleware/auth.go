package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

const (
	userContextKey = "user"
	profileKey     = "profile"
)

// ProfileFetcher resolves the signed-in user from the backend session
type ProfileFetcher interface {
	Profile(ctx context.Context) (*models.User, error)
}

// Guard protects routes that need a signed-in user or an admin
type Guard struct {
	profiles ProfileFetcher
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewGuard creates a Guard. A ttl of 0 disables the profile cache.
func NewGuard(profiles ProfileFetcher, secret []byte, ttl time.Duration) *Guard {
	return &Guard{
		profiles: profiles,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

// RequireUser lets the request through only for a signed-in user
func (g *Guard) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := g.authorize(c)
		if !ok {
			return
		}
		utils.LogDebug("User %d authorized for %s", user.ID, c.Request.URL.Path)
		c.Next()
	}
}

// RequireAdmin lets the request through only for a user with the ADMIN role
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := g.authorize(c)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			utils.LogError("Non-admin user attempted admin access: %d", user.ID)
			redirectToLogin(c, utils.ErrAdminRequired)
			return
		}
		utils.LogDebug("Admin access granted for user %d", user.ID)
		c.Next()
	}
}

// authorize resolves the user and aborts the chain when there is none
func (g *Guard) authorize(c *gin.Context) (*models.User, bool) {
	user, err := g.CurrentUser(c)
	if err != nil {
		utils.LogError("Profile lookup failed: %v", err)
		utils.FromError(c, utils.ErrBackendUnavailable, apiclient.AsAppError(err, utils.ErrBackendUnavailable))
		c.Abort()
		return nil, false
	}
	if user == nil {
		redirectToLogin(c, utils.ErrNotAuthenticated)
		return nil, false
	}
	c.Set(userContextKey, user)
	return user, true
}

// CurrentUser returns the signed-in user, or nil when the visitor is anonymous.
// A recent profile is served from the session; otherwise the backend is asked.
func (g *Guard) CurrentUser(c *gin.Context) (*models.User, error) {
	if user := UserFrom(c); user != nil {
		return user, nil
	}

	session := sessions.Default(c)
	if g.ttl > 0 {
		if token, ok := session.Get(profileKey).(string); ok && token != "" {
			user, err := utils.ValidateProfileToken(token, g.secret)
			if err == nil {
				return user, nil
			}
			utils.LogDebug("Dropping cached profile: %v", err)
		}
	}

	user, err := g.profiles.Profile(c.Request.Context())
	if err != nil {
		switch apiclient.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			g.Forget(c)
			return nil, nil
		}
		if errors.Is(err, apiclient.ErrNoUser) {
			g.Forget(c)
			return nil, nil
		}
		return nil, err
	}

	g.Remember(c, user)
	return user, nil
}

// Remember caches user in the session for the configured ttl
func (g *Guard) Remember(c *gin.Context, user *models.User) {
	if g.ttl <= 0 || user == nil {
		return
	}
	token, err := utils.GenerateProfileToken(user, g.secret, g.ttl, g.now())
	if err != nil {
		utils.LogError("Failed to cache profile: %v", err)
		return
	}
	session := sessions.Default(c)
	session.Set(profileKey, token)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session: %v", err)
	}
}

// Forget drops the cached profile, used on logout
func (g *Guard) Forget(c *gin.Context) {
	session := sessions.Default(c)
	if session.Get(profileKey) == nil {
		return
	}
	session.Delete(profileKey)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session: %v", err)
	}
}

// UserFrom returns the user a guard put on the context
func UserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func redirectToLogin(c *gin.Context, message string) {
	utils.Found(c, message, utils.LoginPath)
	c.Abort()
}
