package apiclient

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ctxKey int

const (
	cookiesKey ctxKey = iota
	requestIDKey
)

// WithCookies attaches the browser cookies that must reach the backend
func WithCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	return context.WithValue(ctx, cookiesKey, cookies)
}

// CookiesFrom returns the cookies attached by WithCookies
func CookiesFrom(ctx context.Context) []*http.Cookie {
	cookies, _ := ctx.Value(cookiesKey).([]*http.Cookie)
	return cookies
}

// WithRequestID attaches the gateway request id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the id attached by WithRequestID
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ForwardCredentials puts the browser's cookies, minus the gateway's own
// session cookie, and the request id on the request context.
func ForwardCredentials(sessionCookie string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var forward []*http.Cookie
		for _, ck := range c.Request.Cookies() {
			if ck.Name == sessionCookie {
				continue
			}
			forward = append(forward, ck)
		}
		ctx := WithCookies(c.Request.Context(), forward)
		if id := c.GetString("RequestID"); id != "" {
			ctx = WithRequestID(ctx, id)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RelayCookies copies the backend's Set-Cookie headers onto the browser reply
func RelayCookies(c *gin.Context, header http.Header) {
	for _, v := range header.Values("Set-Cookie") {
		c.Writer.Header().Add("Set-Cookie", v)
	}
}
