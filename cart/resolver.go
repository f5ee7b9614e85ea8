package cart

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Resolver picks the Store backing the cart of the current request
type Resolver func(c *gin.Context) Store

// Shared resolves every request to the same store
func Shared(store Store) Resolver {
	return func(*gin.Context) Store { return store }
}

// PerSession resolves to a store inside the request's session cookie
func PerSession() Resolver {
	return func(c *gin.Context) Store {
		return NewSessionStore(sessions.Default(c))
	}
}
