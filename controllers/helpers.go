package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/utils"
)

// Clock returns the current time; handlers take it so offers can be tested
// against a fixed day.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// paramID reads a positive numeric path parameter, answering 400 otherwise
func paramID(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		utils.LogError("Invalid %s parameter: %q", name, c.Param(name))
		utils.BadRequest(c, message, nil)
		return 0, false
	}
	return id, true
}

// upstreamError renders a backend failure
func upstreamError(c *gin.Context, fallback string, err error) {
	utils.FromError(c, fallback, apiclient.AsAppError(err, fallback))
}
