package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/utils"
)

// Healthz reports that the gateway is serving
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": utils.AppName,
		"version": utils.APIVersion,
	})
}
