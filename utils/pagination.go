package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination holds the zero-based page window requested by the storefront
type Pagination struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// NewPagination reads page and size from the query string. Pages start at 0, the
// way the backend numbers them.
func NewPagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil || page < 0 {
		page = 0
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Pagination{Page: page, Size: size}
}

// SuccessWithPage sends a page of results with the flag telling the client
// whether more pages follow.
func SuccessWithPage(c *gin.Context, message string, data interface{}, p Pagination, last bool) {
	c.JSON(200, gin.H{
		"status":  "success",
		"message": message,
		"data":    data,
		"pagination": gin.H{
			"page": p.Page,
			"size": p.Size,
			"last": last,
		},
	})
}
