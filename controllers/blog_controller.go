package controllers

import (
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aromanza/gateway/apiclient"
	"github.com/aromanza/gateway/models"
	"github.com/aromanza/gateway/utils"
)

// BlogController serves the public blog
type BlogController struct {
	Blog *apiclient.Blog
}

// ListPosts returns posts newest first, optionally of one category
func (bc *BlogController) ListPosts(c *gin.Context) {
	utils.LogInfo("ListPosts called")

	var categoryID int64
	if v := c.Query("categoria"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			utils.BadRequest(c, utils.ErrInvalidID, nil)
			return
		}
		categoryID = id
	}

	posts, err := bc.Blog.Posts(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to fetch posts: %v", err)
		upstreamError(c, "No se pudieron cargar los posts", err)
		return
	}

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if categoryID > 0 && !p.InCategory(categoryID) {
			continue
		}
		// the listing shows the summary only
		p.Content = ""
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.Time.After(out[j].PublishedAt.Time)
	})

	utils.Success(c, "Posts obtenidos", out)
}

// GetPost returns one post with its content
func (bc *BlogController) GetPost(c *gin.Context) {
	id, ok := paramID(c, "id", utils.ErrInvalidID)
	if !ok {
		return
	}

	post, err := bc.Blog.Post(c.Request.Context(), id)
	if err != nil {
		utils.LogError("Failed to fetch post %d: %v", id, err)
		upstreamError(c, "No se pudo cargar el post", err)
		return
	}
	utils.Success(c, "Post obtenido", post)
}

// ListPostCategories returns the blog categories
func (bc *BlogController) ListPostCategories(c *gin.Context) {
	categories, err := bc.Blog.Categories(c.Request.Context())
	if err != nil {
		utils.LogError("Failed to fetch blog categories: %v", err)
		upstreamError(c, "No se pudieron cargar las categorías", err)
		return
	}
	utils.Success(c, "Categorías del blog", categories)
}
