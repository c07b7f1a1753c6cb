package handlers

import (
	"net/http"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/middleware"
	"github.com/delesray/forum/internal/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	paging          config.PagingConfig
}

func NewCategoryHandler(categoryService *services.CategoryService, paging config.PagingConfig) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		paging:          paging,
	}
}

// GetAll godoc
// @Summary List categories
// @Tags categories
// @Produce json
// @Param search query string false "Name substring"
// @Param sort query string false "Sort by name" Enums(asc, desc)
// @Success 200 {array} models.Category
// @Failure 400 {object} map[string]interface{}
// @Router /categories [get]
func (h *CategoryHandler) GetAll(c *gin.Context) {
	categories, err := h.categoryService.GetAll(c.Query("search"), c.Query("sort"))
	if err != nil {
		respondError(c, err, "Failed to get categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetByID godoc
// @Summary Get category with its topics
// @Description Private categories require a token of an admin or a user holding a grant
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(5)
// @Param search query string false "Title substring"
// @Param sort query string false "Sort direction" Enums(asc, desc)
// @Param sort_by query string false "Sort column" Enums(topic_id, title, user_id, status, best_reply_id, category_id)
// @Success 200 {object} models.CategoryTopicsPage
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := parsePage(c, h.paging)
	if !ok {
		return
	}

	query := services.TopicQuery{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
		SortBy: c.Query("sort_by"),
	}
	page, err := h.categoryService.GetCategoryPage(middleware.CurrentUser(c), id, query, req)
	if err != nil {
		respondError(c, err, "Failed to get category")
		return
	}
	c.JSON(http.StatusOK, page)
}
