package handlers

import (
	"fmt"
	"net/http"

	"github.com/delesray/forum/internal/middleware"
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services"
	"github.com/delesray/forum/internal/services/excel"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the /admin routes; every route requires an admin token
type AdminHandler struct {
	categoryService   *services.CategoryService
	permissionService *services.CategoryPermissionService
	topicService      *services.TopicService
}

func NewAdminHandler(categoryService *services.CategoryService, permissionService *services.CategoryPermissionService, topicService *services.TopicService) *AdminHandler {
	return &AdminHandler{
		categoryService:   categoryService,
		permissionService: permissionService,
		topicService:      topicService,
	}
}

// userAndCategory reads the user_id and category_id path parameters
func userAndCategory(c *gin.Context) (uint, uint, bool) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return 0, 0, false
	}
	categoryID, ok := parseIDParam(c, "category_id")
	return userID, categoryID, ok
}

// CreateCategory godoc
// @Summary Create category
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCategoryRequest true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /admin/categories [post]
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// TogglePrivacy godoc
// @Summary Make a category private or public
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/categories/{id}/privacy [patch]
func (h *AdminHandler) TogglePrivacy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	message, err := h.categoryService.TogglePrivacy(id)
	if err != nil {
		respondError(c, err, "Failed to update category privacy")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ToggleCategoryLocking godoc
// @Summary Lock or unlock a category
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/categories/{id}/locking [patch]
func (h *AdminHandler) ToggleCategoryLocking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	message, err := h.categoryService.ToggleLocking(id)
	if err != nil {
		respondError(c, err, "Failed to update category locking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// GrantAccess godoc
// @Summary Give a user read access to a category
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param category_id path int true "Category ID"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/users/{user_id}/categories/{category_id} [post]
func (h *AdminHandler) GrantAccess(c *gin.Context) {
	userID, categoryID, ok := userAndCategory(c)
	if !ok {
		return
	}

	message, err := h.permissionService.Grant(c.Request.Context(), userID, categoryID)
	if err != nil {
		respondError(c, err, "Failed to grant access")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// RevokeAccess godoc
// @Summary Remove a user's access to a category
// @Tags admin
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param category_id path int true "Category ID"
// @Success 204
// @Failure 404 {object} map[string]interface{}
// @Router /admin/users/{user_id}/categories/{category_id} [delete]
func (h *AdminHandler) RevokeAccess(c *gin.Context) {
	userID, categoryID, ok := userAndCategory(c)
	if !ok {
		return
	}

	if err := h.permissionService.Revoke(c.Request.Context(), userID, categoryID); err != nil {
		respondError(c, err, "Failed to revoke access")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleWriteAccess godoc
// @Summary Switch a user's grant between read and write
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param category_id path int true "Category ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/users/{user_id}/categories/{category_id}/access [patch]
func (h *AdminHandler) ToggleWriteAccess(c *gin.Context) {
	userID, categoryID, ok := userAndCategory(c)
	if !ok {
		return
	}

	message, err := h.permissionService.ToggleWriteAccess(c.Request.Context(), userID, categoryID)
	if err != nil {
		respondError(c, err, "Failed to update write access")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// PrivilegedUsers godoc
// @Summary List users holding a grant for a private category
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} models.PrivilegedUsersResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/categories/{id}/users [get]
func (h *AdminHandler) PrivilegedUsers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.permissionService.PrivilegedUsers(id)
	if err != nil {
		respondError(c, err, "Failed to get privileged users")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportPrivilegedUsers godoc
// @Summary Download the grants of a private category as XLSX
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {file} file
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/categories/{id}/users/export [get]
func (h *AdminHandler) ExportPrivilegedUsers(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.permissionService.ExportPrivilegedUsers(id)
	if err != nil {
		respondError(c, err, "Failed to export privileged users")
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Cache-Control", "must-revalidate")
	c.Data(http.StatusOK, excel.ContentType, buf.Bytes())
}

// ToggleTopicLocking godoc
// @Summary Lock or unlock any topic
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /admin/topics/{id}/locking [patch]
func (h *AdminHandler) ToggleTopicLocking(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	message, err := h.topicService.ToggleLocking(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, err, "Failed to update topic locking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
