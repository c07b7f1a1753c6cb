package handlers

import (
	"net/http"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/middleware"
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services"

	"github.com/gin-gonic/gin"
)

type TopicHandler struct {
	topicService *services.TopicService
	paging       config.PagingConfig
}

func NewTopicHandler(topicService *services.TopicService, paging config.PagingConfig) *TopicHandler {
	return &TopicHandler{
		topicService: topicService,
		paging:       paging,
	}
}

// List godoc
// @Summary List topics
// @Description Anonymous callers see topics of public categories only
// @Tags topics
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(5)
// @Param search query string false "Title substring"
// @Param username query string false "Author username"
// @Param category query string false "Category name"
// @Param status query string false "Topic status" Enums(open, locked)
// @Param sort query string false "Sort direction" Enums(asc, desc)
// @Param sort_by query string false "Sort column" Enums(topic_id, title, user_id, status, best_reply_id, category_id)
// @Success 200 {object} models.TopicsPage
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics [get]
func (h *TopicHandler) List(c *gin.Context) {
	req, ok := parsePage(c, h.paging)
	if !ok {
		return
	}

	query := services.TopicQuery{
		Search:   c.Query("search"),
		Username: c.Query("username"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Sort:     c.Query("sort"),
		SortBy:   c.Query("sort_by"),
	}
	page, err := h.topicService.ListTopics(middleware.CurrentUser(c), query, req)
	if err != nil {
		respondError(c, err, "Failed to list topics")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get topic with its replies
// @Tags topics
// @Produce json
// @Param id path int true "Topic ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(5)
// @Param sort query string false "Reply order" Enums(asc, desc)
// @Success 200 {object} models.TopicRepliesPage
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics/{id} [get]
func (h *TopicHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	req, ok := parsePage(c, h.paging)
	if !ok {
		return
	}

	page, err := h.topicService.GetTopicPage(middleware.CurrentUser(c), id, c.Query("sort"), req)
	if err != nil {
		respondError(c, err, "Failed to get topic")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create godoc
// @Summary Create topic
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateTopicRequest true "Topic"
// @Success 201 {object} models.Topic
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics [post]
func (h *TopicHandler) Create(c *gin.Context) {
	var req models.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	topic, err := h.topicService.Create(middleware.CurrentUser(c), &req)
	if err != nil {
		respondError(c, err, "Failed to create topic")
		return
	}
	c.JSON(http.StatusCreated, topic)
}

// SetBestReply godoc
// @Summary Choose the best reply
// @Description Topic author or admin only; the topic must be open
// @Tags topics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param request body models.UpdateBestReplyRequest true "Reply"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics/{id}/bestReply [patch]
func (h *TopicHandler) SetBestReply(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req models.UpdateBestReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.topicService.SetBestReply(middleware.CurrentUser(c), id, req.BestReplyID); err != nil {
		respondError(c, err, "Failed to update best reply")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Best reply updated"})
}

// ToggleLocking godoc
// @Summary Lock or unlock a topic
// @Description Topic author or admin only
// @Tags topics
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics/{id}/locking [patch]
func (h *TopicHandler) ToggleLocking(c *gin.Context) {
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
