package handlers

import (
	"net/http"

	"github.com/delesray/forum/internal/middleware"
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services"

	"github.com/gin-gonic/gin"
)

type ReplyHandler struct {
	replyService *services.ReplyService
}

func NewReplyHandler(replyService *services.ReplyService) *ReplyHandler {
	return &ReplyHandler{replyService: replyService}
}

// topicAndReply reads the topic id and, when withReply is set, the reply id
func topicAndReply(c *gin.Context, withReply bool) (uint, uint, bool) {
	topicID, ok := parseIDParam(c, "id")
	if !ok || !withReply {
		return topicID, 0, ok
	}
	replyID, ok := parseIDParam(c, "reply_id")
	return topicID, replyID, ok
}

// Create godoc
// @Summary Reply to a topic
// @Tags replies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param request body models.ReplyTextRequest true "Reply"
// @Success 201 {object} models.Reply
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics/{id}/replies [post]
func (h *ReplyHandler) Create(c *gin.Context) {
	topicID, _, ok := topicAndReply(c, false)
	if !ok {
		return
	}
	var req models.ReplyTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	reply, err := h.replyService.Create(c.Request.Context(), middleware.CurrentUser(c), topicID, req.Text)
	if err != nil {
		respondError(c, err, "Failed to create reply")
		return
	}
	c.JSON(http.StatusCreated, reply)
}

// Update godoc
// @Summary Edit own reply
// @Tags replies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param reply_id path int true "Reply ID"
// @Param request body models.ReplyTextRequest true "New text"
// @Success 200 {object} models.Reply
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics/{id}/replies/{reply_id} [put]
func (h *ReplyHandler) Update(c *gin.Context) {
	topicID, replyID, ok := topicAndReply(c, true)
	if !ok {
		return
	}
	var req models.ReplyTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	reply, err := h.replyService.Update(middleware.CurrentUser(c), topicID, replyID, req.Text)
	if err != nil {
		respondError(c, err, "Failed to update reply")
		return
	}
	c.JSON(http.StatusOK, reply)
}

// Delete godoc
// @Summary Delete own reply
// @Tags replies
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param reply_id path int true "Reply ID"
// @Success 204
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics/{id}/replies/{reply_id} [delete]
func (h *ReplyHandler) Delete(c *gin.Context) {
	topicID, replyID, ok := topicAndReply(c, true)
	if !ok {
		return
	}

	if err := h.replyService.Delete(middleware.CurrentUser(c), topicID, replyID); err != nil {
		respondError(c, err, "Failed to delete reply")
		return
	}
	c.Status(http.StatusNoContent)
}
