package handlers

import (
	"net/http"

	"github.com/delesray/forum/internal/middleware"
	"github.com/delesray/forum/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService *services.VoteService
}

func NewVoteHandler(voteService *services.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// AddOrSwitch godoc
// @Summary Vote on a reply
// @Description Casts a vote (201), switches an existing one (200) or reports that it is already cast (200)
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param reply_id path int true "Reply ID"
// @Param type query string true "Vote type" Enums(up, down)
// @Success 200 {object} models.VoteResult
// @Success 201 {object} models.VoteResult
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics/{id}/replies/{reply_id}/votes [put]
func (h *VoteHandler) AddOrSwitch(c *gin.Context) {
	topicID, replyID, ok := topicAndReply(c, true)
	if !ok {
		return
	}

	result, err := h.voteService.AddOrSwitch(c.Request.Context(), middleware.CurrentUser(c), topicID, replyID, c.Query("type"))
	if err != nil {
		respondError(c, err, "Failed to vote")
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

// Remove godoc
// @Summary Remove own vote
// @Description Removing a vote that does not exist succeeds
// @Tags votes
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param reply_id path int true "Reply ID"
// @Success 204
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics/{id}/replies/{reply_id}/votes [delete]
func (h *VoteHandler) Remove(c *gin.Context) {
	topicID, replyID, ok := topicAndReply(c, true)
	if !ok {
		return
	}

	if err := h.voteService.Remove(c.Request.Context(), middleware.CurrentUser(c), topicID, replyID); err != nil {
		respondError(c, err, "Failed to remove vote")
		return
	}
	c.Status(http.StatusNoContent)
}

// Count godoc
// @Summary Count votes of a reply
// @Tags votes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Topic ID"
// @Param reply_id path int true "Reply ID"
// @Param type query string true "Vote type" Enums(up, down)
// @Success 200 {object} models.VoteCountResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /topics/{id}/replies/{reply_id}/votes [get]
func (h *VoteHandler) Count(c *gin.Context) {
	topicID, replyID, ok := topicAndReply(c, true)
	if !ok {
		return
	}

	count, err := h.voteService.Count(middleware.CurrentUser(c), topicID, replyID, c.Query("type"))
	if err != nil {
		respondError(c, err, "Failed to count votes")
		return
	}
	c.JSON(http.StatusOK, count)
}
