package handlers

import (
	"net/http"

	"github.com/delesray/forum/internal/middleware"
	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService *services.MessageService
}

func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send godoc
// @Summary Send a private message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param receiver_id path int true "Receiver ID"
// @Param request body models.MessageTextRequest true "Message"
// @Success 201 {object} models.Message
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /messages/{receiver_id} [post]
func (h *MessageHandler) Send(c *gin.Context) {
	receiverID, ok := parseIDParam(c, "receiver_id")
	if !ok {
		return
	}
	var req models.MessageTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), middleware.CurrentUser(c), receiverID, req.Text)
	if err != nil {
		respondError(c, err, "Failed to send message")
		return
	}
	c.JSON(http.StatusCreated, message)
}

// Conversations godoc
// @Summary List conversation partners
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ConversationPartner
// @Failure 401 {object} map[string]interface{}
// @Router /messages/users [get]
func (h *MessageHandler) Conversations(c *gin.Context) {
	partners, err := h.messageService.Conversations(middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err, "Failed to get conversations")
		return
	}
	c.JSON(http.StatusOK, partners)
}

// Conversation godoc
// @Summary Get the conversation with a user
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "Other user ID"
// @Success 200 {array} models.Message
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /messages/{user_id} [get]
func (h *MessageHandler) Conversation(c *gin.Context) {
	otherID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	messages, err := h.messageService.Conversation(middleware.CurrentUser(c), otherID)
	if err != nil {
		respondError(c, err, "Failed to get conversation")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// UpdateText godoc
// @Summary Edit own message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param message_id path int true "Message ID"
// @Param request body models.MessageTextRequest true "New text"
// @Success 200 {object} models.Message
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /messages/{message_id}/text [patch]
func (h *MessageHandler) UpdateText(c *gin.Context) {
	messageID, ok := parseIDParam(c, "message_id")
	if !ok {
		return
	}
	var req models.MessageTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	message, err := h.messageService.UpdateText(middleware.CurrentUser(c), messageID, req.Text)
	if err != nil {
		respondError(c, err, "Failed to update message")
		return
	}
	c.JSON(http.StatusOK, message)
}
