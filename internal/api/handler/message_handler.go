package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/woiya/marketplace/internal/api/metrics"
	"github.com/woiya/marketplace/internal/core/domain"
	"github.com/woiya/marketplace/internal/core/ports"
)

type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /api/messages.
//
// @Summary      Send a direct message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      200   {object}  sendMessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		SenderID:    caller.UserID,
		RecipientID: req.RecipientID,
		Content:     req.Content,
		JobID:       req.JobID,
	})
	if err != nil {
		return err
	}

	metrics.MessagesSentTotal.Inc()
	return c.JSON(http.StatusOK, sendMessageResponse{Message: "Message sent successfully", MessageID: msg.ID})
}

// Conversation handles GET /api/messages/:other_user_id.
//
// @Summary      Conversation with another user, oldest first
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        other_user_id  path      string  true  "Other user's ID"
// @Success      200            {object}  conversationResponse
// @Failure      401            {object}  map[string]string
// @Router       /messages/{other_user_id} [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	msgs, err := h.service.Conversation(c.Request().Context(), caller.UserID, c.Param("other_user_id"))
	if err != nil {
		return err
	}
	if msgs == nil {
		msgs = []*domain.Message{}
	}
	return c.JSON(http.StatusOK, conversationResponse{Messages: msgs})
}
