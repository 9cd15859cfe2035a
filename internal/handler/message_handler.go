package handler

import (
	"context"
	"net/http"

	"chatline/internal/domain/message"
	"chatline/internal/transport/httpdto"
	"chatline/internal/validation"

	"github.com/gin-gonic/gin"
)

type MessageService interface {
	SaveMessage(ctx context.Context, m message.Message) (message.Message, error)
	GetMessages(ctx context.Context) []message.Message
}

type MessageHandler struct {
	service MessageService
}

func NewMessageHandler(service MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) AddMessage(c *gin.Context) {
	var req httpdto.AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || !validation.IsAddMessageRequestValid(req) {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid request", "INVALID_REQUEST"))
		return
	}

	if !validation.IsMessageValid(*req.MessageToAdd) {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid message body", "INVALID_REQUEST"))
		return
	}

	m, err := req.MessageToAdd.ToMessage()
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid message body", "INVALID_REQUEST"))
		return
	}

	saved, err := h.service.SaveMessage(c.Request.Context(), m)
	if err != nil {
		serviceFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(saved))
}

func (h *MessageHandler) GetMessages(c *gin.Context) {
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(h.service.GetMessages(c.Request.Context())))
}
