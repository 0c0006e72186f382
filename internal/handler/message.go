package handler

import (
	"errors"
	"net/http"

	"github.com/gemchat/backend/internal/model"
	"github.com/gemchat/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MessageHandler struct {
	svc *service.MessageService
}

func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// Create godoc
// @Summary Send a prompt and get the model's reply
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateMessageRequest true "Chat ID and prompt"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/messages [post]
func (h *MessageHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	chatID, err := uuid.Parse(req.ChatID)
	if err != nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "not found"})
		return
	}

	reply, err := h.svc.Create(c.Request.Context(), user.ID, chatID, req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMessage):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "prompt is required"})
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "not found"})
		default:
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		}
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{Data: *reply})
}
