package handler

import (
	"errors"
	"net/http"

	"github.com/gemchat/backend/internal/model"
	"github.com/gemchat/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatHandler struct {
	svc *service.ChatService
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Create godoc
// @Summary Create a chat
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateChatRequest true "Chat name (optional)"
// @Success 201 {object} model.ChatResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/chats [post]
func (h *ChatHandler) Create(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.CreateChatRequest
	_ = c.ShouldBindJSON(&req)

	chat, err := h.svc.Create(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}

	c.JSON(http.StatusCreated, model.ChatResponse{Data: *chat})
}

// List godoc
// @Summary List chats
// @Description Chats owned by the caller, most recently updated first.
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ChatListResponse
// @Failure 401 {object} model.ErrorResponse
// @Router /api/v1/chats [get]
func (h *ChatHandler) List(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	chats, err := h.svc.List(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}

	c.JSON(http.StatusOK, model.ChatListResponse{Data: chats})
}

// Get godoc
// @Summary Get a chat with its messages
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Success 200 {object} model.ChatResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/chats/{id} [get]
func (h *ChatHandler) Get(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "not found"})
		return
	}

	chat, err := h.svc.Get(c.Request.Context(), user.ID, chatID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}

	c.JSON(http.StatusOK, model.ChatResponse{Data: *chat})
}

// Delete godoc
// @Summary Delete a chat
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path string true "Chat ID"
// @Success 200 {object} model.StatusResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/v1/chats/{id} [delete]
func (h *ChatHandler) Delete(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	chatID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "not found"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user.ID, chatID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{Status: "deleted"})
}
