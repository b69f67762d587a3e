package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixalara/placement-service/internal/services"
	"github.com/pixalara/placement-service/internal/utils"
)

type ChatHandler struct {
	BaseHandler
	service services.ChatService
}

func NewChatHandler(service services.ChatService, logger utils.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

type openChatRequest struct {
	CounterpartUID string `json:"counterpart_uid" binding:"required"`
}

// OpenChat opens (or returns) the caller's conversation with a mentor or
// student.
func (h *ChatHandler) OpenChat(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req openChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "opening chat", "uid", actor.UID, "counterpart", req.CounterpartUID)

	chat, err := h.service.OpenChat(c.Request.Context(), actor, req.CounterpartUID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, chat)
}

// ListChats returns the caller's conversations, most recent first.
func (h *ChatHandler) ListChats(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	chats, err := h.service.ListChats(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats, "total": len(chats)})
}

// SendMessage appends a message to one of the caller's conversations.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	var req services.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "invalid request body",
			Details: err.Error(),
		})
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), actor, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// UnreadCount returns how many of the caller's conversations have unread
// messages, for the navigation badge.
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), actor)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// GetMessages pages through a conversation and clears the caller's unread
// flag.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	actor, err := GetActorFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "authentication required",
		})
		return
	}

	chatID := c.Param("id")
	page := queryInt(c, "page", 1)
	size := queryInt(c, "size", 50)

	resp, err := h.service.GetMessages(c.Request.Context(), actor, chatID, page, size)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
