package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"konnection/backend/internal/services"
)

// ChatHandler handles REST requests for the landlord chat and translation.
type ChatHandler struct {
	chatService services.IChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService services.IChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type chatRequest struct {
	Message string `json:"message"`
}

type translateRequest struct {
	Language string `json:"language"`
	Message  string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reply, err := h.chatService.Chat(c.Request.Context(), req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, chatResponse{Reply: reply})
}

// Translate handles POST /api/v1/chat/translate.
func (h *ChatHandler) Translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	reply, err := h.chatService.Translate(c.Request.Context(), req.Language, req.Message)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, chatResponse{Reply: reply})
}
