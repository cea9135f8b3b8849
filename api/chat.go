package api

import (
	"log"
	"net/http"
	"time"

	"github.com/phdonas/site/config"
	"github.com/phdonas/site/models"
	"github.com/phdonas/site/utils"

	"github.com/gin-gonic/gin"
)

// ClientChatRequest is the chatbot widget's request payload.
type ClientChatRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the chatbot widget's reply payload.
type ChatResponse struct {
	Reply          string `json:"reply"`
	RemainingQuota int    `json:"remaining_quota"`
}

// ChatHandler forwards the visitor's prompt to the assistant bridge. The
// bridge call is stateless; the transcript kept here only feeds the widget's
// local history display. Assistant failures are already converted to the
// fixed apology string inside the service, so this handler never returns a
// 5xx for them.
func (h *APIHandler) ChatHandler(c *gin.Context) {
	var req ClientChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid chat payload.", err)
		return
	}

	// Quota check before any completion call.
	quota, err := h.quotaRepo.GetQuota(req.UserID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to check chat quota.", err)
		return
	}
	maxQuota := config.AppConfig.GuestChatQuota
	if maxQuota > 0 && quota.MessagesSent >= maxQuota {
		utils.SendJSONError(c, http.StatusTooManyRequests, "Limite de mensagens atingido. Fale conosco pelo WhatsApp.", nil)
		return
	}

	if saveErr := h.chatRepo.SaveMessage(models.ChatMessage{
		UserID:    req.UserID,
		Role:      "user",
		Content:   req.Message,
		Timestamp: time.Now(),
	}); saveErr != nil {
		log.Printf("WARN: [API] Failed to save user message for '%s': %v", req.UserID, saveErr)
	}

	reply := h.assistantService.Ask(c.Request.Context(), req.Message)

	if saveErr := h.chatRepo.SaveMessage(models.ChatMessage{
		UserID:    req.UserID,
		Role:      "assistant",
		Content:   reply,
		Timestamp: time.Now(),
	}); saveErr != nil {
		log.Printf("WARN: [API] Failed to save assistant reply for '%s': %v", req.UserID, saveErr)
	}

	remaining := maxQuota
	if updated, incErr := h.quotaRepo.IncrementQuota(req.UserID); incErr != nil {
		log.Printf("WARN: [API] Failed to increment quota for '%s': %v", req.UserID, incErr)
	} else {
		remaining = maxQuota - updated.MessagesSent
		if remaining < 0 {
			remaining = 0
		}
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply, RemainingQuota: remaining})
}

// ChatHistoryHandler returns the visitor's local transcript.
func (h *APIHandler) ChatHistoryHandler(c *gin.Context) {
	userID := c.Param("userID")
	messages, err := h.chatRepo.GetMessagesByUserID(userID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load chat history.", err)
		return
	}
	c.JSON(http.StatusOK, messages)
}
