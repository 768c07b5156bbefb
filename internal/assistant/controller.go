package assistant

import (
	"net/http"

	"audease/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func requesterID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func requesterEmail(ctx *gin.Context) string {
	if raw, exists := ctx.Get("user_email"); exists {
		if email, ok := raw.(string); ok {
			return email
		}
	}
	return ""
}

func (c *Controller) GetSuggestions(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	suggestions, err := c.service.GetSuggestions(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to generate suggestions", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Suggestions generated successfully", suggestions, nil)
}

func (c *Controller) FindOptimalTime(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req OptimalTimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Date and duration are required", nil, err.Error())
		return
	}

	result, err := c.service.FindOptimalTime(ctx.Request.Context(), userID, req)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to find optimal time", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, result.Message, result, nil)
}

func (c *Controller) Chat(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	reply, err := c.service.Chat(ctx.Request.Context(), userID, requesterEmail(ctx), req.Message)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Chat failed", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Chat reply", reply, nil)
}

func (c *Controller) ResetChat(ctx *gin.Context) {
	userID, ok := requesterID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.ResetChat(ctx.Request.Context(), userID); err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to reset chat", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Chat session reset", nil, nil)
}
