package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/domain"
	"github.com/pennywise/pennywise-backend/internal/middleware"
	"github.com/pennywise/pennywise-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// AssistantHandler handles AI assistant queries
type AssistantHandler struct {
	assistantService *service.AssistantService
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// AssistantQueryRequest represents the assistant query body
type AssistantQueryRequest struct {
	Question string `json:"question"`
}

// AssistantQueryResponse carries the model answer
type AssistantQueryResponse struct {
	Response string `json:"response"`
}

// AssistantErrorResponse is the error body of assistant queries
type AssistantErrorResponse struct {
	Error string `json:"error"`
}

// Query handles POST /api/v1/assistant/query
func (h *AssistantHandler) Query(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		return NewUnauthorizedError(c, "Authentication required")
	}

	var req AssistantQueryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, AssistantErrorResponse{Error: "Invalid JSON."})
	}

	answer, err := h.assistantService.Ask(c.Request().Context(), userID, req.Question)
	if err != nil {
		var verrs domain.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			return c.JSON(http.StatusBadRequest, AssistantErrorResponse{Error: verrs[0].Message})
		case errors.Is(err, domain.ErrAssistantDisabled):
			return c.JSON(http.StatusServiceUnavailable, AssistantErrorResponse{Error: "The assistant is not available."})
		case errors.Is(err, domain.ErrAssistantFailed):
			return c.JSON(http.StatusInternalServerError, AssistantErrorResponse{Error: "The assistant could not answer right now. Please try again."})
		}
		log.Error().Err(err).Str("user_id", userID.String()).Msg("Failed to answer assistant query")
		return c.JSON(http.StatusInternalServerError, AssistantErrorResponse{Error: "Failed to answer the question."})
	}

	return c.JSON(http.StatusOK, AssistantQueryResponse{Response: answer})
}
