package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-screening-backend/internal/delivery/http/response"
	"go-screening-backend/internal/domain"
	"go-screening-backend/pkg/apperror"
	"go-screening-backend/pkg/auth"
)

type SessionHandler struct {
	conversationUC domain.ConversationUsecase
	tokens         *auth.TokenManager
}

// NewSessionHandler registers the conversation routes. Starting a
// session is public; every route on an existing session requires the
// token minted at start.
func NewSessionHandler(public, protected *gin.RouterGroup, messageLimit gin.HandlerFunc, conversationUC domain.ConversationUsecase, tokens *auth.TokenManager) {
	handler := &SessionHandler{
		conversationUC: conversationUC,
		tokens:         tokens,
	}

	public.POST("/sessions", handler.StartSession)

	sessions := protected.Group("/sessions")
	{
		sessions.GET("/:id", handler.GetSession)
		sessions.POST("/:id/messages", messageLimit, handler.PostMessage)
		sessions.POST("/:id/save", handler.SaveRecord)
		sessions.POST("/:id/restore", handler.RestoreRecord)
	}
}

// StartSession godoc
// @Summary      Start a screening session
// @Description  Creates a conversation session and returns it together with the bearer token for subsequent turns. The transcript opens with the greeting and the consent question.
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  response.Response{data=domain.StartSessionResponse}
// @Failure      500  {object}  response.Response
// @Router       /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	session, err := h.conversationUC.StartSession(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	token, err := h.tokens.Issue(session.ID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Session started", domain.StartSessionResponse{
		Session: session,
		Token:   token,
	})
}

// PostMessage godoc
// @Summary      Send a conversation turn
// @Description  Processes one user message and returns the assistant replies for that turn.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Session ID"
// @Param        message  body      domain.MessageRequest  true  "User message"
// @Success      200      {object}  response.Response{data=domain.TurnResult}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /sessions/{id}/messages [post]
// @Security     BearerAuth
func (h *SessionHandler) PostMessage(c *gin.Context) {
	var req domain.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.conversationUC.HandleMessage(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Turn processed", result)
}

// GetSession godoc
// @Summary      Inspect a session
// @Description  Returns the full session state: phase, collected fields, transcript and assessment progress.
// @Tags         sessions
// @Produce      json
// @Param        id  path      string  true  "Session ID"
// @Success      200 {object}  response.Response{data=domain.Session}
// @Failure      401 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /sessions/{id} [get]
// @Security     BearerAuth
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, err := h.conversationUC.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Session state", session)
}

// SaveRecord godoc
// @Summary      Save the candidate record
// @Description  Persists the session's candidate data immediately. Requires recorded consent.
// @Tags         sessions
// @Produce      json
// @Param        id  path      string  true  "Session ID"
// @Success      200 {object}  response.Response{data=domain.Candidate}
// @Failure      401 {object}  response.Response
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /sessions/{id}/save [post]
// @Security     BearerAuth
func (h *SessionHandler) SaveRecord(c *gin.Context) {
	candidate, err := h.conversationUC.SaveRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate record saved", candidate)
}

// RestoreRecord godoc
// @Summary      Restore a stored candidate record
// @Description  Loads a previously saved candidate record into the session and resumes at the first missing field.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Session ID"
// @Param        restore  body      domain.RestoreRequest  true  "Record reference"
// @Success      200      {object}  response.Response{data=domain.Session}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /sessions/{id}/restore [post]
// @Security     BearerAuth
func (h *SessionHandler) RestoreRecord(c *gin.Context) {
	var req domain.RestoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	session, err := h.conversationUC.RestoreRecord(c.Request.Context(), c.Param("id"), req.CandidateID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Record restored", session)
}
