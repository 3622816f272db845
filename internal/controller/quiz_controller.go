package controller

import (
	"eduz_backend/internal/service"
	"eduz_backend/internal/util"
	"eduz_backend/pkg/monitoring"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Start godoc
// @Summary Start an adaptive quiz
// @Description Draws questions by difficulty within the requested subject/branch/topic scope; answer keys are never included
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.StartQuizRequest true "scope and question count"
// @Success 201 {object} util.Response{data=service.StartQuizResult}
// @Failure 400 {object} util.Response "missing scope"
// @Failure 404 {object} util.Response "scope not found"
// @Failure 422 {object} util.Response "no approved questions in scope"
// @Router /api/quiz/start [post]
func (c *QuizController) Start(ctx *gin.Context) {
	var req service.StartQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuizService.StartQuiz(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrScopeRequired):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrSubjectNotFound),
			errors.Is(err, util.ErrBranchNotFound),
			errors.Is(err, util.ErrTopicNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrNoQuestionsAvailable):
			util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuizSessionsStarted.Inc()
	util.Created(ctx, result)
}

// swagger:model SubmitQuizRequest
type SubmitQuizRequest struct {
	Answers []service.SubmittedAnswer `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Submit answers for an open quiz session
// @Tags quiz
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int               true "session id"
// @Param   body body SubmitQuizRequest true "answers"
// @Success 200 {object} util.Response{data=model.QuizSession}
// @Failure 404 {object} util.Response "session not found or not yours"
// @Failure 409 {object} util.Response "session already submitted"
// @Router /api/quiz/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := util.MustParseUint(ctx.Param("id"))
	session, err := c.QuizService.SubmitQuiz(claims.UserID, sessionID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrSessionClosed):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	monitoring.QuizSessionsScored.Inc()
	util.Success(ctx, gin.H{
		"session": session,
		"message": "quiz submitted",
	})
}

// Result godoc
// @Summary Fetch the result of a scored quiz session
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "session id"
// @Success 200 {object} util.Response{data=model.QuizSession}
// @Failure 404 {object} util.Response "session not found or not yours"
// @Failure 412 {object} util.Response "session not yet submitted"
// @Router /api/quiz/{id}/result [get]
func (c *QuizController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := util.MustParseUint(ctx.Param("id"))
	session, err := c.QuizService.GetResult(claims.UserID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrSessionStillOpen):
			util.Error(ctx, http.StatusPreconditionFailed, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"session": session,
		"message": "quiz result",
	})
}

// Sessions godoc
// @Summary List the caller's recent quiz sessions
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.QuizSession}
// @Router /api/quiz/sessions [get]
func (c *QuizController) Sessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.QuizService.ListSessions(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// Progress godoc
// @Summary Current rolling difficulty and miss streak
// @Tags quiz
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserProgress}
// @Router /api/quiz/progress [get]
func (c *QuizController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.QuizService.GetProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
