package controller

import (
	"eduz_backend/internal/repository"
	"eduz_backend/internal/service"
	"eduz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// Create godoc
// @Summary Author a question
// @Description New questions start unapproved and stay invisible to students until an admin approves them
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateQuestionRequest true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "topic or branch not found"
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	question, err := c.QuestionService.CreateQuestion(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTopicNotFound), errors.Is(err, util.ErrBranchNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, question)
}

// ListApproved godoc
// @Summary List approved questions
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId query int false "subject id"
// @Param   branchId  query int false "branch id"
// @Param   topicId   query int false "topic id"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions [get]
func (c *QuestionController) ListApproved(ctx *gin.Context) {
	scope := repository.QuestionScope{
		SubjectID: optionalIDQuery(ctx, "subjectId"),
		BranchID:  optionalIDQuery(ctx, "branchId"),
		TopicID:   optionalIDQuery(ctx, "topicId"),
	}

	questions, err := c.QuestionService.ListApproved(ctx.Request.Context(), scope)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// ListUnapproved godoc
// @Summary List questions awaiting approval
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.AuthoredQuestion}
// @Router /api/questions/unapproved [get]
func (c *QuestionController) ListUnapproved(ctx *gin.Context) {
	questions, err := c.QuestionService.ListUnapproved()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Approve godoc
// @Summary Approve a question for student use
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id}/approve [post]
func (c *QuestionController) Approve(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.QuestionService.Approve(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"id": id, "approved": true})
}

// Delete godoc
// @Summary Delete a question
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if err := c.QuestionService.Delete(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"id": id})
}
