package controller

import (
	"eduz_backend/internal/service"
	"eduz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectService *service.SubjectService
}

func NewSubjectController(subjectService *service.SubjectService) *SubjectController {
	return &SubjectController{SubjectService: subjectService}
}

// ListSubjects godoc
// @Summary List GCE subjects
// @Tags taxonomy
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Subject}
// @Router /api/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.SubjectService.ListSubjects()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// CreateSubject godoc
// @Summary Create a GCE subject
// @Tags taxonomy
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateSubjectRequest true "subject"
// @Success 201 {object} util.Response{data=model.Subject}
// @Failure 409 {object} util.Response "paper code already registered"
// @Router /api/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	var req service.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.CreateSubject(req)
	if err != nil {
		if errors.Is(err, util.ErrSubjectExists) {
			util.Conflict(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, subject)
}

// ListBranches godoc
// @Summary List branches, optionally filtered by subject
// @Tags taxonomy
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId query int false "subject id"
// @Success 200 {object} util.Response{data=[]model.Branch}
// @Router /api/branches [get]
func (c *SubjectController) ListBranches(ctx *gin.Context) {
	branches, err := c.SubjectService.ListBranches(optionalIDQuery(ctx, "subjectId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, branches)
}

// CreateBranch godoc
// @Summary Create a branch under a subject
// @Tags taxonomy
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateBranchRequest true "branch"
// @Success 201 {object} util.Response{data=model.Branch}
// @Failure 404 {object} util.Response "subject not found"
// @Router /api/branches [post]
func (c *SubjectController) CreateBranch(ctx *gin.Context) {
	var req service.CreateBranchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	branch, err := c.SubjectService.CreateBranch(req)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, branch)
}

// ListTopics godoc
// @Summary List topics, optionally filtered by subject or branch
// @Tags taxonomy
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId query int false "subject id"
// @Param   branchId  query int false "branch id"
// @Success 200 {object} util.Response{data=[]model.Topic}
// @Router /api/topics [get]
func (c *SubjectController) ListTopics(ctx *gin.Context) {
	topics, err := c.SubjectService.ListTopics(
		optionalIDQuery(ctx, "subjectId"),
		optionalIDQuery(ctx, "branchId"),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// CreateTopic godoc
// @Summary Create a topic under a subject
// @Tags taxonomy
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateTopicRequest true "topic"
// @Success 201 {object} util.Response{data=model.Topic}
// @Failure 404 {object} util.Response "subject or branch not found"
// @Router /api/topics [post]
func (c *SubjectController) CreateTopic(ctx *gin.Context) {
	var req service.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.SubjectService.CreateTopic(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSubjectNotFound), errors.Is(err, util.ErrBranchNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, topic)
}

func optionalIDQuery(ctx *gin.Context, name string) *uint {
	raw := ctx.Query(name)
	if raw == "" {
		return nil
	}
	id := util.MustParseUint(raw)
	return &id
}
