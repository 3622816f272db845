package controller

import (
	"eduz_backend/internal/model"
	"eduz_backend/internal/service"
	"eduz_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// swagger:model PromoteRequest
type PromoteRequest struct {
	NewRole string `json:"newRole" binding:"required,oneof=teacher admin"`
}

// Promote godoc
// @Summary Promote a user to the next role
// @Description Admin only; valid paths are student→teacher and teacher→admin
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int            true "user id"
// @Param   body body PromoteRequest true "target role"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "invalid promotion path"
// @Failure 404 {object} util.Response
// @Router /api/admin/users/{id}/promote [post]
func (c *UserController) Promote(ctx *gin.Context) {
	var req PromoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := util.MustParseUint(ctx.Param("id"))
	user, err := c.UserService.Promote(userID, model.UserRole(req.NewRole))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrInvalidPromotion):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, user)
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags users
// @Accept  mpfd
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "image file"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/user/avatar/upload [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.UserService.UploadAvatar(
		ctx.Request.Context(),
		claims.UserID,
		fileHeader.Filename,
		file,
		fileHeader.Size,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"avatar": url})
}
