package service

import (
	"context"
	"eduz_backend/internal/model"
	"eduz_backend/internal/repository"
	"eduz_backend/internal/util"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// validPromotions maps a current role to the roles an admin may move it to.
var validPromotions = map[model.UserRole][]model.UserRole{
	model.Student: {model.Teacher},
	model.Teacher: {model.Admin},
}

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, util.ErrUserNotFound)
	}
	return user, nil
}

// Promote moves a user one step up the role ladder. Only the
// student→teacher and teacher→admin paths are allowed.
func (s *UserService) Promote(userID uint, newRole model.UserRole) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	allowed := false
	for _, r := range validPromotions[user.Role] {
		if r == newRole {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, util.ErrInvalidPromotion
	}

	if err := s.UserRepo.UpdateRole(userID, newRole); err != nil {
		return nil, err
	}
	user.Role = newRole
	return user, nil
}

// UploadAvatar stores the image under a fresh name and records its URL on
// the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", notFoundOr(err, util.ErrUserNotFound)
	}

	name := fmt.Sprintf("avatars/%s%s", uuid.New().String(), filepath.Ext(filename))
	url, err := s.Storage.Upload(ctx, name, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}
