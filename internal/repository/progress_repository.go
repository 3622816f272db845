package repository

import (
	"eduz_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// FindOrCreate returns the per-user adaptive state, creating the default
// record (difficulty 3, streak 0) on first quiz interaction. Pass the
// transaction handle when called inside one.
func (r *ProgressRepository) FindOrCreate(db *gorm.DB, userID uint) (*model.UserProgress, error) {
	if db == nil {
		db = r.DB
	}
	var progress model.UserProgress
	err := db.Where("user_id = ?", userID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = model.UserProgress{
			UserID:            userID,
			CurrentDifficulty: model.DefaultDifficulty,
			Streak:            0,
		}
		if err := db.Create(&progress).Error; err != nil {
			return nil, err
		}
		return &progress, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Save(db *gorm.DB, progress *model.UserProgress) error {
	if db == nil {
		db = r.DB
	}
	return db.Save(progress).Error
}

func (r *ProgressRepository) FindByUser(userID uint) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ?", userID).First(&progress).Error
	return &progress, err
}
