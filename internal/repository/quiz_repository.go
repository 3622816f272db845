package repository

import (
	"eduz_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// Create inserts a session. Pass the transaction handle when called inside
// one.
func (r *QuizRepository) Create(db *gorm.DB, session *model.QuizSession) error {
	if db == nil {
		db = r.DB
	}
	return db.Create(session).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *QuizRepository) ListByUser(userID uint, limit int) ([]model.QuizSession, error) {
	var sessions []model.QuizSession
	err := r.DB.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Find(&sessions).Error
	return sessions, err
}
