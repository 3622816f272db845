package service

import (
	"context"
	"eduz_backend/internal/model"
	"eduz_backend/internal/repository"
	"eduz_backend/internal/util"
	"eduz_backend/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	questionCacheTTL    = 5 * time.Minute
	questionCacheGenKey = "questions:approved:gen"
)

type QuestionService struct {
	Questions *repository.QuestionRepository
	Subjects  *repository.SubjectRepository
	Redis     *redis.Client
}

func NewQuestionService(questionRepo *repository.QuestionRepository, subjectRepo *repository.SubjectRepository, rdb *redis.Client) *QuestionService {
	return &QuestionService{
		Questions: questionRepo,
		Subjects:  subjectRepo,
		Redis:     rdb,
	}
}

type CreateQuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectOption string   `json:"correctOption" binding:"required"`
	Difficulty    int      `json:"difficulty" binding:"omitempty,min=1,max=6"`
	TopicID       uint     `json:"topicId" binding:"required"`
	BranchID      *uint    `json:"branchId"`
}

// AuthoredQuestion is the teacher/admin view; unlike the student view it
// carries the answer key.
type AuthoredQuestion struct {
	model.Question
	CorrectOption string `json:"correctOption"`
}

// CreateQuestion stores a new question in the unapproved state. Options are
// kept as a structured JSON list, the one canonical representation.
func (s *QuestionService) CreateQuestion(ctx context.Context, creatorID uint, req CreateQuestionRequest) (*model.Question, error) {
	topic, err := s.Subjects.FindTopicByID(req.TopicID)
	if err != nil {
		return nil, notFoundOr(err, util.ErrTopicNotFound)
	}
	if req.BranchID != nil {
		if _, err := s.Subjects.FindBranchByID(*req.BranchID); err != nil {
			return nil, notFoundOr(err, util.ErrBranchNotFound)
		}
	}

	options, err := json.Marshal(req.Options)
	if err != nil {
		return nil, err
	}

	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = model.DefaultDifficulty
	}

	branchID := req.BranchID
	if branchID == nil {
		branchID = topic.BranchID
	}

	question := &model.Question{
		Text:          req.Text,
		Options:       options,
		CorrectOption: req.CorrectOption,
		Difficulty:    model.ClampDifficulty(difficulty),
		Approved:      false,
		TopicID:       req.TopicID,
		BranchID:      branchID,
		CreatedBy:     creatorID,
	}

	if err := s.Questions.Create(question); err != nil {
		return nil, err
	}

	s.bumpCacheGeneration(ctx)
	return question, nil
}

// ListApproved serves the student-visible pool, cached per scope until the
// pool changes or the TTL lapses.
func (s *QuestionService) ListApproved(ctx context.Context, scope repository.QuestionScope) ([]model.Question, error) {
	key := s.cacheKey(ctx, scope)
	if key != "" {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var questions []model.Question
			if err := json.Unmarshal([]byte(cached), &questions); err == nil {
				return questions, nil
			}
		}
	}

	questions, err := s.Questions.ListApproved(scope)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if raw, err := json.Marshal(questions); err == nil {
			if err := s.Redis.Set(ctx, key, raw, questionCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache question pool", zap.Error(err))
			}
		}
	}

	return questions, nil
}

func (s *QuestionService) ListUnapproved() ([]AuthoredQuestion, error) {
	questions, err := s.Questions.ListUnapproved()
	if err != nil {
		return nil, err
	}
	authored := make([]AuthoredQuestion, len(questions))
	for i, q := range questions {
		authored[i] = AuthoredQuestion{Question: q, CorrectOption: q.CorrectOption}
	}
	return authored, nil
}

// Approve makes a question visible to students.
func (s *QuestionService) Approve(ctx context.Context, id uint) error {
	if err := s.Questions.SetApproved(id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	s.bumpCacheGeneration(ctx)
	return nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	if err := s.Questions.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	s.bumpCacheGeneration(ctx)
	return nil
}

// cacheKey versions keys with a generation counter so approval and authoring
// invalidate every scope at once. An empty key disables caching for the
// request (redis down is not an error).
func (s *QuestionService) cacheKey(ctx context.Context, scope repository.QuestionScope) string {
	if s.Redis == nil {
		return ""
	}
	gen, err := s.Redis.Get(ctx, questionCacheGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return ""
	}
	return fmt.Sprintf("questions:approved:g%d:s%s:b%s:t%s",
		gen, idOrDash(scope.SubjectID), idOrDash(scope.BranchID), idOrDash(scope.TopicID))
}

func (s *QuestionService) bumpCacheGeneration(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Incr(ctx, questionCacheGenKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate question cache", zap.Error(err))
	}
}

func idOrDash(id *uint) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *id)
}
