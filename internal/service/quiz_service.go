package service

import (
	"eduz_backend/internal/config"
	"eduz_backend/internal/model"
	"eduz_backend/internal/repository"
	"eduz_backend/internal/util"
	"eduz_backend/pkg/logger"
	"encoding/json"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// passThreshold is the correct-answer ratio at which a submission counts as
// a pass and the rolling difficulty moves up instead of down.
const passThreshold = 0.6

type QuizService struct {
	Quiz      *repository.QuizRepository
	Questions *repository.QuestionRepository
	Progress  *repository.ProgressRepository
	Subjects  *repository.SubjectRepository
	Cfg       *config.Config
	DB        *gorm.DB

	// Seed feeds the per-start random source. Tests pin it for
	// reproducible selection.
	Seed func() int64
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	progressRepo *repository.ProgressRepository,
	subjectRepo *repository.SubjectRepository,
	cfg *config.Config,
	db *gorm.DB,
) *QuizService {
	return &QuizService{
		Quiz:      quizRepo,
		Questions: questionRepo,
		Progress:  progressRepo,
		Subjects:  subjectRepo,
		Cfg:       cfg,
		DB:        db,
		Seed:      func() int64 { return time.Now().UnixNano() },
	}
}

type StartQuizRequest struct {
	SubjectID *uint `json:"subjectId"`
	BranchID  *uint `json:"branchId"`
	TopicID   *uint `json:"topicId"`
	Count     int   `json:"count" binding:"omitempty,min=1"`
}

// QuizQuestion is the student-facing view of a question. The answer key
// must never travel with it.
type QuizQuestion struct {
	ID      uint            `json:"id"`
	Text    string          `json:"text"`
	Options json.RawMessage `json:"options"`
}

type StartQuizResult struct {
	SessionID uint           `json:"sessionId"`
	Questions []QuizQuestion `json:"questions"`
}

type SubmittedAnswer struct {
	QuestionID     uint   `json:"questionId" binding:"required"`
	SelectedOption string `json:"selectedOption"`
}

// StartQuiz resolves the requested scope, resets the caller's rolling
// difficulty, draws an adaptive question sequence and opens a session
// pinned to exactly those questions.
func (s *QuizService) StartQuiz(userID uint, req StartQuizRequest) (*StartQuizResult, error) {
	scope := repository.QuestionScope{
		SubjectID: req.SubjectID,
		BranchID:  req.BranchID,
		TopicID:   req.TopicID,
	}
	if scope.Empty() {
		return nil, util.ErrScopeRequired
	}
	if err := s.checkScope(scope); err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = s.Cfg.Quiz.DefaultQuestionCount
	}
	if count > s.Cfg.Quiz.MaxQuestionCount {
		count = s.Cfg.Quiz.MaxQuestionCount
	}

	available, err := s.Questions.ListApproved(scope)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, util.ErrNoQuestionsAvailable
	}

	rng := rand.New(rand.NewSource(s.Seed()))

	var result *StartQuizResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		progress, err := s.Progress.FindOrCreate(tx, userID)
		if err != nil {
			return err
		}

		// Every quiz starts from the middle of the scale.
		progress.CurrentDifficulty = model.DefaultDifficulty
		progress.Streak = 0
		if err := s.Progress.Save(tx, progress); err != nil {
			return err
		}

		picked := PickQuestions(BucketQuestions(available), count, progress.CurrentDifficulty, rng)
		if len(picked) == 0 {
			return util.ErrNoQuestionsAvailable
		}
		if len(picked) < count {
			logger.Log.Info("question pool smaller than requested",
				zap.Int("requested", count),
				zap.Int("selected", len(picked)))
		}

		ids := make([]uint, len(picked))
		questions := make([]QuizQuestion, len(picked))
		for i, q := range picked {
			ids[i] = q.ID
			questions[i] = QuizQuestion{ID: q.ID, Text: q.Text, Options: q.Options}
		}

		session := &model.QuizSession{
			UserID:         userID,
			SubjectID:      req.SubjectID,
			BranchID:       req.BranchID,
			TopicID:        req.TopicID,
			TotalQuestions: len(picked),
			StartedAt:      time.Now(),
		}
		if err := session.SetQuestionIDs(ids); err != nil {
			return err
		}
		if err := s.Quiz.Create(tx, session); err != nil {
			return err
		}

		result = &StartQuizResult{SessionID: session.ID, Questions: questions}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SubmitQuiz scores a session exactly once. The close is a guarded update on
// the open row, so a concurrent resubmission loses the race and surfaces as
// a conflict instead of double-scoring.
func (s *QuizService) SubmitQuiz(userID, sessionID uint, answers []SubmittedAnswer) (*model.QuizSession, error) {
	var session model.QuizSession

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&session, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrSessionNotFound
			}
			return err
		}
		if session.UserID != userID {
			return util.ErrSessionNotFound
		}
		if session.Closed() {
			return util.ErrSessionClosed
		}

		presented, err := session.PresentedQuestionIDs()
		if err != nil {
			return err
		}
		var pool []model.Question
		if len(presented) > 0 {
			if err := tx.Where("id IN ?", presented).Find(&pool).Error; err != nil {
				return err
			}
		}
		lookup := make(map[uint]model.Question, len(pool))
		for _, q := range pool {
			lookup[q.ID] = q
		}

		correct := 0
		for _, a := range answers {
			q, ok := lookup[a.QuestionID]
			if !ok {
				// Unknown or never-presented question: tolerated, never fatal.
				logger.Log.Warn("ignoring answer for unknown question",
					zap.Uint("sessionId", session.ID),
					zap.Uint("questionId", a.QuestionID))
				continue
			}
			if AnswersMatch(q.CorrectOption, a.SelectedOption) {
				correct++
			}
		}

		totalAnswered := len(answers)
		percentage := 0.0
		if totalAnswered > 0 {
			percentage = 100 * float64(correct) / float64(totalAnswered)
		}
		now := time.Now()

		res := tx.Model(&model.QuizSession{}).
			Where("id = ? AND ended_at IS NULL", session.ID).
			Updates(map[string]interface{}{
				"correct_answers": correct,
				"score":           percentage,
				"ended_at":        now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrSessionClosed
		}

		session.CorrectAnswers = correct
		session.Score = &percentage
		session.EndedAt = &now

		progress, err := s.Progress.FindOrCreate(tx, userID)
		if err != nil {
			return err
		}
		passed := totalAnswered > 0 &&
			float64(correct)/float64(totalAnswered) >= passThreshold
		if passed {
			progress.CurrentDifficulty = model.ClampDifficulty(progress.CurrentDifficulty + 1)
			progress.Streak = 0
		} else {
			progress.CurrentDifficulty = model.ClampDifficulty(progress.CurrentDifficulty - 1)
			progress.Streak++
		}
		return s.Progress.Save(tx, progress)
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// GetResult returns a scored session. Open sessions have no result yet.
func (s *QuizService) GetResult(userID, sessionID uint) (*model.QuizSession, error) {
	session, err := s.Quiz.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	if !session.Closed() {
		return nil, util.ErrSessionStillOpen
	}
	return session, nil
}

// ListSessions returns the caller's most recent quiz runs, newest first.
func (s *QuizService) ListSessions(userID uint) ([]model.QuizSession, error) {
	return s.Quiz.ListByUser(userID, 50)
}

// GetProgress exposes the caller's rolling difficulty state.
func (s *QuizService) GetProgress(userID uint) (*model.UserProgress, error) {
	return s.Progress.FindOrCreate(nil, userID)
}

func (s *QuizService) checkScope(scope repository.QuestionScope) error {
	if scope.SubjectID != nil {
		if _, err := s.Subjects.FindSubjectByID(*scope.SubjectID); err != nil {
			return notFoundOr(err, util.ErrSubjectNotFound)
		}
	}
	if scope.BranchID != nil {
		if _, err := s.Subjects.FindBranchByID(*scope.BranchID); err != nil {
			return notFoundOr(err, util.ErrBranchNotFound)
		}
	}
	if scope.TopicID != nil {
		if _, err := s.Subjects.FindTopicByID(*scope.TopicID); err != nil {
			return notFoundOr(err, util.ErrTopicNotFound)
		}
	}
	return nil
}

func notFoundOr(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
