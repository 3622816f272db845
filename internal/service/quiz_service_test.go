package service_test

import (
	"fmt"
	"testing"

	"eduz_backend/internal/config"
	"eduz_backend/internal/model"
	"eduz_backend/internal/repository"
	"eduz_backend/internal/service"
	"eduz_backend/internal/util"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type quizFixture struct {
	db      *gorm.DB
	svc     *service.QuizService
	user    *model.User
	subject *model.Subject
	branch  *model.Branch
	topic   *model.Topic
}

func newQuizFixture(t *testing.T) *quizFixture {
	t.Helper()

	db := newTestDB(t)
	subject, branch, topic := seedScope(t, db)
	user := seedUser(t, db, "Ayuk", "ayuk@example.com", model.Student)

	cfg := &config.Config{}
	cfg.Quiz.DefaultQuestionCount = 5
	cfg.Quiz.MaxQuestionCount = 10

	svc := service.NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewProgressRepository(db),
		repository.NewSubjectRepository(db),
		cfg,
		db,
	)
	svc.Seed = func() int64 { return 42 }

	return &quizFixture{db: db, svc: svc, user: user, subject: subject, branch: branch, topic: topic}
}

func (f *quizFixture) seedApproved(t *testing.T, n, difficulty int) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedQuestion(t, f.db, f.topic, fmt.Sprintf("d%d question %d", difficulty, i), "A", difficulty, true)
	}
}

func (f *quizFixture) progress(t *testing.T) *model.UserProgress {
	t.Helper()
	var p model.UserProgress
	require.NoError(t, f.db.Where("user_id = ?", f.user.ID).First(&p).Error)
	return &p
}

func TestStartQuizRequiresScope(t *testing.T) {
	f := newQuizFixture(t)

	_, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{})
	require.ErrorIs(t, err, util.ErrScopeRequired)
}

func TestStartQuizUnknownScope(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 5, 3)

	_, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{SubjectID: uintPtr(999)})
	require.ErrorIs(t, err, util.ErrSubjectNotFound)

	_, err = f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{BranchID: uintPtr(999)})
	require.ErrorIs(t, err, util.ErrBranchNotFound)

	_, err = f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: uintPtr(999)})
	require.ErrorIs(t, err, util.ErrTopicNotFound)
}

func TestStartQuizNoApprovedQuestions(t *testing.T) {
	f := newQuizFixture(t)
	seedQuestion(t, f.db, f.topic, "pending", "A", 3, false)

	_, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID})
	require.ErrorIs(t, err, util.ErrNoQuestionsAvailable)
}

func TestStartQuizOpensSessionWithPinnedQuestions(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 8, 3)

	result, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 5})
	require.NoError(t, err)
	require.Len(t, result.Questions, 5)

	var session model.QuizSession
	require.NoError(t, f.db.First(&session, result.SessionID).Error)
	require.Equal(t, f.user.ID, session.UserID)
	require.Equal(t, 5, session.TotalQuestions)
	require.False(t, session.Closed())
	require.Nil(t, session.Score)

	pinned, err := session.PresentedQuestionIDs()
	require.NoError(t, err)
	served := make([]uint, len(result.Questions))
	for i, q := range result.Questions {
		served[i] = q.ID
	}
	require.Equal(t, served, pinned)
}

func TestStartQuizCountDefaultsAndCaps(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 20, 3)

	result, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID})
	require.NoError(t, err)
	require.Len(t, result.Questions, 5)

	result, err = f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 100})
	require.NoError(t, err)
	require.Len(t, result.Questions, 10)
}

func TestStartQuizResetsRollingDifficulty(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 5, 3)

	require.NoError(t, f.db.Create(&model.UserProgress{
		UserID:            f.user.ID,
		CurrentDifficulty: 6,
		Streak:            4,
	}).Error)

	_, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID})
	require.NoError(t, err)

	p := f.progress(t)
	require.Equal(t, model.DefaultDifficulty, p.CurrentDifficulty)
	require.Equal(t, 0, p.Streak)
}

func TestStartQuizReproducibleForSeed(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 12, 3)

	first, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 6})
	require.NoError(t, err)
	second, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 6})
	require.NoError(t, err)

	for i := range first.Questions {
		require.Equal(t, first.Questions[i].ID, second.Questions[i].ID)
	}
}

func TestSubmitQuizScoresAndClosesSession(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 5, 3)

	result, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 5})
	require.NoError(t, err)

	answers := make([]service.SubmittedAnswer, 5)
	for i, q := range result.Questions {
		selected := "a"
		if i >= 3 {
			selected = "wrong"
		}
		answers[i] = service.SubmittedAnswer{QuestionID: q.ID, SelectedOption: selected}
	}

	session, err := f.svc.SubmitQuiz(f.user.ID, result.SessionID, answers)
	require.NoError(t, err)
	require.True(t, session.Closed())
	require.Equal(t, 3, session.CorrectAnswers)
	require.NotNil(t, session.Score)
	require.InDelta(t, 60.0, *session.Score, 0.001)

	// 60% meets the pass threshold: difficulty climbs, streak resets.
	p := f.progress(t)
	require.Equal(t, 4, p.CurrentDifficulty)
	require.Equal(t, 0, p.Streak)
}

func TestSubmitQuizBelowThreshold(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 5, 3)

	result, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 5})
	require.NoError(t, err)

	answers := make([]service.SubmittedAnswer, 5)
	for i, q := range result.Questions {
		answers[i] = service.SubmittedAnswer{QuestionID: q.ID, SelectedOption: "wrong"}
	}

	session, err := f.svc.SubmitQuiz(f.user.ID, result.SessionID, answers)
	require.NoError(t, err)
	require.Equal(t, 0, session.CorrectAnswers)
	require.InDelta(t, 0.0, *session.Score, 0.001)

	p := f.progress(t)
	require.Equal(t, 2, p.CurrentDifficulty)
	require.Equal(t, 1, p.Streak)
}

func TestSubmitQuizNoAnswersScoresZero(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 5, 3)

	result, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 5})
	require.NoError(t, err)

	session, err := f.svc.SubmitQuiz(f.user.ID, result.SessionID, nil)
	require.NoError(t, err)
	require.True(t, session.Closed())
	require.InDelta(t, 0.0, *session.Score, 0.001)

	p := f.progress(t)
	require.Equal(t, 2, p.CurrentDifficulty)
	require.Equal(t, 1, p.Streak)
}

func TestSubmitQuizIgnoresUnknownQuestions(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 3, 3)

	result, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 3})
	require.NoError(t, err)

	answers := []service.SubmittedAnswer{
		{QuestionID: result.Questions[0].ID, SelectedOption: "a"},
		{QuestionID: 99999, SelectedOption: "a"},
	}

	session, err := f.svc.SubmitQuiz(f.user.ID, result.SessionID, answers)
	require.NoError(t, err)
	require.Equal(t, 1, session.CorrectAnswers)
	require.InDelta(t, 50.0, *session.Score, 0.001)
}

func TestSubmitQuizRejectsResubmission(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 5, 3)

	result, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 5})
	require.NoError(t, err)

	answers := make([]service.SubmittedAnswer, 5)
	for i, q := range result.Questions {
		answers[i] = service.SubmittedAnswer{QuestionID: q.ID, SelectedOption: "a"}
	}

	first, err := f.svc.SubmitQuiz(f.user.ID, result.SessionID, answers)
	require.NoError(t, err)

	_, err = f.svc.SubmitQuiz(f.user.ID, result.SessionID, nil)
	require.ErrorIs(t, err, util.ErrSessionClosed)

	// The losing submission must not touch the recorded score.
	var stored model.QuizSession
	require.NoError(t, f.db.First(&stored, result.SessionID).Error)
	require.Equal(t, first.CorrectAnswers, stored.CorrectAnswers)
	require.InDelta(t, *first.Score, *stored.Score, 0.001)
}

func TestSubmitQuizForeignSession(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 5, 3)
	other := seedUser(t, f.db, "Ngwa", "ngwa@example.com", model.Student)

	result, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 5})
	require.NoError(t, err)

	_, err = f.svc.SubmitQuiz(other.ID, result.SessionID, nil)
	require.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestGetResult(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 5, 3)

	_, err := f.svc.GetResult(f.user.ID, 12345)
	require.ErrorIs(t, err, util.ErrSessionNotFound)

	result, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 5})
	require.NoError(t, err)

	_, err = f.svc.GetResult(f.user.ID, result.SessionID)
	require.ErrorIs(t, err, util.ErrSessionStillOpen)

	answers := []service.SubmittedAnswer{
		{QuestionID: result.Questions[0].ID, SelectedOption: "a"},
	}
	_, err = f.svc.SubmitQuiz(f.user.ID, result.SessionID, answers)
	require.NoError(t, err)

	session, err := f.svc.GetResult(f.user.ID, result.SessionID)
	require.NoError(t, err)
	require.InDelta(t, 100.0, *session.Score, 0.001)

	other := seedUser(t, f.db, "Enow", "enow@example.com", model.Student)
	_, err = f.svc.GetResult(other.ID, result.SessionID)
	require.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestListSessions(t *testing.T) {
	f := newQuizFixture(t)
	f.seedApproved(t, 5, 3)

	first, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 3})
	require.NoError(t, err)
	second, err := f.svc.StartQuiz(f.user.ID, service.StartQuizRequest{TopicID: &f.topic.ID, Count: 3})
	require.NoError(t, err)

	sessions, err := f.svc.ListSessions(f.user.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	ids := []uint{sessions[0].ID, sessions[1].ID}
	require.Contains(t, ids, first.SessionID)
	require.Contains(t, ids, second.SessionID)

	other := seedUser(t, f.db, "Ngu", "ngu@example.com", model.Student)
	sessions, err = f.svc.ListSessions(other.ID)
	require.NoError(t, err)
	require.Empty(t, sessions)
}

func TestGetProgressCreatesDefaultState(t *testing.T) {
	f := newQuizFixture(t)

	p, err := f.svc.GetProgress(f.user.ID)
	require.NoError(t, err)
	require.Equal(t, model.DefaultDifficulty, p.CurrentDifficulty)
	require.Equal(t, 0, p.Streak)
}
