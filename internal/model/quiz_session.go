package model

import (
	"encoding/json"
	"time"
)

// QuizSession is one adaptive quiz run. The scope columns record what the
// quiz was drawn from; QuestionIDs pins the exact set presented at start so
// a submission cannot smuggle in questions the learner never saw.
// Score stays NULL while the session is open.
// swagger:model QuizSession
type QuizSession struct {
	BaseModel
	UserID         uint            `gorm:"index;not null" json:"userId"`
	SubjectID      *uint           `gorm:"index" json:"subjectId"`
	BranchID       *uint           `gorm:"index" json:"branchId"`
	TopicID        *uint           `gorm:"index" json:"topicId"`
	QuestionIDs    json.RawMessage `gorm:"type:json" json:"-"`
	TotalQuestions int             `json:"totalQuestions"`
	CorrectAnswers int             `json:"correctAnswers"`
	Score          *float64        `json:"score"`
	StartedAt      time.Time       `json:"startedAt"`
	EndedAt        *time.Time      `json:"endedAt"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// Closed reports whether the session has already been submitted and scored.
func (s *QuizSession) Closed() bool {
	return s.EndedAt != nil
}

// SetQuestionIDs stores the presented-question set.
func (s *QuizSession) SetQuestionIDs(ids []uint) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	s.QuestionIDs = raw
	return nil
}

// PresentedQuestionIDs decodes the presented-question set.
func (s *QuizSession) PresentedQuestionIDs() ([]uint, error) {
	if len(s.QuestionIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	if err := json.Unmarshal(s.QuestionIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
