package model

import "encoding/json"

const (
	MinDifficulty = 1
	MaxDifficulty = 6
	// DefaultDifficulty is where every quiz and every fresh learner starts.
	DefaultDifficulty = 3
)

// ClampDifficulty keeps a rating inside the 1..6 scale.
func ClampDifficulty(d int) int {
	if d < MinDifficulty {
		return MinDifficulty
	}
	if d > MaxDifficulty {
		return MaxDifficulty
	}
	return d
}

// Question is a multiple-choice (or free-text) exam question. Options is the
// canonical structured representation: a JSON array of option strings.
// CorrectOption may hold a single answer or a comma-separated set of
// acceptable tokens; it is never serialized to clients.
// swagger:model Question
type Question struct {
	BaseModel
	Text          string          `gorm:"type:text;not null" json:"text"`
	Options       json.RawMessage `gorm:"type:json" json:"options"`
	CorrectOption string          `gorm:"type:text;not null" json:"-"`
	Difficulty    int             `gorm:"default:3;index" json:"difficulty"`
	Approved      bool            `gorm:"default:false;index" json:"approved"`
	TopicID       uint            `gorm:"index;not null" json:"topicId"`
	BranchID      *uint           `gorm:"index" json:"branchId"`
	CreatedBy     uint            `gorm:"index" json:"createdBy"`
	Topic         *Topic          `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	Branch        *Branch         `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
