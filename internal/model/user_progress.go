package model

// UserProgress is the rolling adaptive state, one row per user. It is reset
// to difficulty 3 / streak 0 at the start of every quiz and adjusted after
// each submission: ≥60% correct moves the difficulty up, anything less moves
// it down and lengthens the miss streak.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID            uint `gorm:"uniqueIndex;not null" json:"userId"`
	CurrentDifficulty int  `gorm:"default:3" json:"currentDifficulty"`
	Streak            int  `gorm:"default:0" json:"streak"` // consecutive below-threshold submissions
}

func (UserProgress) TableName() string {
	return "user_progress"
}
