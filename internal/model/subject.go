package model

// Subject is one GCE Cameroon paper, identified by its paper code. The same
// subject name appears once per level (Ordinary 0515 Chemistry vs Advanced
// 0715 Chemistry are distinct rows).
// swagger:model Subject
type Subject struct {
	BaseModel
	Name  string `gorm:"size:120;not null;index" json:"name"`
	Level string `gorm:"size:20;not null" json:"level"`
	GceID string `gorm:"size:10;uniqueIndex" json:"gceId"`
}

func (Subject) TableName() string {
	return "subjects"
}

// swagger:model Branch
type Branch struct {
	BaseModel
	Name      string   `gorm:"size:120;not null" json:"name"`
	SubjectID uint     `gorm:"index;not null" json:"subjectId"`
	Subject   *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

func (Branch) TableName() string {
	return "branches"
}

// Topic sits under a subject and usually under a branch; standalone topics
// keep BranchID null.
// swagger:model Topic
type Topic struct {
	BaseModel
	Name      string  `gorm:"size:160;not null" json:"name"`
	SubjectID uint    `gorm:"index;not null" json:"subjectId"`
	BranchID  *uint   `gorm:"index" json:"branchId"`
	Branch    *Branch `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
}

func (Topic) TableName() string {
	return "topics"
}
