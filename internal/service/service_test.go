package service_test

import (
	"testing"

	"eduz_backend/internal/model"
	"eduz_backend/pkg/database"
	"eduz_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; pin the pool to
	// one so every query sees the same data.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func seedScope(t *testing.T, db *gorm.DB) (*model.Subject, *model.Branch, *model.Topic) {
	t.Helper()

	subject := &model.Subject{Name: "Chemistry", Level: "Ordinary", GceID: "0515"}
	require.NoError(t, db.Create(subject).Error)

	branch := &model.Branch{Name: "General Chemistry", SubjectID: subject.ID}
	require.NoError(t, db.Create(branch).Error)

	topic := &model.Topic{Name: "Stoichiometry", SubjectID: subject.ID, BranchID: &branch.ID}
	require.NoError(t, db.Create(topic).Error)

	return subject, branch, topic
}

func seedQuestion(t *testing.T, db *gorm.DB, topic *model.Topic, text, correct string, difficulty int, approved bool) *model.Question {
	t.Helper()

	q := &model.Question{
		Text:          text,
		Options:       []byte(`["A","B","C","D"]`),
		CorrectOption: correct,
		Difficulty:    difficulty,
		Approved:      approved,
		TopicID:       topic.ID,
		BranchID:      topic.BranchID,
		CreatedBy:     1,
	}
	require.NoError(t, db.Create(q).Error)
	return q
}

func seedUser(t *testing.T, db *gorm.DB, name, email string, role model.UserRole) *model.User {
	t.Helper()

	u := &model.User{Name: name, Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func uintPtr(v uint) *uint {
	return &v
}
