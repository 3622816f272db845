package service_test

import (
	"testing"

	"eduz_backend/internal/model"
	"eduz_backend/internal/repository"
	"eduz_backend/internal/service"
	"eduz_backend/internal/util"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubjectService(t *testing.T) (*service.SubjectService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return service.NewSubjectService(repository.NewSubjectRepository(db)), db
}

func TestCreateSubject(t *testing.T) {
	svc, db := newSubjectService(t)

	subject, err := svc.CreateSubject(service.CreateSubjectRequest{
		Name: "Biology", Level: "Ordinary", GceID: "0510",
	})
	require.NoError(t, err)
	require.NotZero(t, subject.ID)

	var stored model.Subject
	require.NoError(t, db.Where("gce_id = ?", "0510").First(&stored).Error)
	require.Equal(t, "Biology", stored.Name)
	require.Equal(t, "Ordinary", stored.Level)
}

func TestCreateSubjectDuplicatePaperCode(t *testing.T) {
	svc, _ := newSubjectService(t)

	_, err := svc.CreateSubject(service.CreateSubjectRequest{
		Name: "Biology", Level: "Ordinary", GceID: "0510",
	})
	require.NoError(t, err)

	_, err = svc.CreateSubject(service.CreateSubjectRequest{
		Name: "Human Biology", Level: "Ordinary", GceID: "0510",
	})
	require.ErrorIs(t, err, util.ErrSubjectExists)
}

func TestCreateBranchUnknownSubject(t *testing.T) {
	svc, _ := newSubjectService(t)

	_, err := svc.CreateBranch(service.CreateBranchRequest{Name: "Genetics", SubjectID: 999})
	require.ErrorIs(t, err, util.ErrSubjectNotFound)
}

func TestCreateTopicBranchMustBelongToSubject(t *testing.T) {
	svc, db := newSubjectService(t)

	chem := &model.Subject{Name: "Chemistry", Level: "Ordinary", GceID: "0515"}
	require.NoError(t, db.Create(chem).Error)
	phys := &model.Subject{Name: "Physics", Level: "Ordinary", GceID: "0580"}
	require.NoError(t, db.Create(phys).Error)

	branch := &model.Branch{Name: "Mechanics", SubjectID: phys.ID}
	require.NoError(t, db.Create(branch).Error)

	_, err := svc.CreateTopic(service.CreateTopicRequest{
		Name: "Stoichiometry", SubjectID: chem.ID, BranchID: &branch.ID,
	})
	require.ErrorIs(t, err, util.ErrBranchNotFound)

	topic, err := svc.CreateTopic(service.CreateTopicRequest{
		Name: "Motion", SubjectID: phys.ID, BranchID: &branch.ID,
	})
	require.NoError(t, err)
	require.Equal(t, phys.ID, topic.SubjectID)
}
