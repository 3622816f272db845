package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"eduz_backend/internal/config"
	"eduz_backend/internal/model"
	"eduz_backend/internal/util"
	"eduz_backend/pkg/database"
	"eduz_backend/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()

	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{}
	cfg.JWT.Secret = "router-test-secret-0123456789abcdef"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Quiz.DefaultQuestionCount = 5
	cfg.Quiz.MaxQuestionCount = 10
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()

	a := &App{Config: cfg, DB: db, Redis: rdb}
	repos := a.initRepositories(db)
	services := a.initServices(repos, cfg, db, rdb)
	controllers := a.initControllers(services, db)

	router := gin.New()
	a.registerRoutes(router, controllers, cfg)
	return router, db, cfg
}

func tokenFor(t *testing.T, db *gorm.DB, cfg *config.Config, email string, role model.UserRole) string {
	t.Helper()

	user := &model.User{Name: "Test " + string(role), Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(user).Error)

	token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	require.NoError(t, err)
	return token
}

func doJSON(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestApprovedListingOpenToAllRoles(t *testing.T) {
	router, db, cfg := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/questions", "", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	student := tokenFor(t, db, cfg, "student@example.com", model.Student)
	teacher := tokenFor(t, db, cfg, "teacher@example.com", model.Teacher)
	admin := tokenFor(t, db, cfg, "admin@example.com", model.Admin)

	for _, token := range []string{student, teacher, admin} {
		w := doJSON(router, http.MethodGet, "/api/questions", token, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestUnapprovedListingTeacherAndAdminOnly(t *testing.T) {
	router, db, cfg := newTestRouter(t)

	student := tokenFor(t, db, cfg, "student@example.com", model.Student)
	teacher := tokenFor(t, db, cfg, "teacher@example.com", model.Teacher)
	admin := tokenFor(t, db, cfg, "admin@example.com", model.Admin)

	w := doJSON(router, http.MethodGet, "/api/questions/unapproved", student, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodGet, "/api/questions/unapproved", teacher, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/questions/unapproved", admin, "")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestQuestionAuthoringClosedToStudents(t *testing.T) {
	router, db, cfg := newTestRouter(t)

	student := tokenFor(t, db, cfg, "student@example.com", model.Student)
	w := doJSON(router, http.MethodPost, "/api/questions", student, `{}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubjectCreation(t *testing.T) {
	router, db, cfg := newTestRouter(t)

	student := tokenFor(t, db, cfg, "student@example.com", model.Student)
	teacher := tokenFor(t, db, cfg, "teacher@example.com", model.Teacher)

	body := `{"name":"Biology","level":"Ordinary","gceId":"0510"}`

	w := doJSON(router, http.MethodPost, "/api/subjects", student, body)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/api/subjects", teacher, body)
	require.Equal(t, http.StatusCreated, w.Code)

	// Same paper code again is rejected.
	w = doJSON(router, http.MethodPost, "/api/subjects", teacher, body)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestApprovalAndPromotionAdminOnly(t *testing.T) {
	router, db, cfg := newTestRouter(t)

	teacher := tokenFor(t, db, cfg, "teacher@example.com", model.Teacher)

	w := doJSON(router, http.MethodPost, "/api/admin/questions/1/approve", teacher, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(router, http.MethodPost, "/api/admin/users/1/promote", teacher, `{"newRole":"teacher"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
}
