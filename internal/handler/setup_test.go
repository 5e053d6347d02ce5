package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/projeval-api/internal/database"
	"github.com/noah-isme/projeval-api/internal/handler"
	"github.com/noah-isme/projeval-api/internal/repository"
	"github.com/noah-isme/projeval-api/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestApp(t *testing.T) testApp {
	t.Helper()

	db, err := database.ConnectSQLite("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := zerolog.Nop()
	validate := validator.New(validator.WithRequiredStructEnabled())
	activity := service.NewActivityService(repository.NewActivityLogRepository(db), logger)
	hooks := service.ChangeHooks{Activity: activity}

	marks := service.NewMarksService(repository.NewMarksRepository(db), validate, hooks, logger)

	app := fiber.New()
	api := app.Group("/api")
	handler.NewStudentHandler(service.NewStudentService(repository.NewStudentRepository(db), validate, hooks, logger), logger).Register(api.Group("/students"))
	handler.NewTeamHandler(service.NewTeamService(repository.NewTeamRepository(db), validate, hooks, logger), logger).Register(api.Group("/teams"))
	handler.NewProjectHandler(service.NewProjectService(repository.NewProjectRepository(db), validate, hooks, logger), logger).Register(api.Group("/projects"))
	handler.NewEvaluationHandler(service.NewEvaluationService(repository.NewEvaluationRepository(db), validate, hooks, logger), logger).Register(api.Group("/evaluations"))
	handler.NewGradeHandler(service.NewGradeService(repository.NewGradeRepository(db), validate, hooks, logger), logger).Register(api.Group("/grades"))
	handler.NewMarksHandler(marks, logger).Register(api.Group("/marks"))
	handler.NewReportHandler(service.NewReportService(repository.NewReportRepository(db), logger), logger).Register(api.Group("/reports"))
	handler.NewOperationHandler(service.NewOperationService(marks, logger), logger).Register(api.Group("/operations"))
	handler.NewActivityHandler(activity, logger).Register(api.Group("/activity"))
	handler.NewAccountHandler(service.NewAccountService(repository.NewAccountRepository(db), validate, hooks, logger), logger).Register(api.Group("/accounts"))

	return testApp{app: app, db: db}
}

func (a testApp) do(t *testing.T, method, path string, payload interface{}) (*http.Response, envelope) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.app.Test(req)
	require.NoError(t, err)

	var decoded envelope
	decodeResponse(t, resp, &decoded)
	return resp, decoded
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// seedGraph creates one student, team, project, evaluation and marks row
// through the HTTP surface.
func seedGraph(t *testing.T, a testApp) {
	t.Helper()

	steps := []struct {
		path    string
		payload map[string]interface{}
	}{
		{"/api/students", map[string]interface{}{"id": 1, "department": "CS", "year": 3, "first_name": "Asha"}},
		{"/api/teams", map[string]interface{}{"id": 10, "name": "Falcons", "members": 4, "student_id": 1}},
		{"/api/projects", map[string]interface{}{"id": 100, "title": "Vision", "domain": "AI", "team_id": 10}},
		{"/api/evaluations", map[string]interface{}{"id": 1, "total_marks": 50, "rounds": 2, "eval_date": "2024-03-01"}},
		{"/api/marks", map[string]interface{}{"evaluation_id": 1, "marks_obtained": 45, "max_marks": 50}},
		{"/api/grades", map[string]interface{}{"project_id": 100, "grade": "A", "final_score": 88}},
	}
	for _, step := range steps {
		resp, body := a.do(t, http.MethodPost, step.path, step.payload)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, "%s: %s", step.path, body.Message)
	}
}
