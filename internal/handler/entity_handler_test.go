package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/projeval-api/internal/models"
)

func TestStudentHandler_Lifecycle(t *testing.T) {
	a := newTestApp(t)

	resp, body := a.do(t, http.MethodPost, "/api/students", map[string]interface{}{
		"id": 7, "department": "  Physics ", "year": 2, "first_name": "Noor",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, body.Message)

	var created models.Student
	require.NoError(t, json.Unmarshal(body.Data, &created))
	require.Equal(t, uint(7), created.ID)
	require.Equal(t, "Physics", created.Department)

	resp, body = a.do(t, http.MethodPost, "/api/students", map[string]interface{}{
		"id": 7, "department": "Physics", "first_name": "Noor",
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
	require.False(t, body.Success)

	resp, body = a.do(t, http.MethodPatch, "/api/students/7", map[string]interface{}{"year": 3})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body.Message)
	var updated models.Student
	require.NoError(t, json.Unmarshal(body.Data, &updated))
	require.Equal(t, 3, updated.Year)
	require.Equal(t, "Noor", updated.FirstName)

	resp, _ = a.do(t, http.MethodPatch, "/api/students/7", map[string]interface{}{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(t, http.MethodDelete, "/api/students/7", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = a.do(t, http.MethodGet, "/api/students/7", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.Contains(t, body.Message, "student 7")
}

func TestStudentHandler_RejectsBadInput(t *testing.T) {
	a := newTestApp(t)

	resp, _ := a.do(t, http.MethodGet, "/api/students/abc", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(t, http.MethodGet, "/api/students/0", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/api/students", map[string]interface{}{"id": 1})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEntityHandlers_ReferentialConflicts(t *testing.T) {
	a := newTestApp(t)
	seedGraph(t, a)

	resp, _ := a.do(t, http.MethodPost, "/api/teams", map[string]interface{}{
		"id": 11, "name": "Ghosts", "student_id": 99,
	})
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = a.do(t, http.MethodDelete, "/api/students/1", nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = a.do(t, http.MethodDelete, "/api/projects/100", nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = a.do(t, http.MethodDelete, "/api/evaluations/1", nil)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = a.do(t, http.MethodDelete, "/api/grades/100", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, _ = a.do(t, http.MethodDelete, "/api/projects/100", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGradeHandler_KeyedByProject(t *testing.T) {
	a := newTestApp(t)
	seedGraph(t, a)

	resp, body := a.do(t, http.MethodPatch, "/api/grades/100", map[string]interface{}{"grade": "A+", "final_score": 93.5})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body.Message)

	var grade models.Grade
	require.NoError(t, json.Unmarshal(body.Data, &grade))
	require.Equal(t, uint(100), grade.ProjectID)
	require.Equal(t, "A+", grade.Letter)
	require.InDelta(t, 93.5, grade.FinalScore, 1e-9)

	resp, _ = a.do(t, http.MethodGet, "/api/grades/101", nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStoreUnavailableMapsToServiceUnavailable(t *testing.T) {
	a := newTestApp(t)

	sqlDB, err := a.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, body := a.do(t, http.MethodGet, "/api/students", nil)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))
	require.Equal(t, "store unavailable", body.Message)
}
