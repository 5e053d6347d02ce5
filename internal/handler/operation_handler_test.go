package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/projeval-api/internal/dto"
)

func TestOperationHandler_Execute(t *testing.T) {
	a := newTestApp(t)
	seedGraph(t, a)

	resp, body := a.do(t, http.MethodPost, "/api/operations/recompute_percentage", map[string]interface{}{"evaluation_id": 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body.Message)

	var result dto.OperationResult
	require.NoError(t, json.Unmarshal(body.Data, &result))
	require.Equal(t, "recompute_percentage", result.Name)
	require.Equal(t, int64(1), result.Processed)

	resp, body = a.do(t, http.MethodPost, "/api/operations/recompute_all_percentages", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body.Message)

	resp, _ = a.do(t, http.MethodPost, "/api/operations/recompute_percentage", map[string]interface{}{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/api/operations/drop_everything", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
