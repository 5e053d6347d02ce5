package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/projeval-api/internal/dto"
)

func TestActivityHandler_ListsCommittedMutations(t *testing.T) {
	a := newTestApp(t)
	seedGraph(t, a)

	resp, body := a.do(t, http.MethodGet, "/api/activity?entity_type=marks", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, body.Message)

	var page dto.ActivityListResponse
	require.NoError(t, json.Unmarshal(body.Data, &page))
	require.Len(t, page.Items, 1)
	require.Equal(t, "marks.create", page.Items[0].Action)
	require.Equal(t, uint(1), page.Items[0].EntityKey)

	resp, body = a.do(t, http.MethodGet, "/api/activity?page_size=2", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page = dto.ActivityListResponse{}
	require.NoError(t, json.Unmarshal(body.Data, &page))
	require.Len(t, page.Items, 2)
	require.Equal(t, int64(6), page.Pagination.TotalItems)

	resp, _ = a.do(t, http.MethodGet, "/api/activity?page=x", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
