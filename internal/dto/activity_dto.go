package dto

import "github.com/noah-isme/projeval-api/internal/models"

// ActivityListRequest captures audit log filters.
type ActivityListRequest struct {
	Page       int
	PageSize   int
	Action     string
	EntityType string
}

// ActivityListResponse wraps a page of audit entries.
type ActivityListResponse struct {
	Items      []models.ActivityLog `json:"items"`
	Pagination PaginationMeta       `json:"pagination"`
}
