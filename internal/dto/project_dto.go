package dto

// ProjectCreateRequest captures the payload for creating a project.
type ProjectCreateRequest struct {
	ID         uint   `json:"id" validate:"required"`
	Title      string `json:"title" validate:"required,max=255"`
	Domain     string `json:"domain" validate:"max=128"`
	Technology string `json:"technology" validate:"max=128"`
	Duration   string `json:"duration" validate:"max=64"`
	TeamID     uint   `json:"team_id" validate:"required"`
}

// ProjectUpdateRequest captures a partial project update.
type ProjectUpdateRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=255"`
	Domain     *string `json:"domain" validate:"omitempty,max=128"`
	Technology *string `json:"technology" validate:"omitempty,max=128"`
	Duration   *string `json:"duration" validate:"omitempty,max=64"`
	TeamID     *uint   `json:"team_id" validate:"omitempty,min=1"`
}

// Updates returns the column changes carried by the request.
func (r ProjectUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Domain != nil {
		updates["domain"] = *r.Domain
	}
	if r.Technology != nil {
		updates["technology"] = *r.Technology
	}
	if r.Duration != nil {
		updates["duration"] = *r.Duration
	}
	if r.TeamID != nil {
		updates["team_id"] = *r.TeamID
	}
	return updates
}
