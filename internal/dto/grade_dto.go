package dto

// GradeCreateRequest captures the manual grade attached to a project.
type GradeCreateRequest struct {
	ProjectID  uint     `json:"project_id" validate:"required"`
	Grade      string   `json:"grade" validate:"required,max=16"`
	FinalScore *float64 `json:"final_score" validate:"required"`
}

// GradeUpdateRequest captures a partial grade update.
type GradeUpdateRequest struct {
	Grade      *string  `json:"grade" validate:"omitempty,min=1,max=16"`
	FinalScore *float64 `json:"final_score"`
}

// Updates returns the column changes carried by the request.
func (r GradeUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Grade != nil {
		updates["grade"] = *r.Grade
	}
	if r.FinalScore != nil {
		updates["final_score"] = *r.FinalScore
	}
	return updates
}
