package dto

// TeamCreateRequest captures the payload for creating a team.
type TeamCreateRequest struct {
	ID        uint   `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required,max=128"`
	Members   int    `json:"members" validate:"gte=0"`
	StudentID uint   `json:"student_id" validate:"required"`
}

// TeamUpdateRequest captures a partial team update.
type TeamUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=128"`
	Members   *int    `json:"members" validate:"omitempty,gte=0"`
	StudentID *uint   `json:"student_id" validate:"omitempty,min=1"`
}

// Updates returns the column changes carried by the request.
func (r TeamUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Name != nil {
		updates["name"] = *r.Name
	}
	if r.Members != nil {
		updates["members"] = *r.Members
	}
	if r.StudentID != nil {
		updates["student_id"] = *r.StudentID
	}
	return updates
}
