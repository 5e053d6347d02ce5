package dto

// StudentCreateRequest captures the payload for registering a student.
type StudentCreateRequest struct {
	ID         uint   `json:"id" validate:"required"`
	Department string `json:"department" validate:"required,max=64"`
	Year       int    `json:"year" validate:"gte=0"`
	FirstName  string `json:"first_name" validate:"required,max=64"`
	LastName   string `json:"last_name" validate:"max=64"`
	Age        int    `json:"age" validate:"gte=0"`
	Phone      string `json:"phone" validate:"max=32"`
}

// StudentUpdateRequest captures a partial student update.
type StudentUpdateRequest struct {
	Department *string `json:"department" validate:"omitempty,min=1,max=64"`
	Year       *int    `json:"year" validate:"omitempty,gte=0"`
	FirstName  *string `json:"first_name" validate:"omitempty,min=1,max=64"`
	LastName   *string `json:"last_name" validate:"omitempty,max=64"`
	Age        *int    `json:"age" validate:"omitempty,gte=0"`
	Phone      *string `json:"phone" validate:"omitempty,max=32"`
}

// Updates returns the column changes carried by the request.
func (r StudentUpdateRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.Department != nil {
		updates["department"] = *r.Department
	}
	if r.Year != nil {
		updates["year"] = *r.Year
	}
	if r.FirstName != nil {
		updates["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		updates["last_name"] = *r.LastName
	}
	if r.Age != nil {
		updates["age"] = *r.Age
	}
	if r.Phone != nil {
		updates["phone"] = *r.Phone
	}
	return updates
}
