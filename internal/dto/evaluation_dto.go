package dto

// EvaluationDateLayout is the accepted eval_date format.
const EvaluationDateLayout = "2006-01-02"

// EvaluationCreateRequest captures the payload for recording an evaluation.
type EvaluationCreateRequest struct {
	ID         uint    `json:"id" validate:"required"`
	TotalMarks float64 `json:"total_marks" validate:"gte=0"`
	Rounds     int     `json:"rounds" validate:"gte=0"`
	EvalDate   string  `json:"eval_date" validate:"omitempty,datetime=2006-01-02"`
	Comments   string  `json:"comments" validate:"max=4000"`
}

// EvaluationUpdateRequest captures a partial evaluation update. Dates and
// comments are applied by the service after parsing and sanitising.
type EvaluationUpdateRequest struct {
	TotalMarks *float64 `json:"total_marks" validate:"omitempty,gte=0"`
	Rounds     *int     `json:"rounds" validate:"omitempty,gte=0"`
	EvalDate   *string  `json:"eval_date" validate:"omitempty,datetime=2006-01-02"`
	Comments   *string  `json:"comments" validate:"omitempty,max=4000"`
}
