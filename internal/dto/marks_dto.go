package dto

// MarksCreateRequest captures the raw result of an evaluation. There is no
// percentage field: the value is always derived from the operands.
type MarksCreateRequest struct {
	EvaluationID  uint     `json:"evaluation_id" validate:"required"`
	MarksObtained *float64 `json:"marks_obtained" validate:"omitempty,gte=0"`
	MaxMarks      *float64 `json:"max_marks" validate:"omitempty,gte=0"`
}

// MarksUpdateRequest captures a partial marks update. A JSON null clears an
// operand; an omitted key leaves it unchanged.
type MarksUpdateRequest struct {
	MarksObtained NullableFloat `json:"marks_obtained"`
	MaxMarks      NullableFloat `json:"max_marks"`
}

// Empty reports whether the request carries no change.
func (r MarksUpdateRequest) Empty() bool {
	return !r.MarksObtained.Set && !r.MaxMarks.Set
}

// MarksImportResult summarises a spreadsheet import.
type MarksImportResult struct {
	Sheet string `json:"sheet"`
	Rows  int64  `json:"rows"`
}

// RecomputeAllResult reports how many marks rows were reconciled.
type RecomputeAllResult struct {
	Processed int64 `json:"processed"`
}
