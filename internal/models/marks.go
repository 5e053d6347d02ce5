package models

import (
	"math"
	"time"
)

// Marks stores the raw result of an evaluation. Percentage is derived and must
// only be written through ApplyPercentage.
type Marks struct {
	EvaluationID  uint        `gorm:"primaryKey;autoIncrement:false" json:"evaluation_id"`
	MarksObtained *float64    `json:"marks_obtained"`
	MaxMarks      *float64    `json:"max_marks"`
	Percentage    *float64    `json:"percentage"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	Evaluation    *Evaluation `gorm:"foreignKey:EvaluationID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

// TableName pins the table name regardless of the naming strategy.
func (Marks) TableName() string {
	return "marks"
}

// Percentage returns obtained/max*100, or nil when either operand is missing,
// max is zero or the result is not a finite number.
func Percentage(obtained, max *float64) *float64 {
	if obtained == nil || max == nil || *max == 0 {
		return nil
	}
	value := *obtained / *max * 100
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return &value
}

// ApplyPercentage recomputes the derived percentage from the current operands.
func (m *Marks) ApplyPercentage() {
	m.Percentage = Percentage(m.MarksObtained, m.MaxMarks)
}

// HasPercentage reports whether the derived value is defined.
func (m Marks) HasPercentage() bool {
	return m.Percentage != nil
}
