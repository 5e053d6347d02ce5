package models

import (
	"time"

	"gorm.io/datatypes"
)

// Evaluation describes an assessment session whose outcome is stored in Marks.
type Evaluation struct {
	ID         uint           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	TotalMarks float64        `gorm:"not null;default:0" json:"total_marks"`
	Rounds     int            `gorm:"not null;default:0" json:"rounds"`
	EvalDate   datatypes.Date `json:"eval_date"`
	Comments   string         `gorm:"type:text" json:"comments"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
