package models

import "time"

// Grade is the manual final judgement attached to a project.
type Grade struct {
	ProjectID  uint      `gorm:"primaryKey;autoIncrement:false" json:"project_id"`
	Letter     string    `gorm:"column:grade;size:16;not null" json:"grade"`
	FinalScore float64   `gorm:"not null" json:"final_score"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Project    *Project  `gorm:"foreignKey:ProjectID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}
