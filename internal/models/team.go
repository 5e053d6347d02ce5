package models

import "time"

// Team groups students working on projects. StudentID references the team lead.
type Team struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Members   int       `gorm:"not null;default:0" json:"members"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Lead      *Student  `gorm:"foreignKey:StudentID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}
