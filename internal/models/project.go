package models

import "time"

// Project is the unit of work a team delivers and gets graded on.
type Project struct {
	ID         uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Domain     string    `gorm:"size:128;index" json:"domain"`
	Technology string    `gorm:"size:128" json:"technology"`
	Duration   string    `gorm:"size:64" json:"duration"`
	TeamID     uint      `gorm:"not null;index" json:"team_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Team       *Team     `gorm:"foreignKey:TeamID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}
