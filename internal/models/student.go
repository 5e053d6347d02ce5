package models

import "time"

// Student represents a learner who can lead project teams.
type Student struct {
	ID         uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Department string    `gorm:"size:64;not null" json:"department"`
	Year       int       `json:"year"`
	FirstName  string    `gorm:"size:64;not null" json:"first_name"`
	LastName   string    `gorm:"size:64" json:"last_name"`
	Age        int       `json:"age"`
	Phone      string    `gorm:"size:32" json:"phone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
