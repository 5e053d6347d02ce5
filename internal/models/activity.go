package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog captures committed mutations against the evaluation records.
type ActivityLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	Action     string            `gorm:"size:64;not null;index" json:"action"`
	EntityType string            `gorm:"size:64;not null" json:"entity_type"`
	EntityKey  uint              `gorm:"not null" json:"entity_key"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `gorm:"index" json:"created_at"`
}
