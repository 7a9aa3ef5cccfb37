package models

import (
	"time"

	"gorm.io/gorm"
)

type Entry struct {
	gorm.Model

	ProjectID       uint   `gorm:"not null;index"`
	UserID          string `gorm:"not null;index"`
	Description     string
	DurationMinutes int    `gorm:"not null"`
	Status          string `gorm:"not null;default:pending"` // "billable", "paid", "pending", "non_billable"
	WorkedAt        time.Time

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
