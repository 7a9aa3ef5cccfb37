package models

import "gorm.io/gorm"

type Client struct {
	gorm.Model

	Name   string `gorm:"not null"`
	UserID string `gorm:"not null;index"`

	// Relationships
	Projects []Project `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
