package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model

	Name       string `gorm:"not null"`
	UserID     string `gorm:"not null;index"`
	ClientID   *uint  `gorm:"index"`
	HourlyRate *float64

	// Relationships
	Client  *Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Entries []Entry `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
