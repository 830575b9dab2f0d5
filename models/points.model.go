package models

import (
	"gorm.io/gorm"
)

// PointsReason labels why points were awarded
type PointsReason string

const (
	PointsReasonQuizPass    PointsReason = "QUIZ_PASS"
	PointsReasonQuizPerfect PointsReason = "QUIZ_PERFECT"
	PointsReasonAdminAward  PointsReason = "ADMIN_AWARD"
	PointsReasonManual      PointsReason = "MANUAL"
)

// UserPoints holds a user's running point total and derived level, one row per user
type UserPoints struct {
	gorm.Model
	UserID      uint `gorm:"uniqueIndex;not null" json:"userId"`
	TotalPoints int  `gorm:"default:0" json:"totalPoints"`
	Level       int  `gorm:"default:1" json:"level"`
}

// PointsTransaction is an append-only audit row for every award
type PointsTransaction struct {
	gorm.Model
	UserID      uint         `gorm:"not null;index" json:"userId"`
	Points      int          `gorm:"not null" json:"points"`
	TotalBefore int          `gorm:"not null" json:"totalBefore"`
	TotalAfter  int          `gorm:"not null" json:"totalAfter"`
	LevelAfter  int          `gorm:"not null" json:"levelAfter"`
	Reason      PointsReason `gorm:"type:varchar(50)" json:"reason"`
	Description string       `gorm:"type:text" json:"description"`

	// Admin details (for manual awards to other users)
	AdminID uint `gorm:"default:0" json:"adminId"`

	IsDeleted bool `gorm:"default:false"`
}
