package models

import "time"

type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	Number            string    `gorm:"size:20;uniqueIndex;not null" json:"number"`
	Password          string    `gorm:"size:255;not null" json:"-"`
	ReffCode          string    `gorm:"size:20;uniqueIndex;not null" json:"reff_code"`
	SponsorID         *uint     `gorm:"column:sponsor_id;index" json:"sponsor_id"`
	MembershipPlanID  *uint     `gorm:"column:membership_plan_id" json:"membership_plan_id"`
	Balance           float64   `gorm:"type:decimal(15,2);default:0" json:"balance"`
	TotalPoints       float64   `gorm:"type:decimal(15,2);default:0" json:"total_points"`
	TasksCompleted    int64     `gorm:"default:0" json:"tasks_completed"`
	PendingCommission float64   `gorm:"type:decimal(15,2);default:0" json:"pending_commission"`
	Status            string    `gorm:"type:enum('Active','Inactive','Suspend');default:'Active'" json:"status"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}
