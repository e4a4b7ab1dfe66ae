package models

import "time"

// MembershipPlan feeds the reward resolver: a plan's daily task earning
// divided by its tasks-per-day gives the per-task reward share when no
// global override is configured.
type MembershipPlan struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(100);not null" json:"name"`
	DailyTaskEarning float64   `gorm:"type:decimal(15,2);not null;default:0" json:"daily_task_earning"`
	TasksPerDay      int       `gorm:"not null;default:0" json:"tasks_per_day"`
	Status           string    `gorm:"type:enum('Active','Inactive');default:'Active'" json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
