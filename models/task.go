package models

import "time"

// Task is an engagement task definition. Definitions are owned by catalog
// administration and treated as immutable while a completion is in flight.
type Task struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(100);not null" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	// SequenceOrder defines the default linear unlock order. A task with no
	// explicit prerequisite unlocks once the task immediately before it in
	// sequence is completed.
	SequenceOrder      int   `gorm:"not null;default:0;index" json:"sequence_order"`
	PrerequisiteTaskID *uint `gorm:"column:prerequisite_task_id" json:"prerequisite_task_id,omitempty"`

	Target int     `gorm:"not null;default:100" json:"target"`
	Reward float64 `gorm:"type:decimal(15,2);not null;default:0" json:"reward"`

	// Verification thresholds. Zero values fall back to the engine defaults
	// (45s duration, 50% scroll, 10 movements) where the check applies.
	MinDurationSeconds   int  `gorm:"not null;default:0" json:"min_duration_seconds"`
	RequireScroll        bool `gorm:"not null;default:false" json:"require_scroll"`
	MinScrollPercentage  int  `gorm:"not null;default:0" json:"min_scroll_percentage"`
	RequireMouseMovement bool `gorm:"not null;default:false" json:"require_mouse_movement"`
	MinMouseMovements    int  `gorm:"not null;default:0" json:"min_mouse_movements"`
	MinAdClicks          int  `gorm:"not null;default:0" json:"min_ad_clicks"`

	// Completions is an aggregate counter incremented once per settlement.
	Completions int64 `gorm:"not null;default:0" json:"completions"`

	Status    string    `gorm:"type:enum('Active','Inactive');default:'Active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	UserTaskInProgress = "InProgress"
	UserTaskCompleted  = "Completed"
)

// UserTask is the completion record for one (user, task) pair. The unique
// index on the pair is the concurrency guard: at most one settlement ever
// succeeds for it.
type UserTask struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_task" json:"user_id"`
	TaskID      uint       `gorm:"not null;uniqueIndex:idx_user_task" json:"task_id"`
	Status      string     `gorm:"type:enum('InProgress','Completed');default:'InProgress'" json:"status"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	Reward      float64    `gorm:"type:decimal(15,2);not null;default:0" json:"reward"`
	Notes       *string    `gorm:"type:text" json:"notes,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
