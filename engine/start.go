package engine

import (
	"errors"
	"strings"
	"time"

	"github.com/umardraz9/mlmpk-sub007/models"

	"gorm.io/gorm"
)

// StartTask creates the in-progress completion record for a (user, task)
// pair. The unlock precondition is enforced here: a task may start only when
// it is first in sequence or all its prerequisites are completed by the same
// user.
func StartTask(db *gorm.DB, userID, taskID uint) (*models.UserTask, error) {
	var task models.Task
	if err := db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.Status != "Active" {
		return nil, ErrTaskNotFound
	}

	var existing models.UserTask
	if err := db.Where("user_id = ? AND task_id = ?", userID, taskID).First(&existing).Error; err == nil {
		return nil, ErrTaskAlreadyStarted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var tasks []models.Task
	if err := db.Where("status = ?", "Active").Find(&tasks).Error; err != nil {
		return nil, err
	}
	completed := map[uint]bool{}
	var done []models.UserTask
	if err := db.Where("user_id = ? AND status = ?", userID, models.UserTaskCompleted).Find(&done).Error; err != nil {
		return nil, err
	}
	for _, ut := range done {
		completed[ut.TaskID] = true
	}
	if !NewCatalog(tasks).IsUnlocked(taskID, completed) {
		return nil, ErrTaskLocked
	}

	rec := models.UserTask{
		UserID:    userID,
		TaskID:    taskID,
		Status:    models.UserTaskInProgress,
		StartedAt: time.Now(),
	}
	if err := db.Create(&rec).Error; err != nil {
		// The unique (user_id, task_id) index wins races between duplicate
		// start requests.
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, ErrTaskAlreadyStarted
		}
		return nil, err
	}
	return &rec, nil
}
