package users

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/umardraz9/mlmpk-sub007/config"
	"github.com/umardraz9/mlmpk-sub007/database"
	"github.com/umardraz9/mlmpk-sub007/engine"
	"github.com/umardraz9/mlmpk-sub007/middleware"
	"github.com/umardraz9/mlmpk-sub007/models"
	"github.com/umardraz9/mlmpk-sub007/utils"

	"github.com/gorilla/mux"
)

// TaskController serves the task catalog and the completion settlement
// operation.
type TaskController struct {
	cfg *config.Config
}

func NewTaskController(cfg *config.Config) *TaskController {
	return &TaskController{cfg: cfg}
}

// GET /v3/users/tasks
func (c *TaskController) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	var tasks []models.Task
	if err := db.Where("status = ?", "Active").Order("sequence_order ASC, id ASC").Find(&tasks).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}

	var records []models.UserTask
	if err := db.Where("user_id = ?", uid).Find(&records).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "DB error"})
		return
	}
	byTask := make(map[uint]models.UserTask, len(records))
	completed := make(map[uint]bool, len(records))
	for _, ut := range records {
		byTask[ut.TaskID] = ut
		if ut.Status == models.UserTaskCompleted {
			completed[ut.TaskID] = true
		}
	}

	catalog := engine.NewCatalog(tasks)
	var resp []map[string]interface{}
	for _, t := range catalog.Tasks() {
		status := "NotStarted"
		progress := 0
		if ut, ok := byTask[t.ID]; ok {
			status = ut.Status
			progress = ut.Progress
		}
		percent := 0
		if t.Target > 0 {
			percent = progress * 100 / t.Target
			if percent > 100 {
				percent = 100
			}
		}
		resp = append(resp, map[string]interface{}{
			"id":             t.ID,
			"name":           t.Name,
			"description":    t.Description,
			"sequence_order": t.SequenceOrder,
			"target":         t.Target,
			"reward":         t.Reward,
			"status":         status,
			"progress":       progress,
			"percent":        percent,
			"lock":           !catalog.IsUnlocked(t.ID, completed),
		})
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: resp})
}

// POST /v3/users/tasks/{id}/start
func (c *TaskController) Start(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	taskID, ok := taskIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}

	rec, err := engine.StartTask(database.DB, uid, taskID)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrTaskNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		case errors.Is(err, engine.ErrTaskAlreadyStarted):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Task already started"})
		case errors.Is(err, engine.ErrTaskLocked):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Task is locked, complete the previous task first"})
		default:
			log.Printf("[task] start failed user=%d task=%d: %v", uid, taskID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Task started", Data: rec})
}

type completeTaskRequest struct {
	Progress     *int                     `json:"progress"`
	Notes        string                   `json:"notes"`
	ArticleURL   string                   `json:"articleUrl"`
	TrackingData *engine.EngagementSample `json:"trackingData"`
}

// POST /v3/users/tasks/{id}/complete — the settlement operation. Telemetry is
// verified whenever the client submits it.
func (c *TaskController) Complete(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	taskID, ok := taskIDFromPath(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid task id"})
		return
	}

	var req completeTaskRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	tracking := req.TrackingData
	if tracking == nil && req.ArticleURL != "" {
		// An article completion without telemetry cannot be verified;
		// treat it as an empty sample so the thresholds reject it.
		tracking = &engine.EngagementSample{}
	}

	result, err := engine.SettleCompletion(database.DB, c.cfg, uid, taskID, engine.CompletionInput{
		Progress: req.Progress,
		Notes:    req.Notes,
		Tracking: tracking,
	})
	if err != nil {
		var verr *engine.ValidationError
		switch {
		case errors.Is(err, engine.ErrTaskNotFound):
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Task not found"})
		case errors.Is(err, engine.ErrTaskNotStarted):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Task not started"})
		case errors.Is(err, engine.ErrTaskAlreadyCompleted):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Task already completed"})
		case errors.As(err, &verr):
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{
				Success: false,
				Message: "Engagement requirements not met",
				Data:    map[string]interface{}{"failures": verr.Failures},
			})
		default:
			log.Printf("[task] settlement failed user=%d task=%d: %v", uid, taskID, err)
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		}
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Task completion processed",
		Data: map[string]interface{}{
			"record":       result.Record,
			"isCompleted":  result.IsCompleted,
			"rewardEarned": result.RewardEarned,
		},
	})
}

func taskIDFromPath(r *http.Request) (uint, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
