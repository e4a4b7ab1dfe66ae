package users

import (
	"net/http"

	"github.com/umardraz9/mlmpk-sub007/database"
	"github.com/umardraz9/mlmpk-sub007/models"
	"github.com/umardraz9/mlmpk-sub007/utils"
)

// GET /v3/users/profile
func ProfileHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	var user models.User
	if err := db.First(&user, uid).Error; err != nil {
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "User not found"})
		return
	}

	var plan *models.MembershipPlan
	if user.MembershipPlanID != nil {
		var p models.MembershipPlan
		if err := db.First(&p, *user.MembershipPlanID).Error; err == nil {
			plan = &p
		}
	}

	resp := map[string]interface{}{
		"id":                 user.ID,
		"name":               user.Name,
		"number":             user.Number,
		"reff_code":          user.ReffCode,
		"balance":            user.Balance,
		"total_points":       user.TotalPoints,
		"tasks_completed":    user.TasksCompleted,
		"pending_commission": user.PendingCommission,
	}
	if plan != nil {
		resp["membership_plan"] = map[string]interface{}{
			"id":                 plan.ID,
			"name":               plan.Name,
			"daily_task_earning": plan.DailyTaskEarning,
			"tasks_per_day":      plan.TasksPerDay,
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: resp})
}
