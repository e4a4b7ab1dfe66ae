package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/umardraz9/mlmpk-sub007/config"
	"github.com/umardraz9/mlmpk-sub007/models"
	"github.com/umardraz9/mlmpk-sub007/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompletionInput is one completion attempt. Progress defaults to 100 when
// the caller omits it; Tracking, when present, is verified once the state
// guard has admitted the attempt.
type CompletionInput struct {
	Progress *int
	Notes    string
	Tracking *EngagementSample
}

// SettlementResult is returned on a successful attempt, completed or not.
type SettlementResult struct {
	Record       models.UserTask `json:"record"`
	IsCompleted  bool            `json:"is_completed"`
	RewardEarned float64         `json:"reward_earned"`
}

// SettleCompletion runs one completion attempt end to end: state guard,
// verification, reward resolution and the ledger deltas, all inside a single
// database transaction. Either the whole settlement commits
// or none of it does; the sponsor commission lives in the same transaction,
// so a commission failure rolls the settlement back.
func SettleCompletion(db *gorm.DB, cfg *config.Config, userID, taskID uint, in CompletionInput) (*SettlementResult, error) {
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

	// Progress defaults to 100 units when the caller omits it.
	submitted := 100
	if in.Progress != nil {
		submitted = *in.Progress
	}

	var result SettlementResult
	err := db.Transaction(func(tx *gorm.DB) error {
		// Row lock on the completion record serializes duplicate attempts
		// for the same (user, task) pair; the loser of the race observes
		// Completed and fails the guard.
		var rec models.UserTask
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND task_id = ?", userID, taskID).
			First(&rec).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotStarted
			}
			return err
		}
		// The record's state answers before the telemetry does; a rejected
		// sample aborts here, before anything has been written.
		if err := EvaluateAttempt(&task, &rec, in.Tracking); err != nil {
			return err
		}

		progress, reachesTarget := ClampProgress(submitted, task.Target)
		notes := auditNotes(in.Notes, in.Tracking)

		if !reachesTarget {
			updates := map[string]interface{}{"progress": progress}
			if notes != nil {
				updates["notes"] = notes
			}
			if err := tx.Model(&rec).Updates(updates).Error; err != nil {
				return err
			}
			rec.Progress = progress
			rec.Notes = notes
			result = SettlementResult{Record: rec, IsCompleted: false, RewardEarned: 0}
			return nil
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		var plan *models.MembershipPlan
		if user.MembershipPlanID != nil {
			var p models.MembershipPlan
			if err := tx.First(&p, *user.MembershipPlanID).Error; err == nil {
				plan = &p
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		reward := ResolveReward(cfg, plan)

		now := time.Now()
		updates := map[string]interface{}{
			"status":       models.UserTaskCompleted,
			"progress":     progress,
			"reward":       reward,
			"completed_at": now,
		}
		if notes != nil {
			updates["notes"] = notes
		}
		if err := tx.Model(&rec).Updates(updates).Error; err != nil {
			return err
		}

		// Ledger deltas are pure increments so they compose with concurrent
		// settlements for the same user or sponsor.
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"balance":         gorm.Expr("balance + ?", reward),
			"total_points":    gorm.Expr("total_points + ?", reward),
			"tasks_completed": gorm.Expr("tasks_completed + 1"),
		}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Task{}).Where("id = ?", task.ID).
			UpdateColumn("completions", gorm.Expr("completions + 1")).Error; err != nil {
			return err
		}

		msg := "Task reward: " + task.Name
		trx := models.Transaction{
			UserID:          userID,
			Amount:          reward,
			OrderID:         utils.GenerateOrderID(userID),
			TransactionFlow: "debit",
			TransactionType: models.TxTypeTaskReward,
			Message:         &msg,
			Status:          "Success",
		}
		if err := tx.Create(&trx).Error; err != nil {
			return err
		}

		if user.SponsorID != nil {
			if err := cascadeCommission(tx, *user.SponsorID, task.Name, reward); err != nil {
				return err
			}
		}

		rec.Status = models.UserTaskCompleted
		rec.Progress = progress
		rec.Reward = reward
		rec.CompletedAt = &now
		rec.Notes = notes
		result = SettlementResult{Record: rec, IsCompleted: true, RewardEarned: reward}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// cascadeCommission credits the immediate sponsor with their share of a
// settled reward. Single hop only: this path never walks further up the
// referral chain.
func cascadeCommission(tx *gorm.DB, sponsorID uint, taskName string, reward float64) error {
	commission := CommissionFor(reward)
	if err := tx.Model(&models.User{}).Where("id = ?", sponsorID).
		UpdateColumn("pending_commission", gorm.Expr("pending_commission + ?", commission)).Error; err != nil {
		return err
	}
	msg := fmt.Sprintf("Referral commission: %s", taskName)
	trx := models.Transaction{
		UserID:          sponsorID,
		Amount:          commission,
		OrderID:         utils.GenerateOrderID(sponsorID),
		TransactionFlow: "debit",
		TransactionType: models.TxTypeCommission,
		Message:         &msg,
		Status:          "Success",
	}
	return tx.Create(&trx).Error
}

// auditNotes embeds the serialized telemetry into the record notes so the
// evidence behind a settlement stays auditable.
func auditNotes(notes string, sample *EngagementSample) *string {
	if sample != nil {
		if raw, err := json.Marshal(sample); err == nil {
			if notes != "" {
				notes += " | "
			}
			notes += "telemetry=" + string(raw)
		}
	}
	if notes == "" {
		return nil
	}
	return &notes
}
