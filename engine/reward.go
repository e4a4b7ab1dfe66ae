package engine

import (
	"github.com/umardraz9/mlmpk-sub007/config"
	"github.com/umardraz9/mlmpk-sub007/models"
	"github.com/umardraz9/mlmpk-sub007/utils"
)

const (
	// DefaultTasksPerDay divides a plan's daily earning when the plan does
	// not specify its own count.
	DefaultTasksPerDay = 5
	// FallbackTaskReward is paid when neither a global override nor a plan
	// share applies.
	FallbackTaskReward = 30
	// CommissionRate is the single-hop sponsor share of a settled reward.
	CommissionRate = 0.10
)

// ResolveReward computes the reward for a completed task via a strict
// priority chain: global override, plan-derived share, flat fallback. The
// first applicable rule wins. The result depends only on the configuration
// and the plan, never on the clock or request order.
func ResolveReward(cfg *config.Config, plan *models.MembershipPlan) float64 {
	if cfg != nil && cfg.TaskRewardOverride > 0 {
		return cfg.TaskRewardOverride
	}
	if plan != nil && plan.DailyTaskEarning > 0 {
		perDay := plan.TasksPerDay
		if perDay <= 0 {
			perDay = DefaultTasksPerDay
		}
		return utils.RoundFloat(plan.DailyTaskEarning/float64(perDay), 0)
	}
	return FallbackTaskReward
}

// CommissionFor returns the sponsor's single-hop share of a settled reward,
// rounded to currency precision.
func CommissionFor(reward float64) float64 {
	return utils.RoundFloat(reward*CommissionRate, 2)
}
