// Package constant holds process-wide static configuration: the plan catalog
// and the prompt text sent to the analysis model.
package constant

import "hand-analysis-be/internal/entity"

// PlanConfig is the entitlement parameters for one plan tier.
type PlanConfig struct {
	LimitPerMonth    entity.Limit
	FollowupsPerHand entity.Limit
	AdsEnabled       bool
}

// planCatalog is loaded once and read-only for the process lifetime.
var planCatalog = map[entity.Plan]PlanConfig{
	entity.PlanFree: {
		LimitPerMonth:    entity.FiniteLimit(3),
		FollowupsPerHand: entity.FiniteLimit(1),
		AdsEnabled:       true,
	},
	entity.PlanBasic: {
		LimitPerMonth:    entity.FiniteLimit(30),
		FollowupsPerHand: entity.FiniteLimit(3),
	},
	entity.PlanPro: {
		LimitPerMonth:    entity.FiniteLimit(100),
		FollowupsPerHand: entity.FiniteLimit(3),
	},
	entity.PlanPremium: {
		LimitPerMonth:    entity.UnlimitedLimit(),
		FollowupsPerHand: entity.UnlimitedLimit(),
	},
}

// planRank orders the tiers for upgrade/downgrade decisions.
var planRank = map[entity.Plan]int{
	entity.PlanFree:    0,
	entity.PlanBasic:   1,
	entity.PlanPro:     2,
	entity.PlanPremium: 3,
}

// PlanConfigFor returns the catalog entry for a plan. An unrecognized plan
// identifier falls back to the free entry rather than failing the request.
func PlanConfigFor(plan entity.Plan) PlanConfig {
	if cfg, ok := planCatalog[plan]; ok {
		return cfg
	}
	return planCatalog[entity.PlanFree]
}

// PlanRank returns the ordering rank of a plan; unknown plans rank as free.
func PlanRank(plan entity.Plan) int {
	if r, ok := planRank[plan]; ok {
		return r
	}
	return 0
}

// KnownPlan reports whether the identifier is one of the catalog tiers.
func KnownPlan(plan entity.Plan) bool {
	_, ok := planCatalog[plan]
	return ok
}
