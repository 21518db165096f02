package session

import (
	"math"
	"time"
)

// Rewards is what a completed session earns.
type Rewards struct {
	FocusSparks      int  `json:"focus_sparks"`
	ExperiencePoints int  `json:"experience_points"`
	HasBonus         bool `json:"has_bonus"`
}

// MinBonusThreshold is the shortest session that can earn the deep focus
// bonus. A policy with a lower threshold is raised to it.
const MinBonusThreshold = 60 * time.Minute

// RewardPolicy holds the constants of the reward formula. One focus spark is
// earned per full minute; sessions of at least BonusThreshold multiply their
// sparks by BonusMultiplier (rounded down, but always at least one spark more
// than the base). Each spark is worth XPPerSpark experience points.
type RewardPolicy struct {
	BonusThreshold  time.Duration
	BonusMultiplier float64
	XPPerSpark      int
}

// DefaultRewardPolicy gives a 50% spark bonus from one hour and ten
// experience points per spark.
func DefaultRewardPolicy() RewardPolicy {
	return RewardPolicy{
		BonusThreshold:  60 * time.Minute,
		BonusMultiplier: 1.5,
		XPPerSpark:      10,
	}
}

// Calculate returns the rewards for a session in the given state with the
// given planned duration. Only completed sessions earn anything.
func (p RewardPolicy) Calculate(state State, duration time.Duration) Rewards {
	if state != Completed || duration <= 0 {
		return Rewards{}
	}

	var r Rewards

	r.FocusSparks = int(duration / time.Minute)

	if duration >= max(p.BonusThreshold, MinBonusThreshold) {
		base := r.FocusSparks

		r.HasBonus = true
		r.FocusSparks = max(int(math.Floor(float64(base)*p.BonusMultiplier)), base+1)
	}

	r.ExperiencePoints = r.FocusSparks * p.XPPerSpark

	return r
}

// CalculateRewards returns what the session has earned so far: nothing until
// it completes.
func (s *Session) CalculateRewards() Rewards {
	return s.policy.Calculate(s.state, s.duration)
}
