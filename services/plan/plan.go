// Package plan builds and persists a patient's weekly meal assignment.
package plan

import (
	"dietplan-go-worker/enums"
	"hash/fnv"
	"math/rand"
	"strings"
)

var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// SlotSplit is the share of daily target calories given to a meal slot.
type SlotSplit struct {
	Slot    string `json:"slot"`
	Percent int    `json:"percent"`
}

var slotSplits = map[string][]SlotSplit{
	enums.ThreeMeal: {
		{enums.Breakfast, 30},
		{enums.Lunch, 40},
		{enums.Dinner, 30},
	},
	enums.FiveMeal: {
		{enums.Breakfast, 25},
		{enums.MorningSnack, 10},
		{enums.Lunch, 30},
		{enums.EveningSnack, 10},
		{enums.Dinner, 25},
	},
}

// SlotSplits returns a copy of the slots of a plan type in serving order;
// unknown types get 3-Meal.
func SlotSplits(planType string) []SlotSplit {
	splits := slotSplits[enums.ThreeMeal]
	for name, candidate := range slotSplits {
		if strings.EqualFold(name, strings.TrimSpace(planType)) {
			splits = candidate
			break
		}
	}
	out := make([]SlotSplit, len(splits))
	copy(out, splits)
	return out
}

func (s SlotSplit) Target(targetCalories int) float64 {
	return float64(targetCalories) * float64(s.Percent) / 100
}

func SlotTargets(targetCalories int, planType string) map[string]int {
	targets := make(map[string]int)
	for _, split := range SlotSplits(planType) {
		targets[split.Slot] = int(split.Target(targetCalories))
	}
	return targets
}

// ExpectedMeals is the row count of a complete week.
func ExpectedMeals(planType string) int {
	return len(Weekdays) * len(SlotSplits(planType))
}

type PlanStatus int

const (
	Absent PlanStatus = iota
	Incomplete
	Complete
)

func (s PlanStatus) String() string {
	switch s {
	case Absent:
		return "absent"
	case Incomplete:
		return "incomplete"
	case Complete:
		return "complete"
	}
	return "unknown"
}

// StatusOf classifies a stored row count against the plan type.
func StatusOf(rows int, planType string) PlanStatus {
	switch {
	case rows == 0:
		return Absent
	case rows == ExpectedMeals(planType):
		return Complete
	default:
		return Incomplete
	}
}

// RandFactory builds the generator used to shuffle one slot's pool.
type RandFactory func(seed int64) *rand.Rand

func DefaultRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Seed is stable for a patient and slot, and differs across either.
func Seed(identity, slot string) int64 {
	h := fnv.New64a()
	h.Write([]byte(identity))
	h.Write([]byte{'|'})
	h.Write([]byte(slot))
	return int64(h.Sum64())
}
