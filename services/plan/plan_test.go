package plan

import (
	"dietplan-go-worker/enums"
	"dietplan-go-worker/models"
	"math/rand"
	"testing"
)

func TestSlotTargets(t *testing.T) {
	got := SlotTargets(2000, enums.FiveMeal)
	want := map[string]int{
		enums.Breakfast:    500,
		enums.MorningSnack: 200,
		enums.Lunch:        600,
		enums.EveningSnack: 200,
		enums.Dinner:       500,
	}
	for slot, target := range want {
		if got[slot] != target {
			t.Errorf("%s = %d, want %d", slot, got[slot], target)
		}
	}

	total := 0
	for _, split := range SlotSplits(enums.ThreeMeal) {
		total += split.Percent
	}
	if total != 100 {
		t.Fatalf("3-Meal percentages sum to %d", total)
	}
}

func TestSlotSplitsFallback(t *testing.T) {
	if got := SlotSplits("7-Meal"); len(got) != 3 || got[0].Slot != enums.Breakfast {
		t.Fatalf("unknown type = %+v", got)
	}
	if got := SlotSplits("5-meal"); len(got) != 5 {
		t.Fatalf("case-insensitive lookup = %+v", got)
	}
}

func TestSlotSplitsReturnsCopy(t *testing.T) {
	want := SlotSplits(enums.ThreeMeal)[0].Percent

	got := SlotSplits(enums.ThreeMeal)
	got[0].Percent = 99
	_ = append(got, SlotSplit{Slot: "Extra", Percent: 1})

	if fresh := SlotSplits(enums.ThreeMeal); len(fresh) != 3 || fresh[0].Percent != want {
		t.Fatalf("caller changed the shared table: %+v", fresh)
	}
	if targets := SlotTargets(2000, enums.ThreeMeal); len(targets) != 3 {
		t.Fatalf("targets = %+v", targets)
	}
}

func TestStatusOf(t *testing.T) {
	for _, tc := range []struct {
		rows     int
		planType string
		want     PlanStatus
	}{
		{0, enums.ThreeMeal, Absent},
		{5, enums.ThreeMeal, Incomplete},
		{21, enums.ThreeMeal, Complete},
		{21, enums.FiveMeal, Incomplete},
		{35, enums.FiveMeal, Complete},
		{40, enums.FiveMeal, Incomplete},
	} {
		if got := StatusOf(tc.rows, tc.planType); got != tc.want {
			t.Errorf("StatusOf(%d, %s) = %v, want %v", tc.rows, tc.planType, got, tc.want)
		}
	}
}

func TestSeed(t *testing.T) {
	if Seed("9876543210", enums.Lunch) != Seed("9876543210", enums.Lunch) {
		t.Fatal("seed is not stable")
	}
	if Seed("9876543210", enums.Lunch) == Seed("9876543210", enums.Dinner) {
		t.Fatal("slots share a seed")
	}
	if Seed("9876543210", enums.Lunch) == Seed("9876543211", enums.Lunch) {
		t.Fatal("patients share a seed")
	}
}

func TestPoolNext(t *testing.T) {
	foods := []models.FoodItem{{ID: 1}, {ID: 2}, {ID: 3}}
	p := newPool(foods, rand.New(rand.NewSource(7)))

	var order []int64
	for i := 0; i < 6; i++ {
		order = append(order, p.next().ID)
	}
	for i := 0; i < 3; i++ {
		if order[i] != order[i+3] {
			t.Fatalf("rotation broken: %v", order)
		}
	}
	if foods[0].ID != 1 || foods[2].ID != 3 {
		t.Fatal("pool shuffled the caller's slice")
	}
}
