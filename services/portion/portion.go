// Package portion scales a catalog serving to a meal's calorie target.
package portion

import (
	"dietplan-go-worker/models"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	MinMultiplier = 0.5
	MaxMultiplier = 3.0
	step          = 0.5
	defaultUnit   = "Serving"
)

type Portion struct {
	Multiplier float64 `json:"multiplier"`
	Quantity   string  `json:"quantity"`
	Calories   int     `json:"calories"`

	degenerate bool
}

// Degenerate marks the placeholder returned for foods without calories.
func (p Portion) Degenerate() bool {
	return p.degenerate
}

func Solve(food models.FoodItem, target float64) Portion {
	unit := unitName(food)
	if food.Calories <= 0 {
		return Portion{Multiplier: 1, Quantity: "1 " + unit, Calories: 0, degenerate: true}
	}

	raw := target / float64(food.Calories)
	multiplier := math.Min(math.Max(raw, MinMultiplier), MaxMultiplier)
	multiplier = math.Round(multiplier/step) * step

	return Portion{
		Multiplier: multiplier,
		Quantity:   fmt.Sprintf("%s %s", strconv.FormatFloat(multiplier, 'f', 1, 64), unit),
		Calories:   int(math.Floor(multiplier * float64(food.Calories))),
	}
}

func unitName(food models.FoodItem) string {
	if unit := strings.TrimSpace(food.UnitName); unit != "" {
		return unit
	}
	return defaultUnit
}
