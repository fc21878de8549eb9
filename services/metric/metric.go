// Package metric turns checkup biometrics into energy and macro targets.
package metric

import (
	"dietplan-go-worker/enums"
	"dietplan-go-worker/models"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidBiometrics rejects input that would divide by zero or is meaningless.
var ErrInvalidBiometrics = errors.New("invalid biometrics")

const (
	MinTargetCalories = 1200
	surplusCalories   = 300
	deficitCalories   = 500
)

type Biometrics struct {
	WeightKg float64
	HeightCm float64
	Age      int
	Gender   string
	Activity float64
}

type Metrics struct {
	Bmi            float64 `json:"bmi"`
	Bmr            float64 `json:"bmr"`
	Tdee           float64 `json:"tdee"`
	Category       string  `json:"category"`
	TargetCalories int     `json:"target_calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
}

func (b Biometrics) validate() error {
	switch {
	case b.WeightKg <= 0:
		return fmt.Errorf("%w: weight %.2f kg", ErrInvalidBiometrics, b.WeightKg)
	case b.HeightCm <= 0:
		return fmt.Errorf("%w: height %.2f cm", ErrInvalidBiometrics, b.HeightCm)
	case b.Age <= 0:
		return fmt.Errorf("%w: age %d", ErrInvalidBiometrics, b.Age)
	}
	return nil
}

// Calculate uses Mifflin-St Jeor for BMR and a 40/30/30 carb/protein/fat split.
func Calculate(b Biometrics) (Metrics, error) {
	if err := b.validate(); err != nil {
		return Metrics{}, err
	}

	heightM := b.HeightCm / 100
	bmi := round2(b.WeightKg / (heightM * heightM))

	bmr := 10*b.WeightKg + 6.25*b.HeightCm - 5*float64(b.Age)
	if IsMale(b.Gender) {
		bmr += 5
	} else {
		bmr -= 161
	}
	bmr = round2(bmr)
	tdee := round2(bmr * b.Activity)

	category := Category(bmi)
	target := targetFor(category, tdee)

	return Metrics{
		Bmi:            bmi,
		Bmr:            bmr,
		Tdee:           tdee,
		Category:       category,
		TargetCalories: int(target),
		Carbs:          round2(0.4 * target / 4),
		Protein:        round2(0.3 * target / 4),
		Fat:            round2(0.3 * target / 9),
	}, nil
}

func Category(bmi float64) string {
	switch {
	case bmi < 18.5:
		return enums.Underweight
	case bmi < 25:
		return enums.Normal
	case bmi < 30:
		return enums.Overweight
	default:
		return enums.Obese
	}
}

func targetFor(category string, tdee float64) float64 {
	target := tdee
	switch category {
	case enums.Underweight:
		target = tdee + surplusCalories
	case enums.Overweight, enums.Obese:
		target = tdee - deficitCalories
	}
	return math.Max(target, MinTargetCalories)
}

func IsMale(gender string) bool {
	return strings.EqualFold(strings.TrimSpace(gender), enums.Male)
}

// ApplyToCheckup recomputes the stored metric columns of a checkup.
func ApplyToCheckup(checkup *models.Checkup, gender string) error {
	metrics, err := Calculate(Biometrics{
		WeightKg: checkup.Weight,
		HeightCm: checkup.Height,
		Age:      checkup.Age,
		Gender:   gender,
		Activity: checkup.Activity,
	})
	if err != nil {
		return err
	}
	checkup.Bmi = metrics.Bmi
	checkup.Bmr = metrics.Bmr
	checkup.Tdee = metrics.Tdee
	checkup.Category = metrics.Category
	checkup.TargetCalories = metrics.TargetCalories
	checkup.Carbs = metrics.Carbs
	checkup.Protein = metrics.Protein
	checkup.Fat = metrics.Fat
	return nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
