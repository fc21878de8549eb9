package models

import "time"

type Checkup struct {
	ID             int64      `gorm:"column:id;primary_key" json:"id"`
	PatientID      int64      `gorm:"column:patient_id;index" json:"patient_id"`
	Age            int        `gorm:"column:age" json:"age"`
	Height         float64    `gorm:"column:height" json:"height"`
	Weight         float64    `gorm:"column:weight" json:"weight"`
	Bp             string     `gorm:"column:bp" json:"bp"`
	Activity       float64    `gorm:"column:activity" json:"activity"`
	DietPreference string     `gorm:"column:diet_preference" json:"diet_preference"`
	PlanType       string     `gorm:"column:plan_type" json:"plan_type"`
	Bmi            float64    `gorm:"column:bmi" json:"bmi"`
	Bmr            float64    `gorm:"column:bmr" json:"bmr"`
	Tdee           float64    `gorm:"column:tdee" json:"tdee"`
	Category       string     `gorm:"column:category" json:"category"`
	TargetCalories int        `gorm:"column:target_calories" json:"target_calories"`
	Carbs          float64    `gorm:"column:carbs" json:"carbs"`
	Protein        float64    `gorm:"column:protein" json:"protein"`
	Fat            float64    `gorm:"column:fat" json:"fat"`
	CreatedAt      *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (c *Checkup) TableName() string {
	return "checkups"
}
