package models

import "time"

type Patient struct {
	ID             int64      `gorm:"column:id;primary_key" json:"id"`
	Name           string     `gorm:"column:name" json:"name"`
	Phone          string     `gorm:"column:phone;unique_index" json:"phone"`
	Gender         string     `gorm:"column:gender" json:"gender"`
	Address        string     `gorm:"column:address" json:"address"`
	MedicalHistory string     `gorm:"column:medical_history" json:"medical_history"`
	Allergies      string     `gorm:"column:allergies" json:"allergies"`
	DietPreference string     `gorm:"column:diet_preference" json:"diet_preference"`
	CreatedAt      *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (p *Patient) TableName() string {
	return "patients"
}
