package models

import "time"

type PlanReport struct {
	ID        int64      `gorm:"column:id;primary_key" json:"id"`
	CheckupID int64      `gorm:"column:checkup_id;unique_index" json:"checkup_id"`
	Data      string     `gorm:"column:data;type:text" json:"data"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (p *PlanReport) TableName() string {
	return "plan_reports"
}
