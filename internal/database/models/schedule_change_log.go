package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleChangeLog is an append-only audit entry for one phase mutation.
// Rows are written once and never updated or deleted.
type ScheduleChangeLog struct {
	BaseModel
	ProjectID     uuid.UUID  `json:"project_id" gorm:"type:uuid;not null;index" validate:"required"`
	PhaseKey      string     `json:"phase_key" gorm:"not null;size:100;index" validate:"required"`
	ChangeType    ChangeType `json:"change_type" gorm:"type:varchar(50);not null" validate:"required"`
	ChangedBy     string     `json:"changed_by" gorm:"size:200"`
	PreviousStart *time.Time `json:"previous_start" gorm:"type:date"`
	PreviousEnd   *time.Time `json:"previous_end" gorm:"type:date"`
	NewStart      *time.Time `json:"new_start" gorm:"type:date"`
	NewEnd        *time.Time `json:"new_end" gorm:"type:date"`
	Reason        string     `json:"reason" gorm:"type:text"`
	IsAutomatic   bool       `json:"is_automatic" gorm:"default:false"`
	// ShiftDays is the signed business-day shift; positive means delayed.
	ShiftDays int `json:"shift_days" gorm:"default:0"`
}

// TableName returns the table name for ScheduleChangeLog
func (ScheduleChangeLog) TableName() string {
	return "schedule_change_logs"
}
