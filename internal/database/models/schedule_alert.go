package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ScheduleAlert records a notification produced when a schedule change
// crosses a severity threshold. One row per triggering event; no
// de-duplication across repeated edits.
type ScheduleAlert struct {
	BaseModel
	ProjectID     uuid.UUID       `json:"project_id" gorm:"type:uuid;not null;index" validate:"required"`
	ProjectName   string          `json:"project_name" gorm:"size:200"`
	AlertType     AlertType       `json:"alert_type" gorm:"type:varchar(50);not null" validate:"required"`
	Severity      AlertSeverity   `json:"severity" gorm:"type:varchar(20);not null" validate:"required"`
	AffectedPhase string          `json:"affected_phase" gorm:"size:100"`
	DelayDays     int             `json:"delay_days" gorm:"default:0"`
	NewDeadline   *time.Time      `json:"new_deadline" gorm:"type:date"`
	Recipients    StringList      `json:"recipients" gorm:"type:jsonb"`
	Message       string          `json:"message" gorm:"type:text"`
	CascadeInfo   json.RawMessage `json:"cascade_info,omitempty" gorm:"type:jsonb"`
}

// TableName returns the table name for ScheduleAlert
func (ScheduleAlert) TableName() string {
	return "schedule_alerts"
}
