package models

import (
	"time"

	"github.com/google/uuid"
)

// SchedulePhase is one dated phase of a project's schedule. Phases form a DAG
// within a project: DependsOn lists the phase keys that must finish before
// this phase starts.
type SchedulePhase struct {
	BaseModel
	ProjectID        uuid.UUID   `json:"project_id" gorm:"type:uuid;not null;index:idx_phase_project_key,unique" validate:"required"`
	PhaseKey         string      `json:"phase_key" gorm:"not null;size:100;index:idx_phase_project_key,unique" validate:"required,min=1,max=100"`
	PhaseName        string      `json:"phase_name" gorm:"not null;size:200" validate:"required"`
	StartDate        time.Time   `json:"start_date" gorm:"type:date;not null"`
	EndDate          time.Time   `json:"end_date" gorm:"type:date;not null"`
	DurationDays     int         `json:"duration_days" gorm:"not null" validate:"min=0"`
	DependsOn        StringList  `json:"depends_on" gorm:"type:jsonb"`
	ResponsibleEmail string      `json:"responsible_email" gorm:"size:200"`
	ResponsibleArea  string      `json:"responsible_area" gorm:"size:100"`
	Status           PhaseStatus `json:"status" gorm:"type:varchar(50);default:'planned'"`
	SortOrder        int         `json:"order" gorm:"column:sort_order;default:0"`
	IsLocked         bool        `json:"is_locked" gorm:"default:false"`
	BufferDays       int         `json:"buffer_days" gorm:"default:0"`

	// Relationships
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for SchedulePhase
func (SchedulePhase) TableName() string {
	return "schedule_phases"
}
