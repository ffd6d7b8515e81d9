package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TemplatePhase is one phase blueprint within a schedule template
type TemplatePhase struct {
	PhaseKey            string   `json:"phase_key" validate:"required"`
	PhaseName           string   `json:"phase_name" validate:"required"`
	DefaultDurationDays int      `json:"default_duration_days" validate:"min=0"`
	DependsOn           []string `json:"depends_on"`
	RequiredArea        string   `json:"required_area,omitempty"`
	Order               int      `json:"order"`
}

// TemplatePhases is the JSONB-backed ordered list of phase blueprints.
// Array order, not the Order field, drives sequential layout.
type TemplatePhases []TemplatePhase

// Value implements driver.Valuer for JSONB storage
func (p TemplatePhases) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSONB retrieval
func (p *TemplatePhases) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported type for TemplatePhases: %T", value)
	}
}

// ScheduleTemplate is an ordered list of phase blueprints used to seed a
// project's schedule
type ScheduleTemplate struct {
	BaseModel
	Name        string         `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description string         `json:"description" gorm:"type:text"`
	ProjectType ProjectType    `json:"project_type" gorm:"type:varchar(50);index"`
	IsActive    bool           `json:"is_active" gorm:"default:true;index"`
	Phases      TemplatePhases `json:"phases" gorm:"type:jsonb"`
}

// TableName returns the table name for ScheduleTemplate
func (ScheduleTemplate) TableName() string {
	return "schedule_templates"
}
