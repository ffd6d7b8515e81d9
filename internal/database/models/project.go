package models

import (
	"time"
)

// Project represents a tracked web delivery project
type Project struct {
	BaseModel
	Name              string        `json:"name" gorm:"not null;size:200;uniqueIndex" validate:"required,min=1,max=200"`
	ClientName        string        `json:"client_name" gorm:"size:200"`
	Description       string        `json:"description" gorm:"type:text"`
	ProjectType       ProjectType   `json:"project_type" gorm:"type:varchar(50);default:'website'"`
	Status            ProjectStatus `json:"status" gorm:"type:varchar(50);default:'active'"`
	RiskLevel         string        `json:"risk_level" gorm:"type:varchar(20);default:'medium'"`
	StartDate         *time.Time    `json:"start_date" gorm:"type:date"`
	TargetDate        *time.Time    `json:"target_date" gorm:"type:date"`
	LeaderEmail       string        `json:"leader_email" gorm:"size:200" validate:"omitempty,email"`
	ProductOwnerEmail string        `json:"product_owner_email" gorm:"size:200" validate:"omitempty,email"`

	// AreaResponsibles maps a delivery area (e.g. "creativity", "software")
	// to the email of the person responsible for it.
	AreaResponsibles StringMap `json:"area_responsibles" gorm:"type:jsonb"`

	// Relationships
	Phases []SchedulePhase `json:"phases,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Project
func (Project) TableName() string {
	return "projects"
}
