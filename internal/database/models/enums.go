package models

// PhaseStatus represents the lifecycle status of a schedule phase
type PhaseStatus string

const (
	PhaseStatusPlanned    PhaseStatus = "planned"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusCompleted  PhaseStatus = "completed"
	PhaseStatusDelayed    PhaseStatus = "delayed"
)

// IsValid checks if the PhaseStatus is valid
func (s PhaseStatus) IsValid() bool {
	switch s {
	case PhaseStatusPlanned, PhaseStatusInProgress, PhaseStatusCompleted, PhaseStatusDelayed:
		return true
	}
	return false
}

// ChangeType classifies a schedule change log entry
type ChangeType string

const (
	ChangeTypeTemplateInit   ChangeType = "template_init"
	ChangeTypeManualEdit     ChangeType = "manual_edit"
	ChangeTypeAutoDependency ChangeType = "auto_dependency"
)

// IsValid checks if the ChangeType is valid
func (t ChangeType) IsValid() bool {
	switch t {
	case ChangeTypeTemplateInit, ChangeTypeManualEdit, ChangeTypeAutoDependency:
		return true
	}
	return false
}

// AlertType classifies a schedule alert
type AlertType string

const (
	AlertTypePhaseDelayed      AlertType = "phase_delayed"
	AlertTypeDependencyCascade AlertType = "dependency_cascade"
	AlertTypeDeadlineRisk      AlertType = "deadline_risk"
)

// AlertSeverity grades a schedule alert
type AlertSeverity string

const (
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

// ProjectStatus represents the status of a project
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

// ProjectType represents the delivery type of a project
type ProjectType string

const (
	ProjectTypeWebsite   ProjectType = "website"
	ProjectTypeEcommerce ProjectType = "ecommerce"
	ProjectTypeLanding   ProjectType = "landing"
	ProjectTypeWebApp    ProjectType = "webapp"
)

// MemberRole represents the role of a team member
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleLeader MemberRole = "leader"
	MemberRoleMember MemberRole = "member"
)

// IsValid checks if the MemberRole is valid
func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleAdmin, MemberRoleLeader, MemberRoleMember:
		return true
	}
	return false
}
