package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"qualityflow-backend/internal/database/models"
	apperrors "qualityflow-backend/internal/errors"
	"qualityflow-backend/internal/logger"
	"qualityflow-backend/internal/mailer"
	"qualityflow-backend/internal/repository"
	"qualityflow-backend/internal/schedule"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleService handles schedule initialization, recalculation and the
// audit/alert trail around them. Planning runs against in-memory phase
// copies; persistence happens in one batch once the plan is final.
type ScheduleService struct {
	projectRepo   repository.ProjectRepositoryInterface
	phaseRepo     repository.SchedulePhaseRepositoryInterface
	templateRepo  repository.ScheduleTemplateRepositoryInterface
	changeLogRepo repository.ScheduleChangeLogRepositoryInterface
	alertRepo     repository.ScheduleAlertRepositoryInterface
	mailer        mailer.Mailer
	validator     *validator.Validate
}

// NewScheduleService creates a new schedule service
func NewScheduleService(
	projectRepo repository.ProjectRepositoryInterface,
	phaseRepo repository.SchedulePhaseRepositoryInterface,
	templateRepo repository.ScheduleTemplateRepositoryInterface,
	changeLogRepo repository.ScheduleChangeLogRepositoryInterface,
	alertRepo repository.ScheduleAlertRepositoryInterface,
	m mailer.Mailer,
	validator *validator.Validate,
) *ScheduleService {
	return &ScheduleService{
		projectRepo:   projectRepo,
		phaseRepo:     phaseRepo,
		templateRepo:  templateRepo,
		changeLogRepo: changeLogRepo,
		alertRepo:     alertRepo,
		mailer:        m,
		validator:     validator,
	}
}

// InitScheduleRequest represents the request to initialize a project schedule
type InitScheduleRequest struct {
	TemplateID *uuid.UUID `json:"template_id,omitempty"`
	StartDate  string     `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// InitScheduleResponse represents the result of schedule initialization
type InitScheduleResponse struct {
	PhasesCreated   int    `json:"phases_created"`
	ProjectDeadline string `json:"project_deadline"`
	TemplateUsed    string `json:"template_used"`
}

// RecalculateRequest represents a manual end-date edit to one phase
type RecalculateRequest struct {
	PhaseKey   string `json:"phase_key" validate:"required"`
	NewEndDate string `json:"new_end_date" validate:"required,datetime=2006-01-02"`
}

// AffectedPhase describes one phase moved by the dependency cascade
type AffectedPhase struct {
	PhaseKey  string `json:"phase_key"`
	PhaseName string `json:"phase_name"`
	OldStart  string `json:"old_start"`
	OldEnd    string `json:"old_end"`
	NewStart  string `json:"new_start"`
	NewEnd    string `json:"new_end"`
	ShiftDays int    `json:"shift_days"`
}

// RecalculateResponse represents the result of a schedule recalculation
type RecalculateResponse struct {
	ShiftDays          int             `json:"shift_days"`
	CascadeCount       int             `json:"cascade_count"`
	AffectedPhases     []AffectedPhase `json:"affected_phases"`
	NewProjectDeadline string          `json:"new_project_deadline"`
}

// PhaseListResponse represents a project's phases in schedule order
type PhaseListResponse struct {
	Phases []models.SchedulePhase `json:"phases"`
	Total  int                    `json:"total"`
}

// ChangeLogListResponse represents a paginated audit trail
type ChangeLogListResponse struct {
	Entries  []models.ScheduleChangeLog `json:"entries"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"page"`
	PageSize int                        `json:"page_size"`
}

// AlertListResponse represents a paginated list of schedule alerts
type AlertListResponse struct {
	Alerts   []models.ScheduleAlert `json:"alerts"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// InitFromTemplate builds a project's phase set from a schedule template.
// Template resolution order: explicit template_id, then the active template
// for the project's type, then the built-in default. Re-initialization
// replaces any existing phases.
func (s *ScheduleService) InitFromTemplate(projectID uuid.UUID, req *InitScheduleRequest, changedBy string) (*InitScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	start, err := s.resolveStartDate(project, req.StartDate)
	if err != nil {
		return nil, err
	}

	blueprint, templateUsed, err := s.resolveTemplate(project, req.TemplateID)
	if err != nil {
		return nil, err
	}

	placed := schedule.Layout(start, blueprint)
	if len(placed) == 0 {
		return nil, apperrors.ErrEmptyTemplate
	}

	if err := s.phaseRepo.DeleteByProjectID(projectID); err != nil {
		return nil, fmt.Errorf("failed to clear existing phases: %w", err)
	}

	for i, p := range placed {
		phase := &models.SchedulePhase{
			ProjectID:        projectID,
			PhaseKey:         p.Key,
			PhaseName:        p.Name,
			StartDate:        p.Start,
			EndDate:          p.End,
			DurationDays:     p.Duration,
			DependsOn:        models.StringList(p.DependsOn),
			ResponsibleArea:  p.RequiredArea,
			ResponsibleEmail: project.AreaResponsibles[p.RequiredArea],
			Status:           models.PhaseStatusPlanned,
			SortOrder:        i,
		}
		phase.CreatedBy = changedBy
		if err := s.phaseRepo.Create(phase); err != nil {
			return nil, fmt.Errorf("failed to create phase %s: %w", p.Key, err)
		}

		entry := &models.ScheduleChangeLog{
			ProjectID:   projectID,
			PhaseKey:    p.Key,
			ChangeType:  models.ChangeTypeTemplateInit,
			ChangedBy:   changedBy,
			NewStart:    datePtr(p.Start),
			NewEnd:      datePtr(p.End),
			Reason:      fmt.Sprintf("initialized from template %q", templateUsed),
			IsAutomatic: true,
		}
		if err := s.changeLogRepo.Create(entry); err != nil {
			return nil, fmt.Errorf("failed to log phase creation: %w", err)
		}
	}

	deadline := placed[len(placed)-1].End
	if err := s.projectRepo.UpdateTargetDate(projectID, deadline); err != nil {
		return nil, fmt.Errorf("failed to update project deadline: %w", err)
	}

	logger.New().Infof("Initialized %d phases for project %s from template %q", len(placed), project.Name, templateUsed)

	return &InitScheduleResponse{
		PhasesCreated:   len(placed),
		ProjectDeadline: schedule.FormatDate(deadline),
		TemplateUsed:    templateUsed,
	}, nil
}

// Recalculate applies a manual end-date edit to one phase, cascades the
// change through dependent phases, persists the resulting plan, and raises
// alerts when the shift crosses the configured thresholds.
func (s *ScheduleService) Recalculate(projectID uuid.UUID, req *RecalculateRequest, changedBy string) (*RecalculateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err)
	}

	newEnd, err := schedule.ParseDate(req.NewEndDate)
	if err != nil {
		return nil, apperrors.ErrInvalidDateFormat
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	phases, err := s.phaseRepo.GetByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get phases: %w", err)
	}

	var target *models.SchedulePhase
	for i := range phases {
		if phases[i].PhaseKey == req.PhaseKey {
			target = &phases[i]
			break
		}
	}
	if target == nil {
		return nil, apperrors.ErrPhaseNotFound
	}

	shift := schedule.BusinessDaysBetween(target.EndDate, newEnd)

	// Plan against in-memory copies with the edit already applied.
	plan := make([]schedule.Phase, len(phases))
	for i, p := range phases {
		plan[i] = schedule.Phase{
			Key:       p.PhaseKey,
			Name:      p.PhaseName,
			Start:     p.StartDate,
			End:       p.EndDate,
			Duration:  p.DurationDays,
			DependsOn: p.DependsOn,
		}
		if p.PhaseKey == req.PhaseKey {
			plan[i].End = newEnd
		}
	}

	changes, err := schedule.Cascade(plan, req.PhaseKey)
	if err != nil {
		if errors.Is(err, schedule.ErrDependencyCycle) {
			return nil, apperrors.ErrDependencyCycle
		}
		return nil, fmt.Errorf("cascade failed: %w", err)
	}

	// Persist the direct edit only when the end date actually moved, so
	// re-running the same request leaves the audit trail untouched.
	if shift != 0 {
		if err := s.phaseRepo.UpdateEndDate(target.ID, newEnd); err != nil {
			return nil, fmt.Errorf("failed to update phase end date: %w", err)
		}
		entry := &models.ScheduleChangeLog{
			ProjectID:     projectID,
			PhaseKey:      target.PhaseKey,
			ChangeType:    models.ChangeTypeManualEdit,
			ChangedBy:     changedBy,
			PreviousStart: datePtr(target.StartDate),
			PreviousEnd:   datePtr(target.EndDate),
			NewStart:      datePtr(target.StartDate),
			NewEnd:        datePtr(newEnd),
			ShiftDays:     shift,
			Reason:        "manual end date change",
		}
		if err := s.changeLogRepo.Create(entry); err != nil {
			return nil, fmt.Errorf("failed to log manual edit: %w", err)
		}
	}

	byKey := make(map[string]*models.SchedulePhase, len(phases))
	for i := range phases {
		byKey[phases[i].PhaseKey] = &phases[i]
	}

	affected := make([]AffectedPhase, 0, len(changes))
	for _, c := range changes {
		moved := byKey[c.PhaseKey]
		if err := s.phaseRepo.UpdateDates(moved.ID, c.NewStart, c.NewEnd); err != nil {
			return nil, fmt.Errorf("failed to update cascaded phase %s: %w", c.PhaseKey, err)
		}
		entry := &models.ScheduleChangeLog{
			ProjectID:     projectID,
			PhaseKey:      c.PhaseKey,
			ChangeType:    models.ChangeTypeAutoDependency,
			ChangedBy:     changedBy,
			PreviousStart: datePtr(c.OldStart),
			PreviousEnd:   datePtr(c.OldEnd),
			NewStart:      datePtr(c.NewStart),
			NewEnd:        datePtr(c.NewEnd),
			Reason:        fmt.Sprintf("dependency shift from %s", req.PhaseKey),
			IsAutomatic:   true,
			ShiftDays:     c.ShiftDays,
		}
		if err := s.changeLogRepo.Create(entry); err != nil {
			return nil, fmt.Errorf("failed to log cascade change: %w", err)
		}
		affected = append(affected, AffectedPhase{
			PhaseKey:  c.PhaseKey,
			PhaseName: c.PhaseName,
			OldStart:  schedule.FormatDate(c.OldStart),
			OldEnd:    schedule.FormatDate(c.OldEnd),
			NewStart:  schedule.FormatDate(c.NewStart),
			NewEnd:    schedule.FormatDate(c.NewEnd),
			ShiftDays: c.ShiftDays,
		})
	}

	deadline := projectDeadline(plan, changes)
	if err := s.projectRepo.UpdateTargetDate(projectID, deadline); err != nil {
		return nil, fmt.Errorf("failed to update project deadline: %w", err)
	}

	logger.New().Infof("Recalculated schedule for project %s: phase %s shifted %d business days, %d dependent phases moved", project.Name, req.PhaseKey, shift, len(changes))

	s.raiseAlerts(project, target, shift, newEnd, changes, deadline)

	return &RecalculateResponse{
		ShiftDays:          shift,
		CascadeCount:       len(changes),
		AffectedPhases:     affected,
		NewProjectDeadline: schedule.FormatDate(deadline),
	}, nil
}

// ListPhases retrieves a project's phases in schedule order
func (s *ScheduleService) ListPhases(projectID uuid.UUID) (*PhaseListResponse, error) {
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	phases, err := s.phaseRepo.GetByProjectID(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get phases: %w", err)
	}

	return &PhaseListResponse{Phases: phases, Total: len(phases)}, nil
}

// GetChangeLog retrieves a project's audit trail with pagination
func (s *ScheduleService) GetChangeLog(projectID uuid.UUID, page, pageSize int) (*ChangeLogListResponse, error) {
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	page, pageSize = normalizePagination(page, pageSize)
	entries, total, err := s.changeLogRepo.GetByProjectID(projectID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get change log: %w", err)
	}

	return &ChangeLogListResponse{Entries: entries, Total: total, Page: page, PageSize: pageSize}, nil
}

// GetAlerts retrieves a project's alerts with pagination
func (s *ScheduleService) GetAlerts(projectID uuid.UUID, page, pageSize int) (*AlertListResponse, error) {
	if _, err := s.projectRepo.GetByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	page, pageSize = normalizePagination(page, pageSize)
	alerts, total, err := s.alertRepo.GetByProjectID(projectID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get alerts: %w", err)
	}

	return &AlertListResponse{Alerts: alerts, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *ScheduleService) resolveStartDate(project *models.Project, raw string) (time.Time, error) {
	if raw != "" {
		start, err := schedule.ParseDate(raw)
		if err != nil {
			return time.Time{}, apperrors.ErrInvalidDateFormat
		}
		return start, nil
	}
	if project.StartDate != nil {
		return *project.StartDate, nil
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (s *ScheduleService) resolveTemplate(project *models.Project, templateID *uuid.UUID) ([]schedule.TemplatePhase, string, error) {
	if templateID != nil {
		tpl, err := s.templateRepo.GetByID(*templateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", apperrors.ErrTemplateNotFound
			}
			return nil, "", fmt.Errorf("failed to get template: %w", err)
		}
		if len(tpl.Phases) == 0 {
			return nil, "", apperrors.ErrEmptyTemplate
		}
		return toBlueprint(tpl.Phases), tpl.Name, nil
	}

	tpl, err := s.templateRepo.GetActiveByProjectType(project.ProjectType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return schedule.DefaultTemplate(), schedule.DefaultTemplateName, nil
		}
		return nil, "", fmt.Errorf("failed to resolve template: %w", err)
	}
	if len(tpl.Phases) == 0 {
		return nil, "", apperrors.ErrEmptyTemplate
	}
	return toBlueprint(tpl.Phases), tpl.Name, nil
}

// raiseAlerts evaluates the alert thresholds for one recalculation, persists
// every triggered alert, then emails each recipient. An alert is only raised
// when its recipient email is actually set on the phase or project. Delivery
// failures are logged and swallowed.
func (s *ScheduleService) raiseAlerts(project *models.Project, target *models.SchedulePhase, shift int, newEnd time.Time, changes []schedule.Change, deadline time.Time) {
	cascadeTotal := 0
	for _, c := range changes {
		cascadeTotal += abs(c.ShiftDays)
	}

	var alerts []*models.ScheduleAlert

	if shift != 0 && target.ResponsibleEmail != "" {
		severity := models.AlertSeverityMedium
		if abs(shift) > 5 {
			severity = models.AlertSeverityHigh
		}
		alerts = append(alerts, &models.ScheduleAlert{
			ProjectID:     project.ID,
			ProjectName:   project.Name,
			AlertType:     models.AlertTypePhaseDelayed,
			Severity:      severity,
			AffectedPhase: target.PhaseKey,
			DelayDays:     shift,
			NewDeadline:   datePtr(newEnd),
			Recipients:    recipients(target.ResponsibleEmail),
			Message: fmt.Sprintf("Phase %q of project %q moved by %d business days.",
				target.PhaseName, project.Name, shift),
		})
	}

	if len(changes) >= 1 && project.LeaderEmail != "" {
		severity := models.AlertSeverityMedium
		if len(changes) > 3 {
			severity = models.AlertSeverityHigh
		}
		info, _ := json.Marshal(changes)
		alerts = append(alerts, &models.ScheduleAlert{
			ProjectID:     project.ID,
			ProjectName:   project.Name,
			AlertType:     models.AlertTypeDependencyCascade,
			Severity:      severity,
			AffectedPhase: target.PhaseKey,
			DelayDays:     cascadeTotal,
			NewDeadline:   datePtr(changes[len(changes)-1].NewEnd),
			Recipients:    recipients(project.LeaderEmail),
			Message: fmt.Sprintf("Change to phase %q rescheduled %d dependent phase(s) in project %q.",
				target.PhaseName, len(changes), project.Name),
			CascadeInfo: info,
		})
	}

	if abs(shift)+cascadeTotal > 10 && project.ProductOwnerEmail != "" {
		alerts = append(alerts, &models.ScheduleAlert{
			ProjectID:     project.ID,
			ProjectName:   project.Name,
			AlertType:     models.AlertTypeDeadlineRisk,
			Severity:      models.AlertSeverityCritical,
			AffectedPhase: target.PhaseKey,
			DelayDays:     abs(shift) + cascadeTotal,
			NewDeadline:   datePtr(deadline),
			Recipients:    recipients(project.ProductOwnerEmail),
			Message: fmt.Sprintf("Project %q deadline is at risk: total shift of %d business days, new deadline %s.",
				project.Name, abs(shift)+cascadeTotal, schedule.FormatDate(deadline)),
		})
	}

	log := logger.New()
	for _, alert := range alerts {
		if err := s.alertRepo.Create(alert); err != nil {
			log.WithField("alert_type", alert.AlertType).WithError(err).Error("failed to persist schedule alert")
			continue
		}
		subject := fmt.Sprintf("[Schedule] %s", project.Name)
		for _, to := range alert.Recipients {
			if err := s.mailer.Send(to, subject, alert.Message); err != nil {
				log.WithFields(map[string]interface{}{
					"to":         to,
					"alert_type": alert.AlertType,
				}).WithError(err).Warn("failed to send schedule alert email")
			}
		}
	}
}

// projectDeadline returns the end date of the last phase in sort order, with
// the cascade's changes overlaid. The plan keeps the repository's sort_order
// sequence, so the final element is the project's closing phase.
func projectDeadline(plan []schedule.Phase, changes []schedule.Change) time.Time {
	if len(plan) == 0 {
		return time.Time{}
	}
	last := plan[len(plan)-1]
	for _, c := range changes {
		if c.PhaseKey == last.Key {
			return c.NewEnd
		}
	}
	return last.End
}

func toBlueprint(phases models.TemplatePhases) []schedule.TemplatePhase {
	out := make([]schedule.TemplatePhase, len(phases))
	for i, p := range phases {
		out[i] = schedule.TemplatePhase{
			Key:          p.PhaseKey,
			Name:         p.PhaseName,
			Duration:     p.DefaultDurationDays,
			DependsOn:    p.DependsOn,
			RequiredArea: p.RequiredArea,
			Order:        p.Order,
		}
	}
	return out
}

func recipients(emails ...string) models.StringList {
	out := make(models.StringList, 0, len(emails))
	for _, e := range emails {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// validationError converts validator failures into a ValidationError so the
// handlers can surface them as client errors.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		f := fieldErrs[0]
		return apperrors.NewValidationError(f.Field(), fmt.Sprintf("failed %q validation", f.Tag()))
	}
	return apperrors.NewValidationError("", err.Error())
}

func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func datePtr(t time.Time) *time.Time {
	d := t
	return &d
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
