package service_test

import (
	"sync"
	"testing"
	"time"

	"qualityflow-backend/internal/database/models"
	apperrors "qualityflow-backend/internal/errors"
	"qualityflow-backend/internal/repository"
	"qualityflow-backend/internal/service"
	"qualityflow-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// recordingMailer captures outgoing alert emails instead of delivering them
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *recordingMailer) recipients() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.sent))
	for i, s := range m.sent {
		out[i] = s.To
	}
	return out
}

// ScheduleServiceTestSuite tests schedule initialization and recalculation
// against a real Postgres schema
type ScheduleServiceTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	factories     *testutils.FactorySet
	mailer        *recordingMailer

	projectRepo   *repository.ProjectRepository
	phaseRepo     *repository.SchedulePhaseRepository
	templateRepo  *repository.ScheduleTemplateRepository
	changeLogRepo *repository.ScheduleChangeLogRepository
	alertRepo     *repository.ScheduleAlertRepository

	svc *service.ScheduleService
}

// SetupSuite runs before all tests in the suite
func (suite *ScheduleServiceTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.factories = testutils.NewFactorySet()

	db := suite.baseTestSuite.DB
	suite.projectRepo = repository.NewProjectRepository(db)
	suite.phaseRepo = repository.NewSchedulePhaseRepository(db)
	suite.templateRepo = repository.NewScheduleTemplateRepository(db)
	suite.changeLogRepo = repository.NewScheduleChangeLogRepository(db)
	suite.alertRepo = repository.NewScheduleAlertRepository(db)
}

// TearDownSuite runs after all tests in the suite
func (suite *ScheduleServiceTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ScheduleServiceTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
	suite.mailer = &recordingMailer{}
	suite.svc = service.NewScheduleService(
		suite.projectRepo,
		suite.phaseRepo,
		suite.templateRepo,
		suite.changeLogRepo,
		suite.alertRepo,
		suite.mailer,
		validator.New(),
	)
}

// TearDownTest runs after each test
func (suite *ScheduleServiceTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// createProject persists a project starting Monday 2024-01-01 with no templates stored
func (suite *ScheduleServiceTestSuite) createProject() *models.Project {
	project := suite.factories.Project.WithStartDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(suite.projectRepo.Create(project))
	return project
}

func (suite *ScheduleServiceTestSuite) initDefault(project *models.Project) *service.InitScheduleResponse {
	resp, err := suite.svc.InitFromTemplate(project.ID, &service.InitScheduleRequest{}, "tester@test.com")
	suite.Require().NoError(err)
	return resp
}

// TestInitDefaultTemplate verifies the built-in template produces the full
// phase set with sequential business-day placement
func (suite *ScheduleServiceTestSuite) TestInitDefaultTemplate() {
	project := suite.createProject()

	resp := suite.initDefault(project)
	suite.Equal(7, resp.PhasesCreated)
	suite.Equal("standard", resp.TemplateUsed)
	suite.Equal("2024-04-23", resp.ProjectDeadline)

	phases, err := suite.phaseRepo.GetByProjectID(project.ID)
	suite.Require().NoError(err)
	suite.Require().Len(phases, 7)

	expected := []struct {
		key   string
		start string
		end   string
	}{
		{"activation", "2024-01-01", "2024-01-05"},
		{"planning", "2024-01-08", "2024-01-19"},
		{"design", "2024-01-22", "2024-02-09"},
		{"development", "2024-02-12", "2024-03-22"},
		{"qa", "2024-03-25", "2024-04-05"},
		{"content", "2024-04-08", "2024-04-16"},
		{"production", "2024-04-17", "2024-04-23"},
	}
	for i, want := range expected {
		suite.Equal(want.key, phases[i].PhaseKey)
		suite.Equal(want.start, phases[i].StartDate.Format("2006-01-02"))
		suite.Equal(want.end, phases[i].EndDate.Format("2006-01-02"))
		suite.Equal(i, phases[i].SortOrder)
		suite.Equal(models.PhaseStatusPlanned, phases[i].Status)
	}

	// area responsibles resolved from the project
	suite.Equal("design@test.com", phases[2].ResponsibleEmail)
	suite.Equal("dev@test.com", phases[3].ResponsibleEmail)

	// one template_init audit entry per phase
	total, err := suite.changeLogRepo.CountByProjectID(project.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(7), total)

	// project deadline tracks the last phase
	stored, err := suite.projectRepo.GetByID(project.ID)
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.TargetDate)
	suite.Equal("2024-04-23", stored.TargetDate.Format("2006-01-02"))
}

// TestInitReplacesExistingPhases verifies re-initialization yields a fresh phase set
func (suite *ScheduleServiceTestSuite) TestInitReplacesExistingPhases() {
	project := suite.createProject()

	suite.initDefault(project)
	suite.initDefault(project)

	phases, err := suite.phaseRepo.GetByProjectID(project.ID)
	suite.Require().NoError(err)
	suite.Len(phases, 7)
}

// TestInitWithExplicitTemplate verifies template_id takes precedence
func (suite *ScheduleServiceTestSuite) TestInitWithExplicitTemplate() {
	project := suite.createProject()

	template := suite.factories.Template.Create()
	suite.Require().NoError(suite.templateRepo.Create(template))

	resp, err := suite.svc.InitFromTemplate(project.ID, &service.InitScheduleRequest{
		TemplateID: &template.ID,
	}, "tester@test.com")
	suite.Require().NoError(err)
	suite.Equal(2, resp.PhasesCreated)
	suite.Equal(template.Name, resp.TemplateUsed)
}

// TestInitWithTypeMatchedTemplate verifies the active template for the
// project's type is used when no template_id is given
func (suite *ScheduleServiceTestSuite) TestInitWithTypeMatchedTemplate() {
	project := suite.createProject()

	template := suite.factories.Template.WithProjectType(project.ProjectType)
	suite.Require().NoError(suite.templateRepo.Create(template))

	resp, err := suite.svc.InitFromTemplate(project.ID, &service.InitScheduleRequest{}, "tester@test.com")
	suite.Require().NoError(err)
	suite.Equal(2, resp.PhasesCreated)
	suite.Equal(template.Name, resp.TemplateUsed)
}

// TestInitProjectNotFound verifies the not-found mapping
func (suite *ScheduleServiceTestSuite) TestInitProjectNotFound() {
	_, err := suite.svc.InitFromTemplate(uuid.New(), &service.InitScheduleRequest{}, "tester@test.com")
	suite.ErrorIs(err, apperrors.ErrProjectNotFound)
}

// TestRecalculateCascadesThroughDependents delays design by 3 business days
// and expects every downstream phase to shift with it
func (suite *ScheduleServiceTestSuite) TestRecalculateCascadesThroughDependents() {
	project := suite.createProject()
	suite.initDefault(project)

	resp, err := suite.svc.Recalculate(project.ID, &service.RecalculateRequest{
		PhaseKey:   "design",
		NewEndDate: "2024-02-14",
	}, "tester@test.com")
	suite.Require().NoError(err)

	suite.Equal(3, resp.ShiftDays)
	suite.Equal(4, resp.CascadeCount)
	suite.Equal("2024-04-26", resp.NewProjectDeadline)

	suite.Require().Len(resp.AffectedPhases, 4)
	expected := []struct {
		key   string
		start string
		end   string
	}{
		{"development", "2024-02-15", "2024-03-27"},
		{"qa", "2024-03-28", "2024-04-10"},
		{"content", "2024-04-11", "2024-04-19"},
		{"production", "2024-04-22", "2024-04-26"},
	}
	for i, want := range expected {
		suite.Equal(want.key, resp.AffectedPhases[i].PhaseKey)
		suite.Equal(want.start, resp.AffectedPhases[i].NewStart)
		suite.Equal(want.end, resp.AffectedPhases[i].NewEnd)
		suite.Equal(3, resp.AffectedPhases[i].ShiftDays)
	}

	// dates persisted, not just reported
	dev, err := suite.phaseRepo.GetByProjectAndKey(project.ID, "development")
	suite.Require().NoError(err)
	suite.Equal("2024-02-15", dev.StartDate.Format("2006-01-02"))
	suite.Equal("2024-03-27", dev.EndDate.Format("2006-01-02"))

	// 7 template_init + 1 manual_edit + 4 auto_dependency
	total, err := suite.changeLogRepo.CountByProjectID(project.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(12), total)

	// the direct edit carries its own audit reason
	entries, _, err := suite.changeLogRepo.GetByProjectID(project.ID, 20, 0)
	suite.Require().NoError(err)
	manualEdits := 0
	for _, e := range entries {
		if e.ChangeType == models.ChangeTypeManualEdit {
			manualEdits++
			suite.Equal("manual end date change", e.Reason)
		}
	}
	suite.Equal(1, manualEdits)

	// project deadline refreshed
	stored, err := suite.projectRepo.GetByID(project.ID)
	suite.Require().NoError(err)
	suite.Equal("2024-04-26", stored.TargetDate.Format("2006-01-02"))
}

// TestRecalculateRaisesAlerts verifies the three alert thresholds fire and
// each recipient gets an email
func (suite *ScheduleServiceTestSuite) TestRecalculateRaisesAlerts() {
	project := suite.createProject()
	suite.initDefault(project)

	_, err := suite.svc.Recalculate(project.ID, &service.RecalculateRequest{
		PhaseKey:   "design",
		NewEndDate: "2024-02-14",
	}, "tester@test.com")
	suite.Require().NoError(err)

	alerts, _, err := suite.alertRepo.GetByProjectID(project.ID, 20, 0)
	suite.Require().NoError(err)
	suite.Require().Len(alerts, 3)

	byType := make(map[models.AlertType]models.ScheduleAlert, len(alerts))
	for _, a := range alerts {
		byType[a.AlertType] = a
	}

	delayed := byType[models.AlertTypePhaseDelayed]
	suite.Equal(models.AlertSeverityMedium, delayed.Severity)
	suite.Equal(3, delayed.DelayDays)
	suite.Equal(models.StringList{"design@test.com"}, delayed.Recipients)
	suite.Require().NotNil(delayed.NewDeadline)
	suite.Equal("2024-02-14", delayed.NewDeadline.Format("2006-01-02"))

	// 4 cascaded phases crosses the count>3 threshold
	cascade := byType[models.AlertTypeDependencyCascade]
	suite.Equal(models.AlertSeverityHigh, cascade.Severity)
	suite.Equal(12, cascade.DelayDays)
	suite.Equal(models.StringList{"leader@test.com"}, cascade.Recipients)
	suite.NotEmpty(cascade.CascadeInfo)
	// last cascaded phase's new end
	suite.Require().NotNil(cascade.NewDeadline)
	suite.Equal("2024-04-26", cascade.NewDeadline.Format("2006-01-02"))

	// direct shift 3 + cascade 12 crosses the deadline risk threshold
	risk := byType[models.AlertTypeDeadlineRisk]
	suite.Equal(models.AlertSeverityCritical, risk.Severity)
	suite.Equal(15, risk.DelayDays)
	suite.Require().NotNil(risk.NewDeadline)
	suite.Equal("2024-04-26", risk.NewDeadline.Format("2006-01-02"))
	suite.Equal(models.StringList{"owner@test.com"}, risk.Recipients)

	suite.ElementsMatch(
		[]string{"design@test.com", "leader@test.com", "owner@test.com"},
		suite.mailer.recipients(),
	)
	for _, m := range suite.mailer.sent {
		suite.Equal("[Schedule] "+project.Name, m.Subject)
	}
}

// TestRecalculateIsIdempotent replays the same edit and expects no new
// audit rows, no cascade and no alerts
func (suite *ScheduleServiceTestSuite) TestRecalculateIsIdempotent() {
	project := suite.createProject()
	suite.initDefault(project)

	req := &service.RecalculateRequest{PhaseKey: "design", NewEndDate: "2024-02-14"}
	_, err := suite.svc.Recalculate(project.ID, req, "tester@test.com")
	suite.Require().NoError(err)

	logsBefore, err := suite.changeLogRepo.CountByProjectID(project.ID)
	suite.Require().NoError(err)

	resp, err := suite.svc.Recalculate(project.ID, req, "tester@test.com")
	suite.Require().NoError(err)
	suite.Equal(0, resp.ShiftDays)
	suite.Equal(0, resp.CascadeCount)
	suite.Empty(resp.AffectedPhases)

	logsAfter, err := suite.changeLogRepo.CountByProjectID(project.ID)
	suite.Require().NoError(err)
	suite.Equal(logsBefore, logsAfter)

	alerts, _, err := suite.alertRepo.GetByProjectID(project.ID, 20, 0)
	suite.Require().NoError(err)
	suite.Len(alerts, 3)
}

// TestRecalculateWithoutContactsRaisesNoAlerts verifies no alert is persisted
// or mailed when neither the phase nor the project has a recipient email,
// even with every threshold crossed
func (suite *ScheduleServiceTestSuite) TestRecalculateWithoutContactsRaisesNoAlerts() {
	project := suite.factories.Project.WithStartDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	project.LeaderEmail = ""
	project.ProductOwnerEmail = ""
	project.AreaResponsibles = models.StringMap{}
	suite.Require().NoError(suite.projectRepo.Create(project))
	suite.initDefault(project)

	resp, err := suite.svc.Recalculate(project.ID, &service.RecalculateRequest{
		PhaseKey:   "design",
		NewEndDate: "2024-02-14",
	}, "tester@test.com")
	suite.Require().NoError(err)
	suite.Equal(3, resp.ShiftDays)
	suite.Equal(4, resp.CascadeCount)

	alerts, total, err := suite.alertRepo.GetByProjectID(project.ID, 20, 0)
	suite.Require().NoError(err)
	suite.Equal(int64(0), total)
	suite.Empty(alerts)
	suite.Empty(suite.mailer.sent)
}

// TestRecalculateDeadlineFollowsClosingPhase verifies the project deadline
// tracks the last phase by order, not the latest-ending branch
func (suite *ScheduleServiceTestSuite) TestRecalculateDeadlineFollowsClosingPhase() {
	project := suite.createProject()

	template := suite.factories.Template.Create()
	template.Phases = models.TemplatePhases{
		{PhaseKey: "plan", PhaseName: "Plan", DefaultDurationDays: 5, Order: 0},
		{PhaseKey: "long", PhaseName: "Long Build", DefaultDurationDays: 10, DependsOn: []string{"plan"}, Order: 1},
		{PhaseKey: "wrap", PhaseName: "Wrap Up", DefaultDurationDays: 2, DependsOn: []string{"plan"}, Order: 2},
	}
	suite.Require().NoError(suite.templateRepo.Create(template))

	_, err := suite.svc.InitFromTemplate(project.ID, &service.InitScheduleRequest{
		TemplateID: &template.ID,
	}, "tester@test.com")
	suite.Require().NoError(err)

	resp, err := suite.svc.Recalculate(project.ID, &service.RecalculateRequest{
		PhaseKey:   "plan",
		NewEndDate: "2024-01-08",
	}, "tester@test.com")
	suite.Require().NoError(err)

	suite.Equal(1, resp.ShiftDays)
	suite.Equal(2, resp.CascadeCount)

	// both branches restart after plan; long now runs past the closing phase
	long, err := suite.phaseRepo.GetByProjectAndKey(project.ID, "long")
	suite.Require().NoError(err)
	suite.Equal("2024-01-22", long.EndDate.Format("2006-01-02"))

	suite.Equal("2024-01-10", resp.NewProjectDeadline)
	stored, err := suite.projectRepo.GetByID(project.ID)
	suite.Require().NoError(err)
	suite.Equal("2024-01-10", stored.TargetDate.Format("2006-01-02"))
}

// TestRecalculateMovesPhaseEarlier verifies negative shifts also cascade
func (suite *ScheduleServiceTestSuite) TestRecalculateMovesPhaseEarlier() {
	project := suite.createProject()
	suite.initDefault(project)

	resp, err := suite.svc.Recalculate(project.ID, &service.RecalculateRequest{
		PhaseKey:   "content",
		NewEndDate: "2024-04-11",
	}, "tester@test.com")
	suite.Require().NoError(err)

	suite.Equal(-3, resp.ShiftDays)
	suite.Equal(1, resp.CascadeCount)
	suite.Equal("2024-04-18", resp.NewProjectDeadline)
	suite.Equal("production", resp.AffectedPhases[0].PhaseKey)
	suite.Equal("2024-04-12", resp.AffectedPhases[0].NewStart)
	suite.Equal(-3, resp.AffectedPhases[0].ShiftDays)
}

// TestRecalculateUnknownPhase verifies the phase not-found mapping
func (suite *ScheduleServiceTestSuite) TestRecalculateUnknownPhase() {
	project := suite.createProject()
	suite.initDefault(project)

	_, err := suite.svc.Recalculate(project.ID, &service.RecalculateRequest{
		PhaseKey:   "launch-party",
		NewEndDate: "2024-02-14",
	}, "tester@test.com")
	suite.ErrorIs(err, apperrors.ErrPhaseNotFound)
}

// TestScheduleServiceTestSuite runs the test suite
func TestScheduleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}
