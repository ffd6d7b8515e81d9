package handlers_test

import (
	"net/http"
	"testing"

	"qualityflow-backend/internal/api/handlers"
	"qualityflow-backend/internal/service"
	"qualityflow-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
)

// setupScheduleRouter registers schedule routes over a handler with no
// backing service. Requests must be rejected before the service is reached.
func setupScheduleRouter() *testutils.HTTPTestSuite {
	suite := testutils.SetupHTTPTest()
	h := handlers.NewScheduleHandler(nil)
	suite.Router.POST("/projects/:id/schedule/init", h.InitSchedule)
	suite.Router.POST("/projects/:id/schedule/recalculate", h.Recalculate)
	suite.Router.GET("/projects/:id/schedule/phases", h.ListPhases)
	suite.Router.GET("/projects/:id/schedule/changelog", h.GetChangeLog)
	suite.Router.GET("/projects/:id/schedule/alerts", h.GetAlerts)
	return suite
}

func TestInitScheduleRejectsInvalidProjectID(t *testing.T) {
	suite := setupScheduleRouter()

	recorder := suite.MakeRequest(http.MethodPost, "/projects/not-a-uuid/schedule/init", map[string]interface{}{})

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid project ID")
}

func TestInitScheduleRejectsMalformedBody(t *testing.T) {
	suite := setupScheduleRouter()

	recorder := suite.MakeRawRequest(http.MethodPost,
		"/projects/7d4a3a1c-0a64-4f3a-9a1d-111111111111/schedule/init",
		`{"template_id": 42`)

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "")
}

// setupValidatingScheduleRouter wires the handler over a real service so
// request validation runs. Validation failures return before any repository
// is touched, so the service needs no backing stores.
func setupValidatingScheduleRouter() *testutils.HTTPTestSuite {
	suite := testutils.SetupHTTPTest()
	svc := service.NewScheduleService(nil, nil, nil, nil, nil, nil, validator.New())
	h := handlers.NewScheduleHandler(svc)
	suite.Router.POST("/projects/:id/schedule/recalculate", h.Recalculate)
	return suite
}

func TestRecalculateRejectsMissingRequiredFields(t *testing.T) {
	suite := setupValidatingScheduleRouter()

	recorder := suite.MakeRequest(http.MethodPost,
		"/projects/7d4a3a1c-0a64-4f3a-9a1d-111111111111/schedule/recalculate",
		map[string]interface{}{})

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "validation error")
}

func TestRecalculateRejectsMissingEndDate(t *testing.T) {
	suite := setupValidatingScheduleRouter()

	recorder := suite.MakeRequest(http.MethodPost,
		"/projects/7d4a3a1c-0a64-4f3a-9a1d-111111111111/schedule/recalculate",
		map[string]interface{}{"phase_key": "design"})

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "validation error")
}

func TestRecalculateRejectsInvalidProjectID(t *testing.T) {
	suite := setupScheduleRouter()

	recorder := suite.MakeRequest(http.MethodPost, "/projects/42/schedule/recalculate", map[string]interface{}{
		"phase_key":    "design",
		"new_end_date": "2024-02-14",
	})

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid project ID")
}

func TestRecalculateRejectsMalformedBody(t *testing.T) {
	suite := setupScheduleRouter()

	recorder := suite.MakeRawRequest(http.MethodPost,
		"/projects/7d4a3a1c-0a64-4f3a-9a1d-111111111111/schedule/recalculate",
		`{"phase_key": design}`)

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "")
}

func TestListPhasesRejectsInvalidProjectID(t *testing.T) {
	suite := setupScheduleRouter()

	recorder := suite.MakeRequest(http.MethodGet, "/projects/oops/schedule/phases", nil)

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid project ID")
}

func TestGetChangeLogRejectsInvalidProjectID(t *testing.T) {
	suite := setupScheduleRouter()

	recorder := suite.MakeRequest(http.MethodGet, "/projects/oops/schedule/changelog", nil)

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid project ID")
}

func TestGetAlertsRejectsInvalidProjectID(t *testing.T) {
	suite := setupScheduleRouter()

	recorder := suite.MakeRequest(http.MethodGet, "/projects/oops/schedule/alerts", nil)

	testutils.AssertErrorResponse(t, recorder, http.StatusBadRequest, "invalid project ID")
}
