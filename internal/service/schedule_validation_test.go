package service_test

import (
	"testing"

	apperrors "qualityflow-backend/internal/errors"
	"qualityflow-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ScheduleValidationTestSuite tests request validation for the schedule service
type ScheduleValidationTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	validator *validator.Validate
	svc       *service.ScheduleService
}

// SetupTest sets up the test suite
func (suite *ScheduleValidationTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.validator = validator.New()
	// Validation failures return before any repository is touched, so the
	// service can run without backing stores here.
	suite.svc = service.NewScheduleService(nil, nil, nil, nil, nil, nil, suite.validator)
}

// TearDownTest cleans up after each test
func (suite *ScheduleValidationTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

// TestRecalculateRequestValidation tests the validation rules for recalculation requests
func (suite *ScheduleValidationTestSuite) TestRecalculateRequestValidation() {
	testCases := []struct {
		name        string
		request     *service.RecalculateRequest
		expectError bool
		errorMsg    string
	}{
		{
			name: "Valid request",
			request: &service.RecalculateRequest{
				PhaseKey:   "design",
				NewEndDate: "2024-02-14",
			},
			expectError: false,
		},
		{
			name: "Missing phase key",
			request: &service.RecalculateRequest{
				NewEndDate: "2024-02-14",
			},
			expectError: true,
			errorMsg:    "PhaseKey",
		},
		{
			name: "Missing end date",
			request: &service.RecalculateRequest{
				PhaseKey: "design",
			},
			expectError: true,
			errorMsg:    "NewEndDate",
		},
		{
			name: "Malformed end date",
			request: &service.RecalculateRequest{
				PhaseKey:   "design",
				NewEndDate: "14/02/2024",
			},
			expectError: true,
			errorMsg:    "NewEndDate",
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := suite.validator.Struct(tc.request)
			if tc.expectError {
				suite.Error(err)
				if tc.errorMsg != "" {
					suite.Contains(err.Error(), tc.errorMsg)
				}
			} else {
				suite.NoError(err)
			}
		})
	}
}

// TestInitScheduleRequestValidation tests the validation rules for init requests
func (suite *ScheduleValidationTestSuite) TestInitScheduleRequestValidation() {
	testCases := []struct {
		name        string
		request     *service.InitScheduleRequest
		expectError bool
	}{
		{
			name:        "Empty request is valid",
			request:     &service.InitScheduleRequest{},
			expectError: false,
		},
		{
			name: "Valid start date",
			request: &service.InitScheduleRequest{
				StartDate: "2024-01-01",
			},
			expectError: false,
		},
		{
			name: "Malformed start date",
			request: &service.InitScheduleRequest{
				StartDate: "January 1st",
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := suite.validator.Struct(tc.request)
			if tc.expectError {
				suite.Error(err)
			} else {
				suite.NoError(err)
			}
		})
	}
}

// TestValidationFailuresAreClientErrors verifies the service surfaces
// validator failures as ValidationError, which the handlers map to 400
func (suite *ScheduleValidationTestSuite) TestValidationFailuresAreClientErrors() {
	_, err := suite.svc.Recalculate(uuid.New(), &service.RecalculateRequest{}, "tester@test.com")
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
	suite.Contains(err.Error(), "PhaseKey")

	_, err = suite.svc.InitFromTemplate(uuid.New(), &service.InitScheduleRequest{
		StartDate: "January 1st",
	}, "tester@test.com")
	suite.Require().Error(err)
	suite.True(apperrors.IsValidation(err))
}

// TestScheduleValidationTestSuite runs the test suite
func TestScheduleValidationTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleValidationTestSuite))
}
