//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"school-rewards/internal/domain/user"
	"school-rewards/internal/handler/api"
	resdto "school-rewards/internal/handler/dto/response"
	"school-rewards/internal/usecase/commands"
	"school-rewards/internal/usecase/queries"
	"school-rewards/tests/common/httptest"
	"school-rewards/tests/common/testutil"
	commandsmock "school-rewards/tests/mock/commands"
	queriesmock "school-rewards/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type VoucherHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockVoucherCommands
	mockQueries  *queriesmock.MockVoucherQueries
	handler      *api.VoucherHandler

	actorID   uuid.UUID
	actorRole user.Role
}

func (s *VoucherHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockVoucherCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockVoucherQueries(s.mockCtrl)
	s.handler = api.NewVoucherHandler(s.mockCommands, s.mockQueries)

	s.actorID = uuid.New()
	s.actorRole = user.RoleTeacher

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", s.actorRole)
		c.Next()
	}

	s.router.POST("/vouchers", authMiddleware, s.handler.Issue)
	s.router.GET("/vouchers/:id", authMiddleware, s.handler.Get)
	s.router.POST("/vouchers/:id/approve", authMiddleware, s.handler.Approve)
	s.router.POST("/vouchers/:id/reject", authMiddleware, s.handler.Reject)
	s.router.POST("/vouchers/:id/redeem", authMiddleware, s.handler.Redeem)
	s.router.DELETE("/vouchers/:id", authMiddleware, s.handler.Delete)
	s.router.GET("/vouchers/issued", authMiddleware, s.handler.ListIssued)
	s.router.GET("/students/:studentId/vouchers", authMiddleware, s.handler.ListByStudent)
}

func (s *VoucherHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestVoucherHandlerSuite(t *testing.T) {
	suite.Run(t, new(VoucherHandlerTestSuite))
}

func sampleVoucherView(studentID, issuerID uuid.UUID, status string) *queries.VoucherView {
	return &queries.VoucherView{
		ID:        uuid.New(),
		StudentID: studentID,
		IssuedBy:  issuerID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
}

// ================================================================================
// TestIssue
// ================================================================================

func (s *VoucherHandlerTestSuite) TestIssue() {
	url := "/vouchers"
	studentID := uuid.New()
	reqBody := map[string]any{"student_id": studentID.String()}

	s.Run("success: returns 201 Created", func() {
		returnView := sampleVoucherView(studentID, s.actorID, "approved")
		s.mockCommands.EXPECT().Issue(gomock.Any(), studentID, s.actorID, user.RoleTeacher).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID.String(), response.ID)
		s.Equal("approved", response.Status)
	})

	s.Run("error: 400 when student_id is missing", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("student_id", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "no active period",
				commandsError:  commands.ErrNoActivePeriod,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "No active certificate period",
			},
			{
				name:           "recipient is not a student",
				commandsError:  commands.ErrNotAStudent,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Target user is not a student",
			},
			{
				name:           "unknown student",
				commandsError:  commands.ErrStudentNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Student not found",
			},
			{
				name:           "forbidden role",
				commandsError:  commands.ErrForbidden,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Operation not allowed for this role",
			},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Issue(gomock.Any(), studentID, s.actorID, user.RoleTeacher).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestApprove / TestReject
// ================================================================================

func (s *VoucherHandlerTestSuite) TestApprove() {
	s.Run("success: returns the approved voucher", func() {
		returnView := sampleVoucherView(uuid.New(), uuid.New(), "approved")
		s.mockCommands.EXPECT().Approve(gomock.Any(), returnView.ID, s.actorID, user.RoleTeacher).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/"+returnView.ID.String()+"/approve", nil, "bearer-token")

		var response resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("approved", response.Status)
	})

	s.Run("error: 409 when the voucher was already resolved", func() {
		voucherID := uuid.New()
		s.mockCommands.EXPECT().Approve(gomock.Any(), voucherID, s.actorID, user.RoleTeacher).
			Return(nil, commands.ErrAlreadyInState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/"+voucherID.String()+"/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already been resolved")
	})

	s.Run("error: 403 when the approver is not the assigned teacher", func() {
		voucherID := uuid.New()
		s.mockCommands.EXPECT().Approve(gomock.Any(), voucherID, s.actorID, user.RoleTeacher).
			Return(nil, commands.ErrForbidden).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/"+voucherID.String()+"/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/not-a-uuid/approve", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *VoucherHandlerTestSuite) TestReject() {
	s.Run("success: returns the rejected voucher", func() {
		returnView := sampleVoucherView(uuid.New(), uuid.New(), "rejected")
		s.mockCommands.EXPECT().Reject(gomock.Any(), returnView.ID, s.actorID, user.RoleTeacher).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/"+returnView.ID.String()+"/reject", nil, "bearer-token")

		var response resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("rejected", response.Status)
	})
}

// ================================================================================
// TestRedeem
// ================================================================================

func (s *VoucherHandlerTestSuite) TestRedeem() {
	orderID := uuid.New()
	reqBody := map[string]any{"order_id": orderID.String()}

	s.Run("success: ties the voucher to the order", func() {
		returnView := sampleVoucherView(uuid.New(), uuid.New(), "redeemed")
		returnView.OrderID = &orderID
		s.mockCommands.EXPECT().Redeem(gomock.Any(), returnView.ID, orderID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/"+returnView.ID.String()+"/redeem", reqBody, "bearer-token")

		var response resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("redeemed", response.Status)
		s.NotNil(response.OrderID)
	})

	s.Run("error: 409 when the voucher is not approved", func() {
		voucherID := uuid.New()
		s.mockCommands.EXPECT().Redeem(gomock.Any(), voucherID, orderID).
			Return(nil, commands.ErrVoucherNotApproved).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/"+voucherID.String()+"/redeem", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Only approved vouchers can be redeemed")
	})

	s.Run("error: 400 when order_id is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/vouchers/"+uuid.New().String()+"/redeem", map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *VoucherHandlerTestSuite) TestDelete() {
	s.Run("success: returns 204 No Content", func() {
		voucherID := uuid.New()
		s.mockCommands.EXPECT().Delete(gomock.Any(), voucherID, user.RoleTeacher).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/vouchers/"+voucherID.String(), nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 for a redeemed voucher", func() {
		voucherID := uuid.New()
		s.mockCommands.EXPECT().Delete(gomock.Any(), voucherID, user.RoleTeacher).
			Return(commands.ErrVoucherRedeemed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/vouchers/"+voucherID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Redeemed vouchers are immutable")
	})
}

// ================================================================================
// TestGet / listings
// ================================================================================

func (s *VoucherHandlerTestSuite) TestGet() {
	s.Run("success: staff reads any voucher", func() {
		returnView := sampleVoucherView(uuid.New(), uuid.New(), "pending")
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vouchers/"+returnView.ID.String(), nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 when a student reads another's voucher", func() {
		s.actorRole = user.RoleStudent
		defer func() { s.actorRole = user.RoleTeacher }()

		returnView := sampleVoucherView(uuid.New(), uuid.New(), "pending")
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vouchers/"+returnView.ID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 404 when the voucher does not exist", func() {
		voucherID := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), voucherID).
			Return(nil, queries.ErrVoucherNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vouchers/"+voucherID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Voucher not found")
	})
}

func (s *VoucherHandlerTestSuite) TestListByStudent() {
	studentID := uuid.New()
	url := "/students/" + studentID.String() + "/vouchers"

	s.Run("success: lists all of a student's vouchers", func() {
		views := []*queries.VoucherView{
			sampleVoucherView(studentID, uuid.New(), "approved"),
			sampleVoucherView(studentID, uuid.New(), "pending"),
		}
		s.mockQueries.EXPECT().ListByStudent(gomock.Any(), studentID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: the unredeemed filter narrows the listing", func() {
		views := []*queries.VoucherView{sampleVoucherView(studentID, uuid.New(), "approved")}
		s.mockQueries.EXPECT().ListUnredeemedByStudent(gomock.Any(), studentID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?unredeemed=true", nil, "bearer-token")

		var response []resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})
}

func (s *VoucherHandlerTestSuite) TestListIssued() {
	s.Run("success: lists vouchers issued by the caller", func() {
		views := []*queries.VoucherView{sampleVoucherView(uuid.New(), s.actorID, "pending")}
		s.mockQueries.EXPECT().ListByIssuer(gomock.Any(), s.actorID).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/vouchers/issued", nil, "bearer-token")

		var response []resdto.VoucherResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})
}
