//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"session-booking/internal/domain/identity"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	"session-booking/internal/handler/api"
	resdto "session-booking/internal/handler/dto/response"
	"session-booking/internal/handler/middleware"
	"session-booking/internal/usecase/commands"
	"session-booking/internal/usecase/queries"
	"session-booking/tests/common/builder"
	"session-booking/tests/common/httptest"
	commandsmock "session-booking/tests/mock/commands"
	queriesmock "session-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockSchedule    *commandsmock.MockScheduleCommands
	mockRestaurants *commandsmock.MockRestaurantCommands
}

func (s *AdminHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSchedule = commandsmock.NewMockScheduleCommands(s.mockCtrl)
	s.mockRestaurants = commandsmock.NewMockRestaurantCommands(s.mockCtrl)
	h := api.NewAdminHandler(s.mockSchedule, s.mockRestaurants)

	// RequireRoleAtLeast only reads the role set by authentication.
	roles := middleware.NewAuthMiddleware(nil)
	operator := []gin.HandlerFunc{
		fakeAuth(identity.Principal{GuestRef: "ops-1", Role: identity.RoleOperator}),
		roles.RequireRoleAtLeast(identity.RoleOperator),
	}
	guest := []gin.HandlerFunc{
		fakeAuth(identity.Principal{GuestRef: testGuestRef, Role: identity.RoleGuest}),
		roles.RequireRoleAtLeast(identity.RoleOperator),
	}

	s.router.POST("/admin/session-instances/generate", append(operator, h.GenerateSessions)...)
	s.router.PATCH("/admin/session-instances/:id", append(operator, h.UpdateSessionInstance)...)
	s.router.POST("/admin/session-templates", append(operator, h.CreateTemplate)...)
	s.router.DELETE("/admin/session-templates/:id", append(operator, h.ArchiveTemplate)...)
	s.router.PATCH("/admin/capacity-buckets/:id", append(operator, h.ResizeBucket)...)
	s.router.PATCH("/admin/resources/:id", append(operator, h.UpdateResource)...)
	s.router.POST("/guest/session-instances/generate", append(guest, h.GenerateSessions)...)
}

func (s *AdminHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

// ================================================================================
// TestGenerateSessions
// ================================================================================

func (s *AdminHandlerTestSuite) TestGenerateSessions() {
	restID := uuid.New()
	tmpl := builder.NewSessionBuilder(restID).MustBuildTemplate()
	inst, buckets := builder.NewSessionBuilder(restID).MustBuildInstance(tmpl)

	valid := map[string]any{
		"resource_id": restID.String(),
		"from_date":   "2025-06-20",
		"to_date":     "2025-06-26",
	}

	s.Run("success: returns generated instances with buckets", func() {
		s.mockSchedule.EXPECT().Generate(gomock.Any(), commands.GenerateInput{
			RestaurantID: restID,
			From:         time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			To:           time.Date(2025, 6, 26, 0, 0, 0, 0, time.UTC),
		}).Return(&commands.GenerateResult{
			GeneratedCount: 1,
			Instances:      []session.Planned{{Instance: inst, Buckets: buckets}},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/session-instances/generate", valid, "bearer-token")

		var body resdto.GenerateSessionsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.GeneratedCount)
		s.Require().Len(body.Instances, 1)
		s.Equal(inst.ID(), body.Instances[0].ID)
		s.Equal("18:00", body.Instances[0].StartTime)
		s.Len(body.Instances[0].Buckets, len(buckets))
	})

	s.Run("success: nothing new yields an empty list", func() {
		s.mockSchedule.EXPECT().Generate(gomock.Any(), gomock.Any()).
			Return(&commands.GenerateResult{Instances: []session.Planned{}}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/session-instances/generate", valid, "bearer-token")

		var body resdto.GenerateSessionsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(0, body.GeneratedCount)
		s.Empty(body.Instances)
	})

	s.Run("error: 400 for malformed dates", func() {
		bad := map[string]any{"resource_id": restID.String(), "from_date": "2025/06/20", "to_date": "2025-06-26"}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/session-instances/generate", bad, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: 400 for an inverted range", func() {
		s.mockSchedule.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, session.ErrInvalidRange)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/session-instances/generate", valid, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: 404 for an unknown resource", func() {
		s.mockSchedule.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, restaurant.ErrNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/session-instances/generate", valid, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})

	s.Run("error: 403 for guests", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/guest/session-instances/generate", valid, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "FORBIDDEN")
	})
}

// ================================================================================
// TestTemplates
// ================================================================================

func (s *AdminHandlerTestSuite) TestCreateTemplate() {
	restID := uuid.New()
	tmpl := builder.NewSessionBuilder(restID).MustBuildTemplate()

	valid := map[string]any{
		"resource_id": restID.String(),
		"name":        "Dinner",
		"start_time":  "18:00",
		"end_time":    "21:00",
		"weekdays":    []string{"fri", "sat"},
		"inventory":   []map[string]any{{"capacity": 2, "units": 2}, {"capacity": 4, "units": 2}},
	}

	s.Run("success: returns 201 with the template", func() {
		s.mockSchedule.EXPECT().CreateTemplate(gomock.Any(), commands.CreateTemplateInput{
			RestaurantID: restID,
			Name:         "Dinner",
			StartTime:    "18:00",
			EndTime:      "21:00",
			Weekdays:     []string{"fri", "sat"},
			Inventory:    []session.InventoryLine{{Capacity: 2, Units: 2}, {Capacity: 4, Units: 2}},
		}).Return(tmpl, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/session-templates", valid, "bearer-token")

		var body resdto.TemplateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(tmpl.ID(), body.ID)
		s.Equal("Dinner", body.Name)
		s.True(body.IsActive)
	})

	s.Run("error: 400 on binding failures", func() {
		cases := map[string]func(m map[string]any){
			"empty weekdays":   func(m map[string]any) { m["weekdays"] = []string{} },
			"empty inventory":  func(m map[string]any) { m["inventory"] = []map[string]any{} },
			"zero capacity":    func(m map[string]any) { m["inventory"] = []map[string]any{{"capacity": 0, "units": 1}} },
			"negative units":   func(m map[string]any) { m["inventory"] = []map[string]any{{"capacity": 2, "units": -1}} },
			"missing name":     func(m map[string]any) { delete(m, "name") },
			"missing end time": func(m map[string]any) { delete(m, "end_time") },
		}
		for name, mutate := range cases {
			s.Run(name, func() {
				body := map[string]any{}
				for k, v := range valid {
					body[k] = v
				}
				mutate(body)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/session-templates", body, "bearer-token")
				httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
			})
		}
	})

	s.Run("success: archive returns 204", func() {
		s.mockSchedule.EXPECT().ArchiveTemplate(gomock.Any(), tmpl.ID()).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/session-templates/"+tmpl.ID().String(), nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: archive of unknown template is 404", func() {
		s.mockSchedule.EXPECT().ArchiveTemplate(gomock.Any(), tmpl.ID()).Return(session.ErrTemplateNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/admin/session-templates/"+tmpl.ID().String(), nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}

// ================================================================================
// TestSessionInstances and buckets
// ================================================================================

func (s *AdminHandlerTestSuite) TestUpdateSessionInstance() {
	restID := uuid.New()
	tmpl := builder.NewSessionBuilder(restID).MustBuildTemplate()
	inst, _ := builder.NewSessionBuilder(restID).MustBuildInstance(tmpl)
	url := "/admin/session-instances/" + inst.ID().String()

	s.Run("success: closes the instance", func() {
		closed, _ := builder.NewSessionBuilder(restID).With(func(b *builder.SessionBuilder) {
			b.Status = session.StatusClosed
		}).MustBuildInstance(tmpl)
		s.mockSchedule.EXPECT().SetInstanceStatus(gomock.Any(), inst.ID(), "closed").Return(closed, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "closed"}, "bearer-token")

		var body resdto.SessionInstanceResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("closed", body.Status)
	})

	s.Run("error: 400 for an unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "paused"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "status must be open or closed")
	})

	s.Run("error: 404 for an unknown instance", func() {
		s.mockSchedule.EXPECT().SetInstanceStatus(gomock.Any(), inst.ID(), "open").Return(nil, session.ErrInstanceNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "open"}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}

func (s *AdminHandlerTestSuite) TestResizeBucket() {
	restID := uuid.New()
	tmpl := builder.NewSessionBuilder(restID).MustBuildTemplate()
	_, buckets := builder.NewSessionBuilder(restID).MustBuildInstance(tmpl)
	b := buckets[0]
	url := "/admin/capacity-buckets/" + b.ID().String()

	s.Run("success: returns the resized bucket", func() {
		s.mockSchedule.EXPECT().ResizeBucket(gomock.Any(), b.ID(), b.Total()).Return(b, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"total_units": b.Total()}, "bearer-token")

		var body resdto.BucketResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID(), body.ID)
		s.Equal(b.Total(), body.TotalUnits)
		s.Equal(b.Available(), body.Available)
	})

	s.Run("success: zero is a valid total", func() {
		s.mockSchedule.EXPECT().ResizeBucket(gomock.Any(), b.ID(), 0).Return(b, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"total_units": 0}, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on missing or negative total", func() {
		for _, body := range []map[string]any{{}, {"total_units": -1}} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")
			httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
		}
	})

	s.Run("error: 400 when shrinking below assigned", func() {
		s.mockSchedule.EXPECT().ResizeBucket(gomock.Any(), b.ID(), 1).Return(nil, session.ErrShrinkBelowAssigned)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"total_units": 1}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})
}

// ================================================================================
// TestUpdateResource
// ================================================================================

func (s *AdminHandlerTestSuite) TestUpdateResource() {
	rest := builder.NewRestaurantBuilder().MustBuildDomain()
	url := "/admin/resources/" + rest.ID().String()

	s.Run("success: returns updated settings", func() {
		s.mockRestaurants.EXPECT().UpdateSettings(gomock.Any(), rest.ID(), gomock.Any()).
			Return(rest, nil)

		body := map[string]any{"price_per_person": "6000.00", "rules": map[string]any{"cutoff_minutes": 60}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "bearer-token")

		var resp resdto.RestaurantResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(rest.ID(), resp.ID)
		s.Equal("Asia/Tokyo", resp.Timezone)

		var rules map[string]any
		s.Require().NoError(json.Unmarshal(resp.Rules, &rules))
		s.Contains(rules, "cutoff_minutes")
	})

	s.Run("error: 400 for a bad currency code", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"currency": "YEN!"}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: 404 for an unknown resource", func() {
		s.mockRestaurants.EXPECT().UpdateSettings(gomock.Any(), rest.ID(), gomock.Any()).
			Return(nil, restaurant.ErrNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"is_active": false}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}

// ================================================================================
// AvailabilityHandler
// ================================================================================

type AvailabilityHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockAvailabilityQueries
}

func (s *AvailabilityHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	s.router.GET("/resources/:id/availability", api.NewAvailabilityHandler(s.mockQueries).Get)
}

func (s *AvailabilityHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAvailabilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(AvailabilityHandlerTestSuite))
}

func (s *AvailabilityHandlerTestSuite) TestGet() {
	restID := uuid.New()
	from := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	url := "/resources/" + restID.String() + "/availability?from=2025-06-20&to=2025-06-21"

	s.Run("success: renders sessions and tables", func() {
		bucketID := uuid.New()
		s.mockQueries.EXPECT().ListAvailability(gomock.Any(), restID, from, to).Return(&queries.AvailabilityView{
			RestaurantID: restID,
			Timezone:     "Asia/Tokyo",
			From:         from,
			To:           to,
			Sessions: []queries.SessionAvailability{{
				InstanceID:   uuid.New(),
				ServiceDate:  from,
				Start:        session.TimeOfDay(18 * 60),
				End:          session.TimeOfDay(21 * 60),
				Status:       "open",
				Buckets:      []queries.BucketAvailability{{BucketID: bucketID, Capacity: 4, Total: 2, Available: 1}},
				CutoffPassed: false,
				CanBook:      true,
			}},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(restID, body.Resource.ID)
		s.Equal("Asia/Tokyo", body.Resource.Timezone)
		s.Equal("2025-06-20", body.From)
		s.Require().Len(body.Availability, 1)
		s.True(body.Availability[0].CanBook)
		s.Equal("18:00", body.Availability[0].StartTime)
		s.Require().Len(body.Availability[0].TableAvailability, 1)
		s.Equal(bucketID, body.Availability[0].TableAvailability[0].CapacityBucketID)
		s.Equal(1, body.Availability[0].TableAvailability[0].Available)
	})

	s.Run("error: 400 without a range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/"+restID.String()+"/availability", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: 400 for a malformed date", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/resources/"+restID.String()+"/availability?from=20-06-2025&to=2025-06-21", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "VALIDATION_ERROR")
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/resources/nope/availability?from=2025-06-20&to=2025-06-21", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid resource ID format")
	})

	s.Run("error: 404 for an inactive resource", func() {
		s.mockQueries.EXPECT().ListAvailability(gomock.Any(), restID, from, to).Return(nil, restaurant.ErrNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}
