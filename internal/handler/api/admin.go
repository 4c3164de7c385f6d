package api

import (
	"net/http"

	reqdto "session-booking/internal/handler/dto/request"
	resdto "session-booking/internal/handler/dto/response"
	"session-booking/internal/handler/httperr"
	"session-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler serves operator endpoints. Routes are guarded by RequireRoleAtLeast(operator).
type AdminHandler struct {
	schedule    commands.ScheduleCommands
	restaurants commands.RestaurantCommands
}

func NewAdminHandler(schedule commands.ScheduleCommands, restaurants commands.RestaurantCommands) *AdminHandler {
	return &AdminHandler{schedule: schedule, restaurants: restaurants}
}

// @Summary Generate session instances
// @Description Expand active templates into instances for [from_date, to_date]. Existing slots are skipped.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GenerateSessionsRequest true "Generation request"
// @Success 200 {object} resdto.GenerateSessionsResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/session-instances/generate [post]
func (h *AdminHandler) GenerateSessions(c *gin.Context) {
	var req reqdto.GenerateSessionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortInvalidRequest(c, err, "Invalid request format")
		return
	}
	in, err := req.ToInput()
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	result, err := h.schedule.Generate(c.Request.Context(), in)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromGenerateResult(result))
}

// @Summary Create session template
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTemplateRequest true "Template"
// @Success 201 {object} resdto.TemplateResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/session-templates [post]
func (h *AdminHandler) CreateTemplate(c *gin.Context) {
	var req reqdto.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortInvalidRequest(c, err, "Invalid request format")
		return
	}

	tmpl, err := h.schedule.CreateTemplate(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromTemplate(tmpl))
}

// @Summary Archive session template
// @Description Stops future generation. Existing instances and reservations are kept.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Template ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/session-templates/{id} [delete]
func (h *AdminHandler) ArchiveTemplate(c *gin.Context) {
	id, ok := pathID(c, "Invalid template ID format")
	if !ok {
		return
	}
	if err := h.schedule.ArchiveTemplate(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Open or close a session instance
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session instance ID"
// @Param request body reqdto.UpdateSessionInstanceRequest true "New status"
// @Success 200 {object} resdto.SessionInstanceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/session-instances/{id} [patch]
func (h *AdminHandler) UpdateSessionInstance(c *gin.Context) {
	id, ok := pathID(c, "Invalid session instance ID format")
	if !ok {
		return
	}
	var req reqdto.UpdateSessionInstanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortInvalidRequest(c, err, "status must be open or closed")
		return
	}

	inst, err := h.schedule.SetInstanceStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromInstance(inst, nil))
}

// @Summary Resize a capacity bucket
// @Description Change the number of tables. Shrinking below the assigned count is rejected.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Capacity bucket ID"
// @Param request body reqdto.ResizeBucketRequest true "New total"
// @Success 200 {object} resdto.BucketResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/capacity-buckets/{id} [patch]
func (h *AdminHandler) ResizeBucket(c *gin.Context) {
	id, ok := pathID(c, "Invalid capacity bucket ID format")
	if !ok {
		return
	}
	var req reqdto.ResizeBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortInvalidRequest(c, err, "total_units must be a non-negative integer")
		return
	}

	bucket, err := h.schedule.ResizeBucket(c.Request.Context(), id, *req.TotalUnits)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBucket(bucket))
}

// @Summary Update resource settings
// @Description Patch price, currency, rules or active flag. Confirmed reservations keep their price snapshot.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateRestaurantRequest true "Settings patch"
// @Success 200 {object} resdto.RestaurantResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/resources/{id} [patch]
func (h *AdminHandler) UpdateResource(c *gin.Context) {
	id, ok := pathID(c, "Invalid resource ID format")
	if !ok {
		return
	}
	var req reqdto.UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortInvalidRequest(c, err, "Invalid request format")
		return
	}

	rest, err := h.restaurants.UpdateSettings(c.Request.Context(), id, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	resp, err := resdto.FromRestaurant(rest)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func pathID(c *gin.Context, msg string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortInvalidRequest(c, err, msg)
		return uuid.Nil, false
	}
	return id, true
}
