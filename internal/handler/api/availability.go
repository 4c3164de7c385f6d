package api

import (
	"net/http"

	"session-booking/internal/domain/session"
	reqdto "session-booking/internal/handler/dto/request"
	resdto "session-booking/internal/handler/dto/response"
	"session-booking/internal/handler/httperr"
	"session-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Resource availability
// @Description Free tables per capacity for every session instance in [from, to]
// @Tags availability
// @Produce json
// @Param id path string true "Resource ID"
// @Param from query string true "First service date (YYYY-MM-DD)"
// @Param to query string true "Last service date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /resources/{id}/availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortInvalidRequest(c, err, "Invalid resource ID format")
		return
	}
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortInvalidRequest(c, err, "from and to are required")
		return
	}
	from, err := session.ParseDate(query.From)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	to, err := session.ParseDate(query.To)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.q.ListAvailability(c.Request.Context(), id, from, to)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
