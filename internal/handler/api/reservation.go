package api

import (
	"net/http"

	reqdto "session-booking/internal/handler/dto/request"
	resdto "session-booking/internal/handler/dto/response"
	"session-booking/internal/handler/httperr"
	"session-booking/internal/handler/middleware"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/commands"
	"session-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const IdempotencyKeyHeader = "Idempotency-Key"

var errMissingGuest = errs.New("guest_ref missing from context")

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book one table for the whole party in a session instance
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replays the original result when the same request is retried"
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Success 200 {object} resdto.ReservationResponse "Idempotent replay"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	guestRef, ok := middleware.GetGuestRef(c)
	if !ok {
		httperr.Abort(c, errMissingGuest)
		return
	}

	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortInvalidRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToInput(guestRef, c.GetHeader(IdempotencyKeyHeader)))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromReservationView(result.Reservation))
}

// @Summary Get reservation
// @Description Get one of the caller's reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	guestRef, ok := middleware.GetGuestRef(c)
	if !ok {
		httperr.Abort(c, errMissingGuest)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortInvalidRequest(c, err, "Invalid reservation ID format")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), guestRef, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations
// @Description List the caller's reservations, newest first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (1-200)"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) List(c *gin.Context) {
	guestRef, ok := middleware.GetGuestRef(c)
	if !ok {
		httperr.Abort(c, errMissingGuest)
		return
	}
	var query reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortInvalidRequest(c, err, "Invalid query parameters")
		return
	}

	var after *queries.Cursor
	if query.After != "" {
		after = &queries.Cursor{After: query.After}
	}

	items, next, err := h.q.ListByGuest(c.Request.Context(), guestRef, after, query.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationList(items, next))
}

// @Summary Cancel reservation
// @Description Cancel a confirmed reservation before the cancellation deadline
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	guestRef, ok := middleware.GetGuestRef(c)
	if !ok {
		httperr.Abort(c, errMissingGuest)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortInvalidRequest(c, err, "Invalid reservation ID format")
		return
	}

	result, err := h.cmds.Cancel(c.Request.Context(), id, guestRef)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}
