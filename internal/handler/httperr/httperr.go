package httperr

import (
	"net/http"
	"strconv"

	"session-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Transport level codes outside the booking taxonomy.
const (
	CodeUnauthorized errs.Code = "UNAUTHORIZED"
	CodeForbidden    errs.Code = "FORBIDDEN"
)

// RetryAfterSeconds is advertised on retryable conflicts.
const RetryAfterSeconds = 1

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    errs.Code `json:"code"`
		Message string    `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

var statusByCode = map[errs.Code]int{
	errs.CodeValidation:           http.StatusBadRequest,
	errs.CodeNotFound:             http.StatusNotFound,
	errs.CodeSessionClosed:        http.StatusConflict,
	errs.CodeCutoffPassed:         http.StatusBadRequest,
	errs.CodeLimitExceeded:        http.StatusBadRequest,
	errs.CodeSoldOut:              http.StatusConflict,
	errs.CodeCancellationDeadline: http.StatusBadRequest,
	errs.CodeAlreadyCancelled:     http.StatusConflict,
	errs.CodeIdempotencyReused:    http.StatusUnprocessableEntity,
	errs.CodeConflict:             http.StatusConflict,
	errs.CodeInternal:             http.StatusInternalServerError,
	CodeUnauthorized:              http.StatusUnauthorized,
	CodeForbidden:                 http.StatusForbidden,
}

func StatusOf(code errs.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, code errs.Code, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Code = code
	resp.Error.Message = msg
	resp.Detail = detail

	if code == errs.CodeConflict {
		c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps err through the booking taxonomy. Internal errors never leak their message.
func Abort(c *gin.Context, err error) {
	code := errs.CodeOf(err)
	msg := "Internal server error"
	if code != errs.CodeInternal {
		msg = err.Error()
	}
	AbortWithError(c, StatusOf(code), err, code, msg, nil)
}

// AbortInvalidRequest reports malformed input such as unparsable ids or JSON.
func AbortInvalidRequest(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusBadRequest, err, errs.CodeValidation, msg, nil)
}
