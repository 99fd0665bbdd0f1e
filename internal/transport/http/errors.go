package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/xiaot623/gogo/chat/internal/domain"
)

// ErrorBody is the JSON envelope of every error response.
type ErrorBody struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Message    string      `json:"message"`
	StatusCode int         `json:"status_code"`
	Kind       domain.Kind `json:"kind"`
	// MessageID is set for partial failures: the message that was stored.
	MessageID string `json:"message_id,omitempty"`
}

var kindStatus = map[domain.Kind]int{
	domain.KindInvalidArgument:  http.StatusBadRequest,
	domain.KindUnauthenticated:  http.StatusUnauthorized,
	domain.KindForbidden:        http.StatusForbidden,
	domain.KindNotFound:         http.StatusNotFound,
	domain.KindInvalidState:     http.StatusConflict,
	domain.KindAlreadyMember:    http.StatusConflict,
	domain.KindNotMember:        http.StatusConflict,
	domain.KindPartialFailure:   http.StatusInternalServerError,
	domain.KindStoreUnavailable: http.StatusServiceUnavailable,
}

var statusKind = map[int]domain.Kind{
	http.StatusBadRequest:   domain.KindInvalidArgument,
	http.StatusUnauthorized: domain.KindUnauthenticated,
	http.StatusForbidden:    domain.KindForbidden,
	http.StatusNotFound:     domain.KindNotFound,
}

// ErrorResponse maps err to an HTTP status and error envelope.
func ErrorResponse(err error) (int, ErrorBody) {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		kind, ok := statusKind[httpErr.Code]
		if !ok {
			kind = domain.KindInternal
		}
		return httpErr.Code, ErrorBody{Error: ErrorDetail{
			Message:    fmt.Sprint(httpErr.Message),
			StatusCode: httpErr.Code,
			Kind:       kind,
		}}
	}

	kind := domain.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	detail := ErrorDetail{Message: err.Error(), StatusCode: status, Kind: kind}

	var pf *domain.PartialFailureError
	if errors.As(err, &pf) {
		detail.MessageID = pf.MessageID
	}
	if kind == domain.KindInternal {
		detail.Message = http.StatusText(status)
	}
	return status, ErrorBody{Error: detail}
}

// ErrorHandler renders handler errors as ErrorBody and logs server faults.
// With debug set, internal errors keep their message instead of the status text.
func ErrorHandler(logger *slog.Logger, debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := ErrorResponse(err)
		if debug && body.Error.Kind == domain.KindInternal {
			body.Error.Message = err.Error()
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}
