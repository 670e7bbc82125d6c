package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/quotemint/quotegen/internal/domain"
	"github.com/quotemint/quotegen/internal/platform/logging"
)

// GetTraceID returns the trace ID for the current request. It prefers the
// OpenTelemetry span, then the trace_id context value, then the X-Request-ID
// header. Returns an empty string when none is present.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	if v, ok := c.Get("trace_id"); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}

	return c.GetHeader("X-Request-ID")
}

// FromDomainError maps a domain error to an HTTP status code and error
// response. Unknown errors are mapped to 500 Internal Server Error with a
// generic message.
func FromDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		// Extract field details if available
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusUnprocessableEntity, resp

	case domain.IsParse(err):
		return http.StatusBadGateway, NewErrorResponse(
			ErrorCodeExtractionFailed,
			err.Error(),
		)

	case domain.IsOracle(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeOracleUnavailable,
			err.Error(),
		)

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(
			ErrorCodeUnavailable,
			err.Error(),
		)

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(
			ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// HandleError maps a domain error and writes it as the response, tagging it
// with the request's trace ID. Internal errors are logged with full details.
func HandleError(c *gin.Context, err error) {
	status, errResp := FromDomainError(err)
	errResp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}
