package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/quotemint/quotegen/internal/adapters/clients"
	"github.com/quotemint/quotegen/internal/domain"
)

// oracleErrorResponse is the error envelope the generative language API
// returns on failure.
type oracleErrorResponse struct {
	Error oracleErrorDetail `json:"error"`
}

// oracleErrorDetail contains error information from the oracle API.
type oracleErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// parseOracleErrorBody attempts to parse an oracle error response body.
// Returns nil if the body is empty or cannot be parsed.
func parseOracleErrorBody(body io.Reader) *oracleErrorResponse {
	if body == nil {
		return nil
	}

	var errResp oracleErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBodyBytes)).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.Error.Message == "" && errResp.Error.Status == "" {
		return nil
	}

	return &errResp
}

// maxErrorBodyBytes caps how much of an error body is read for diagnostics.
const maxErrorBodyBytes = 4 << 10

// mapOracleError maps a failed oracle call to a domain error. Either resp or
// clientErr may be nil, never both.
func mapOracleError(resp *http.Response, clientErr error, serviceName string) error {
	if clientErr != nil {
		return mapOracleClientError(clientErr, serviceName)
	}

	if resp == nil {
		return domain.NewOracleError(serviceName, "no response received")
	}

	message := fmt.Sprintf("HTTP %d", resp.StatusCode)
	if errResp := parseOracleErrorBody(resp.Body); errResp != nil {
		if errResp.Error.Status != "" {
			message = fmt.Sprintf("%s: %s", errResp.Error.Status, errResp.Error.Message)
		} else {
			message = errResp.Error.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewOracleError(serviceName, "authentication failed: "+message)

	case http.StatusTooManyRequests:
		return domain.NewOracleError(serviceName, "quota exhausted: "+message)

	default:
		return domain.NewOracleError(serviceName, message)
	}
}

// mapOracleClientError translates transport-level errors to domain errors.
func mapOracleClientError(err error, serviceName string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return domain.NewOracleError(serviceName, "request timed out")

	case errors.Is(err, context.Canceled):
		return domain.NewOracleError(serviceName, "request canceled")

	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewOracleError(serviceName, "circuit breaker open")

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewOracleError(serviceName, fmt.Sprintf("max retries exceeded: %v", err))

	default:
		return domain.NewOracleError(serviceName, err.Error())
	}
}
