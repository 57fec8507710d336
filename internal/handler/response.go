package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"capprice/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidSimulation):
		return http.StatusBadRequest, "INVALID_SIMULATION", err.Error()
	case errors.Is(err, domain.ErrRefineryRequired):
		return http.StatusBadRequest, "REFINERY_REQUIRED", "refinery is required when a net price is informed"
	case errors.Is(err, domain.ErrSimulationNotFound):
		return http.StatusNotFound, "SIMULATION_NOT_FOUND", "simulation not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrReportNotAvailable):
		return http.StatusNotFound, "REPORT_NOT_AVAILABLE", "simulation has no report"
	case errors.Is(err, domain.ErrWorkflowTimeout):
		return http.StatusGatewayTimeout, "WORKFLOW_TIMEOUT", "pricing workflow did not answer in time"
	case errors.Is(err, domain.ErrWorkflowUnavailable):
		return http.StatusBadGateway, "WORKFLOW_UNAVAILABLE", "pricing workflow is unavailable"
	case errors.Is(err, domain.ErrWorkflowEmptyResponse):
		return http.StatusBadGateway, "WORKFLOW_EMPTY_RESPONSE", "pricing workflow returned an empty response"
	case errors.Is(err, domain.ErrNoScenarios):
		return http.StatusBadGateway, "NO_SCENARIOS", "pricing workflow response contains no scenarios"
	case errors.Is(err, domain.ErrReportDeliveryFailed):
		return http.StatusBadGateway, "REPORT_DELIVERY_FAILED", "report could not be delivered"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response. Server-side
// failures are logged with the request ID.
func HandleError(c *gin.Context, logger *zap.Logger, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		logger.Error("request failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}
