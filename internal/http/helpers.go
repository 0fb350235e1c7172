package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/readhub/library/internal/auth"
	"github.com/readhub/library/internal/entities"
	"github.com/readhub/library/internal/observability"
	"github.com/readhub/library/internal/services"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"` // binding errors
}

// MessageResponse is returned by informational endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondInvalidBody reports a body that failed to bind or validate.
func respondInvalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, logger *zap.Logger, err error, context string) {
	logger.Error("internal error",
		zap.String("operation", context),
		zap.String("request_id", c.GetString(observability.ContextKeyRequestID)),
		zap.Error(err))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError translates a domain error into its HTTP status. resource names
// the missing entity in 404 messages.
func respondError(c *gin.Context, logger *zap.Logger, err error, resource, context string) {
	var locked *services.LockedOutError
	switch {
	case errors.Is(err, entities.ErrNotFound):
		respondNotFound(c, resource)
	case entities.IsConflict(err), errors.Is(err, auth.ErrPasswordTooLong):
		respondBadRequest(c, err.Error())
	case errors.Is(err, entities.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.As(err, &locked):
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(locked)))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: err.Error()})
	default:
		respondInternalError(c, logger, err, context)
	}
}

func retryAfterSeconds(err *services.LockedOutError) int {
	secs := int(math.Ceil(err.RetryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseQueryID extracts and validates an unsigned integer ID from query parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseQueryID(c *gin.Context, paramName string) (uint, bool) {
	idStr, present := c.GetQuery(paramName)
	if !present {
		respondBadRequest(c, paramName+" is required")
		return 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalQueryID is parseQueryID for filters: an absent parameter yields nil.
func parseOptionalQueryID(c *gin.Context, paramName string) (*uint, bool) {
	if _, present := c.GetQuery(paramName); !present {
		return nil, true
	}
	id, ok := parseQueryID(c, paramName)
	if !ok {
		return nil, false
	}
	return &id, true
}
