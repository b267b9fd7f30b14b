// internal/common/errors/handler.go
package errors

import (
	"github.com/gin-gonic/gin"
)

// ErrorHandler turns pipeline errors into HTTP error responses.
type ErrorHandler struct {
	logger Logger
	prefix string
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Detail string       `json:"detail"`
	Code   string       `json:"code"`
	Errors []FieldError `json:"errors,omitempty"`
}

// NewErrorHandler builds a handler; prefix is prepended to the detail of server-side failures.
func NewErrorHandler(logger Logger, prefix string) *ErrorHandler {
	return &ErrorHandler{logger: logger, prefix: prefix}
}

// Respond logs err and writes the matching status and body, aborting the gin chain.
func (h *ErrorHandler) Respond(c *gin.Context, err error) {
	stdErr := Normalize(err)
	status := stdErr.Status()

	h.logError(c, stdErr, status)

	c.AbortWithStatusJSON(status, h.Body(stdErr))
}

// Body builds the response body for stdErr without writing it.
func (h *ErrorHandler) Body(stdErr *StandardError) ErrorResponse {
	resp := ErrorResponse{Code: string(stdErr.Code)}

	switch stdErr.Code {
	case ErrCodeUnseenCategory:
		resp.Detail = stdErr.Details
	case ErrCodeValidationFailed:
		resp.Detail = stdErr.Message + ": " + stdErr.Details
		resp.Errors = stdErr.Fields
	case ErrCodeInvalidRequestBody:
		resp.Detail = stdErr.Message + ": " + stdErr.Details
	default:
		resp.Detail = stdErr.Message
		if h.prefix != "" {
			resp.Detail = h.prefix + ": " + stdErr.Message
		}
	}
	return resp
}

func (h *ErrorHandler) logError(c *gin.Context, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"status":        status,
		"errorCategory": GetErrorCategory(stdErr.Code),
		"path":          c.FullPath(),
	}
	if id := c.GetString("requestId"); id != "" {
		fields["requestId"] = id
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}

	if IsClientErrorCode(stdErr.Code) {
		h.logger.Warn("request rejected", fields)
		return
	}
	h.logger.Error("request failed", fields)
}
