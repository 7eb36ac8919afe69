package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	friendshipdomain "github.com/screenclash/screenclash/internal/friendship/domain"
	notificationdomain "github.com/screenclash/screenclash/internal/notification/domain"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
	visiondomain "github.com/screenclash/screenclash/internal/vision/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInternal           = errors.New("internal_error")
	ErrNotFound           = errors.New("not_found")
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrRateLimited        = errors.New("rate_limited")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, notificationdomain.ErrNotFriends):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: "too many requests",
		}
	case errors.Is(err, visiondomain.ErrExtractionFailed):
		return http.StatusBadGateway, errorPayload{
			Type:    "extraction_failed",
			Message: "screenshot extraction failed",
		}
	case errors.Is(err, ErrServiceUnavailable),
		errors.Is(err, visiondomain.ErrNotConfigured),
		errors.Is(err, screentimedomain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, userdomain.ErrInvalidUID),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, friendshipdomain.ErrInvalidRequest),
		errors.Is(err, friendshipdomain.ErrInvalidAction),
		errors.Is(err, friendshipdomain.ErrSelfRequest),
		errors.Is(err, screentimedomain.ErrInvalidUser),
		errors.Is(err, screentimedomain.ErrInvalidEntry),
		errors.Is(err, screentimedomain.ErrStaleScreenshot),
		errors.Is(err, visiondomain.ErrInvalidImage),
		errors.Is(err, notificationdomain.ErrInvalidReminder):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, friendshipdomain.ErrAlreadyFriends),
		errors.Is(err, friendshipdomain.ErrDuplicateRequest),
		errors.Is(err, screentimedomain.ErrDuplicateUpload),
		errors.Is(err, notificationdomain.ErrAlreadyUploaded):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, screentimedomain.ErrDuplicateUpload):
		return "screen time already uploaded today"
	case errors.Is(err, friendshipdomain.ErrAlreadyFriends):
		return "already friends"
	case errors.Is(err, friendshipdomain.ErrDuplicateRequest):
		return "friend request already pending"
	case errors.Is(err, notificationdomain.ErrAlreadyUploaded):
		return "friend already uploaded today"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, friendshipdomain.ErrRequestNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}

// classifyErrorForLog feeds the request logger's error_type/error_code
// fields without re-mapping status codes.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}
