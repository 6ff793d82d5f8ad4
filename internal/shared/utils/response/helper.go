package response

import (
	"errors"
	"net/http"

	"cinebook/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a domain error to its HTTP representation. Expected
// failures carry their kind and retryability; anything else becomes an
// opaque 500.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		RespondJSON(c, "error", appErr.StatusCode(), appErr.Message, nil, gin.H{
			"kind":      appErr.Kind,
			"retryable": appErr.Retryable,
		})
		return
	}

	RespondJSON(c, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
}

// BindingErrors extracts per-field messages from a gin binding failure.
func BindingErrors(err error) interface{} {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = fieldErr.Tag()
		}
		return fields
	}
	return err.Error()
}
