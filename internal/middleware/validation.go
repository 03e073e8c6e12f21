package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON decodes the request body into obj. On failure it writes a 400
// envelope and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		BadRequest(c, "Invalid request body", describeBindError(err))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters into obj. On failure it
// writes a 400 envelope and returns false.
func BindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		BadRequest(c, "Invalid query parameters", describeBindError(err))
		return false
	}
	return true
}

// PathID parses the named path parameter as an int64 id
func PathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		BadRequest(c, "Invalid "+name, name+" must be a valid number")
		return 0, false
	}
	return id, true
}

func describeBindError(err error) interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, formatValidationError(e))
	}
	return messages
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
