package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/hogwarts/school/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP statuses and writes the error envelope
func HandleAPIError(c *gin.Context, err error) {
	var (
		status int
		detail *dto.ErrorDetail
	)

	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrFacultyNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Faculty not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, detail = http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrInvalidFacultyReference):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Faculty does not exist").
			WithField("faculty.id")
	case errors.Is(err, apperrors.ErrValidationFailed):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	case errors.Is(err, apperrors.ErrBadRequest):
		status, detail = http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Bad request")
	default:
		status, detail = http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		detail.Message = custom.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Str("request_id", GetRequestID(c)).Msg("Unhandled error")
	}

	resp := dto.NewErrorResponse(detail)
	resp.RequestID = GetRequestID(c)
	c.AbortWithStatusJSON(status, resp)
}

// BadRequest writes a 400 envelope for malformed input that never reached a service
func BadRequest(c *gin.Context, message string, details interface{}) {
	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	if details != nil {
		detail.WithDetails(details)
	}
	resp := dto.NewErrorResponse(detail)
	resp.RequestID = GetRequestID(c)
	c.AbortWithStatusJSON(http.StatusBadRequest, resp)
}
