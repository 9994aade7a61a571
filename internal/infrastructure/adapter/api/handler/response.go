package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/middleware"
)

// StatusFor maps an error kind to its HTTP status
func StatusFor(err error) int {
	switch errs.Kind(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrBusinessRule:
		return http.StatusUnprocessableEntity
	case errs.ErrStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Server-side failures are logged and their detail is not exposed.
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := StatusFor(err)
	message := err.Error()

	if status >= http.StatusInternalServerError {
		fields := map[string]any{
			"path":       c.FullPath(),
			"method":     c.Request.Method,
			"status":     status,
			"error":      err.Error(),
			"error_code": errs.ErrorCode(err),
			"request_id": c.GetString(middleware.RequestIDKey),
		}
		if errs.IsCompensationFailure(err) {
			fields["reconciliation_required"] = true
		}
		logger.Error("Request failed", fields)

		message = "internal server error"
		if status == http.StatusServiceUnavailable {
			message = "storage unavailable"
		}
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewError(message))
}

// respondBindError writes a 400 for a body or query that failed to bind
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewError(bindMessage(err)))
}

func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request: " + err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "min", "max":
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		case "notfuture":
			parts = append(parts, fmt.Sprintf("%s cannot be in the future", fe.Field()))
		case "nefield":
			parts = append(parts, fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
		}
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// pathID parses the :id parameter. It writes a 400 and returns false when it is not a positive integer.
func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewError("id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// pageQuery binds the listing query string
func pageQuery(c *gin.Context) (entity.PageQuery, bool) {
	var req dto.PageRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return entity.PageQuery{}, false
	}
	return req.Query(), true
}

// belowMinimum writes a 400 when amount is under minimum
func belowMinimum(c *gin.Context, field string, amount, minimum int64) bool {
	if amount >= minimum {
		return false
	}
	message := fmt.Sprintf("%s: %s must be at least %d", errs.ErrBelowMinimum.Error(), field, minimum)
	_ = c.Error(errs.ErrBelowMinimum)
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewError(message))
	return true
}
