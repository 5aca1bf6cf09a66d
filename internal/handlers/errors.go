package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"storefront-service/internal/domain"
	"storefront-service/internal/validation"
	stderrors "storefront-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// toStandardError maps domain and validation failures onto the API error shape.
// Unclassified errors become InternalError without leaking their text.
func toStandardError(err error) *stderrors.StandardError {
	var stdErr *stderrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}

	var fieldErr *validation.FieldError
	if errors.As(err, &fieldErr) {
		return stderrors.NewValidationError(fieldErr.Message, fieldErr.Field)
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Kind {
		case domain.KindNotFound:
			return stderrors.NewResourceNotFound(domainErr.Message)
		case domain.KindInvalidInput:
			return stderrors.NewInvalidInput(domainErr.Message)
		case domain.KindConflict:
			return stderrors.NewConflict(domainErr.Message, "")
		}
	}

	return stderrors.NewInternalError("internal server error", nil)
}

// fail attaches err to the context for middleware.ErrorHandler
func fail(c *gin.Context, err error) {
	_ = c.Error(toStandardError(err))
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, stderrors.NewInvalidRequest(fmt.Sprintf("invalid %s", name), fmt.Sprintf("Path: %s=%s", name, c.Param(name)))
	}
	return id, nil
}

func queryInt64(c *gin.Context, name string) (int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, stderrors.NewInvalidRequest(fmt.Sprintf("missing query parameter %s", name), fmt.Sprintf("Query: %s", name))
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, stderrors.NewInvalidRequest(fmt.Sprintf("invalid query parameter %s", name), fmt.Sprintf("Query: %s=%s", name, raw))
	}
	return value, nil
}

func optionalQueryInt64(c *gin.Context, name string) (*int64, error) {
	if raw, ok := c.GetQuery(name); !ok || raw == "" {
		return nil, nil
	}
	value, err := queryInt64(c, name)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	value, err := queryInt64(c, name)
	if err != nil {
		return 0, err
	}
	return int(value), nil
}

// queryList accepts both repeated parameters and comma separated values
func queryList(c *gin.Context, name string) []string {
	values := make([]string, 0)
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	}
	return values
}
