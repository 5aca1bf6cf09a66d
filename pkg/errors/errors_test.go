package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err      *StandardError
		expected int
	}{
		{NewInvalidRequest("bad", ""), http.StatusBadRequest},
		{NewValidationError("bad", "name"), http.StatusBadRequest},
		{NewInvalidInput("Quantity must be greater than zero."), http.StatusBadRequest},
		{NewUnauthorized("missing token", ""), http.StatusUnauthorized},
		{NewResourceNotFound("Cart not found with ID: 7"), http.StatusNotFound},
		{NewConflict("busy", ""), http.StatusConflict},
		{NewDatabaseError("insert", fmt.Errorf("disk full")), http.StatusInternalServerError},
		{NewInternalError("boom", nil), http.StatusInternalServerError},
		{NewStandardError("Whatever", "", ""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.HTTPStatus())
		})
	}
}

func TestNewValidationError_Details(t *testing.T) {
	err := NewValidationError("name is required", "name")

	assert.Equal(t, "Field: name", err.Details)
	assert.Equal(t, "name is required", err.Error())
}
