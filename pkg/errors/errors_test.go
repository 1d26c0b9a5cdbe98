package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", &ErrValidation{Message: "bad"}, http.StatusBadRequest},
		{"unauthorized", &ErrUnauthorized{}, http.StatusUnauthorized},
		{"forbidden", &ErrForbidden{}, http.StatusForbidden},
		{"not found", &ErrNotFound{Resource: "product", ID: "1"}, http.StatusNotFound},
		{"conflict", &ErrConflict{}, http.StatusConflict},
		{"wrapped not found", fmt.Errorf("lookup: %w", &ErrNotFound{Resource: "category", ID: "7"}), http.StatusNotFound},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("x: %w", &ErrNotFound{})))
	assert.False(t, IsNotFound(&ErrConflict{}))
	assert.True(t, IsConflict(&ErrConflict{Message: "dup"}))
	assert.Equal(t, "dup", (&ErrConflict{Message: "dup"}).Error())
	assert.Equal(t, "product not found: abc", (&ErrNotFound{Resource: "product", ID: "abc"}).Error())
}
