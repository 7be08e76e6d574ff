package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Text string `validate:"required"`
}

func TestValidatorAccepts(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.Validate(&sample{Text: "hello"}))
}

func TestValidatorRejects(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&sample{})
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusBadRequest, he.Code)
}
