package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	err := fmt.Errorf("fetch stylesheet: %w", &StatusError{URL: "https://example.com", StatusCode: 404})
	assert.Equal(t, 404, StatusCode(err))
	assert.Contains(t, err.Error(), "404 Not Found")

	assert.Equal(t, 0, StatusCode(fmt.Errorf("dial: %w", ErrTransport)))
	assert.True(t, errors.Is(fmt.Errorf("dial: %w", ErrTransport), ErrTransport))
}
