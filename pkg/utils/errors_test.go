package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAcquisitionError(t *testing.T) {
	assert.True(t, IsAcquisitionError(NewAcquisitionError("connection refused")))
	assert.True(t, IsAcquisitionError(NewNavigationError("timed out after 35s")))

	assert.False(t, IsAcquisitionError(NewValidationError("bad url")))
	assert.False(t, IsAcquisitionError(NewCaptchaError("solve failed")))
	assert.False(t, IsAcquisitionError(fmt.Errorf("plain error")))
	assert.False(t, IsAcquisitionError(nil))
}

func TestIsAcquisitionErrorUnwrapsChains(t *testing.T) {
	wrapped := fmt.Errorf("scrape failed: %w", NewNavigationError("timeout"))
	assert.True(t, IsAcquisitionError(wrapped))
}

func TestCustomErrorMessage(t *testing.T) {
	err := NewAcquisitionError("dns lookup failed")
	assert.Equal(t, "Page acquisition failed: dns lookup failed", err.Error())

	bare := NewInternalServerError("boom")
	assert.Equal(t, "boom", bare.Error())
}
