package apperr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKindMatchesThroughWrapping(t *testing.T) {
	err := NotFound("intake not found")
	wrapped := fmt.Errorf("handling request: %w", err)

	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindValidation))
	assert.False(t, IsKind(fmt.Errorf("plain"), KindNotFound))
}

func TestUpstreamKeepsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Upstream(cause, "food service is unavailable")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "upstream_unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindStrings(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "upstream_unavailable", KindUpstream.String())
	assert.Equal(t, "configuration", KindConfiguration.String())
}
