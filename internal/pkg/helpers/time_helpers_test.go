package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 15*time.Second, ParseDuration("15s", time.Second))
	assert.Equal(t, time.Second, ParseDuration("", time.Second))
	assert.Equal(t, time.Second, ParseDuration("soon", time.Second))
	assert.Equal(t, time.Second, ParseDuration("-5s", time.Second))
}
