package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNewLevelParsing(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, New("debug").GetLevel())
	assert.Equal(t, zerolog.WarnLevel, New("warn").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New("nonsense").GetLevel(), "bad level falls back to info")
}

func TestContextRoundTrip(t *testing.T) {
	logger := New("error")
	ctx := WithContext(context.Background(), logger)
	assert.Equal(t, zerolog.ErrorLevel, FromContext(ctx).GetLevel())
}
