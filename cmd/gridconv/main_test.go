package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		env   string
		level slog.Level
	}{
		{envLocal, slog.LevelDebug},
		{envDev, slog.LevelInfo},
		{envProd, slog.LevelWarn},
		{"staging", slog.LevelError},
	}
	for _, tc := range tests {
		t.Run(tc.env, func(t *testing.T) {
			log := setupLogger(tc.env)
			assert.True(t, log.Enabled(ctx, tc.level))
			assert.False(t, log.Enabled(ctx, tc.level-1))
		})
	}
}

func TestRunExitCodes(t *testing.T) {
	t.Setenv("GRIDCONV_ENV", envProd)
	t.Setenv("GRIDCONV_PRECISION", "5")
	t.Setenv("GRIDCONV_ELLIPSOID", "wgs84")

	assert.Equal(t, 0, run([]string{"48.8582, 2.2945", "31U DQ 48251 11932"}, false))
	assert.Equal(t, 1, run([]string{"48.8582, 2.2945", "95, 0"}, false))
	assert.Equal(t, 0, run([]string{"31 N 448251 5411932"}, true))
}
