package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"development", DevelopmentConfig(), false},
		{"debug level", Config{Level: "debug", OutputPaths: []string{"stderr"}}, false},
		{"bad level", Config{Level: "loud", OutputPaths: []string{"stderr"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, level)

	_, err = parseLevel("shouty")
	assert.Error(t, err)
}

func TestNewDefaultNeverNil(t *testing.T) {
	assert.NotNil(t, NewDefault())
	assert.NotNil(t, NewNop())
}

func TestChildLoggersKeepWrapper(t *testing.T) {
	log := NewNop()
	assert.NotNil(t, log.With(zap.String("k", "v")))
	assert.NotNil(t, log.Named("child"))
}

func TestTimerStops(t *testing.T) {
	log := NewNop()
	timer := log.Timed("op", zap.String("path", "/tmp/x"))
	assert.NotPanics(t, timer.Stop)
}
