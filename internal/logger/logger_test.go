package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func Test_New(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		encoding string
		wantErr  bool
		enabled  zapcore.Level
		disabled zapcore.Level
	}{
		{"json info", "info", "json", false, zapcore.InfoLevel, zapcore.DebugLevel},
		{"console debug", "debug", "console", false, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn", "WARN", "json", false, zapcore.WarnLevel, zapcore.InfoLevel},
		{"bad level", "loud", "json", true, 0, 0},
		{"bad encoding", "info", "xml", true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.level, tt.encoding)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.enabled))
			assert.False(t, log.Core().Enabled(tt.disabled))
		})
	}
}
