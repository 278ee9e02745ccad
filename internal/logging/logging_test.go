package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		verbose bool
		debug   bool
		warn    bool
	}{
		{verbose: false, debug: false, warn: true},
		{verbose: true, debug: true, warn: true},
	}

	for _, tt := range tests {
		logger := NewLogger(tt.verbose)
		core := logger.Desugar().Core()
		if got := core.Enabled(zapcore.DebugLevel); got != tt.debug {
			t.Errorf("verbose=%v: debug enabled = %v, want %v", tt.verbose, got, tt.debug)
		}
		if got := core.Enabled(zapcore.WarnLevel); got != tt.warn {
			t.Errorf("verbose=%v: warn enabled = %v, want %v", tt.verbose, got, tt.warn)
		}
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Infow("ignored", "key", "value")
	if logger.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected nop logger to be disabled")
	}
}
