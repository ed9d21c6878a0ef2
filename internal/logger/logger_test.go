package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"bogus", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log := New(tt.level, "json")
			if log.GetLevel() != tt.want {
				t.Errorf("expected level %v, got %v", tt.want, log.GetLevel())
			}
			if _, ok := log.Formatter.(*logrus.JSONFormatter); !ok {
				t.Errorf("expected JSON formatter, got %T", log.Formatter)
			}
		})
	}
}
