package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("planner")
	assert.NotNil(t, l)
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"scenario": "base"})
	l.Infof("info %s", "run")
	l.Warnf("warn")
	l.Errorf("error")

	t.Setenv("APP_ENV", "prod")
	assert.NotNil(t, New("planner"))
}
