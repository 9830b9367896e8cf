package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel(" WARNING "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(LevelWarn, &buf)
	defer Init(LevelInfo, nil)

	Info("ui", "hidden %d", 1)
	assert.Empty(t, buf.String())

	Error("ui", errors.New("boom"), "form %q failed", "menu")
	out := buf.String()
	assert.Contains(t, out, `form \"menu\" failed`)
	assert.Contains(t, out, "subsystem=ui")
	assert.Contains(t, out, "error=boom")
}
