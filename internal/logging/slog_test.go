package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{"info level drops debug", false, false},
		{"debug level keeps debug", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewConsoleLogger(&buf, tt.debug)
			ctx := context.Background()

			log.Debug(ctx, "cache refreshed", "clients", 3)
			log.Info(ctx, "client added", "client_id", "c1")
			log.Warn(ctx, "server offline")
			log.Error(ctx, "save failed", "key", "@jobs")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, strings.Contains(out, "msg=\"cache refreshed\""))
			assert.Contains(t, out, "level=INFO msg=\"client added\" client_id=c1")
			assert.Contains(t, out, "level=WARN msg=\"server offline\"")
			assert.Contains(t, out, "level=ERROR msg=\"save failed\" key=@jobs")
			assert.NotContains(t, out, "time=")
		})
	}
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, false).With("module", "data")

	log.Info(context.Background(), "invoice added", "number", "INV-0001")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "module=data")
	assert.Contains(t, lines[0], "number=INV-0001")
}

func TestNop(t *testing.T) {
	log := Nop().With("module", "x")
	ctx := context.Background()
	assert.NotPanics(t, func() {
		log.Debug(ctx, "a")
		log.Info(ctx, "b")
		log.Warn(ctx, "c")
		log.Error(ctx, "d")
	})
}
