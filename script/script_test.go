package script

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/amp-labs/dict/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test error")

func TestExit(t *testing.T) {
	t.Parallel()

	err := Exit(42)
	require.Error(t, err)
	assert.Equal(t, "exit 42", err.Error())

	err = ExitWithError(errTest)
	assert.Equal(t, "exit 1: test error", err.Error())
	require.ErrorIs(t, err, errTest)

	err = ExitWithCode(3, errTest)
	assert.Equal(t, "exit 3: test error", err.Error())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	s := New("test")

	tests := []struct {
		name     string
		callback func(ctx context.Context) error
		want     int
	}{
		{name: "nil callback", callback: nil, want: 1},
		{name: "success", callback: func(context.Context) error { return nil }, want: 0},
		{name: "plain error", callback: func(context.Context) error { return errTest }, want: 1},
		{name: "exit code", callback: func(context.Context) error { return Exit(7) }, want: 7},
		{name: "exit with code", callback: func(context.Context) error { return ExitWithCode(2, errTest) }, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, s.exitCode(t.Context(), tt.callback))
		})
	}
}

//nolint:paralleltest // replaces the default slog logger
func TestRun_LoggerOptions(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer

	s := New("opts", LogLevel(slog.LevelWarn), LogOutput(&buf))

	code := s.run(func(ctx context.Context) error {
		logger.Get(ctx).Info("below the level")
		logger.Get(ctx).Warn("at the level")

		return Exit(4)
	})

	assert.Equal(t, 4, code)

	out := buf.String()
	assert.NotContains(t, out, "below the level")
	assert.Contains(t, out, "at the level")
	assert.Contains(t, out, "subsystem=opts")
}
