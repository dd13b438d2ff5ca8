package envutil_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/amp-labs/dict/envutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTooSmall = errors.New("too small")

func TestString(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "DICT_TEST_NAME", "users")

	val, err := envutil.String(ctx, "DICT_TEST_NAME").Value()
	require.NoError(t, err)
	assert.Equal(t, "users", val)

	_, err = envutil.String(t.Context(), "DICT_TEST_UNSET_VARIABLE").Value()
	require.ErrorIs(t, err, envutil.ErrEnvVarMissing)

	val, err = envutil.String(t.Context(), "DICT_TEST_UNSET_VARIABLE", envutil.Default("x")).Value()
	require.NoError(t, err)
	assert.Equal(t, "x", val)
}

func TestInt(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "DICT_TEST_COUNT", " 12 ")
	ctx = envutil.WithEnvOverride(ctx, "DICT_TEST_BAD", "twelve")

	assert.Equal(t, 12, envutil.Int(ctx, "DICT_TEST_COUNT").ValueOrElse(0))

	_, err := envutil.Int(ctx, "DICT_TEST_BAD").Value()
	require.ErrorIs(t, err, envutil.ErrBadEnvVar)
	assert.Equal(t, 7, envutil.Int(ctx, "DICT_TEST_BAD").ValueOrElse(7))

	validated := envutil.Int(ctx, "DICT_TEST_COUNT", envutil.Validate(func(n int) error {
		if n < 100 {
			return errTooSmall
		}

		return nil
	}))

	_, err = validated.Value()
	require.ErrorIs(t, err, errTooSmall)
	assert.False(t, validated.HasValue())
}

func TestBoolDurationLevel(t *testing.T) {
	t.Parallel()

	ctx := envutil.WithEnvOverride(t.Context(), "DICT_TEST_FLAG", "true")
	ctx = envutil.WithEnvOverride(ctx, "DICT_TEST_WAIT", "1500ms")
	ctx = envutil.WithEnvOverride(ctx, "DICT_TEST_LEVEL", "debug")

	assert.True(t, envutil.Bool(ctx, "DICT_TEST_FLAG").ValueOrElse(false))
	assert.Equal(t, 1500*time.Millisecond, envutil.Duration(ctx, "DICT_TEST_WAIT").ValueOrElse(0))
	assert.Equal(t, slog.LevelDebug, envutil.SlogLevel(ctx, "DICT_TEST_LEVEL").ValueOrElse(slog.LevelInfo))
	assert.Equal(t, "DICT_TEST_LEVEL", envutil.SlogLevel(ctx, "DICT_TEST_LEVEL").Key())
}
