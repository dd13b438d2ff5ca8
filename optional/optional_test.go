package optional_test

import (
	"strconv"
	"testing"

	"github.com/amp-labs/dict/optional"
	"github.com/stretchr/testify/assert"
)

func TestSome(t *testing.T) {
	t.Parallel()

	opt := optional.Some(42)

	assert.True(t, opt.NonEmpty())
	assert.False(t, opt.Empty())

	val, ok := opt.Get()
	assert.True(t, ok)
	assert.Equal(t, 42, val)
	assert.Equal(t, 42, opt.GetOrElse(7))
	assert.Equal(t, 42, opt.GetOrPanic())
	assert.Equal(t, "Some(42)", opt.String())
}

func TestNone(t *testing.T) {
	t.Parallel()

	opt := optional.None[string]()

	assert.True(t, opt.Empty())

	val, ok := opt.Get()
	assert.False(t, ok)
	assert.Empty(t, val)
	assert.Equal(t, "fallback", opt.GetOrElse("fallback"))
	assert.Equal(t, "None", opt.String())
	assert.Panics(t, func() { opt.GetOrPanic() })
}

func TestAll(t *testing.T) {
	t.Parallel()

	var seen []int

	for v := range optional.Some(3).All() {
		seen = append(seen, v)
	}

	for v := range optional.None[int]().All() {
		seen = append(seen, v)
	}

	assert.Equal(t, []int{3}, seen)
}

func TestMap(t *testing.T) {
	t.Parallel()

	assert.Equal(t, optional.Some("12"), optional.Map(optional.Some(12), strconv.Itoa))
	assert.True(t, optional.Map(optional.None[int](), strconv.Itoa).Empty())
}
