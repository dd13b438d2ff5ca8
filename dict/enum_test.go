package dict_test

import (
	"testing"

	"github.com/amp-labs/dict/dict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filled(t *testing.T, keys ...string) *dict.Dict[string, int] {
	t.Helper()

	d := dict.New[string, int]()
	for i, k := range keys {
		require.NoError(t, d.Set(k, i))
	}

	return d
}

func TestDict_Enum(t *testing.T) {
	t.Parallel()

	t.Run("visits every entry exactly once in order", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "a", "b", "c", "d")

		var visited []dict.Entry[string, int]

		err := d.Enum(func(_ *dict.Dict[string, int], key string, value int) bool {
			visited = append(visited, dict.Entry[string, int]{Key: key, Value: value})

			return false
		})

		require.NoError(t, err)
		assert.Equal(t, d.Entries(), visited)
		assert.False(t, d.Enumerating())
	})

	t.Run("container without storage fails", func(t *testing.T) {
		t.Parallel()

		cleared := filled(t, "a", "b")
		require.NoError(t, cleared.Clear())

		for name, d := range map[string]*dict.Dict[string, int]{
			"fresh":   dict.New[string, int](),
			"cleared": cleared,
		} {
			calls := 0

			err := d.Enum(func(*dict.Dict[string, int], string, int) bool {
				calls++

				return false
			})

			require.ErrorIs(t, err, dict.ErrInvalidContainer, name)
			assert.Equal(t, dict.KindInvalidContainer, dict.KindOf(err), name)
			assert.Equal(t, 0, calls, name)
			assert.False(t, d.Enumerating(), name)
		}
	})

	t.Run("container emptied by remove visits nothing", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "a")

		_, err := d.Remove("a")
		require.NoError(t, err)

		calls := 0

		err = d.Enum(func(*dict.Dict[string, int], string, int) bool {
			calls++

			return false
		})

		require.NoError(t, err)
		assert.Equal(t, 0, calls)
	})

	t.Run("observer is notified when the visitor panics", func(t *testing.T) {
		t.Parallel()

		var events []dict.Event

		d := dict.New[string, int](dict.WithObserver(dict.ObserverFunc(func(e dict.Event) {
			events = append(events, e)
		})))
		require.NoError(t, d.Set("a", 1))

		assert.Panics(t, func() {
			_ = d.Enum(func(*dict.Dict[string, int], string, int) bool {
				panic("boom")
			})
		})

		require.Len(t, events, 2)
		assert.Equal(t, dict.Event{Name: "dict", Op: dict.OpEnum, Size: 1}, events[1])
	})

	t.Run("visitor can stop early", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "a", "b", "c")

		var visited []string

		err := d.Enum(func(_ *dict.Dict[string, int], key string, _ int) bool {
			visited = append(visited, key)

			return key == "b"
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, visited)
		assert.Equal(t, uint(0), dict.EnumDepth(d))
	})

	t.Run("mutation from a visitor fails and leaves contents unchanged", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "a", "b")
		before := d.Entries()

		var errs []error

		err := d.Enum(func(inner *dict.Dict[string, int], key string, _ int) bool {
			errs = append(errs, inner.Set(key, 100))
			errs = append(errs, inner.Set("new", 1))

			_, removeErr := inner.Remove(key)
			errs = append(errs, removeErr)
			errs = append(errs, inner.Clear())
			errs = append(errs, inner.Free())
			errs = append(errs, inner.RemoveAll(key))

			return false
		})

		require.NoError(t, err)
		require.Len(t, errs, 12)

		for _, e := range errs {
			require.ErrorIs(t, e, dict.ErrMutationWhileEnumerating)
			assert.Equal(t, dict.KindMutationWhileEnumerating, dict.KindOf(e))
		}

		assert.Equal(t, before, d.Entries())

		// The gate opens again once enumeration is over.
		require.NoError(t, d.Set("c", 3))
		assert.Equal(t, 3, d.Size())
	})

	t.Run("visitor can issue reads and nested enumerations", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "a", "b", "c")

		pairs := 0

		err := d.Enum(func(outer *dict.Dict[string, int], key string, value int) bool {
			got, getErr := outer.Get(key)
			require.NoError(t, getErr)
			assert.Equal(t, value, got)

			found, existsErr := outer.Exists(key)
			require.NoError(t, existsErr)
			assert.True(t, found)

			innerErr := outer.Enum(func(inner *dict.Dict[string, int], _ string, _ int) bool {
				pairs++

				assert.Equal(t, uint(2), dict.EnumDepth(inner))

				return false
			})
			require.NoError(t, innerErr)

			return false
		})

		require.NoError(t, err)
		assert.Equal(t, 9, pairs)
		assert.Equal(t, uint(0), dict.EnumDepth(d))
	})

	t.Run("gate is released when the visitor panics", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "a")

		assert.Panics(t, func() {
			_ = d.Enum(func(*dict.Dict[string, int], string, int) bool {
				panic("boom")
			})
		})

		assert.False(t, d.Enumerating())
		assert.NoError(t, d.Set("b", 1))
	})

	t.Run("depth overflow fails without visiting", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "a")
		dict.SetEnumDepth(d, dict.MaxEnumDepth)

		calls := 0

		err := d.Enum(func(*dict.Dict[string, int], string, int) bool {
			calls++

			return false
		})

		require.ErrorIs(t, err, dict.ErrEnumerationDepthOverflow)
		assert.Equal(t, dict.KindEnumerationDepthOverflow, dict.KindOf(err))
		assert.Equal(t, 0, calls)
		assert.Equal(t, uint(dict.MaxEnumDepth), dict.EnumDepth(d))
	})
}

func TestDict_Seq(t *testing.T) {
	t.Parallel()

	t.Run("ranges in insertion order", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "x", "y", "z")

		var keys []string

		for key, value := range d.Seq() {
			keys = append(keys, key)

			assert.Equal(t, d.GetOrElse(key, -1), value)
		}

		assert.Equal(t, []string{"x", "y", "z"}, keys)
	})

	t.Run("mutation inside the loop fails", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "x", "y")

		for key := range d.Seq() {
			require.ErrorIs(t, d.Set(key+"!", 1), dict.ErrMutationWhileEnumerating)
			assert.True(t, d.Enumerating())
		}

		assert.Equal(t, 2, d.Size())
	})

	t.Run("break releases the gate", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "x", "y", "z")

		for range d.Seq() {
			break
		}

		assert.False(t, d.Enumerating())
		assert.NoError(t, d.Clear())
	})

	t.Run("set all from own iterator fails", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "x")

		err := d.SetAll(d.Seq())
		require.ErrorIs(t, err, dict.ErrMutationWhileEnumerating)
		assert.False(t, d.Enumerating())
	})

	t.Run("fresh container yields nothing and records failure", func(t *testing.T) {
		t.Parallel()

		d := dict.New[string, int]()

		for range d.Seq() {
			t.Fatal("should not yield")
		}

		require.ErrorIs(t, d.LastError(), dict.ErrInvalidContainer)
		assert.False(t, d.Enumerating())
	})

	t.Run("invalid container yields nothing and records failure", func(t *testing.T) {
		t.Parallel()

		d := filled(t, "x")
		require.NoError(t, d.Free())

		for range d.Seq() {
			t.Fatal("should not yield")
		}

		require.ErrorIs(t, d.LastError(), dict.ErrInvalidContainer)
	})
}
