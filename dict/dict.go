package dict

import (
	"log/slog"
	"math"

	"github.com/amp-labs/dict/compare"
	"github.com/amp-labs/dict/zero"
)

// maxEnumDepth is the largest value enumDepth may reach.
const maxEnumDepth = math.MaxUint

// Visitor is called by Enum once per entry, in insertion order. The container
// is passed along so the visitor can issue further reads against it.
// Returning true stops the enumeration.
type Visitor[K any, V any] func(d *Dict[K, V], key K, value V) (stop bool)

// Entry is one stored key/value pair.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Dict is a linear-scan associative container. Keys and values live in two
// parallel slices of equal length, kept in insertion order. Growth and
// shrinkage are exactly one slot per Set (of a new key) and Remove.
//
// The zero Dict is not usable; construct one with New, NewComparable or
// NewWithEquals.
type Dict[K any, V any] struct {
	keys      []K
	values    []V
	equals    func(a, b K) bool
	enumDepth uint
	lastErr   error
	freed     bool
	opts      options
}

// New creates an empty container whose keys are matched with ==.
//
// Key equality is Go value equality: structs compare field by field,
// pointers by address, and floating point NaN never matches itself.
func New[K comparable, V any](opts ...Option) *Dict[K, V] {
	return NewWithEquals[K, V](compare.Equal[K], opts...)
}

// NewComparable creates an empty container for keys that define their own
// equality through compare.Comparable.
func NewComparable[K compare.Comparable[K], V any](opts ...Option) *Dict[K, V] {
	return NewWithEquals[K, V](compare.Func[K](), opts...)
}

// NewWithEquals creates an empty container that matches keys with equals.
// The function must be an equivalence relation; it panics if equals is nil.
func NewWithEquals[K any, V any](equals func(a, b K) bool, opts ...Option) *Dict[K, V] {
	if equals == nil {
		panic("dict: nil equality function")
	}

	return &Dict[K, V]{
		equals: equals,
		opts:   newOptions(opts),
	}
}

// Name returns the name given with WithName, or "dict".
func (d *Dict[K, V]) Name() string {
	if d == nil {
		return defaultName
	}

	return d.opts.name
}

// Size returns the number of entries. It never fails; nil and freed
// containers report zero.
func (d *Dict[K, V]) Size() int {
	if !d.valid() {
		return 0
	}

	return len(d.keys)
}

// Get returns the value stored under key. If no entry matches, it returns
// the default value of V together with an error wrapping ErrKeyNotFound.
func (d *Dict[K, V]) Get(key K) (V, error) { //nolint:ireturn
	if !d.valid() {
		return zero.Value[V](), d.fail(OpGet, ErrInvalidContainer)
	}

	idx := d.indexOf(key)
	if idx < 0 {
		return zero.Value[V](), d.fail(OpGet, ErrKeyNotFound)
	}

	d.observe(OpGet, nil)

	return d.values[idx], nil
}

// Set inserts or updates the entry for key. An existing entry keeps its
// position and only has its value replaced; a new key is appended at the end.
// Set fails while any enumeration is active.
func (d *Dict[K, V]) Set(key K, value V) error {
	if !d.valid() {
		return d.fail(OpSet, ErrInvalidContainer)
	}

	if d.enumDepth > 0 {
		return d.fail(OpSet, ErrMutationWhileEnumerating)
	}

	if idx := d.indexOf(key); idx >= 0 {
		d.values[idx] = value
		d.observe(OpSet, nil)

		return nil
	}

	size := len(d.keys)

	keys := make([]K, size+1)
	copy(keys, d.keys)
	keys[size] = key

	values := make([]V, size+1)
	copy(values, d.values)
	values[size] = value

	d.keys, d.values = keys, values

	d.observe(OpSet, nil)

	return nil
}

// Remove deletes the entry for key and returns its value. Later entries move
// one position earlier, so relative order is preserved. If no entry matches,
// Remove returns the default value of V and an error wrapping ErrKeyNotFound.
// Remove fails while any enumeration is active.
func (d *Dict[K, V]) Remove(key K) (V, error) { //nolint:ireturn
	if !d.valid() {
		return zero.Value[V](), d.fail(OpRemove, ErrInvalidContainer)
	}

	if d.enumDepth > 0 {
		return zero.Value[V](), d.fail(OpRemove, ErrMutationWhileEnumerating)
	}

	idx := d.indexOf(key)
	if idx < 0 {
		return zero.Value[V](), d.fail(OpRemove, ErrKeyNotFound)
	}

	removed := d.values[idx]
	last := len(d.keys) - 1

	copy(d.keys[idx:], d.keys[idx+1:])
	copy(d.values[idx:], d.values[idx+1:])

	var (
		staleKey   K
		staleValue V
	)

	// Drop the stale tail so it doesn't pin whatever it references.
	d.keys[last] = staleKey
	d.values[last] = staleValue

	d.keys = d.keys[:last]
	d.values = d.values[:last]

	d.observe(OpRemove, nil)

	return removed, nil
}

// Enum calls visit for every entry in insertion order until visit returns
// true. While Enum runs, structural mutation of the container fails; reads
// and nested enumerations are allowed. The gate is released when Enum
// returns, even if visit panics, and the observer is notified either way.
// visit must not be nil.
//
// A container that has never stored an entry, or whose storage was released
// by Clear, has no storage to walk and Enum fails with ErrInvalidContainer.
// A container emptied by Remove keeps its storage and enumerates nothing.
func (d *Dict[K, V]) Enum(visit Visitor[K, V]) error {
	if !d.valid() || !d.hasStorage() {
		return d.fail(OpEnum, ErrInvalidContainer)
	}

	if err := d.beginEnum(OpEnum); err != nil {
		return err
	}

	defer d.endEnum(OpEnum)

	for i := 0; i < len(d.keys); i++ {
		if visit(d, d.keys[i], d.values[i]) {
			break
		}
	}

	return nil
}

// Exists reports whether an entry with an equal key is stored. It only fails
// for a nil or freed container.
func (d *Dict[K, V]) Exists(key K) (bool, error) {
	if !d.valid() {
		return false, d.fail(OpExists, ErrInvalidContainer)
	}

	d.observe(OpExists, nil)

	return d.indexOf(key) >= 0, nil
}

// Clear removes every entry and releases the backing storage. Clearing an
// empty container is a no-op. Clear fails while any enumeration is active.
func (d *Dict[K, V]) Clear() error {
	if err := d.clear(OpClear); err != nil {
		return err
	}

	d.observe(OpClear, nil)

	return nil
}

// Freed reports whether Free has released the container. A nil container
// counts as freed.
func (d *Dict[K, V]) Freed() bool {
	return d == nil || d.freed
}

// Free clears the container and marks it as released. Any later call other
// than Free returns ErrInvalidContainer (or the zero result for Size).
// Free on a nil container is a no-op. Like Clear, it fails while an
// enumeration is active, in which case the container stays usable.
func (d *Dict[K, V]) Free() error {
	if d == nil {
		return nil
	}

	if err := d.clear(OpFree); err != nil {
		return err
	}

	d.freed = true

	d.observe(OpFree, nil)

	return nil
}

// Enumerating reports whether an enumeration is in progress, i.e. whether
// structural mutation is currently refused.
func (d *Dict[K, V]) Enumerating() bool {
	return d != nil && d.enumDepth > 0
}

// LastError returns the most recent failure recorded by this container, or
// nil if none occurred since construction or the last ResetError.
func (d *Dict[K, V]) LastError() error {
	if d == nil {
		return nil
	}

	return d.lastErr
}

// ResetError forgets the last recorded failure.
func (d *Dict[K, V]) ResetError() {
	if d != nil {
		d.lastErr = nil
	}
}

func (d *Dict[K, V]) valid() bool {
	return d != nil && !d.freed
}

// hasStorage reports whether backing storage is allocated. Set allocates it,
// Clear and Free release it, and Remove never does.
func (d *Dict[K, V]) hasStorage() bool {
	return d.keys != nil
}

func (d *Dict[K, V]) indexOf(key K) int {
	for i := range d.keys {
		if d.equals(d.keys[i], key) {
			return i
		}
	}

	return -1
}

func (d *Dict[K, V]) clear(op Op) error {
	if !d.valid() {
		return d.fail(op, ErrInvalidContainer)
	}

	if d.enumDepth > 0 {
		return d.fail(op, ErrMutationWhileEnumerating)
	}

	d.keys = nil
	d.values = nil

	return nil
}

func (d *Dict[K, V]) beginEnum(op Op) error {
	if d.enumDepth == maxEnumDepth {
		return d.fail(op, ErrEnumerationDepthOverflow)
	}

	d.enumDepth++

	return nil
}

func (d *Dict[K, V]) endEnum(op Op) {
	d.enumDepth--

	d.observe(op, nil)
}

// fail records a failure of op and returns it wrapped around sentinel.
// A strict container without an error sink panics instead of returning.
func (d *Dict[K, V]) fail(op Op, sentinel error) error {
	err := opError(op, sentinel)

	if d == nil {
		return err
	}

	d.lastErr = err

	if d.opts.logger != nil {
		d.opts.logger.Debug("dict operation failed",
			slog.String("dict", d.opts.name),
			slog.String("op", string(op)),
			slog.String("kind", KindOf(err).String()),
			slog.Any("error", err))
	}

	d.observe(op, err)

	if d.opts.sink != nil {
		*d.opts.sink = err
	} else if d.opts.strict {
		panic(err)
	}

	return err
}

func (d *Dict[K, V]) observe(op Op, err error) {
	if d.opts.observer == nil {
		return
	}

	d.opts.observer.Observe(Event{
		Name: d.opts.name,
		Op:   op,
		Size: d.Size(),
		Err:  err,
	})
}
