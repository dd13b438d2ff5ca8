package dict

import (
	"iter"
	"slices"

	"facette.io/natsort"
	errors2 "github.com/amp-labs/dict/errors"
	"github.com/amp-labs/dict/optional"
)

// Lookup returns Some(value) if key is stored and None otherwise. A missing
// key is not a failure and does not touch LastError.
func (d *Dict[K, V]) Lookup(key K) optional.Value[V] {
	if !d.valid() {
		_ = d.fail(OpLookup, ErrInvalidContainer)

		return optional.None[V]()
	}

	d.observe(OpLookup, nil)

	if idx := d.indexOf(key); idx >= 0 {
		return optional.Some(d.values[idx])
	}

	return optional.None[V]()
}

// GetOrElse returns the value stored under key, or fallback if there is none.
func (d *Dict[K, V]) GetOrElse(key K, fallback V) V { //nolint:ireturn
	return d.Lookup(key).GetOrElse(fallback)
}

// Seq returns an iterator over the entries in insertion order, for use with
// range-over-func:
//
//	for key, value := range d.Seq() {
//	    ...
//	}
//
// The loop holds the same mutation gate as Enum, so Set, Remove and Clear
// fail inside the loop body. If the container is invalid or the enumeration
// depth would overflow, the iterator yields nothing and the failure is
// recorded (LastError, error sink, observer). As with Enum, a container
// without storage (never filled, or cleared) counts as invalid.
func (d *Dict[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if !d.valid() || !d.hasStorage() {
			_ = d.fail(OpSeq, ErrInvalidContainer)

			return
		}

		if err := d.beginEnum(OpSeq); err != nil {
			return
		}

		defer d.endEnum(OpSeq)

		for i := 0; i < len(d.keys); i++ {
			if !yield(d.keys[i], d.values[i]) {
				break
			}
		}
	}
}

// Keys returns a copy of the stored keys in insertion order.
func (d *Dict[K, V]) Keys() []K {
	if !d.valid() {
		return nil
	}

	return slices.Clone(d.keys)
}

// Values returns a copy of the stored values in insertion order.
func (d *Dict[K, V]) Values() []V {
	if !d.valid() {
		return nil
	}

	return slices.Clone(d.values)
}

// Entries returns a copy of the stored entries in insertion order.
func (d *Dict[K, V]) Entries() []Entry[K, V] {
	if !d.valid() {
		return nil
	}

	entries := make([]Entry[K, V], len(d.keys))
	for i := range d.keys {
		entries[i] = Entry[K, V]{Key: d.keys[i], Value: d.values[i]}
	}

	return entries
}

// Clone returns an independent container with the same entries, in the same
// order, sharing this container's equality function and options. Keys and
// values are copied shallowly. Cloning is allowed during enumeration; the
// clone starts with no active enumeration and no recorded failure.
func (d *Dict[K, V]) Clone() (*Dict[K, V], error) {
	if !d.valid() {
		return nil, d.fail(OpClone, ErrInvalidContainer)
	}

	clone := &Dict[K, V]{
		keys:   slices.Clone(d.keys),
		values: slices.Clone(d.values),
		equals: d.equals,
		opts:   d.opts,
	}

	d.observe(OpClone, nil)

	return clone, nil
}

// SetAll calls Set for every pair produced by entries, stopping at the
// first failure.
func (d *Dict[K, V]) SetAll(entries iter.Seq2[K, V]) error {
	if !d.valid() {
		return d.fail(OpSetAll, ErrInvalidContainer)
	}

	for key, value := range entries {
		if err := d.Set(key, value); err != nil {
			return err
		}
	}

	return nil
}

// RemoveAll removes every given key that is present. Keys that are missing
// do not stop the operation; their failures are collected and returned as a
// single joined error once all keys have been processed.
func (d *Dict[K, V]) RemoveAll(keys ...K) error {
	if !d.valid() {
		return d.fail(OpRemoveAll, ErrInvalidContainer)
	}

	if d.enumDepth > 0 {
		return d.fail(OpRemoveAll, ErrMutationWhileEnumerating)
	}

	var errs errors2.Collection

	for _, key := range keys {
		_, err := d.Remove(key)
		errs.Add(err)
	}

	return errs.GetError()
}

// NaturalSortedKeys returns the keys of a string-keyed container sorted in
// natural order ("key2" before "key10"). The container itself keeps its
// insertion order.
func NaturalSortedKeys[V any](d *Dict[string, V]) ([]string, error) {
	if !d.valid() {
		return nil, d.fail(OpSeq, ErrInvalidContainer)
	}

	keys := d.Keys()

	natsort.Sort(keys)

	return keys, nil
}
