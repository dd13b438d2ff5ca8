// Package dict provides Dict, a small strongly-typed associative container
// that does not depend on hashing. Entries are kept in two parallel slices in
// insertion order and every lookup is a linear scan, which makes the container
// a good fit for small collections whose keys may not be hashable at all.
//
// Each instantiation Dict[K, V] is its own static type. Keys are matched with
// an equality function chosen at construction time: == for comparable keys
// (New), the key's own Equals method (NewComparable), or a caller-supplied
// function (NewWithEquals).
//
// # Enumeration gate
//
// While an enumeration (Enum or Seq) is in progress, the container refuses
// structural mutation: Set, Remove, Clear and Free fail with
// ErrMutationWhileEnumerating and leave the contents untouched. Read
// operations, including nested enumerations, remain available to visitors.
//
// Storage is allocated by the first Set and released by Clear. Enumerating a
// container that has no storage fails with ErrInvalidContainer; one emptied
// by Remove still has storage and simply visits nothing.
//
// # Errors
//
// Every operation returns its failure directly. Failures wrap one of the
// package sentinels and KindOf recovers the kind. Read operations still
// return a well-defined default value alongside the error, so callers that
// ignore the error receive zero.Value[V]() rather than garbage.
//
// A caller-owned error sink may be attached with WithErrorSink; each failure
// is then also written into it. WithStrictErrors turns a failure on a
// container without a sink into a panic, for callers that want unhandled
// errors to be fatal.
//
// A Dict is not safe for concurrent use. It assumes a single owner.
package dict
