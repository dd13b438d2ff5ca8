package dict

import (
	"errors"
	"fmt"
)

var (
	// ErrKeyNotFound is returned by Get and Remove when no entry has an equal key.
	ErrKeyNotFound = errors.New("key not found")

	// ErrMutationWhileEnumerating is returned by Set, Remove, Clear and Free
	// when at least one enumeration of the container is in progress.
	ErrMutationWhileEnumerating = errors.New("cannot mutate while enumerating")

	// ErrInvalidContainer is returned when an operation is invoked on a nil
	// container, or on one that has already been freed.
	ErrInvalidContainer = errors.New("invalid container")

	// ErrEnumerationDepthOverflow is returned by Enum and Seq when the
	// enumeration depth counter cannot be incremented any further.
	ErrEnumerationDepthOverflow = errors.New("enumeration depth overflow")
)

// Kind classifies a container failure. The zero value, KindNone, means no failure.
type Kind int

const (
	KindNone Kind = iota
	KindKeyNotFound
	KindMutationWhileEnumerating
	KindInvalidContainer
	KindEnumerationDepthOverflow
	KindUnknown
)

var kindNames = map[Kind]string{ //nolint:gochecknoglobals
	KindNone:                     "none",
	KindKeyNotFound:              "key_not_found",
	KindMutationWhileEnumerating: "mutation_while_enumerating",
	KindInvalidContainer:         "invalid_container",
	KindEnumerationDepthOverflow: "enumeration_depth_overflow",
	KindUnknown:                  "unknown",
}

// String returns the snake_case name of the kind, suitable for metric labels.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return kindNames[KindUnknown]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(name string) (Kind, bool) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, true
		}
	}

	return KindUnknown, false
}

// KindOf reports which failure kind err wraps. A nil error yields KindNone,
// and an error that wraps none of the package sentinels yields KindUnknown.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrKeyNotFound):
		return KindKeyNotFound
	case errors.Is(err, ErrMutationWhileEnumerating):
		return KindMutationWhileEnumerating
	case errors.Is(err, ErrInvalidContainer):
		return KindInvalidContainer
	case errors.Is(err, ErrEnumerationDepthOverflow):
		return KindEnumerationDepthOverflow
	default:
		return KindUnknown
	}
}

// Op names a container operation in errors, logs and observer events.
type Op string

const (
	OpGet       Op = "get"
	OpSet       Op = "set"
	OpRemove    Op = "remove"
	OpEnum      Op = "enum"
	OpExists    Op = "exists"
	OpClear     Op = "clear"
	OpFree      Op = "free"
	OpLookup    Op = "lookup"
	OpSeq       Op = "seq"
	OpClone     Op = "clone"
	OpSetAll    Op = "set_all"
	OpRemoveAll Op = "remove_all"
)

func opError(op Op, sentinel error) error {
	return fmt.Errorf("dict %s: %w", op, sentinel)
}
