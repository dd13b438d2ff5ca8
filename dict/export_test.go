package dict

// MaxEnumDepth exposes the enumeration depth limit to tests.
const MaxEnumDepth = maxEnumDepth

// SetEnumDepth forces the enumeration depth counter.
func SetEnumDepth[K any, V any](d *Dict[K, V], depth uint) {
	d.enumDepth = depth
}

// EnumDepth reads the enumeration depth counter.
func EnumDepth[K any, V any](d *Dict[K, V]) uint {
	return d.enumDepth
}

// Storage reports the length and capacity of the key and value slices.
func Storage[K any, V any](d *Dict[K, V]) (keysLen, keysCap, valuesLen, valuesCap int) {
	return len(d.keys), cap(d.keys), len(d.values), cap(d.values)
}
