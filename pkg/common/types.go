package common

import (
	"fmt"
	"strings"
)

// Key is the set of key types a dataset may use: fixed-width unsigned
// integers, totally ordered.
type Key interface {
	~uint32 | ~uint64
}

// KeyValue is the basic record stored in a sorted array. Value is a 64-bit
// payload; synthetic datasets assign the record's original input index.
type KeyValue[K Key] struct {
	Key   K
	Value uint64
}

func (kv KeyValue[K]) String() string {
	return fmt.Sprintf("KeyValue{Key: %d, Value: %d}", kv.Key, kv.Value)
}

// Lookup is a single benchmark probe: the key to search for and the
// aggregate every strategy is expected to return for it.
type Lookup[K Key] struct {
	Key      K
	Expected uint64
}

// DataType identifies the on-disk key width of a dataset file.
type DataType int

const (
	Uint32 DataType = iota
	Uint64
)

func (t DataType) String() string {
	switch t {
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	default:
		return fmt.Sprintf("DataType(%d)", int(t))
	}
}

// ResolveType derives the key width from a dataset filename. Dataset files
// follow the "<name>_uint32" / "<name>_uint64" suffix convention.
func ResolveType(filename string) (DataType, error) {
	pos := strings.LastIndexByte(filename, '_')
	if pos < 0 || pos == len(filename)-1 {
		return 0, fmt.Errorf("common: filename %q has no type suffix", filename)
	}
	switch suffix := filename[pos+1:]; suffix {
	case "uint32":
		return Uint32, nil
	case "uint64":
		return Uint64, nil
	default:
		return 0, fmt.Errorf("common: type %q not supported", suffix)
	}
}
