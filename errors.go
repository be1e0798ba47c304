package xmlkv

import (
	"errors"

	"github.com/KimNorgaard/go-xmlkv/internal/builder"
)

var (
	// ErrEmpty is returned by Build when the map has no entries.
	ErrEmpty = builder.ErrEmpty
	// ErrMultipleRoots is wrapped in a KeyError when the keys of a map do
	// not share one root element.
	ErrMultipleRoots = builder.ErrMultipleRoots
	// ErrNoRoot is returned when a document to flatten has no root element.
	ErrNoRoot = errors.New("xmlkv: document has no root element")
)

// A KeyError reports the key that stopped a Build. Its Err is a
// *keypath.SegmentError for keys that do not match the key grammar, or
// ErrMultipleRoots.
type KeyError = builder.KeyError
