package rashmap

import "errors"

// ErrClosed is returned when a mutating operation is attempted on a closed
// map.
var ErrClosed = errors.New("rashmap: map is closed")
