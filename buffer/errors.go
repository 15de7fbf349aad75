package buffer

import "errors"

// ErrNoFreeBuffer is returned when the pool cannot find an evictable frame
// because every frame is currently pinned. It typically means the caller is
// holding too many pins at once, or the pool is sized too small for the
// operation's working set (see the B+tree engine's pinning discipline).
var ErrNoFreeBuffer = errors.New("buffer: no free buffer (all frames pinned)")
