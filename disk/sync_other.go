//go:build !unix

package disk

import "os"

// syncFile flushes f's data to stable storage using the portable fsync.
func syncFile(f *os.File) error {
	return f.Sync()
}
