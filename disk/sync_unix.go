//go:build unix

package disk

import (
	"os"

	"golang.org/x/sys/unix"
)

// syncFile flushes f's data to stable storage. On unix we use fdatasync
// rather than fsync/File.Sync: pages are fixed-size and append-only, so
// there is no inode metadata (size, mtime) whose durability the engine
// actually depends on between calls to Sync.
func syncFile(f *os.File) error {
	for {
		err := unix.Fdatasync(int(f.Fd()))
		if err != unix.EINTR {
			return err
		}
	}
}
