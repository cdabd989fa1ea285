//go:build unix

package debug

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// residentSetBytes returns the peak resident set size of the current process.
// Getrusage reports kilobytes on Linux and bytes on Darwin.
func residentSetBytes() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	if runtime.GOOS == "darwin" {
		return uint64(ru.Maxrss), nil
	}
	return uint64(ru.Maxrss) * 1024, nil
}
