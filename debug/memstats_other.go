//go:build !windows && !unix

package debug

import "errors"

func residentSetBytes() (uint64, error) {
	return 0, errors.New("rss not supported on this platform")
}
