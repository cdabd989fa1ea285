//go:build !opencv

package face

import "errors"

func newOpenCVDetector(Options) Detector {
	return unavailable{err: errors.New("opencv: binary built without -tags opencv")}
}
