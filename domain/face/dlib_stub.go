//go:build !dlib

package face

import "errors"

func newDlibDetector(Options) Detector {
	return unavailable{err: errors.New("dlib: binary built without -tags dlib")}
}
