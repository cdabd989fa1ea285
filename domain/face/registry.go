package face

import (
	"fmt"
	"slices"
	"strings"
)

// Backends lists the names accepted by NewDetector.
var Backends = []string{"pigo", "dlib", "opencv"}

// IsBackend reports whether name selects a known backend. Empty selects pigo.
func IsBackend(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	return name == "" || slices.Contains(Backends, name)
}

// NewDetector creates a detector for the named backend. Backends that cannot load
// their assets still return a Detector which reports itself not operational; only
// an unknown name is an error.
func NewDetector(backend string, opts Options) (Detector, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "pigo", "":
		return newPigoDetector(opts), nil
	case "dlib":
		return newDlibDetector(opts), nil
	case "opencv":
		return newOpenCVDetector(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// NewFactory binds a backend name to a Factory.
func NewFactory(backend string) Factory {
	return func(opts Options) (Detector, error) {
		return NewDetector(backend, opts)
	}
}
