package face

import (
	"errors"
	"image"
)

var (
	// ErrNotOperational is returned by Detect when the backend failed to load its assets.
	ErrNotOperational = errors.New("face detector not operational")
	// ErrUnknownBackend is returned by NewDetector for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown face detector backend")
)

// Region is a detected face bounding box in image pixel space.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Rect returns the region as (X, Y)-(X+Width, Y+Height).
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// RegionFromRect converts a rectangle into a Region.
func RegionFromRect(r image.Rectangle) Region {
	return Region{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Regions maps an arbitrary index to a detected face. Keys carry no meaning and
// iteration order is not stable.
type Regions map[int]Region

// Detector is the capability every detection backend implements.
type Detector interface {
	// Operational reports whether the backend assets were loaded.
	Operational() bool
	// Detect returns the faces found in img. The map may be empty.
	Detect(img image.Image) (Regions, error)
	// Close releases backend resources.
	Close() error
}

// Options configures a detector instance.
type Options struct {
	// Tracking correlates faces across calls. No backend here supports it and
	// the annotator always passes false.
	Tracking bool

	CascadePath string
	// Cascade is the bundled pigo cascade, used when CascadePath is empty
	// or does not exist.
	Cascade   []byte
	ModelsDir string

	MinSize      int
	MaxSize      int
	ShiftFactor  float64
	ScaleFactor  float64
	IoUThreshold float64
	MinQuality   float64
}

// Factory builds a detector for one detection pass.
type Factory func(opts Options) (Detector, error)

// unavailable is a detector that never becomes operational.
type unavailable struct{ err error }

func (u unavailable) Operational() bool { return false }

func (u unavailable) Detect(image.Image) (Regions, error) {
	if u.err != nil {
		return nil, errors.Join(ErrNotOperational, u.err)
	}
	return nil, ErrNotOperational
}

func (u unavailable) Close() error { return nil }
