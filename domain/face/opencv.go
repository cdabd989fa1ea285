//go:build opencv

package face

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// opencvDetector runs an OpenCV Haar cascade (e.g. haarcascade_frontalface_default.xml).
type opencvDetector struct {
	classifier *gocv.CascadeClassifier
	minSize    image.Point
	maxSize    image.Point
	scale      float64
}

func newOpenCVDetector(opts Options) Detector {
	if opts.CascadePath == "" {
		return unavailable{err: fmt.Errorf("opencv: no cascade path configured")}
	}
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(opts.CascadePath) {
		classifier.Close()
		return unavailable{err: fmt.Errorf("opencv: cannot load cascade %s", opts.CascadePath)}
	}
	opts = withPigoDefaults(opts)
	return &opencvDetector{
		classifier: &classifier,
		minSize:    image.Pt(opts.MinSize, opts.MinSize),
		maxSize:    image.Pt(opts.MaxSize, opts.MaxSize),
		scale:      opts.ScaleFactor,
	}
}

func (d *opencvDetector) Operational() bool { return d != nil && d.classifier != nil }

func (d *opencvDetector) Detect(img image.Image) (Regions, error) {
	if !d.Operational() {
		return nil, ErrNotOperational
	}
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("opencv: convert frame: %w", err)
	}
	defer mat.Close()
	rects := d.classifier.DetectMultiScaleWithParams(mat, d.scale, 3, 0, d.minSize, d.maxSize)
	out := make(Regions, len(rects))
	for i, r := range rects {
		out[i] = RegionFromRect(r)
	}
	return out, nil
}

func (d *opencvDetector) Close() error {
	if d.classifier != nil {
		err := d.classifier.Close()
		d.classifier = nil
		return err
	}
	return nil
}
