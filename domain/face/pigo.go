package face

import (
	"errors"
	"fmt"
	"io/fs"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"
)

// pigoDetector runs the pigo pixel-intensity cascade over a grayscale copy of the image.
type pigoDetector struct {
	classifier *pigo.Pigo
	opts       Options
	err        error
}

func newPigoDetector(opts Options) Detector {
	d := &pigoDetector{opts: withPigoDefaults(opts)}
	data, err := cascadeBytes(opts)
	if err != nil {
		return unavailable{err: err}
	}
	classifier, err := unpackCascade(data)
	if err != nil {
		return unavailable{err: err}
	}
	d.classifier = classifier
	return d
}

// cascadeBytes reads CascadePath when it names an existing file and falls back
// to the bundled cascade when the path is empty or missing. An existing but
// unreadable file is an error, not a fallback.
func cascadeBytes(opts Options) ([]byte, error) {
	if opts.CascadePath != "" {
		data, err := os.ReadFile(opts.CascadePath)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) || len(opts.Cascade) == 0 {
			return nil, fmt.Errorf("pigo: read cascade: %w", err)
		}
	}
	if len(opts.Cascade) == 0 {
		return nil, fmt.Errorf("pigo: no cascade configured")
	}
	return opts.Cascade, nil
}

// unpackCascade guards against malformed cascade files, which make pigo index out of range.
func unpackCascade(data []byte) (classifier *pigo.Pigo, err error) {
	defer func() {
		if r := recover(); r != nil {
			classifier, err = nil, fmt.Errorf("pigo: corrupt cascade: %v", r)
		}
	}()
	classifier, err = pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("pigo: unpack cascade: %w", err)
	}
	return classifier, nil
}

func withPigoDefaults(o Options) Options {
	if o.MinSize <= 0 {
		o.MinSize = 20
	}
	if o.MaxSize <= 0 {
		o.MaxSize = 1000
	}
	if o.ShiftFactor <= 0 {
		o.ShiftFactor = 0.1
	}
	if o.ScaleFactor <= 1 {
		o.ScaleFactor = 1.1
	}
	if o.IoUThreshold <= 0 {
		o.IoUThreshold = 0.2
	}
	return o
}

func (d *pigoDetector) Operational() bool { return d != nil && d.classifier != nil }

func (d *pigoDetector) Detect(img image.Image) (Regions, error) {
	if !d.Operational() {
		return nil, ErrNotOperational
	}
	if img == nil {
		return Regions{}, nil
	}
	src := pigo.ImgToNRGBA(img)
	pixels := pigo.RgbToGrayscale(src)
	cols, rows := src.Bounds().Max.X, src.Bounds().Max.Y

	params := pigo.CascadeParams{
		MinSize:     d.opts.MinSize,
		MaxSize:     d.opts.MaxSize,
		ShiftFactor: d.opts.ShiftFactor,
		ScaleFactor: d.opts.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}
	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.opts.IoUThreshold)
	return regionsFromDetections(dets, d.opts.MinQuality), nil
}

func (d *pigoDetector) Close() error { return nil }

// regionsFromDetections keeps detections scoring at least minQ. pigo reports the
// square's center (Row, Col) and side length (Scale).
func regionsFromDetections(dets []pigo.Detection, minQ float64) Regions {
	out := make(Regions, len(dets))
	i := 0
	for _, det := range dets {
		if float64(det.Q) < minQ {
			continue
		}
		out[i] = Region{
			X:      det.Col - det.Scale/2,
			Y:      det.Row - det.Scale/2,
			Width:  det.Scale,
			Height: det.Scale,
		}
		i++
	}
	return out
}
