//go:build dlib

package face

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	goface "github.com/Kagami/go-face"
)

// dlibDetector wraps the dlib CNN/HOG recognizer. The models directory must hold
// the shape predictor, recognition and detector .dat files.
type dlibDetector struct {
	rec *goface.Recognizer
}

func newDlibDetector(opts Options) Detector {
	if opts.ModelsDir == "" {
		return unavailable{err: fmt.Errorf("dlib: no models directory configured")}
	}
	rec, err := goface.NewRecognizer(opts.ModelsDir)
	if err != nil {
		return unavailable{err: fmt.Errorf("dlib: %w", err)}
	}
	return &dlibDetector{rec: rec}
}

func (d *dlibDetector) Operational() bool { return d != nil && d.rec != nil }

// Detect hands the recognizer a JPEG encoding, the only format it accepts.
func (d *dlibDetector) Detect(img image.Image) (Regions, error) {
	if !d.Operational() {
		return nil, ErrNotOperational
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("dlib: encode frame: %w", err)
	}
	faces, err := d.rec.Recognize(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("dlib: recognize: %w", err)
	}
	out := make(Regions, len(faces))
	for i, f := range faces {
		out[i] = RegionFromRect(f.Rectangle)
	}
	return out, nil
}

func (d *dlibDetector) Close() error {
	if d.rec != nil {
		d.rec.Close()
		d.rec = nil
	}
	return nil
}
