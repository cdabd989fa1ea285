package source

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoder turns a stream into a mutable raster with its origin at (0,0).
type Decoder struct {
	// AutoOrient applies the EXIF orientation tag before detection so that faces
	// in rotated phone photos are upright.
	AutoOrient bool
}

// Decode reads r fully. Streams that hold no image yield ErrDecodeFailure.
func (d Decoder) Decode(r io.Reader) (*image.RGBA, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil stream", ErrDecodeFailure)
	}
	var (
		img image.Image
		err error
	)
	if d.AutoOrient {
		img, err = imaging.Decode(r, imaging.AutoOrientation(true))
	} else {
		img, _, err = image.Decode(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailure, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrDecodeFailure)
	}
	return ToRGBA(img), nil
}

// ToRGBA copies img into a fresh *image.RGBA anchored at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
