package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes for Tk photo data. Errors yield nil.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

// ScaleToFit downsamples src for display so it fits within maxW x maxH,
// preserving aspect ratio. An image that already fits is returned unchanged.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	return imaging.Fit(src, max(maxW, 1), max(maxH, 1), imaging.Linear)
}
