package source

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/vova616/screenshot"
)

// GrabFunc captures pixels from the screen.
type GrabFunc func() (*image.RGBA, error)

// GrabScreen returns a capture of the primary monitor.
func GrabScreen() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	return img, nil
}

// SnapshotHandle writes the grabbed frame to a temporary PNG and returns an
// ephemeral handle to it, so a screen grab flows through the same open/decode
// path as a picked photo.
func SnapshotHandle(grab GrabFunc, dir string) (Handle, error) {
	if grab == nil {
		grab = GrabScreen
	}
	img, err := grab()
	if err != nil {
		return Handle{}, err
	}
	if img == nil {
		return Handle{}, fmt.Errorf("capture screen: empty frame")
	}
	f, err := os.CreateTemp(dir, "face-annotator-grab-*.png")
	if err != nil {
		return Handle{}, fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return Handle{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return Handle{}, fmt.Errorf("close snapshot: %w", err)
	}
	return Handle{URI: f.Name(), Ephemeral: true}, nil
}

// GrabRegion returns a GrabFunc capturing rect, or the whole primary screen
// when rect is empty.
func GrabRegion(rect image.Rectangle) GrabFunc {
	if rect.Empty() {
		return GrabScreen
	}
	return func() (*image.RGBA, error) {
		img, err := screenshot.CaptureRect(rect)
		if err != nil {
			return nil, fmt.Errorf("capture region %v: %w", rect, err)
		}
		return img, nil
	}
}

// ScreenBounds reports the primary screen rectangle.
func ScreenBounds() (image.Rectangle, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("screen bounds: %w", err)
	}
	return r, nil
}
