package assets

import (
	_ "embed"
)

// PlaceholderPNG is shown in the image area before the first photo is picked.
//
//go:embed placeholder.png
var PlaceholderPNG []byte

// FacefinderCascade is pigo's frontal face cascade (MIT, see
// cascade/LICENSE.pigo). It backs the default detector when no cascade file
// is configured.
//
//go:embed cascade/facefinder
var FacefinderCascade []byte
