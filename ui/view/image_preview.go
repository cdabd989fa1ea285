package view

import (
	"image"

	"github.com/soocke/face-annotator-go/assets"
	"github.com/soocke/face-annotator-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ImagePreview is the display surface holding the current (annotated) photo.
type ImagePreview interface {
	ShowImage(img image.Image)
}

type imagePreview struct {
	label     *LabelWidget
	maxW      int
	maxH      int
	prevPhoto *Img // disposed before each replacement
}

// NewImagePreview creates the image label at row, spanning span columns.
func NewImagePreview(row, span, maxW, maxH int) ImagePreview {
	v := &imagePreview{maxW: maxW, maxH: maxH}
	v.prevPhoto = NewPhoto(Data(assets.PlaceholderPNG))
	v.label = Label(Image(v.prevPhoto), Borderwidth(1), Relief("sunken"))
	Grid(v.label, Row(row), Column(0), Columnspan(span), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	return v
}

// ShowImage replaces the displayed photo. The image is scaled for display
// only; callers keep the full-resolution raster.
func (v *imagePreview) ShowImage(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	w, h := v.maxW, v.maxH
	if w <= 0 || h <= 0 {
		w, h = 760, 520
	}
	v.replace(images.EncodePNG(images.ScaleToFit(img, w, h)))
}

func (v *imagePreview) replace(pngBytes []byte) {
	if len(pngBytes) == 0 {
		return
	}
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.prevPhoto))
}
