package app

import (
	"github.com/soocke/face-annotator-go/assets"
	"github.com/soocke/face-annotator-go/config"
	"github.com/soocke/face-annotator-go/domain/annotate"
	"github.com/soocke/face-annotator-go/domain/face"
)

// DetectorOptions maps config onto backend options. Tracking is always off:
// every photo is an independent still.
func DetectorOptions(cfg *config.Config) face.Options {
	return face.Options{
		Tracking:     false,
		CascadePath:  cfg.CascadePath,
		Cascade:      assets.FacefinderCascade,
		ModelsDir:    cfg.ModelsDir,
		MinSize:      cfg.MinFaceSize,
		MaxSize:      cfg.MaxFaceSize,
		ShiftFactor:  cfg.ShiftFactor,
		ScaleFactor:  cfg.ScaleFactor,
		IoUThreshold: cfg.IoUThreshold,
		MinQuality:   cfg.MinQuality,
	}
}

// AnnotationStyle maps config onto the outline style.
func AnnotationStyle(cfg *config.Config) annotate.Style {
	return annotate.Style{
		StrokeWidth:  float32(cfg.StrokeWidth),
		CornerRadius: float32(cfg.CornerRadius),
		Color:        cfg.StrokeRGBA(),
	}
}
