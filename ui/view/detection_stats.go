package view

import (
	"fmt"
	"time"

	"github.com/soocke/face-annotator-go/ui/model"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// DetectionStats shows pass count, face totals and timings.
type DetectionStats interface {
	SetStats(s model.Snapshot)
}

type detectionStats struct {
	passesLbl *LabelWidget
	facesLbl  *LabelWidget
	timingLbl *LabelWidget
}

// NewDetectionStats creates the stats labels stacked in parent starting at row.
func NewDetectionStats(parent *FrameWidget, row, col int) DetectionStats {
	s := &detectionStats{passesLbl: Label(Width(18)), facesLbl: Label(Width(18)), timingLbl: Label(Width(18))}
	for i, l := range []*LabelWidget{s.passesLbl, s.facesLbl, s.timingLbl} {
		if parent != nil {
			Grid(l, In(parent), Row(row+i), Column(col), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(l, Row(row+i), Column(col), Sticky("w"), Padx("0.2m"))
		}
	}
	s.SetStats(model.Snapshot{})
	return s
}

func (s *detectionStats) SetStats(v model.Snapshot) {
	if s == nil || s.passesLbl == nil {
		return
	}
	s.passesLbl.Configure(Txt(fmt.Sprintf("Photos: %d", v.Passes)))
	s.facesLbl.Configure(Txt(fmt.Sprintf("Faces: %d (last %d)", v.Faces, v.LastFaces)))
	s.timingLbl.Configure(Txt(fmt.Sprintf("Took: %s / avg %s", formatMillis(v.LastDuration), formatMillis(v.AvgDuration))))
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
