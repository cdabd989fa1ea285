package model

import (
	"time"
)

// StatsModel accumulates per-pass detection figures for the status bar.
// The zero value is ready to use.
type StatsModel struct {
	passes        int
	faces         int
	lastFaces     int
	lastDuration  time.Duration
	totalDuration time.Duration
}

// NewStatsModel returns a pointer to a ready-to-use StatsModel.
func NewStatsModel() *StatsModel { return &StatsModel{} }

// Record adds one completed detection pass.
func (m *StatsModel) Record(faces int, took time.Duration) {
	if m == nil {
		return
	}
	if faces < 0 {
		faces = 0
	}
	m.passes++
	m.faces += faces
	m.lastFaces = faces
	m.lastDuration = took
	m.totalDuration += took
}

// Snapshot is a copy of the accumulated figures.
type Snapshot struct {
	Passes       int
	Faces        int
	LastFaces    int
	LastDuration time.Duration
	AvgDuration  time.Duration
}

// Values returns the current figures. AvgDuration is zero before the first pass.
func (m *StatsModel) Values() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	s := Snapshot{Passes: m.passes, Faces: m.faces, LastFaces: m.lastFaces, LastDuration: m.lastDuration}
	if m.passes > 0 {
		s.AvgDuration = m.totalDuration / time.Duration(m.passes)
	}
	return s
}
