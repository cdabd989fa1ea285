package model

import "image"

// AnnotatorState enumerates the steps of one pick-and-annotate cycle.
type AnnotatorState int

const (
	StateIdle AnnotatorState = iota
	StateAwaitingSelection
	StateDetecting
	StateDisplaying
)

func (s AnnotatorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSelection:
		return "picking"
	case StateDetecting:
		return "detecting"
	case StateDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// StateListener is called on each state change.
type StateListener func(prev, next AnnotatorState)

// AnnotatorModel tracks the workflow state, the latest dispatched pass and the
// image currently on the display surface. Zero value is Idle and usable.
// No synchronization: only the UI thread touches it.
type AnnotatorModel struct {
	state     AnnotatorState
	seq       uint64
	displayed image.Image
	faces     int
	listeners []StateListener
}

func NewAnnotatorModel() *AnnotatorModel { return &AnnotatorModel{} }

// AddListener registers l for future transitions.
func (m *AnnotatorModel) AddListener(l StateListener) {
	if m == nil || l == nil {
		return
	}
	m.listeners = append(m.listeners, l)
}

// State returns the current state.
func (m *AnnotatorModel) State() AnnotatorState {
	if m == nil {
		return StateIdle
	}
	return m.state
}

// SetState moves to next, notifying listeners when it differs from the current state.
func (m *AnnotatorModel) SetState(next AnnotatorState) {
	if m == nil {
		return
	}
	prev := m.state
	if prev == next {
		return
	}
	m.state = next
	for _, l := range m.listeners {
		l(prev, next)
	}
}

// BeginPass enters Detecting and returns the sequence of the new pass. Any
// earlier pass still in flight becomes stale.
func (m *AnnotatorModel) BeginPass() uint64 {
	if m == nil {
		return 0
	}
	m.seq++
	m.SetState(StateDetecting)
	return m.seq
}

// IsCurrent reports whether seq is the latest dispatched pass.
func (m *AnnotatorModel) IsCurrent(seq uint64) bool {
	return m != nil && seq != 0 && seq == m.seq
}

// Sequence returns the latest dispatched pass sequence.
func (m *AnnotatorModel) Sequence() uint64 {
	if m == nil {
		return 0
	}
	return m.seq
}

// SetDisplayed records the image now on the display surface and its face count.
func (m *AnnotatorModel) SetDisplayed(img image.Image, faces int) {
	if m == nil {
		return
	}
	m.displayed = img
	m.faces = faces
}

// Displayed returns the image on the display surface (nil before the first pass).
func (m *AnnotatorModel) Displayed() (image.Image, int) {
	if m == nil {
		return nil, 0
	}
	return m.displayed, m.faces
}
