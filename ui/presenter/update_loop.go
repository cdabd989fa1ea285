package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// It ticks the annotator (pending picks and finished passes) before the
// status and stats presenters so they reflect the same tick's changes, then
// invokes a scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Annotator *AnnotatorPresenter
	Status    *StatusPresenter
	Stats     *StatsPresenter
	Schedule  func()
}

func NewLoop(annotator *AnnotatorPresenter, status *StatusPresenter, stats *StatsPresenter, schedule func()) *Loop {
	return &Loop{Annotator: annotator, Status: status, Stats: stats, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Annotator != nil {
		l.Annotator.Tick()
	}
	if l.Status != nil {
		l.Status.Tick()
	}
	if l.Stats != nil {
		l.Stats.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
