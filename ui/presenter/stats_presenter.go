package presenter

import (
	"github.com/soocke/face-annotator-go/ui/model"
)

// StatsView displays accumulated detection figures.
type StatsView interface {
	SetStats(s model.Snapshot)
}

// StatsPresenter pushes the stats model to the view when it changes.
type StatsPresenter struct {
	stats *model.StatsModel
	view  StatsView
	last  model.Snapshot
	init  bool
}

// NewStatsPresenter returns a new StatsPresenter.
func NewStatsPresenter(stats *model.StatsModel, view StatsView) *StatsPresenter {
	return &StatsPresenter{stats: stats, view: view}
}

// Tick reads the model and updates the view if anything changed since the last tick.
func (p *StatsPresenter) Tick() {
	if p == nil || p.stats == nil || p.view == nil {
		return
	}
	s := p.stats.Values()
	if p.init && s == p.last {
		return
	}
	p.init = true
	p.last = s
	p.view.SetStats(s)
}
