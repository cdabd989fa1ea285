package presenter

import (
	"github.com/soocke/face-annotator-go/ui/model"
)

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// StatusPresenter receives model transitions and reflects the latest state on Tick.
type StatusPresenter struct {
	view    StateView
	latest  model.AnnotatorState
	shown   bool
	pending []model.AnnotatorState
}

func NewStatusPresenter(view StateView) *StatusPresenter {
	return &StatusPresenter{view: view}
}

// OnState queues a transitioned state from the model listener.
//
// The latest queued state will be reflected on the next Tick.
func (p *StatusPresenter) OnState(prev, next model.AnnotatorState) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick processes queued states and updates the view with the most recent state.
// It clears the pending queue after processing.
func (p *StatusPresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	if !p.shown {
		p.shown = true
		p.view.SetStateLabel("State: " + p.latest.String())
	}
	if len(p.pending) > 0 {
		last := p.pending[len(p.pending)-1]
		p.pending = p.pending[:0]
		if last != p.latest {
			p.latest = last
			p.view.SetStateLabel("State: " + last.String())
		}
	}
}
