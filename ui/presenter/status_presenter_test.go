package presenter

import (
	"testing"
	"time"

	"github.com/soocke/face-annotator-go/ui/model"
)

type mockStateView struct{ labels []string }

func (v *mockStateView) SetStateLabel(s string) { v.labels = append(v.labels, s) }

type mockStatsView struct{ calls []model.Snapshot }

func (v *mockStatsView) SetStats(s model.Snapshot) { v.calls = append(v.calls, s) }

func TestStatusPresenter_ReflectsLatestState(t *testing.T) {
	view := &mockStateView{}
	p := NewStatusPresenter(view)
	m := model.NewAnnotatorModel()
	m.AddListener(p.OnState)

	p.Tick()
	if len(view.labels) != 1 || view.labels[0] != "State: idle" {
		t.Fatalf("expected initial idle label, got %v", view.labels)
	}
	m.SetState(model.StateAwaitingSelection)
	m.BeginPass()
	p.Tick()
	if got := view.labels[len(view.labels)-1]; got != "State: detecting" {
		t.Fatalf("expected latest state only, got %q", got)
	}
	n := len(view.labels)
	p.Tick()
	if len(view.labels) != n {
		t.Fatalf("unchanged state should not relabel")
	}
}

func TestStatsPresenter_PushesOnChange(t *testing.T) {
	stats := model.NewStatsModel()
	view := &mockStatsView{}
	p := NewStatsPresenter(stats, view)

	p.Tick()
	p.Tick()
	if len(view.calls) != 1 {
		t.Fatalf("expected single initial push, got %d", len(view.calls))
	}
	stats.Record(2, 10*time.Millisecond)
	p.Tick()
	if len(view.calls) != 2 || view.calls[1].Faces != 2 {
		t.Fatalf("expected push after record, got %+v", view.calls)
	}
}

func TestLoop_TicksAndSchedules(t *testing.T) {
	view := &mockStateView{}
	scheduled := 0
	l := NewLoop(nil, NewStatusPresenter(view), nil, func() { scheduled++ })
	l.Tick()
	if scheduled != 1 || len(view.labels) != 1 {
		t.Fatalf("loop tick: scheduled=%d labels=%v", scheduled, view.labels)
	}
	var nilLoop *Loop
	nilLoop.Tick()
}
