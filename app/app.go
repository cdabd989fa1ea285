package app

import (
	"fmt"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/face-annotator-go/config"
	"github.com/soocke/face-annotator-go/debug"
	"github.com/soocke/face-annotator-go/ui/theme"
	"github.com/soocke/face-annotator-go/ui/view"
)

const (
	tick = 50 * time.Millisecond
)

type app struct {
	title   string
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
	c       *AppContainer
	afterID string
	stops   []func()
}

func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{title: title, cfg: cfg, cfgPath: cfgPath, logger: logger}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the window and blocks in the Tk event loop until it closes.
func (a *app) Start() {
	theme.SetDark(a.cfg.DarkMode)
	if a.cfg.Debug {
		a.stops = append(a.stops,
			debug.StartGoroutineLogger(10*time.Second, a.logger),
			debug.StartMemLogger(10*time.Second, a.logger),
		)
	}

	a.c = BuildContainer(a.cfg, a.logger, a.cfgPath)
	a.c.RootView.Build(a.title, view.Handlers{
		OnPick:       func() { a.c.AnnotatorPresenter.RequestImageSelection(a.c.FilePicker) },
		OnGrab:       func() { a.c.AnnotatorPresenter.RequestImageSelection(a.c.ScreenPicker) },
		OnToggleDark: a.toggleDark,
		OnExit:       a.exitHandler,
		OnApply:      a.c.ApplyConfig,
	})
	a.c.Loop.Schedule = a.scheduleUpdate
	a.logger.Info("annotator ready", "detector", a.cfg.Detector, "config", a.cfgPath)

	a.scheduleUpdate()
	App.Wait()
}

func (a *app) toggleDark() {
	a.cfg.DarkMode = theme.ToggleDark()
	if err := a.cfg.Save(a.cfgPath); err != nil {
		a.logger.Error("config save failed", "error", err)
	}
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	for _, stop := range a.stops {
		stop()
	}
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// TclAfter keeps every presenter tick on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
