package app

import (
	"log/slog"

	"github.com/soocke/face-annotator-go/config"
	"github.com/soocke/face-annotator-go/domain/face"
	"github.com/soocke/face-annotator-go/domain/source"
	"github.com/soocke/face-annotator-go/ui/model"
	"github.com/soocke/face-annotator-go/ui/presenter"
	"github.com/soocke/face-annotator-go/ui/view"
)

// AppContainer assembles models, pickers, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger
	Annotator  *model.AnnotatorModel
	Stats      *model.StatsModel
	RootView   *view.RootView
	UI         view.UI

	FilePicker   presenter.ImagePicker
	ScreenPicker presenter.ImagePicker

	// Presenters
	AnnotatorPresenter *presenter.AnnotatorPresenter
	StatusPresenter    *presenter.StatusPresenter
	StatsPresenter     *presenter.StatsPresenter
	Loop               *presenter.Loop
}

// BuildContainer constructs all components. No widgets are created here; the
// root view is built by the app once Tk is ready.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Annotator = model.NewAnnotatorModel()
	c.Stats = model.NewStatsModel()
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	c.FilePicker = view.NewFilePicker(cfg, cfgPath, logger)
	c.ScreenPicker = view.NewScreenPicker(cfg)

	c.AnnotatorPresenter = presenter.NewAnnotatorPresenter(
		c.Annotator,
		c.Stats,
		face.NewFactory(cfg.Detector),
		DetectorOptions(cfg),
		source.FileResolver{},
		source.Decoder{AutoOrient: cfg.AutoOrient},
		c.UI,
		c.UI,
		AnnotationStyle(cfg),
		cfg.SurfaceLoadErrors,
		logger,
	)
	c.StatusPresenter = presenter.NewStatusPresenter(c.UI)
	c.StatsPresenter = presenter.NewStatsPresenter(c.Stats, c.UI)
	c.Annotator.AddListener(c.StatusPresenter.OnState)
	c.Annotator.AddListener(func(_, next model.AnnotatorState) {
		c.RootView.SetConfigEditable(next != model.StateDetecting)
	})
	c.Loop = presenter.NewLoop(c.AnnotatorPresenter, c.StatusPresenter, c.StatsPresenter, nil)
	return c
}

// ApplyConfig pushes edited settings into the presenter. Passes already in
// flight keep the settings they were dispatched with.
func (c *AppContainer) ApplyConfig(cfg *config.Config) {
	if c == nil || cfg == nil {
		return
	}
	p := c.AnnotatorPresenter
	p.Factory = face.NewFactory(cfg.Detector)
	p.Options = DetectorOptions(cfg)
	p.Decoder = source.Decoder{AutoOrient: cfg.AutoOrient}
	p.Style = AnnotationStyle(cfg)
	p.SurfaceLoadErrors = cfg.SurfaceLoadErrors
	c.Logger.Info("settings applied", "detector", cfg.Detector, "min_face", cfg.MinFaceSize, "stroke", cfg.StrokeWidth)
}
