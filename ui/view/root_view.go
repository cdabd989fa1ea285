package view

import (
	"image"
	"log/slog"

	"github.com/soocke/face-annotator-go/config"
	"github.com/soocke/face-annotator-go/ui/model"
	"github.com/soocke/face-annotator-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Stats       DetectionStats
	Preview     ImagePreview
	ConfigPanel ConfigPanel
	Region      RegionOverlay
	Dialogs     *Dialogs

	// Widgets
	StateLabel *TLabelWidget
}

// UI abstracts the subset of view operations needed by presenters.
type UI interface {
	SetStateLabel(text string)
	SetStats(s model.Snapshot)
	ShowImage(img image.Image)
	ShowMessage(msg string)
	ShowError(msg string)
}

// Handlers are the user actions RootView binds to its buttons.
type Handlers struct {
	OnPick       func()
	OnGrab       func()
	OnToggleDark func()
	OnExit       func()
	OnApply      func(*config.Config)
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout: status and stats on row 0, the photo and the
// settings form on row 1.
func (rv *RootView) Build(title string, h Handlers) {
	if rv == nil {
		return
	}
	rv.Dialogs = NewDialogs(title, rv.logger)
	rv.Region = NewRegionOverlay(rv.cfg, rv.cfgPath, rv.logger)

	rv.StateLabel = TLabel(Txt("State: <none>"), Style(theme.StyleStateLabel))
	Grid(rv.StateLabel, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	statsFrame := Frame()
	Grid(statsFrame, Row(0), Column(1), Sticky("w"), Padx("0.3m"), Pady("0.3m"))
	rv.Stats = NewDetectionStats(statsFrame, 0, 0)

	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	pickBtn := TButton(Txt("Pick Photo"), Style(theme.StylePrimaryButton), Command(h.OnPick))
	Grid(pickBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	grabBtn := TButton(Txt("Grab Screen"), Command(h.OnGrab))
	Grid(grabBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	regionBtn := TButton(Txt("Grab Region..."), Command(rv.Region.OpenOrFocus))
	Grid(regionBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	darkBtn := TButton(Txt("Dark Mode"), Command(h.OnToggleDark))
	Grid(darkBtn, In(btnFrame), Row(3), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Txt("Exit"), Style(theme.StyleDangerButton), Command(h.OnExit))
	Grid(exitBtn, In(btnFrame), Row(4), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	rv.Preview = NewImagePreview(1, 2, rv.cfg.PreviewMaxW, rv.cfg.PreviewMaxH)

	formFrame := Frame()
	Grid(formFrame, Row(1), Column(2), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger, h.OnApply)
	rv.ConfigPanel.Build(formFrame, 0)
}

// SetStateLabel updates the state label text.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// SetConfigEditable toggles the settings form. Picking stays enabled while a
// photo is analyzed; the newest pick wins.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
}

// SetStats proxies to the stats subview.
func (rv *RootView) SetStats(s model.Snapshot) {
	if rv != nil && rv.Stats != nil {
		rv.Stats.SetStats(s)
	}
}

// ShowImage proxies to the image preview.
func (rv *RootView) ShowImage(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.ShowImage(img)
	}
}

func (rv *RootView) ShowMessage(msg string) {
	if rv != nil {
		rv.Dialogs.ShowMessage(msg)
	}
}

func (rv *RootView) ShowError(msg string) {
	if rv != nil {
		rv.Dialogs.ShowError(msg)
	}
}
