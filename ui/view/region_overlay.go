package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/soocke/face-annotator-go/config"
	"github.com/soocke/face-annotator-go/domain/source"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionOverlay is a see-through window the user drags over the screen to
// choose what "Grab Screen" captures. The choice is stored in the config.
type RegionOverlay interface {
	OpenOrFocus()
	Clear()
}

type regionOverlay struct {
	logger  *slog.Logger
	cfg     *config.Config
	cfgPath string
	win     *ToplevelWidget
}

func NewRegionOverlay(cfg *config.Config, cfgPath string, logger *slog.Logger) RegionOverlay {
	return &regionOverlay{logger: logger, cfg: cfg, cfgPath: cfgPath}
}

func (v *regionOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Grab Region")
	v.win = win
	WmGeometry(win.Window, v.initialGeometry())
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", 0.4)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(0), Columnspan(3), Sticky("nsew"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Use Region [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	clear := win.Button(Txt("Whole Screen"), Command(func() { v.Clear(); v.destroy() }))
	Grid(clear, In(controls), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
	WmProtocol(win.Window, "WM_DELETE_WINDOW", v.cancel)
}

// initialGeometry reopens at the saved region, or centers a window covering
// part of the screen.
func (v *regionOverlay) initialGeometry() string {
	if r := v.cfg.GrabRect(); !r.Empty() {
		return formatGeometry(r)
	}
	screenW, screenH := 1920, 1080
	if b, err := source.ScreenBounds(); err == nil && !b.Empty() {
		screenW, screenH = b.Dx(), b.Dy()
	} else if err != nil && v.logger != nil {
		v.logger.Warn("screen bounds unavailable", "error", err)
	}
	w, h := max(screenW*2/3, 1), max(screenH*5/9, 1)
	x, y := (screenW-w)/2, (screenH-h)/2
	return formatGeometry(image.Rect(x, y, x+w, y+h))
}

func (v *regionOverlay) Clear() {
	if v.cfg == nil {
		return
	}
	v.cfg.GrabX, v.cfg.GrabY, v.cfg.GrabW, v.cfg.GrabH = 0, 0, 0, 0
	v.save()
}

func (v *regionOverlay) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	if rect, ok := parseGeometry(geom); ok && v.cfg != nil {
		v.cfg.GrabX, v.cfg.GrabY = rect.Min.X, rect.Min.Y
		v.cfg.GrabW, v.cfg.GrabH = rect.Dx(), rect.Dy()
		v.save()
		if v.logger != nil {
			v.logger.Info("grab region set", "region", rect.String())
		}
	}
	v.destroy()
}

func (v *regionOverlay) save() {
	if v.cfgPath == "" {
		return
	}
	if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
		v.logger.Error("config save failed", "error", err)
	}
}

func (v *regionOverlay) cancel() { v.destroy() }

func (v *regionOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

// geometryRe matches Tk geometry strings in the format "WIDTHxHEIGHT+X+Y".
var geometryRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

func parseGeometry(g string) (image.Rectangle, bool) {
	m := geometryRe.FindStringSubmatch(strings.TrimSpace(g))
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

func formatGeometry(r image.Rectangle) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y)
}
