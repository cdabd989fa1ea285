package view

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/face-annotator-go/config"
	"github.com/soocke/face-annotator-go/domain/face"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel is the detector, detection and annotation settings form. ApplyChanges
// writes into *config.Config, persists it and notifies onApply.
type ConfigPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int)
	SetEditable(enabled bool)
	ApplyChanges()
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	onApply  func(*config.Config)
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget
}

// NewConfigPanel creates the form bound to cfg. onApply runs on the UI thread
// after a successful apply.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger, onApply func(*config.Config)) ConfigPanel {
	return &configPanel{cfg: cfg, cfgPath: cfgPath, logger: logger, onApply: onApply, widgets: make(map[string]*TextWidget)}
}

func (v *configPanel) Build(parent *FrameWidget, startRow int) (row int) {
	c := v.cfg
	row = startRow
	makeRow := func(id, label, value string) {
		lbl := Label(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		w := Text(Height(1), Width(12))
		Grid(w, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		w.Delete("1.0", END)
		w.Insert("1.0", value)
		v.widgets[id] = w
		row++
	}
	makeRow("detector", "Detector ("+strings.Join(face.Backends, "/")+")", c.Detector)
	makeRow("cascade", "Cascade Path (empty: bundled)", c.CascadePath)
	makeRow("models", "Models Dir", c.ModelsDir)
	makeRow("minFace", "Min Face Px", strconv.Itoa(c.MinFaceSize))
	makeRow("maxFace", "Max Face Px", strconv.Itoa(c.MaxFaceSize))
	makeRow("shift", "Shift Factor", fmt.Sprintf("%.2f", c.ShiftFactor))
	makeRow("scale", "Scale Factor", fmt.Sprintf("%.2f", c.ScaleFactor))
	makeRow("iou", "IoU Threshold", fmt.Sprintf("%.2f", c.IoUThreshold))
	makeRow("quality", "Min Quality", fmt.Sprintf("%.1f", c.MinQuality))
	makeRow("stroke", "Stroke Width", fmt.Sprintf("%.1f", c.StrokeWidth))
	makeRow("radius", "Corner Radius", fmt.Sprintf("%.1f", c.CornerRadius))
	makeRow("color", "Stroke Color", c.StrokeColor)
	makeRow("autoOrient", "Auto Orient (true/false)", fmt.Sprintf("%t", c.AutoOrient))
	makeRow("surface", "Report Load Errors (true/false)", fmt.Sprintf("%t", c.SurfaceLoadErrors))
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, In(parent), Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func (v *configPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(id string) (string, bool) {
	w := v.widgets[id]
	if w == nil {
		return "", false
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), "")), true
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg
	assignFloat := func(id string, dst *float64) {
		if s, ok := v.text(id); ok {
			if f, ok := parseFloatField(s); ok {
				*dst = f
			}
		}
	}
	assignInt := func(id string, dst *int) {
		if s, ok := v.text(id); ok {
			if i, ok := parseIntField(s); ok {
				*dst = i
			}
		}
	}
	assignBool := func(id string, dst *bool) {
		if s, ok := v.text(id); ok {
			if b, ok := parseBoolLoose(s); ok {
				*dst = b
			}
		}
	}
	assignInt("minFace", &cfg.MinFaceSize)
	assignInt("maxFace", &cfg.MaxFaceSize)
	assignFloat("shift", &cfg.ShiftFactor)
	assignFloat("scale", &cfg.ScaleFactor)
	assignFloat("iou", &cfg.IoUThreshold)
	assignFloat("quality", &cfg.MinQuality)
	assignFloat("stroke", &cfg.StrokeWidth)
	assignFloat("radius", &cfg.CornerRadius)
	assignBool("autoOrient", &cfg.AutoOrient)
	assignBool("surface", &cfg.SurfaceLoadErrors)
	if s, ok := v.text("detector"); ok {
		if face.IsBackend(s) {
			cfg.Detector = s
		} else if v.logger != nil {
			v.logger.Warn("ignoring unknown detector", "value", s, "allowed", face.Backends)
		}
	}
	if s, ok := v.text("cascade"); ok {
		cfg.CascadePath = s
	}
	if s, ok := v.text("models"); ok && s != "" {
		cfg.ModelsDir = s
	}
	if s, ok := v.text("color"); ok && s != "" {
		if _, err := config.ParseHexColor(s); err == nil {
			cfg.StrokeColor = s
		} else if v.logger != nil {
			v.logger.Warn("ignoring stroke color", "value", s, "error", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else if v.logger != nil {
		v.logger.Info("config saved", "path", v.cfgPath)
	}
	if v.onApply != nil {
		v.onApply(v.cfg)
	}
}

func parseFloatField(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseIntField(s string) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return i, true
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
