package config

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for detection, annotation and app behavior.
// Fields are loaded from a JSON (or YAML) file; the picker writes LastDir back.
type Config struct {
	Debug    bool `json:"debug" yaml:"debug"`
	DarkMode bool `json:"dark_mode" yaml:"dark_mode"`

	// Detector backend: "pigo" (default), "dlib" or "opencv".
	Detector    string `json:"detector" yaml:"detector"`
	// Empty (or a missing file) uses the bundled pigo cascade.
	CascadePath string `json:"cascade_path" yaml:"cascade_path"`
	ModelsDir   string `json:"models_dir" yaml:"models_dir"`

	// Detection parameters
	MinFaceSize  int     `json:"min_face_size" yaml:"min_face_size"`
	MaxFaceSize  int     `json:"max_face_size" yaml:"max_face_size"`
	ShiftFactor  float64 `json:"shift_factor" yaml:"shift_factor"`
	ScaleFactor  float64 `json:"scale_factor" yaml:"scale_factor"`
	IoUThreshold float64 `json:"iou_threshold" yaml:"iou_threshold"`
	MinQuality   float64 `json:"min_quality" yaml:"min_quality"`
	AutoOrient   bool    `json:"auto_orient" yaml:"auto_orient"`

	// Annotation
	StrokeWidth  float64 `json:"stroke_width" yaml:"stroke_width"`
	CornerRadius float64 `json:"corner_radius" yaml:"corner_radius"`
	StrokeColor  string  `json:"stroke_color" yaml:"stroke_color"`

	// Show an error dialog when the picked photo cannot be opened or decoded.
	SurfaceLoadErrors bool `json:"surface_load_errors" yaml:"surface_load_errors"`

	// Screen region for "Grab Screen"; zero width/height grabs the whole screen.
	GrabX int `json:"grab_x" yaml:"grab_x"`
	GrabY int `json:"grab_y" yaml:"grab_y"`
	GrabW int `json:"grab_w" yaml:"grab_w"`
	GrabH int `json:"grab_h" yaml:"grab_h"`

	PreviewMaxW int    `json:"preview_max_w" yaml:"preview_max_w"`
	PreviewMaxH int    `json:"preview_max_h" yaml:"preview_max_h"`
	LastDir     string `json:"last_dir" yaml:"last_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:             false,
		DarkMode:          false,
		Detector:          "pigo",
		CascadePath:       "",
		ModelsDir:         "models",
		MinFaceSize:       20,
		MaxFaceSize:       1000,
		ShiftFactor:       0.1,
		ScaleFactor:       1.1,
		IoUThreshold:      0.2,
		MinQuality:        5.0,
		AutoOrient:        true,
		StrokeWidth:       5,
		CornerRadius:      2,
		StrokeColor:       "#ff0000",
		SurfaceLoadErrors: true,
		PreviewMaxW:       760,
		PreviewMaxH:       520,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	c.Detector = strings.ToLower(strings.TrimSpace(c.Detector))
	if c.Detector == "" {
		c.Detector = "pigo"
	}
	if c.MinFaceSize <= 0 {
		c.MinFaceSize = 20
	}
	if c.MaxFaceSize <= 0 || c.MaxFaceSize < c.MinFaceSize {
		c.MaxFaceSize = c.MinFaceSize + 980
	}
	if c.ShiftFactor <= 0 || c.ShiftFactor >= 1 {
		c.ShiftFactor = 0.1
	}
	if c.ScaleFactor <= 1 {
		c.ScaleFactor = 1.1
	}
	if c.IoUThreshold <= 0 || c.IoUThreshold > 1 {
		c.IoUThreshold = 0.2
	}
	if c.MinQuality < 0 {
		c.MinQuality = 0
	}
	if c.StrokeWidth <= 0 {
		c.StrokeWidth = 5
	}
	if c.CornerRadius < 0 {
		c.CornerRadius = 0
	}
	if _, err := ParseHexColor(c.StrokeColor); err != nil {
		c.StrokeColor = "#ff0000"
	}
	if c.GrabW < 0 || c.GrabH < 0 {
		c.GrabW, c.GrabH = 0, 0
	}
	if c.PreviewMaxW < 100 {
		c.PreviewMaxW = 100
	}
	if c.PreviewMaxH < 100 {
		c.PreviewMaxH = 100
	}
	return nil
}

// GrabRect returns the configured grab region, or the zero rectangle when unset.
func (c *Config) GrabRect() image.Rectangle {
	if c == nil || c.GrabW <= 0 || c.GrabH <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(c.GrabX, c.GrabY, c.GrabX+c.GrabW, c.GrabY+c.GrabH)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load attempts to read configuration from the given file path. If the file does not
// exist it returns DefaultConfig(). On decode error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if isYAML(path) {
		err = yaml.NewDecoder(f).Decode(cfg)
	} else {
		err = json.NewDecoder(f).Decode(cfg)
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("decode config %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path, as YAML for .yaml/.yml paths and
// indented JSON otherwise.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if isYAML(path) {
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
