package view

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/soocke/face-annotator-go/config"
	"github.com/soocke/face-annotator-go/domain/source"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

var photoTypes = []FileType{
	{TypeName: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}},
	{TypeName: "All files", Extensions: []string{"*"}},
}

// FilePicker asks the user for a photo with the native open dialog. The dialog
// is modal, so the returned channel is already resolved when Select returns.
type FilePicker struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger
}

func NewFilePicker(cfg *config.Config, cfgPath string, logger *slog.Logger) *FilePicker {
	return &FilePicker{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

func (p *FilePicker) Select() <-chan source.Selection {
	ch := make(chan source.Selection, 1)
	defer close(ch)
	ch <- p.open()
	return ch
}

func (p *FilePicker) open() (sel source.Selection) {
	defer func() {
		if r := recover(); r != nil {
			sel = source.Failed(fmt.Errorf("open dialog: %v", r))
		}
	}()
	opts := []Opt{Title("Pick a photo"), Filetypes(photoTypes)}
	if p.cfg != nil && p.cfg.LastDir != "" {
		opts = append(opts, Initialdir(p.cfg.LastDir))
	}
	files := GetOpenFile(opts...)
	if len(files) == 0 || files[0] == "" {
		return source.Cancelled()
	}
	p.remember(filepath.Dir(files[0]))
	return source.Selected(source.FileHandle(files[0]))
}

func (p *FilePicker) remember(dir string) {
	if p.cfg == nil || dir == "" || dir == p.cfg.LastDir {
		return
	}
	p.cfg.LastDir = dir
	if p.cfgPath == "" {
		return
	}
	if err := p.cfg.Save(p.cfgPath); err != nil && p.logger != nil {
		p.logger.Error("config save failed", "error", err)
	}
}

// ScreenPicker grabs the configured screen region (or the whole screen) on a
// goroutine and hands the snapshot over as an ephemeral image.
type ScreenPicker struct {
	cfg  *config.Config
	grab func(image.Rectangle) source.GrabFunc
}

func NewScreenPicker(cfg *config.Config) *ScreenPicker {
	return &ScreenPicker{cfg: cfg, grab: source.GrabRegion}
}

func (p *ScreenPicker) Select() <-chan source.Selection {
	ch := make(chan source.Selection, 1)
	rect := p.cfg.GrabRect()
	grab := p.grab(rect)
	go func() {
		defer close(ch)
		h, err := source.SnapshotHandle(grab, "")
		if err != nil {
			ch <- source.Failed(err)
			return
		}
		ch <- source.Selected(h)
	}()
	return ch
}
