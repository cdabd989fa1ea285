package view

import (
	"log/slog"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Dialogs presents modal messages through Tk message boxes.
type Dialogs struct {
	Title  string
	logger *slog.Logger
}

func NewDialogs(title string, logger *slog.Logger) *Dialogs {
	return &Dialogs{Title: title, logger: logger}
}

// ShowMessage shows an informational dialog and blocks until it is dismissed.
func (d *Dialogs) ShowMessage(msg string) { d.show(msg, "info") }

// ShowError shows an error dialog and blocks until it is dismissed.
func (d *Dialogs) ShowError(msg string) { d.show(msg, "error") }

func (d *Dialogs) show(msg, icon string) {
	if d == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && d.logger != nil {
			d.logger.Error("message box failed", "error", r, "message", msg)
		}
	}()
	MessageBox(Title(d.Title), Msg(msg), Icon(icon))
}
