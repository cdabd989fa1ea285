package main

import (
	"log/slog"
	"os"

	"github.com/soocke/face-annotator-go/app"
	"github.com/soocke/face-annotator-go/config"
)

const defaultConfigPath = "face-annotator.json"

func main() {
	cfgPath := defaultConfigPath
	if len(os.Args) > 1 && os.Args[1] != "" {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	logger := NewLogger(levelFor(cfg.Debug))
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", cfgPath, "error", err)
	}

	application := app.NewApp("Face Annotator", 1100, 680, cfg, cfgPath, logger)
	application.Start()
}

func levelFor(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
