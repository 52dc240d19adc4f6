//go:build !windows

package main

import (
	"errors"
	"image"
	"log/slog"

	"github.com/lkarlslund/stormbot/internal/actuate"
	"github.com/lkarlslund/stormbot/internal/config"
)

func newPointer(cfg *config.Config, src source, logger *slog.Logger) (actuate.Pointer, error) {
	if cfg.Capture.Pointer == "message" {
		return nil, errors.New("message pointer is only supported on Windows")
	}
	logger.Warn("No input injection on this platform, pointer actions are only logged")
	return logPointer{logger: logger}, nil
}

// logPointer records pointer actions without performing them.
type logPointer struct {
	logger *slog.Logger
}

func (l logPointer) Click(p image.Point)        { l.logger.Debug("Click", "x", p.X, "y", p.Y) }
func (l logPointer) PressAndHold(p image.Point) { l.logger.Debug("Press", "x", p.X, "y", p.Y) }
func (l logPointer) MoveTo(p image.Point)       { l.logger.Debug("Move", "x", p.X, "y", p.Y) }
func (l logPointer) Release()                   { l.logger.Debug("Release") }
